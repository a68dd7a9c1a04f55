package catalog

import (
	"fmt"
	"slices"
)

// IsCompatible reports whether the platform declares f in its compatibility
// set. Callers must check this before attempting any import or attach of a
// disk image on h; a false result means the operation is rejected, not tried.
func (h Hypervisor) IsCompatible(f DiskFormat) bool {
	return slices.Contains(h.info().compatible, f)
}

// IsCompatible is the free-function form of Hypervisor.IsCompatible.
func IsCompatible(h Hypervisor, f DiskFormat) bool {
	return h.IsCompatible(f)
}

// CheckCompatible returns an error wrapping ErrIncompatible when h cannot
// import f.
func CheckCompatible(h Hypervisor, f DiskFormat) error {
	if h.IsCompatible(f) {
		return nil
	}
	return fmt.Errorf("%s does not accept %s: %w", h, f, ErrIncompatible)
}

// CompatibleHypervisors returns every hypervisor that accepts f, in id order.
func CompatibleHypervisors(f DiskFormat) []Hypervisor {
	var out []Hypervisor
	for _, h := range Hypervisors() {
		if h.IsCompatible(f) {
			out = append(out, h)
		}
	}
	return out
}
