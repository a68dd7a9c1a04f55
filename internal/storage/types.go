package storage

import (
	"errors"

	"github.com/jbweber/hvcompat/internal/catalog"
)

// ErrPoolInactive is returned when auditing a pool that is not running.
// Libvirt cannot list volumes of an inactive pool.
var ErrPoolInactive = errors.New("storage pool is not running")

// PoolInfo contains information about a storage pool.
type PoolInfo struct {
	Name       string // Pool name
	Type       string // Pool backend type as reported by libvirt (dir, logical, rbd, ...)
	Path       string // Target path, when the backend has one
	UUID       string // Pool UUID
	State      string // Pool state (running, inactive, etc.)
	Capacity   uint64 // Total capacity in bytes
	Allocation uint64 // Allocated space in bytes
	Available  uint64 // Available space in bytes
}

// Running reports whether volumes of the pool can be listed.
func (p *PoolInfo) Running() bool {
	return p.State == "running"
}

// CapacityGB returns the pool capacity in GB.
func (p *PoolInfo) CapacityGB() float64 {
	return float64(p.Capacity) / (1024 * 1024 * 1024)
}

// AvailableGB returns the pool available space in GB.
func (p *PoolInfo) AvailableGB() float64 {
	return float64(p.Available) / (1024 * 1024 * 1024)
}

// VolumeInfo contains information about a storage volume.
type VolumeInfo struct {
	Name   string // Volume name
	Pool   string // Pool name
	Path   string // Full path to volume
	Format string // libvirt format name from the volume XML, e.g. "qcow2"

	// DiskFormat is the catalog format for Format. It is catalog.Unknown
	// when libvirt reports a format the catalog has no mapping for.
	DiskFormat catalog.DiskFormat

	Capacity   uint64 // Capacity in bytes
	Allocation uint64 // Allocated space in bytes
}

// Subject is the "pool/volume" name used in compatibility reviews.
func (v *VolumeInfo) Subject() string {
	return v.Pool + "/" + v.Name
}

// CapacityGB returns the volume capacity in GB.
func (v *VolumeInfo) CapacityGB() float64 {
	return float64(v.Capacity) / (1024 * 1024 * 1024)
}

// Annotations set on audit reviews.
const (
	AnnotationVolumeFormat = "hvcompat.cofront.xyz/volume-format"
	AnnotationVolumePath   = "hvcompat.cofront.xyz/volume-path"
)
