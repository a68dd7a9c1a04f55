package catalog

import (
	"fmt"
	"strings"
)

// Hypervisor identifies a hypervisor platform. The numeric value is the
// platform's catalog id, starting at 1. The zero value is not a valid
// hypervisor.
type Hypervisor int

const (
	VBox      Hypervisor = iota + 1 // 1, VirtualBox
	KVM                             // 2
	Xen3                            // 3
	VMX04                           // 4, VMware ESXi
	HyperV301                       // 5, Microsoft Hyper-V
	XenServer                       // 6, Citrix XenServer
)

const (
	// MinHypervisorID is the lowest valid hypervisor id.
	MinHypervisorID = 1
	// MaxHypervisorID is the highest valid hypervisor id.
	MaxHypervisorID = 6
)

// Management ports used by each platform's default agent or API endpoint.
const (
	PortAbiquoAgent = 8889
	PortESXi        = 443
	PortWinRM       = 5985
	PortXenServer   = 9363
)

type hypervisorInfo struct {
	name                string
	friendlyName        string
	defaultPort         int
	baseFormat          DiskFormat
	compatible          []DiskFormat
	instanceFormat      *DiskFormat // nil preserves the native format
	requiresCredentials bool
	extraDisks          bool
}

var (
	vboxCompatibles      = []DiskFormat{VMDKSparse, VHDFlat, VHDSparse, VDIFlat, VDISparse}
	kvmCompatibles       = []DiskFormat{Raw, VMDKSparse, VMDKFlat, VHDFlat, VHDSparse, QCOW2Flat, QCOW2Sparse}
	xenCompatibles       = []DiskFormat{VMDKFlat}
	vmwareCompatibles    = []DiskFormat{VMDKFlat, VMDKSparse}
	hypervCompatibles    = []DiskFormat{VHDFlat, VHDSparse}
	xenserverCompatibles = hypervCompatibles
)

func formatPtr(f DiskFormat) *DiskFormat { return &f }

// hypervisors is indexed by Hypervisor id; slot 0 is unused.
var hypervisors = [MaxHypervisorID + 1]hypervisorInfo{
	VBox: {
		name:                "VBOX",
		friendlyName:        "Virtual Box",
		defaultPort:         PortAbiquoAgent,
		baseFormat:          VDIFlat,
		compatible:          vboxCompatibles,
		requiresCredentials: true,
	},
	KVM: {
		name:         "KVM",
		friendlyName: "KVM",
		defaultPort:  PortAbiquoAgent,
		baseFormat:   VMDKFlat,
		compatible:   kvmCompatibles,
	},
	Xen3: {
		name:         "XEN_3",
		friendlyName: "Xen",
		defaultPort:  PortAbiquoAgent,
		baseFormat:   VMDKFlat,
		compatible:   xenCompatibles,
	},
	VMX04: {
		name:                "VMX_04",
		friendlyName:        "ESXi",
		defaultPort:         PortESXi,
		baseFormat:          VMDKFlat,
		compatible:          vmwareCompatibles,
		instanceFormat:      formatPtr(VMDKFlat),
		requiresCredentials: true,
		extraDisks:          true,
	},
	HyperV301: {
		name:                "HYPERV_301",
		friendlyName:        "Hyper-V",
		defaultPort:         PortWinRM,
		baseFormat:          VHDSparse,
		compatible:          hypervCompatibles,
		requiresCredentials: true,
	},
	XenServer: {
		name:                "XENSERVER",
		friendlyName:        "Xen Server",
		defaultPort:         PortXenServer,
		baseFormat:          VHDSparse,
		compatible:          xenserverCompatibles,
		requiresCredentials: true,
	},
}

// Hypervisors returns every hypervisor in id order.
func Hypervisors() []Hypervisor {
	out := make([]Hypervisor, 0, MaxHypervisorID)
	for id := MinHypervisorID; id <= MaxHypervisorID; id++ {
		out = append(out, Hypervisor(id))
	}
	return out
}

// HypervisorByID returns the hypervisor with the given 1-based id.
// Returns ErrOutOfRange if id is outside [MinHypervisorID, MaxHypervisorID].
func HypervisorByID(id int) (Hypervisor, error) {
	if id < MinHypervisorID || id > MaxHypervisorID {
		return 0, fmt.Errorf("hypervisor id %d not in [%d, %d]: %w",
			id, MinHypervisorID, MaxHypervisorID, ErrOutOfRange)
	}
	return Hypervisor(id), nil
}

// HypervisorByName returns the hypervisor with the given name, ignoring case
// ("kvm", "KVM" and "Kvm" all match KVM). The name is upper-cased before
// comparison, the same folding LegacyID applies.
func HypervisorByName(name string) (Hypervisor, error) {
	upper := strings.ToUpper(name)
	for _, h := range Hypervisors() {
		if hypervisors[h].name == upper {
			return h, nil
		}
	}
	return 0, fmt.Errorf("hypervisor %q: %w", name, ErrUnknownVariant)
}

// Valid reports whether h is a catalog entry.
func (h Hypervisor) Valid() bool {
	return h >= MinHypervisorID && h <= MaxHypervisorID
}

func (h Hypervisor) info() hypervisorInfo {
	if !h.Valid() {
		return hypervisorInfo{}
	}
	return hypervisors[h]
}

// ID returns the catalog id.
func (h Hypervisor) ID() int { return int(h) }

// Name returns the declared variant name, e.g. "HYPERV_301".
func (h Hypervisor) Name() string { return h.info().name }

// FriendlyName returns the display name, e.g. "Hyper-V".
func (h Hypervisor) FriendlyName() string { return h.info().friendlyName }

// DefaultPort returns the default management port.
func (h Hypervisor) DefaultPort() int { return h.info().defaultPort }

// BaseFormat returns the disk format the platform natively understands.
// It is not required to be a member of CompatibleFormats.
func (h Hypervisor) BaseFormat() DiskFormat { return h.info().baseFormat }

// CompatibleFormats returns a copy of the platform's compatibility set.
func (h Hypervisor) CompatibleFormats() []DiskFormat {
	src := h.info().compatible
	out := make([]DiskFormat, len(src))
	copy(out, src)
	return out
}

// IsInstanceFormatFixed reports whether captured instances must be
// normalized to a single disk format.
func (h Hypervisor) IsInstanceFormatFixed() bool {
	return h.info().instanceFormat != nil
}

// InstanceFormat returns the format captured instances are normalized to.
// The second result is false when the native format is preserved.
func (h Hypervisor) InstanceFormat() (DiskFormat, bool) {
	f := h.info().instanceFormat
	if f == nil {
		return Unknown, false
	}
	return *f, true
}

// RequiresCredentials reports whether managing the platform needs user
// credentials. False for KVM and Xen.
func (h Hypervisor) RequiresCredentials() bool {
	return h.info().requiresCredentials
}

// SupportsExtraDisks reports whether the platform can attach additional hard
// disks to a virtual machine.
func (h Hypervisor) SupportsExtraDisks() bool {
	return h.info().extraDisks
}

func (h Hypervisor) String() string {
	if !h.Valid() {
		return fmt.Sprintf("Hypervisor(%d)", int(h))
	}
	return h.Name()
}
