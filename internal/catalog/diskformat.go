package catalog

import "fmt"

// DiskFormat identifies a virtual disk image format. The numeric value is the
// format's catalog id.
type DiskFormat int

const (
	Unknown             DiskFormat = iota // 0
	Raw                                   // 1
	Incompatible                          // 2
	VMDKStreamOptimized                   // 3
	VMDKFlat                              // 4
	VMDKSparse                            // 5
	VHDFlat                               // 6
	VHDSparse                             // 7
	VDIFlat                               // 8
	VDISparse                             // 9
	QCOW2Flat                             // 10
	QCOW2Sparse                           // 11
)

const (
	// MinDiskFormatID is the lowest valid disk format id.
	MinDiskFormatID = 0
	// MaxDiskFormatID is the highest valid disk format id.
	MaxDiskFormatID = 11
)

// DiskFormatAlias groups formats that share an on-disk structure, such as
// the flat and sparse variants of the same family.
type DiskFormatAlias string

const (
	AliasUnknown             DiskFormatAlias = "UNKNOWN"
	AliasRaw                 DiskFormatAlias = "RAW"
	AliasIncompatible        DiskFormatAlias = "INCOMPATIBLE"
	AliasVMDKStreamOptimized DiskFormatAlias = "VMDK_STREAM_OPTIMIZED"
	AliasVMDKFlat            DiskFormatAlias = "VMDK_FLAT"
	AliasVMDKSparse          DiskFormatAlias = "VMDK_SPARSE"
	AliasVHD                 DiskFormatAlias = "VHD"
	AliasVDI                 DiskFormatAlias = "VDI"
	AliasQCOW2               DiskFormatAlias = "QCOW2"
)

type diskFormatInfo struct {
	name        string
	uri         string
	description string
	alias       DiskFormatAlias
	extension   string // empty means no filename suffix is required
}

const (
	vmdkSpecURI  = "http://www.vmware.com/technical-resources/interfaces/vmdk_access.html"
	vhdSpecURI   = "http://technet.microsoft.com/en-us/virtualserver/bb676673.aspx"
	vdiSpecURI   = "http://forums.virtualbox.org/viewtopic.php?t=8046"
	qcow2SpecURI = "http://people.gnome.org/~markmc/qcow-image-format.html"
)

// diskFormats is indexed by DiskFormat id.
var diskFormats = [MaxDiskFormatID + 1]diskFormatInfo{
	Unknown:             {"UNKNOWN", "http://unknown", "Unknown format", AliasUnknown, ""},
	Raw:                 {"RAW", "http://raw", "Disk format device", AliasRaw, ""},
	Incompatible:        {"INCOMPATIBLE", "http://incompatible", "Incompatible disk type", AliasIncompatible, ""},
	VMDKStreamOptimized: {"VMDK_STREAM_OPTIMIZED", vmdkSpecURI + "#streamOptimized", "VMWare streamOptimized format", AliasVMDKStreamOptimized, ""},
	VMDKFlat:            {"VMDK_FLAT", vmdkSpecURI + "#monolithic_flat", "VMWare Fixed Disk", AliasVMDKFlat, ""},
	VMDKSparse:          {"VMDK_SPARSE", vmdkSpecURI + "#monolithic_sparse", "VMWare Sparse Disk", AliasVMDKSparse, ""},
	VHDFlat:             {"VHD_FLAT", vhdSpecURI + "#monolithic_flat", "VHD Fixed Disk", AliasVHD, "vhd"},
	VHDSparse:           {"VHD_SPARSE", vhdSpecURI + "#monolithic_sparse", "VHD Sparse Disk", AliasVHD, "vhd"},
	VDIFlat:             {"VDI_FLAT", vdiSpecURI + "#monolithic_flat", "VDI Fixed disk", AliasVDI, ""},
	VDISparse:           {"VDI_SPARSE", vdiSpecURI + "#monolithic_sparse", "VDI Sparse disk", AliasVDI, ""},
	QCOW2Flat:           {"QCOW2_FLAT", qcow2SpecURI + "#monolithic_flat", "QCOW2 Fixed disk", AliasQCOW2, ""},
	QCOW2Sparse:         {"QCOW2_SPARSE", qcow2SpecURI + "#monolithic_sparse", "QCOW2 Sparse disk", AliasQCOW2, ""},
}

// DiskFormats returns every disk format in id order.
func DiskFormats() []DiskFormat {
	out := make([]DiskFormat, 0, len(diskFormats))
	for id := range diskFormats {
		out = append(out, DiskFormat(id))
	}
	return out
}

// DiskFormatByID returns the disk format with the given id.
// Returns ErrOutOfRange if id is outside [MinDiskFormatID, MaxDiskFormatID].
func DiskFormatByID(id int) (DiskFormat, error) {
	if id < MinDiskFormatID || id > MaxDiskFormatID {
		return Unknown, fmt.Errorf("disk format id %d not in [%d, %d]: %w",
			id, MinDiskFormatID, MaxDiskFormatID, ErrOutOfRange)
	}
	return DiskFormat(id), nil
}

// DiskFormatByURI returns the disk format whose canonical URI equals uri.
// An unknown URI is not an error: callers treat it as absent data.
func DiskFormatByURI(uri string) (DiskFormat, bool) {
	for id, info := range diskFormats {
		if info.uri == uri {
			return DiskFormat(id), true
		}
	}
	return Unknown, false
}

// DiskFormatByName returns the disk format with the given declared name.
// Matching is exact and case-sensitive ("VMDK_FLAT" matches, "vmdk_flat" does not).
func DiskFormatByName(name string) (DiskFormat, error) {
	for id, info := range diskFormats {
		if info.name == name {
			return DiskFormat(id), nil
		}
	}
	return Unknown, fmt.Errorf("disk format %q: %w", name, ErrUnknownVariant)
}

// Valid reports whether f is a catalog entry.
func (f DiskFormat) Valid() bool {
	return f >= MinDiskFormatID && f <= MaxDiskFormatID
}

func (f DiskFormat) info() diskFormatInfo {
	if !f.Valid() {
		return diskFormatInfo{}
	}
	return diskFormats[f]
}

// ID returns the catalog id.
func (f DiskFormat) ID() int { return int(f) }

// Name returns the declared variant name, e.g. "VHD_SPARSE".
func (f DiskFormat) Name() string { return f.info().name }

// URI returns the canonical wire identity.
func (f DiskFormat) URI() string { return f.info().uri }

// Description returns human-readable text.
func (f DiskFormat) Description() string { return f.info().description }

// Alias returns the family the format belongs to.
func (f DiskFormat) Alias() DiskFormatAlias { return f.info().alias }

// Extension returns the required filename suffix, or "" if none is required.
func (f DiskFormat) Extension() string { return f.info().extension }

// RequiresExtension reports whether files in this format must carry Extension.
func (f DiskFormat) RequiresExtension() bool {
	return f.info().extension != ""
}

func (f DiskFormat) String() string {
	if !f.Valid() {
		return fmt.Sprintf("DiskFormat(%d)", int(f))
	}
	return f.Name()
}
