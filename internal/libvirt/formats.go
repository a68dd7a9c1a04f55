package libvirt

import (
	"strings"

	"github.com/jbweber/hvcompat/internal/catalog"
)

// Libvirt names disk formats by family only ("qcow2", "vpc", ...), so flat
// and sparse variants collapse. The sparse variant is reported because that
// is what libvirt creates unless preallocation is requested.
var volumeFormats = map[string]catalog.DiskFormat{
	"raw":   catalog.Raw,
	"qcow2": catalog.QCOW2Sparse,
	"vmdk":  catalog.VMDKSparse,
	"vpc":   catalog.VHDSparse,
	"vhd":   catalog.VHDSparse,
	"vdi":   catalog.VDISparse,
	"vhdx":  catalog.Incompatible,
	"qed":   catalog.Incompatible,
	"qcow":  catalog.Incompatible,
	"cow":   catalog.Incompatible,
	"iso":   catalog.Incompatible,
}

// driverTypes is keyed by catalog alias.
var driverTypes = map[catalog.DiskFormatAlias]string{
	catalog.AliasRaw:                 "raw",
	catalog.AliasQCOW2:               "qcow2",
	catalog.AliasVMDKFlat:            "vmdk",
	catalog.AliasVMDKSparse:          "vmdk",
	catalog.AliasVMDKStreamOptimized: "vmdk",
	catalog.AliasVHD:                 "vpc",
	catalog.AliasVDI:                 "vdi",
}

// DiskFormatForVolume maps a libvirt volume or driver format name to a
// catalog format. Unknown names map to catalog.Unknown with false.
func DiskFormatForVolume(format string) (catalog.DiskFormat, bool) {
	f, ok := volumeFormats[strings.ToLower(format)]
	if !ok {
		return catalog.Unknown, false
	}
	return f, true
}

// DriverType returns the libvirt disk driver type for a catalog format, or
// "" when libvirt has no driver for it.
func DriverType(f catalog.DiskFormat) string {
	return driverTypes[f.Alias()]
}
