package libvirt

import (
	"testing"

	"github.com/jbweber/hvcompat/internal/catalog"
)

func TestDiskFormatForVolume(t *testing.T) {
	tests := []struct {
		format string
		want   catalog.DiskFormat
		wantOK bool
	}{
		{"raw", catalog.Raw, true},
		{"qcow2", catalog.QCOW2Sparse, true},
		{"QCOW2", catalog.QCOW2Sparse, true},
		{"vmdk", catalog.VMDKSparse, true},
		{"vpc", catalog.VHDSparse, true},
		{"vdi", catalog.VDISparse, true},
		{"vhdx", catalog.Incompatible, true},
		{"iso", catalog.Incompatible, true},
		{"ploop", catalog.Unknown, false},
		{"", catalog.Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, ok := DiskFormatForVolume(tt.format)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("DiskFormatForVolume(%q) = %v, %v; want %v, %v", tt.format, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDriverType(t *testing.T) {
	tests := []struct {
		format catalog.DiskFormat
		want   string
	}{
		{catalog.Raw, "raw"},
		{catalog.QCOW2Flat, "qcow2"},
		{catalog.QCOW2Sparse, "qcow2"},
		{catalog.VMDKStreamOptimized, "vmdk"},
		{catalog.VHDFlat, "vpc"},
		{catalog.VDIFlat, "vdi"},
		{catalog.Unknown, ""},
		{catalog.Incompatible, ""},
	}

	for _, tt := range tests {
		t.Run(tt.format.Name(), func(t *testing.T) {
			if got := DriverType(tt.format); got != tt.want {
				t.Errorf("DriverType(%s) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

// Every format libvirt can drive must map back to the same family.
func TestDriverType_RoundTripsFamily(t *testing.T) {
	for _, f := range catalog.DiskFormats() {
		dt := DriverType(f)
		if dt == "" {
			continue
		}
		back, ok := DiskFormatForVolume(dt)
		if !ok {
			t.Errorf("DriverType(%s) = %q is not a known volume format", f, dt)
			continue
		}
		if back.Alias() != f.Alias() && !(f.Alias() == catalog.AliasVMDKFlat || f.Alias() == catalog.AliasVMDKStreamOptimized) {
			t.Errorf("%s -> %q -> %s changes family", f, dt, back)
		}
	}
}
