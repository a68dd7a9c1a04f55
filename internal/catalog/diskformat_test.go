package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskFormatByID_RoundTrip(t *testing.T) {
	for id := MinDiskFormatID; id <= MaxDiskFormatID; id++ {
		f, err := DiskFormatByID(id)
		require.NoError(t, err, "id %d", id)
		assert.Equal(t, id, f.ID())
		assert.True(t, f.Valid())
	}
}

func TestDiskFormatByID_OutOfRange(t *testing.T) {
	for _, id := range []int{-1, MaxDiskFormatID + 1, 100} {
		_, err := DiskFormatByID(id)
		assert.ErrorIs(t, err, ErrOutOfRange, "id %d", id)
	}
}

func TestDiskFormats_Contiguous(t *testing.T) {
	all := DiskFormats()
	require.Len(t, all, MaxDiskFormatID+1)
	for i, f := range all {
		assert.Equal(t, i, f.ID())
	}
}

func TestDiskFormat_URIsDistinct(t *testing.T) {
	seen := make(map[string]DiskFormat)
	for _, f := range DiskFormats() {
		require.NotEmpty(t, f.URI(), "%s has no uri", f)
		if prev, ok := seen[f.URI()]; ok {
			t.Errorf("uri %q shared by %s and %s", f.URI(), prev, f)
		}
		seen[f.URI()] = f
	}
}

func TestDiskFormatByURI(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		want   DiskFormat
		wantOK bool
	}{
		{
			name:   "raw",
			uri:    "http://raw",
			want:   Raw,
			wantOK: true,
		},
		{
			name:   "vmdk stream optimized",
			uri:    "http://www.vmware.com/technical-resources/interfaces/vmdk_access.html#streamOptimized",
			want:   VMDKStreamOptimized,
			wantOK: true,
		},
		{
			name:   "vhd sparse",
			uri:    "http://technet.microsoft.com/en-us/virtualserver/bb676673.aspx#monolithic_sparse",
			want:   VHDSparse,
			wantOK: true,
		},
		{
			name:   "qcow2 flat",
			uri:    "http://people.gnome.org/~markmc/qcow-image-format.html#monolithic_flat",
			want:   QCOW2Flat,
			wantOK: true,
		},
		{
			name: "unknown uri",
			uri:  "http://example.com/not-a-format",
		},
		{
			name: "case differs",
			uri:  "HTTP://RAW",
		},
		{
			name: "empty",
			uri:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DiskFormatByURI(tt.uri)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDiskFormatByURI_AllEntries(t *testing.T) {
	for _, f := range DiskFormats() {
		got, ok := DiskFormatByURI(f.URI())
		require.True(t, ok, "uri of %s not found", f)
		assert.Equal(t, f, got)
	}
}

func TestDiskFormatByName(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    DiskFormat
		wantErr bool
	}{
		{name: "exact", token: "VMDK_FLAT", want: VMDKFlat},
		{name: "unknown entry", token: "UNKNOWN", want: Unknown},
		{name: "qcow2 sparse", token: "QCOW2_SPARSE", want: QCOW2Sparse},
		{name: "lowercase rejected", token: "vmdk_flat", wantErr: true},
		{name: "mixed case rejected", token: "Vhd_Sparse", wantErr: true},
		{name: "alias is not a name", token: "VHD", wantErr: true},
		{name: "empty", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DiskFormatByName(tt.token)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownVariant), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiskFormat_Aliases(t *testing.T) {
	assert.Equal(t, AliasVHD, VHDFlat.Alias())
	assert.Equal(t, AliasVHD, VHDSparse.Alias())
	assert.Equal(t, AliasVDI, VDIFlat.Alias())
	assert.Equal(t, AliasVDI, VDISparse.Alias())
	assert.Equal(t, AliasQCOW2, QCOW2Flat.Alias())
	assert.Equal(t, AliasQCOW2, QCOW2Sparse.Alias())

	// VMDK variants each keep their own alias.
	assert.NotEqual(t, VMDKFlat.Alias(), VMDKSparse.Alias())
}

func TestDiskFormat_RequiresExtension(t *testing.T) {
	for _, f := range DiskFormats() {
		want := f == VHDFlat || f == VHDSparse
		assert.Equal(t, want, f.RequiresExtension(), "%s", f)
		if want {
			assert.Equal(t, "vhd", f.Extension())
		} else {
			assert.Empty(t, f.Extension())
		}
	}
}

func TestDiskFormat_Invalid(t *testing.T) {
	f := DiskFormat(42)
	assert.False(t, f.Valid())
	assert.Empty(t, f.Name())
	assert.Empty(t, f.URI())
	assert.False(t, f.RequiresExtension())
	assert.Equal(t, "DiskFormat(42)", f.String())
}
