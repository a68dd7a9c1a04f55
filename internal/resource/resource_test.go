package resource

import (
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/hvcompat/api/v1alpha1"
	"github.com/jbweber/hvcompat/internal/catalog"
	"github.com/jbweber/hvcompat/internal/macaddr"
)

func TestNewHypervisorProfile(t *testing.T) {
	p := NewHypervisorProfile(catalog.VMX04)

	assert.Equal(t, "hvcompat.cofront.xyz/v1alpha1", p.APIVersion)
	assert.Equal(t, v1alpha1.HypervisorProfileKind, p.Kind)
	assert.Equal(t, "VMX_04", p.Name)
	assert.Equal(t, 4, p.Spec.ID)
	assert.Equal(t, 4, p.Spec.LegacyID)
	assert.Equal(t, "ESXi", p.Spec.FriendlyName)
	assert.Equal(t, 443, p.Spec.DefaultPort)
	assert.Equal(t, "VMDK_FLAT", p.Spec.BaseFormat)
	assert.Equal(t, []string{"VMDK_FLAT", "VMDK_SPARSE"}, p.Spec.CompatibleFormats)
	assert.Equal(t, "VMDK_FLAT", p.Spec.InstanceFormat)
	assert.True(t, p.Spec.RequiresCredentials)
	assert.True(t, p.Spec.SupportsExtraDisks)
	assert.Equal(t, "00:50:56", p.Spec.MACPrefix)
}

func TestNewHypervisorProfile_NoInstanceFormat(t *testing.T) {
	p := NewHypervisorProfile(catalog.KVM)
	assert.Empty(t, p.Spec.InstanceFormat)
	assert.False(t, p.Spec.RequiresCredentials)
	assert.Equal(t, "52:54:00", p.Spec.MACPrefix)
}

func TestNewDiskFormatProfile(t *testing.T) {
	p := NewDiskFormatProfile(catalog.VHDFlat)

	assert.Equal(t, v1alpha1.DiskFormatProfileKind, p.Kind)
	assert.Equal(t, "VHD_FLAT", p.Name)
	assert.Equal(t, "VHD", p.Labels[v1alpha1.LabelAlias])
	assert.Equal(t, 6, p.Spec.ID)
	assert.Equal(t, "http://technet.microsoft.com/en-us/virtualserver/bb676673.aspx#monolithic_flat", p.Spec.URI)
	assert.Equal(t, "vhd", p.Spec.Extension)
	assert.Equal(t, []string{"VBOX", "KVM", "HYPERV_301", "XENSERVER"}, p.Spec.CompatibleHypervisors)
}

func TestNewCompatibilityReview(t *testing.T) {
	tests := []struct {
		name       string
		h          catalog.Hypervisor
		f          catalog.DiskFormat
		subject    string
		wantOK     bool
		wantReason string
		wantName   string
	}{
		{
			name:       "compatible",
			h:          catalog.KVM,
			f:          catalog.QCOW2Sparse,
			wantOK:     true,
			wantReason: v1alpha1.ReasonCompatible,
			wantName:   "KVM.QCOW2_SPARSE",
		},
		{
			name:       "incompatible",
			h:          catalog.HyperV301,
			f:          catalog.QCOW2Sparse,
			wantReason: v1alpha1.ReasonIncompatible,
			wantName:   "HYPERV_301.QCOW2_SPARSE",
		},
		{
			name:       "unknown format",
			h:          catalog.KVM,
			f:          catalog.Unknown,
			subject:    "/images/blob.bin",
			wantReason: v1alpha1.ReasonUnknownFormat,
			wantName:   "/images/blob.bin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewCompatibilityReview(tt.h, tt.f, tt.subject)
			assert.Equal(t, v1alpha1.CompatibilityReviewKind, r.Kind)
			assert.Equal(t, tt.wantName, r.Name)
			assert.Equal(t, tt.wantOK, r.Status.Compatible)
			assert.Equal(t, tt.wantReason, r.Status.Reason)
			assert.Equal(t, tt.subject, r.Spec.Subject)
		})
	}
}

func TestNewNetworkInterface(t *testing.T) {
	nic, err := NewNetworkInterface("eth0", catalog.XenServer, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)

	assert.Equal(t, v1alpha1.NetworkInterfaceKind, nic.Kind)
	assert.Equal(t, "eth0", nic.Name)
	assert.Equal(t, "XENSERVER", nic.Spec.Hypervisor)
	assert.False(t, nic.CreationTimestamp.IsZero())

	_, err = uuid.Parse(nic.UID)
	assert.NoError(t, err, "UID %q is not a uuid", nic.UID)

	policy, _ := macaddr.PolicyFor(catalog.XenServer)
	assert.True(t, policy.Matches(nic.Spec.MACAddress), nic.Spec.MACAddress)
}

func TestNewNetworkInterface_InvalidHypervisor(t *testing.T) {
	_, err := NewNetworkInterface("eth0", catalog.Hypervisor(0), rand.New(rand.NewPCG(1, 1)))
	assert.Error(t, err)
}
