package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/digitalocean/go-libvirt"

	"github.com/jbweber/hvcompat/api/v1alpha1"
	"github.com/jbweber/hvcompat/internal/catalog"
)

func TestManager_AuditPool(t *testing.T) {
	mockClient := newMockLibvirtClient()
	mockClient.addPool("images")
	mockClient.addVolume("images", "fedora.qcow2", "qcow2")
	mockClient.addVolume("images", "win.vhd", "vpc")
	mockClient.addVolume("images", "installer.iso", "iso")
	mockClient.addVolume("images", "appliance.ploop", "ploop")

	mgr := NewManager(mockClient)
	reviews, err := mgr.AuditPool(context.Background(), "images", catalog.HyperV301)
	if err != nil {
		t.Fatalf("AuditPool() error = %v", err)
	}
	if len(reviews) != 4 {
		t.Fatalf("AuditPool() returned %d reviews, want 4", len(reviews))
	}

	want := map[string]string{
		"images/fedora.qcow2":    v1alpha1.ReasonIncompatible,
		"images/win.vhd":         v1alpha1.ReasonCompatible,
		"images/installer.iso":   v1alpha1.ReasonIncompatible,
		"images/appliance.ploop": v1alpha1.ReasonUnknownFormat,
	}
	for _, r := range reviews {
		if r.Status.Reason != want[r.Name] {
			t.Errorf("%s: Reason = %q, want %q", r.Name, r.Status.Reason, want[r.Name])
		}
		if r.Spec.Hypervisor != "HYPERV_301" {
			t.Errorf("%s: Hypervisor = %q", r.Name, r.Spec.Hypervisor)
		}
		if r.Annotations[AnnotationVolumePath] == "" {
			t.Errorf("%s: missing path annotation", r.Name)
		}
	}
}

func TestManager_AuditPool_Inactive(t *testing.T) {
	mockClient := newMockLibvirtClient()
	mockClient.addPool("vms").state = libvirt.StoragePoolInactive

	mgr := NewManager(mockClient)
	_, err := mgr.AuditPool(context.Background(), "vms", catalog.KVM)
	if !errors.Is(err, ErrPoolInactive) {
		t.Fatalf("AuditPool() error = %v, want ErrPoolInactive", err)
	}
}

func TestManager_AuditPool_InvalidHypervisor(t *testing.T) {
	mockClient := newMockLibvirtClient()
	mockClient.addPool("images")

	mgr := NewManager(mockClient)
	_, err := mgr.AuditPool(context.Background(), "images", catalog.Hypervisor(42))
	if !errors.Is(err, catalog.ErrUnknownVariant) {
		t.Fatalf("AuditPool() error = %v, want ErrUnknownVariant", err)
	}
}

func TestManager_AuditAll(t *testing.T) {
	mockClient := newMockLibvirtClient()
	mockClient.addPool("images")
	mockClient.addVolume("images", "fedora.qcow2", "qcow2")
	mockClient.addPool("vms")
	mockClient.addVolume("vms", "web_boot", "qcow2")
	mockClient.addPool("archive").state = libvirt.StoragePoolInactive

	mgr := NewManager(mockClient)
	reviews, err := mgr.AuditAll(context.Background(), catalog.KVM)
	if err != nil {
		t.Fatalf("AuditAll() error = %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("AuditAll() returned %d reviews, want 2", len(reviews))
	}
	for _, r := range reviews {
		if !r.Status.Compatible {
			t.Errorf("%s: expected compatible with KVM", r.Name)
		}
	}
}

func TestReviewVolume(t *testing.T) {
	vol := &VolumeInfo{
		Name:       "disk.vmdk",
		Pool:       "esx",
		Path:       "/vmfs/disk.vmdk",
		Format:     "vmdk",
		DiskFormat: catalog.VMDKSparse,
	}

	r := ReviewVolume(vol, catalog.VMX04)
	if r.Name != "esx/disk.vmdk" {
		t.Errorf("Name = %q", r.Name)
	}
	if !r.Status.Compatible {
		t.Errorf("VMDK_SPARSE should be compatible with VMX_04: %+v", r.Status)
	}
	if r.Annotations[AnnotationVolumeFormat] != "vmdk" {
		t.Errorf("format annotation = %q", r.Annotations[AnnotationVolumeFormat])
	}
}
