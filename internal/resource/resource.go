// Package resource builds the v1alpha1 views of catalog entries,
// compatibility answers and generated NICs.
package resource

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jbweber/hvcompat/api/v1alpha1"
	"github.com/jbweber/hvcompat/internal/catalog"
	"github.com/jbweber/hvcompat/internal/macaddr"
)

func formatNames(formats []catalog.DiskFormat) []string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.Name())
	}
	return names
}

// NewHypervisorProfile builds the profile view of a catalog hypervisor.
func NewHypervisorProfile(h catalog.Hypervisor) *v1alpha1.HypervisorProfile {
	p := &v1alpha1.HypervisorProfile{
		TypeMeta:   v1alpha1.NewTypeMeta(v1alpha1.HypervisorProfileKind),
		ObjectMeta: v1alpha1.ObjectMeta{Name: h.Name()},
		Spec: v1alpha1.HypervisorProfileSpec{
			ID:                  h.ID(),
			FriendlyName:        h.FriendlyName(),
			DefaultPort:         h.DefaultPort(),
			BaseFormat:          h.BaseFormat().Name(),
			CompatibleFormats:   formatNames(h.CompatibleFormats()),
			RequiresCredentials: h.RequiresCredentials(),
			SupportsExtraDisks:  h.SupportsExtraDisks(),
		},
	}

	if n, ok := catalog.LegacyID(h.Name()); ok {
		p.Spec.LegacyID = n
	}
	if f, ok := h.InstanceFormat(); ok {
		p.Spec.InstanceFormat = f.Name()
	}
	if policy, ok := macaddr.PolicyFor(h); ok {
		p.Spec.MACPrefix = policy.Prefix
	}

	return p
}

// NewDiskFormatProfile builds the profile view of a catalog disk format.
func NewDiskFormatProfile(f catalog.DiskFormat) *v1alpha1.DiskFormatProfile {
	var hvs []string
	for _, h := range catalog.CompatibleHypervisors(f) {
		hvs = append(hvs, h.Name())
	}

	return &v1alpha1.DiskFormatProfile{
		TypeMeta: v1alpha1.NewTypeMeta(v1alpha1.DiskFormatProfileKind),
		ObjectMeta: v1alpha1.ObjectMeta{
			Name:   f.Name(),
			Labels: map[string]string{v1alpha1.LabelAlias: string(f.Alias())},
		},
		Spec: v1alpha1.DiskFormatProfileSpec{
			ID:                    f.ID(),
			URI:                   f.URI(),
			Description:           f.Description(),
			Alias:                 string(f.Alias()),
			Extension:             f.Extension(),
			CompatibleHypervisors: hvs,
		},
	}
}

// NewCompatibilityReview answers whether h accepts f. subject may be empty.
// A format of catalog.Unknown is reported with v1alpha1.ReasonUnknownFormat.
func NewCompatibilityReview(h catalog.Hypervisor, f catalog.DiskFormat, subject string) *v1alpha1.CompatibilityReview {
	name := fmt.Sprintf("%s.%s", h.Name(), f.Name())
	if subject != "" {
		name = subject
	}

	r := &v1alpha1.CompatibilityReview{
		TypeMeta:   v1alpha1.NewTypeMeta(v1alpha1.CompatibilityReviewKind),
		ObjectMeta: v1alpha1.ObjectMeta{Name: name},
		Spec: v1alpha1.CompatibilityReviewSpec{
			Hypervisor: h.Name(),
			DiskFormat: f.Name(),
			Subject:    subject,
		},
	}

	switch {
	case f == catalog.Unknown:
		r.Status.Reason = v1alpha1.ReasonUnknownFormat
		r.Status.Message = "disk format could not be determined"
	case h.IsCompatible(f):
		r.Status.Compatible = true
		r.Status.Reason = v1alpha1.ReasonCompatible
	default:
		r.Status.Reason = v1alpha1.ReasonIncompatible
		r.Status.Message = fmt.Sprintf("%s accepts %v", h.FriendlyName(), formatNames(h.CompatibleFormats()))
	}

	return r
}

// NewNetworkInterface creates a NIC for h with a fresh UID and creation time.
// The MAC address is drawn from src following the platform's address policy.
func NewNetworkInterface(name string, h catalog.Hypervisor, src macaddr.Source) (*v1alpha1.NetworkInterface, error) {
	mac := macaddr.Generate(h, src)
	if mac == "" {
		return nil, fmt.Errorf("no MAC address policy for hypervisor %s", h)
	}

	return &v1alpha1.NetworkInterface{
		TypeMeta: v1alpha1.NewTypeMeta(v1alpha1.NetworkInterfaceKind),
		ObjectMeta: v1alpha1.ObjectMeta{
			Name:              name,
			UID:               uuid.New().String(),
			CreationTimestamp: v1alpha1.Time{Time: time.Now()},
		},
		Spec: v1alpha1.NetworkInterfaceSpec{
			Hypervisor: h.Name(),
			MACAddress: mac,
		},
	}, nil
}
