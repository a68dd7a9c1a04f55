package storage

import (
	"context"
	"fmt"

	"github.com/jbweber/hvcompat/api/v1alpha1"
	"github.com/jbweber/hvcompat/internal/catalog"
	"github.com/jbweber/hvcompat/internal/resource"
)

// AuditPool reviews every volume of poolName against hypervisor h. One review
// is returned per volume, named "pool/volume". Volumes with a format libvirt
// reports but the catalog cannot place are reviewed as catalog.Unknown.
func (m *Manager) AuditPool(ctx context.Context, poolName string, h catalog.Hypervisor) ([]*v1alpha1.CompatibilityReview, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("%w: hypervisor %d", catalog.ErrUnknownVariant, int(h))
	}

	info, err := m.GetPoolInfo(ctx, poolName)
	if err != nil {
		return nil, err
	}
	if !info.Running() {
		return nil, fmt.Errorf("%w: %s is %s", ErrPoolInactive, poolName, info.State)
	}

	volumes, err := m.ListVolumes(ctx, poolName)
	if err != nil {
		return nil, err
	}

	reviews := make([]*v1alpha1.CompatibilityReview, 0, len(volumes))
	for i := range volumes {
		reviews = append(reviews, ReviewVolume(&volumes[i], h))
	}

	return reviews, nil
}

// AuditAll audits every running pool. Inactive pools are skipped.
func (m *Manager) AuditAll(ctx context.Context, h catalog.Hypervisor) ([]*v1alpha1.CompatibilityReview, error) {
	pools, err := m.ListPools(ctx)
	if err != nil {
		return nil, err
	}

	var reviews []*v1alpha1.CompatibilityReview
	for _, pool := range pools {
		if !pool.Running() {
			continue
		}
		r, err := m.AuditPool(ctx, pool.Name, h)
		if err != nil {
			return nil, fmt.Errorf("failed to audit pool %s: %w", pool.Name, err)
		}
		reviews = append(reviews, r...)
	}

	return reviews, nil
}

// ReviewVolume builds the compatibility review for a single volume.
func ReviewVolume(vol *VolumeInfo, h catalog.Hypervisor) *v1alpha1.CompatibilityReview {
	r := resource.NewCompatibilityReview(h, vol.DiskFormat, vol.Subject())

	r.Annotations = map[string]string{}
	if vol.Format != "" {
		r.Annotations[AnnotationVolumeFormat] = vol.Format
	}
	if vol.Path != "" {
		r.Annotations[AnnotationVolumePath] = vol.Path
	}

	return r
}
