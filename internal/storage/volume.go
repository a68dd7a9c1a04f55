package storage

import (
	"context"
	"fmt"

	"github.com/digitalocean/go-libvirt"
	libvirtxml "libvirt.org/go/libvirtxml"

	hvlibvirt "github.com/jbweber/hvcompat/internal/libvirt"
)

// ListVolumes lists all volumes in the specified pool with their formats.
func (m *Manager) ListVolumes(ctx context.Context, poolName string) ([]VolumeInfo, error) {
	pool, err := m.client.StoragePoolLookupByName(poolName)
	if err != nil {
		return nil, fmt.Errorf("pool not found: %w", err)
	}

	volumes, _, err := m.client.StoragePoolListAllVolumes(pool, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list volumes: %w", err)
	}

	volumeInfos := make([]VolumeInfo, 0, len(volumes))
	for _, vol := range volumes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := m.describeVolume(poolName, vol)
		if err != nil {
			return nil, err
		}
		volumeInfos = append(volumeInfos, *info)
	}

	return volumeInfos, nil
}

func (m *Manager) describeVolume(poolName string, vol libvirt.StorageVol) (*VolumeInfo, error) {
	xmlDesc, err := m.client.StorageVolGetXMLDesc(vol, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get XML for volume %s: %w", vol.Name, err)
	}

	var volDef libvirtxml.StorageVolume
	if err := volDef.Unmarshal(xmlDesc); err != nil {
		return nil, fmt.Errorf("failed to parse XML for volume %s: %w", vol.Name, err)
	}

	info := &VolumeInfo{
		Name: vol.Name,
		Pool: poolName,
	}
	if volDef.Capacity != nil {
		info.Capacity = volDef.Capacity.Value
	}
	if volDef.Allocation != nil {
		info.Allocation = volDef.Allocation.Value
	}
	if volDef.Target != nil {
		info.Path = volDef.Target.Path
		if volDef.Target.Format != nil {
			info.Format = volDef.Target.Format.Type
		}
	}
	if info.Path == "" {
		if path, err := m.client.StorageVolGetPath(vol); err == nil {
			info.Path = path
		}
	}

	info.DiskFormat, _ = hvlibvirt.DiskFormatForVolume(info.Format)

	return info, nil
}
