package storage

import (
	"fmt"

	"github.com/digitalocean/go-libvirt"
)

// mockLibvirtClient is a mock implementation of LibvirtClient for testing.
type mockLibvirtClient struct {
	pools   map[string]*mockPool
	volumes map[string]map[string]*mockVolume // pool name -> volume name -> volume

	volXMLErr error
}

type mockPool struct {
	name      string
	uuid      libvirt.UUID
	poolType  string
	path      string
	state     libvirt.StoragePoolState
	capacity  uint64
	allocated uint64
	available uint64
}

type mockVolume struct {
	name     string
	path     string
	format   string
	capacity uint64
	rawXML   string // overrides the generated XML when set
}

func newMockLibvirtClient() *mockLibvirtClient {
	return &mockLibvirtClient{
		pools:   make(map[string]*mockPool),
		volumes: make(map[string]map[string]*mockVolume),
	}
}

// addPool registers a running dir pool.
func (m *mockLibvirtClient) addPool(name string) *mockPool {
	p := &mockPool{
		name:      name,
		uuid:      libvirt.UUID{0x6f, 0x1c, 0x2a, 0x10, 0x5e, 0x4b, 0x4c, 0x3d, 0x9a, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, byte(len(m.pools))},
		poolType:  "dir",
		path:      "/var/lib/libvirt/images/" + name,
		state:     libvirt.StoragePoolRunning,
		capacity:  1024 * 1024 * 1024 * 1024, // 1 TB
		available: 1024 * 1024 * 1024 * 1024,
	}
	m.pools[name] = p
	m.volumes[name] = make(map[string]*mockVolume)
	return p
}

func (m *mockLibvirtClient) addVolume(pool, name, format string) *mockVolume {
	v := &mockVolume{
		name:     name,
		path:     m.pools[pool].path + "/" + name,
		format:   format,
		capacity: 20 * 1024 * 1024 * 1024,
	}
	m.volumes[pool][name] = v
	return v
}

func (m *mockLibvirtClient) StoragePoolLookupByName(name string) (libvirt.StoragePool, error) {
	pool, ok := m.pools[name]
	if !ok {
		return libvirt.StoragePool{}, fmt.Errorf("storage pool not found: %s", name)
	}
	return libvirt.StoragePool{
		Name: pool.name,
		UUID: pool.uuid,
	}, nil
}

func (m *mockLibvirtClient) StoragePoolGetInfo(pool libvirt.StoragePool) (rState uint8, rCapacity uint64, rAllocation uint64, rAvailable uint64, err error) {
	p, ok := m.pools[pool.Name]
	if !ok {
		return 0, 0, 0, 0, fmt.Errorf("storage pool not found: %s", pool.Name)
	}
	return uint8(p.state), p.capacity, p.allocated, p.available, nil
}

func (m *mockLibvirtClient) StoragePoolGetXMLDesc(pool libvirt.StoragePool, flags libvirt.StorageXMLFlags) (string, error) {
	p, ok := m.pools[pool.Name]
	if !ok {
		return "", fmt.Errorf("storage pool not found: %s", pool.Name)
	}
	return fmt.Sprintf(`<pool type=%q><name>%s</name><target><path>%s</path></target></pool>`,
		p.poolType, p.name, p.path), nil
}

func (m *mockLibvirtClient) StoragePoolListAllVolumes(pool libvirt.StoragePool, needResults int32, flags uint32) ([]libvirt.StorageVol, uint32, error) {
	vols, ok := m.volumes[pool.Name]
	if !ok {
		return nil, 0, fmt.Errorf("storage pool not found: %s", pool.Name)
	}

	var result []libvirt.StorageVol
	for name := range vols {
		result = append(result, libvirt.StorageVol{
			Pool: pool.Name,
			Name: name,
		})
	}

	return result, uint32(len(result)), nil
}

func (m *mockLibvirtClient) StorageVolGetXMLDesc(vol libvirt.StorageVol, flags uint32) (string, error) {
	if m.volXMLErr != nil {
		return "", m.volXMLErr
	}

	v, err := m.lookupVolume(vol)
	if err != nil {
		return "", err
	}
	if v.rawXML != "" {
		return v.rawXML, nil
	}

	return fmt.Sprintf(`<volume type="file">
  <name>%s</name>
  <capacity unit="bytes">%d</capacity>
  <allocation unit="bytes">0</allocation>
  <target>
    <path>%s</path>
    <format type=%q/>
  </target>
</volume>`, v.name, v.capacity, v.path, v.format), nil
}

func (m *mockLibvirtClient) StorageVolGetPath(vol libvirt.StorageVol) (string, error) {
	v, err := m.lookupVolume(vol)
	if err != nil {
		return "", err
	}
	return v.path, nil
}

func (m *mockLibvirtClient) ConnectListAllStoragePools(needResults int32, flags libvirt.ConnectListAllStoragePoolsFlags) ([]libvirt.StoragePool, uint32, error) {
	var result []libvirt.StoragePool
	for name, pool := range m.pools {
		result = append(result, libvirt.StoragePool{
			Name: name,
			UUID: pool.uuid,
		})
	}
	return result, uint32(len(result)), nil
}

func (m *mockLibvirtClient) lookupVolume(vol libvirt.StorageVol) (*mockVolume, error) {
	vols, ok := m.volumes[vol.Pool]
	if !ok {
		return nil, fmt.Errorf("storage pool not found: %s", vol.Pool)
	}

	v, ok := vols[vol.Name]
	if !ok {
		return nil, fmt.Errorf("storage volume not found: %s", vol.Name)
	}
	return v, nil
}
