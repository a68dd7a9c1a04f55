package libvirt

import (
	"fmt"
	"strings"

	"libvirt.org/go/libvirtxml"

	"github.com/jbweber/hvcompat/api/v1alpha1"
	"github.com/jbweber/hvcompat/internal/catalog"
)

// nicModels is the emulated NIC model libvirt uses by default on each platform.
var nicModels = map[catalog.Hypervisor]string{
	catalog.KVM:   "virtio",
	catalog.Xen3:  "netfront",
	catalog.VBox:  "82540EM",
	catalog.VMX04: "vmxnet3",
}

// NICModel returns the default NIC model for h, or "" to let libvirt decide.
func NICModel(h catalog.Hypervisor) string {
	return nicModels[h]
}

// InterfaceAlias returns the user alias libvirt assigns to a NIC. User
// aliases must start with "ua-".
func InterfaceAlias(nic *v1alpha1.NetworkInterface) string {
	if nic.UID == "" {
		return ""
	}
	return "ua-" + strings.ReplaceAll(nic.UID, "-", "")
}

// GenerateInterfaceXML renders a libvirt <interface> element for nic.
func GenerateInterfaceXML(nic *v1alpha1.NetworkInterface) (string, error) {
	if nic.Spec.MACAddress == "" {
		return "", fmt.Errorf("interface %s has no MAC address", nic.Name)
	}
	if nic.Spec.Bridge == "" {
		return "", fmt.Errorf("interface %s has no bridge", nic.Name)
	}

	mac, err := libvirtMAC(nic.Spec.MACAddress)
	if err != nil {
		return "", err
	}

	iface := &libvirtxml.DomainInterface{
		MAC: &libvirtxml.DomainInterfaceMAC{
			Address: mac,
		},
		Source: &libvirtxml.DomainInterfaceSource{
			Bridge: &libvirtxml.DomainInterfaceSourceBridge{
				Bridge: nic.Spec.Bridge,
			},
		},
	}
	if nic.Spec.Model != "" {
		iface.Model = &libvirtxml.DomainInterfaceModel{Type: nic.Spec.Model}
	}
	if alias := InterfaceAlias(nic); alias != "" {
		iface.Alias = &libvirtxml.DomainAlias{Name: alias}
	}

	xml, err := iface.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to marshal interface XML: %w", err)
	}

	return xml, nil
}

// libvirtMAC converts separator-less addresses (VirtualBox, Hyper-V style)
// to the colon form libvirt requires.
func libvirtMAC(addr string) (string, error) {
	if strings.Contains(addr, ":") {
		return strings.ToLower(addr), nil
	}
	if len(addr) != 12 {
		return "", fmt.Errorf("invalid MAC address: %s", addr)
	}

	parts := make([]string, 0, 6)
	for i := 0; i < len(addr); i += 2 {
		parts = append(parts, addr[i:i+2])
	}
	return strings.ToLower(strings.Join(parts, ":")), nil
}

// DiskSpec names a pool volume to attach to a domain.
type DiskSpec struct {
	Pool   string
	Volume string
	Format catalog.DiskFormat
	Dev    string // target device, e.g. "vdb"
	Bus    string // defaults to "virtio"
}

// GenerateDiskXML renders a libvirt <disk> element for a volume on h.
// The compatibility check runs first: an incompatible format is rejected
// without producing XML.
func GenerateDiskXML(h catalog.Hypervisor, spec DiskSpec) (string, error) {
	if err := catalog.CheckCompatible(h, spec.Format); err != nil {
		return "", err
	}

	driverType := DriverType(spec.Format)
	if driverType == "" {
		return "", fmt.Errorf("no libvirt driver type for %s", spec.Format)
	}

	bus := spec.Bus
	if bus == "" {
		bus = "virtio"
	}

	disk := &libvirtxml.DomainDisk{
		Device: "disk",
		Driver: &libvirtxml.DomainDiskDriver{
			Name: "qemu",
			Type: driverType,
		},
		Source: &libvirtxml.DomainDiskSource{
			Volume: &libvirtxml.DomainDiskSourceVolume{
				Pool:   spec.Pool,
				Volume: spec.Volume,
			},
		},
		Target: &libvirtxml.DomainDiskTarget{
			Dev: spec.Dev,
			Bus: bus,
		},
	}

	xml, err := disk.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to marshal disk XML: %w", err)
	}

	return xml, nil
}
