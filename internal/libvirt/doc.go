// Package libvirt connects the compatibility catalog to a libvirt host.
//
// It wraps github.com/digitalocean/go-libvirt for connection management and
// uses libvirt.org/go/libvirtxml to render device XML:
//   - Connect, Ping and Close against the local daemon socket
//   - DescribeHost maps the connected driver to a catalog hypervisor
//   - DiskFormatForVolume and DriverType translate between libvirt format
//     names and catalog disk formats
//   - GenerateInterfaceXML and GenerateDiskXML render <interface> and <disk>
//     elements; disks are checked for compatibility before rendering
//
// Probing a host:
//
//	client, err := libvirt.Connect("", 0)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	info, err := libvirt.DescribeHost(client.Libvirt())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(info.Hypervisor.FriendlyName())
//
// Consumer-Side Interfaces:
//
// Functions that talk to libvirt accept a small interface naming only the
// calls they make (see hostInfoClient here and storage.LibvirtClient).
// *libvirt.Libvirt satisfies them implicitly, so tests substitute mocks.
package libvirt
