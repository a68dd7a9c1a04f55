package libvirt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/digitalocean/go-libvirt"
	"github.com/digitalocean/go-libvirt/socket/dialers"

	"github.com/jbweber/hvcompat/internal/catalog"
)

const (
	// DefaultSocket is the local qemu:///system socket.
	DefaultSocket = "/var/run/libvirt/libvirt-sock"
	// DefaultTimeout bounds the initial dial.
	DefaultTimeout = 5 * time.Second
)

// Client wraps a go-libvirt connection to a hypervisor host.
type Client struct {
	libvirt *libvirt.Libvirt
}

// Connect establishes a connection to the local libvirt daemon.
// It returns a Client that must be closed via Close() when done.
//
// If socketPath is empty, defaults to DefaultSocket.
// If timeout is zero, defaults to DefaultTimeout.
func Connect(socketPath string, timeout time.Duration) (*Client, error) {
	if socketPath == "" {
		socketPath = DefaultSocket
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	dialer := dialers.NewLocal(
		dialers.WithSocket(socketPath),
		dialers.WithLocalTimeout(timeout),
	)

	l := libvirt.NewWithDialer(dialer)
	if err := l.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to libvirt at %s: %w", socketPath, err)
	}

	return &Client{libvirt: l}, nil
}

// ConnectWithContext establishes a connection with context support for cancellation.
func ConnectWithContext(ctx context.Context, socketPath string, timeout time.Duration) (*Client, error) {
	type result struct {
		client *Client
		err    error
	}
	resultCh := make(chan result, 1)

	go func() {
		c, err := Connect(socketPath, timeout)
		resultCh <- result{client: c, err: err}
	}()

	select {
	case <-ctx.Done():
		// Close a connection that completes after we gave up on it.
		go func() {
			if res := <-resultCh; res.client != nil {
				_ = res.client.Close()
			}
		}()
		return nil, fmt.Errorf("connection cancelled: %w", ctx.Err())
	case res := <-resultCh:
		return res.client, res.err
	}
}

// Close closes the libvirt connection and releases resources.
// It is safe to call Close multiple times.
func (c *Client) Close() error {
	if c.libvirt == nil {
		return nil
	}

	l := c.libvirt
	c.libvirt = nil
	if err := l.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect from libvirt: %w", err)
	}

	return nil
}

// Libvirt returns the underlying go-libvirt client for direct API access.
func (c *Client) Libvirt() *libvirt.Libvirt {
	return c.libvirt
}

// Ping verifies the connection is still alive by calling a simple libvirt API.
func (c *Client) Ping() error {
	if c.libvirt == nil {
		return fmt.Errorf("client not connected")
	}

	if _, err := c.libvirt.ConnectGetLibVersion(); err != nil {
		return fmt.Errorf("libvirt connection is dead: %w", err)
	}

	return nil
}

// hostInfoClient is the subset of *libvirt.Libvirt used to describe a host.
type hostInfoClient interface {
	ConnectGetType() (string, error)
	ConnectGetLibVersion() (uint64, error)
	ConnectGetHostname() (string, error)
	ConnectGetUri() (string, error)
}

// HostInfo describes the hypervisor host behind a libvirt connection.
type HostInfo struct {
	Hostname   string
	URI        string
	Driver     string             // libvirt driver name as reported, e.g. "QEMU"
	LibVersion string             // e.g. "10.6.0"
	Hypervisor catalog.Hypervisor // zero when the driver has no catalog entry
}

// driverHypervisors maps libvirt driver names (virConnectGetType) to catalog
// platforms. Keys are upper-cased.
var driverHypervisors = map[string]catalog.Hypervisor{
	"QEMU":    catalog.KVM,
	"KVM":     catalog.KVM,
	"XEN":     catalog.Xen3,
	"LIBXL":   catalog.Xen3,
	"VBOX":    catalog.VBox,
	"ESX":     catalog.VMX04,
	"HYPER-V": catalog.HyperV301,
	"XENAPI":  catalog.XenServer,
}

// HypervisorForDriver returns the catalog platform for a libvirt driver name.
func HypervisorForDriver(driver string) (catalog.Hypervisor, bool) {
	h, ok := driverHypervisors[strings.ToUpper(driver)]
	return h, ok
}

// DescribeHost queries the connected host and maps its driver to a catalog
// hypervisor.
func DescribeHost(client hostInfoClient) (*HostInfo, error) {
	driver, err := client.ConnectGetType()
	if err != nil {
		return nil, fmt.Errorf("failed to get driver type: %w", err)
	}

	version, err := client.ConnectGetLibVersion()
	if err != nil {
		return nil, fmt.Errorf("failed to get libvirt version: %w", err)
	}

	hostname, err := client.ConnectGetHostname()
	if err != nil {
		return nil, fmt.Errorf("failed to get hostname: %w", err)
	}

	uri, err := client.ConnectGetUri()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection URI: %w", err)
	}

	info := &HostInfo{
		Hostname:   hostname,
		URI:        uri,
		Driver:     driver,
		LibVersion: FormatVersion(version),
	}
	if h, ok := HypervisorForDriver(driver); ok {
		info.Hypervisor = h
	}

	return info, nil
}

// FormatVersion renders libvirt's packed version (e.g. 8006000) as "8.6.0".
func FormatVersion(v uint64) string {
	major := v / 1000000
	minor := (v % 1000000) / 1000
	patch := v % 1000
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}
