package libvirt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jbweber/hvcompat/internal/catalog"
)

// TestConnect tests basic connection functionality.
// This is an integration test that requires libvirt to be running.
func TestConnect(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c, err := Connect("", 0)
	if err != nil {
		t.Skipf("libvirt not available: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	}()

	if err := c.Ping(); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

// TestConnect_InvalidSocket tests connection failure with invalid socket.
func TestConnect_InvalidSocket(t *testing.T) {
	_, err := Connect("/nonexistent/socket", 100*time.Millisecond)
	if err == nil {
		t.Fatal("expected error connecting to nonexistent socket, got nil")
	}
}

// TestConnectWithContext_Cancellation tests context cancellation.
func TestConnectWithContext_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	// Cancel immediately
	cancel()

	_, err := ConnectWithContext(ctx, "", 0)
	if err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
}

// TestConnectWithContext_Success tests successful connection with context.
func TestConnectWithContext_Success(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := ConnectWithContext(ctx, "", 0)
	if err != nil {
		t.Skipf("libvirt not available: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	}()

	if err := c.Ping(); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

// TestClose_Idempotent tests that Close can be called multiple times safely.
func TestClose_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c, err := Connect("", 0)
	if err != nil {
		t.Skipf("libvirt not available: %v", err)
	}

	// Close multiple times
	if err := c.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

// TestPing_Disconnected tests Ping on a disconnected client.
func TestPing_Disconnected(t *testing.T) {
	c := &Client{libvirt: nil}

	err := c.Ping()
	if err == nil {
		t.Fatal("expected error from Ping on nil client, got nil")
	}
}

// mockHostInfo is a mock implementation of hostInfoClient.
type mockHostInfo struct {
	driver   string
	version  uint64
	hostname string
	uri      string
	err      error
}

func (m *mockHostInfo) ConnectGetType() (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.driver, nil
}

func (m *mockHostInfo) ConnectGetLibVersion() (uint64, error) { return m.version, nil }
func (m *mockHostInfo) ConnectGetHostname() (string, error)   { return m.hostname, nil }
func (m *mockHostInfo) ConnectGetUri() (string, error)        { return m.uri, nil }

func TestDescribeHost(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		want   catalog.Hypervisor
	}{
		{"qemu", "QEMU", catalog.KVM},
		{"libxl", "LIBXL", catalog.Xen3},
		{"esx", "ESX", catalog.VMX04},
		{"hyperv", "Hyper-V", catalog.HyperV301},
		{"xenapi", "XenAPI", catalog.XenServer},
		{"bhyve has no catalog entry", "BHYVE", catalog.Hypervisor(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockHostInfo{
				driver:   tt.driver,
				version:  10006000,
				hostname: "hv01.example.com",
				uri:      "qemu:///system",
			}

			info, err := DescribeHost(client)
			if err != nil {
				t.Fatalf("DescribeHost() error = %v", err)
			}
			if info.Hypervisor != tt.want {
				t.Errorf("Hypervisor = %v, want %v", info.Hypervisor, tt.want)
			}
			if info.Driver != tt.driver {
				t.Errorf("Driver = %q, want %q", info.Driver, tt.driver)
			}
			if info.LibVersion != "10.6.0" {
				t.Errorf("LibVersion = %q, want 10.6.0", info.LibVersion)
			}
			if info.Hostname != "hv01.example.com" {
				t.Errorf("Hostname = %q", info.Hostname)
			}
		})
	}
}

func TestDescribeHost_Error(t *testing.T) {
	wantErr := errors.New("rpc failed")
	_, err := DescribeHost(&mockHostInfo{err: wantErr})
	if !errors.Is(err, wantErr) {
		t.Fatalf("DescribeHost() error = %v, want %v", err, wantErr)
	}
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{8006000, "8.6.0"},
		{10006000, "10.6.0"},
		{9000012, "9.0.12"},
		{0, "0.0.0"},
	}
	for _, tt := range tests {
		if got := FormatVersion(tt.in); got != tt.want {
			t.Errorf("FormatVersion(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
