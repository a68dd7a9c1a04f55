package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/hvcompat/internal/catalog"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, path, err := Load(LoadOptions{ConfigDir: t.TempDir()})
	require.NoError(t, err)

	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	_, ok := cfg.Hypervisor()
	assert.False(t, ok)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
output: yaml
log_level: debug
default_hypervisor: kvm
libvirt:
  socket: /run/libvirt/virtqemud-sock
  timeout: 10s
mac:
  seed: 42
`)

	cfg, path, err := Load(LoadOptions{ConfigDir: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ConfigFileName), path)
	assert.Equal(t, "yaml", cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/run/libvirt/virtqemud-sock", cfg.Libvirt.Socket)
	assert.Equal(t, 10*time.Second, cfg.Libvirt.Timeout)
	assert.Equal(t, uint64(42), cfg.MAC.Seed)

	h, ok := cfg.Hypervisor()
	require.True(t, ok)
	assert.Equal(t, catalog.KVM, h)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "output: yaml\n")

	t.Setenv("HVCAT_OUTPUT", "json")
	t.Setenv("HVCAT_LIBVIRT_TIMEOUT", "2s")

	cfg, _, err := Load(LoadOptions{ConfigDir: dir})
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 2*time.Second, cfg.Libvirt.Timeout)
}

func TestLoad_OverridesWin(t *testing.T) {
	t.Setenv("HVCAT_OUTPUT", "json")

	cfg, _, err := Load(LoadOptions{
		ConfigDir: t.TempDir(),
		Overrides: map[string]any{"output": "table", "log_level": "warn"},
	})
	require.NoError(t, err)

	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "default_hypervisor: VMX_04\n")

	cfg, got, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, path, got)

	h, ok := cfg.Hypervisor()
	require.True(t, ok)
	assert.Equal(t, catalog.VMX04, h)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, _, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestLoad_XDGConfigHome(t *testing.T) {
	xdg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, AppName), 0o755))
	writeConfig(t, filepath.Join(xdg, AppName), "output: json\n")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg, path, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, AppName, ConfigFileName), path)
	assert.Equal(t, "json", cfg.Output)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "bad output",
			mutate:  func(c *Config) { c.Output = "xml" },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "chatty" },
			wantErr: true,
		},
		{
			name:    "unknown hypervisor",
			mutate:  func(c *Config) { c.DefaultHypervisor = "bhyve" },
			wantErr: true,
		},
		{
			name:   "hypervisor case-insensitive",
			mutate: func(c *Config) { c.DefaultHypervisor = "hyperv_301" },
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Libvirt.Timeout = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
