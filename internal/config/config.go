// Package config loads hvcat settings from defaults, an optional YAML file,
// and HVCAT_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/jbweber/hvcompat/internal/catalog"
	"github.com/jbweber/hvcompat/internal/libvirt"
	"github.com/jbweber/hvcompat/internal/output"
)

const (
	// AppName names the config directory.
	AppName = "hvcat"
	// ConfigFileName is the config file name inside the config directory.
	ConfigFileName = "config.yaml"
	// EnvPrefix prefixes every environment override, e.g. HVCAT_LOG_LEVEL.
	EnvPrefix = "HVCAT"
)

// Config is the resolved CLI configuration.
type Config struct {
	Output            string        `mapstructure:"output"`
	LogLevel          string        `mapstructure:"log_level"`
	DefaultHypervisor string        `mapstructure:"default_hypervisor"`
	Libvirt           LibvirtConfig `mapstructure:"libvirt"`
	MAC               MACConfig     `mapstructure:"mac"`
}

// LibvirtConfig configures the connection to the libvirt daemon.
type LibvirtConfig struct {
	Socket  string        `mapstructure:"socket"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MACConfig configures NIC address generation.
type MACConfig struct {
	// Seed makes generated addresses reproducible. Zero draws from crypto/rand.
	Seed uint64 `mapstructure:"seed"`
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFile is an explicit file path. It must exist when set.
	ConfigFile string

	// ConfigDir overrides the directory searched for ConfigFileName.
	ConfigDir string

	// Overrides are applied last, typically from command-line flags.
	Overrides map[string]any
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output:   string(output.FormatTable),
		LogLevel: "info",
		Libvirt: LibvirtConfig{
			Socket:  libvirt.DefaultSocket,
			Timeout: libvirt.DefaultTimeout,
		},
	}
}

// Dir returns $XDG_CONFIG_HOME/hvcat, falling back to ~/.config/hvcat.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName), nil
}

// Load resolves the configuration. It returns the path of the file that was
// read, or "" when only defaults and the environment applied.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("output", defaults.Output)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("default_hypervisor", defaults.DefaultHypervisor)
	v.SetDefault("libvirt.socket", defaults.Libvirt.Socket)
	v.SetDefault("libvirt.timeout", defaults.Libvirt.Timeout)
	v.SetDefault("mac.seed", defaults.MAC.Seed)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := resolveFile(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	for key, val := range opts.Overrides {
		v.Set(key, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, path, nil
}

func resolveFile(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		return opts.ConfigFile, nil
	}

	dir := opts.ConfigDir
	if dir == "" {
		var err error
		if dir, err = Dir(); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat config %s: %w", path, err)
	}
	return path, nil
}

// Validate checks values against the catalog and supported formats.
func (c *Config) Validate() error {
	if err := output.ValidateFormat(c.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.DefaultHypervisor != "" {
		if _, err := catalog.HypervisorByName(c.DefaultHypervisor); err != nil {
			return fmt.Errorf("default_hypervisor: %w", err)
		}
	}
	if c.Libvirt.Timeout <= 0 {
		return fmt.Errorf("libvirt.timeout must be positive, got %s", c.Libvirt.Timeout)
	}
	return nil
}

// Hypervisor returns the configured default hypervisor, if any.
func (c *Config) Hypervisor() (catalog.Hypervisor, bool) {
	if c.DefaultHypervisor == "" {
		return 0, false
	}
	h, err := catalog.HypervisorByName(c.DefaultHypervisor)
	if err != nil {
		return 0, false
	}
	return h, true
}
