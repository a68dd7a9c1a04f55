package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jbweber/hvcompat/internal/catalog"
	"github.com/jbweber/hvcompat/internal/config"
	"github.com/jbweber/hvcompat/internal/libvirt"
	"github.com/jbweber/hvcompat/internal/logging"
	"github.com/jbweber/hvcompat/internal/output"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	configFile string
	outputFlag string
	logLevel   string
	noHeaders  bool
	list       bool

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logging.Discard()}

	root := &cobra.Command{
		Use:   "hvcat",
		Short: "hvcat - hypervisor and disk format compatibility catalog",
		Long: `hvcat answers which virtual disk formats each hypervisor platform can import,
generates vendor-prefixed NIC MAC addresses, and audits libvirt storage pools
against the catalog.`,
		Version:           fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/hvcat/config.yaml)")
	root.PersistentFlags().StringVarP(&a.outputFlag, "output", "o", "", "output format: table, yaml, json")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.noHeaders, "no-headers", false, "omit the header row in table output")
	root.PersistentFlags().BoolVar(&a.list, "list", false, "wrap JSON output in a List object")

	root.AddCommand(newFormatsCmd(a))
	root.AddCommand(newHypervisorsCmd(a))
	root.AddCommand(newCompatCmd(a))
	root.AddCommand(newLegacyCmd(a))
	root.AddCommand(newMACCmd(a))
	root.AddCommand(newNICCmd(a))
	root.AddCommand(newDiskCmd(a))
	root.AddCommand(newImageCmd(a))
	root.AddCommand(newPoolCmd(a))
	root.AddCommand(newHostCmd(a))

	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	overrides := map[string]any{}
	if a.outputFlag != "" {
		overrides["output"] = a.outputFlag
	}
	if a.logLevel != "" {
		overrides["log_level"] = a.logLevel
	}

	cfg, path, err := config.Load(config.LoadOptions{
		ConfigFile: a.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}

	logger, err := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// render formats resources with the configured formatter and writes them to
// the command's output.
func (a *app) render(cmd *cobra.Command, format func(output.Formatter) (string, error)) error {
	f, err := output.NewFormatter(output.Options{
		Format:    output.Format(a.cfg.Output),
		NoHeaders: a.noHeaders,
		List:      a.list,
	})
	if err != nil {
		return err
	}

	s, err := format(f)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), s)
	return err
}

// hypervisor resolves an explicit --hypervisor value, falling back to the
// configured default.
func (a *app) hypervisor(flag string) (catalog.Hypervisor, error) {
	if flag != "" {
		return parseHypervisor(flag)
	}
	if h, ok := a.cfg.Hypervisor(); ok {
		return h, nil
	}
	return 0, fmt.Errorf("no hypervisor given: pass --hypervisor or set default_hypervisor")
}

// connect opens the configured libvirt socket. The caller closes the client.
func (a *app) connect(ctx context.Context) (*libvirt.Client, error) {
	a.logger.Debug("connecting to libvirt", "socket", a.cfg.Libvirt.Socket, "timeout", a.cfg.Libvirt.Timeout)

	client, err := libvirt.ConnectWithContext(ctx, a.cfg.Libvirt.Socket, a.cfg.Libvirt.Timeout)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(); err != nil {
		a.closeClient(client)
		return nil, err
	}
	return client, nil
}

func (a *app) closeClient(client *libvirt.Client) {
	if err := client.Close(); err != nil {
		a.logger.Warn("failed to close libvirt connection", "err", err)
	}
}

// parseHypervisor accepts a catalog id or a case-insensitive name.
func parseHypervisor(s string) (catalog.Hypervisor, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return catalog.HypervisorByID(n)
	}
	return catalog.HypervisorByName(s)
}

// parseDiskFormat accepts a catalog id, a URI, or an exact name.
func parseDiskFormat(s string) (catalog.DiskFormat, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return catalog.DiskFormatByID(n)
	}
	if strings.Contains(s, "://") {
		f, ok := catalog.DiskFormatByURI(s)
		if !ok {
			return 0, fmt.Errorf("%w: no disk format with URI %q", catalog.ErrUnknownVariant, s)
		}
		return f, nil
	}
	return catalog.DiskFormatByName(s)
}
