package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jbweber/hvcompat/api/v1alpha1"
	"github.com/jbweber/hvcompat/internal/catalog"
	"github.com/jbweber/hvcompat/internal/libvirt"
	"github.com/jbweber/hvcompat/internal/macaddr"
	"github.com/jbweber/hvcompat/internal/output"
	"github.com/jbweber/hvcompat/internal/resource"
)

// source returns a seeded generator when mac.seed is set.
func (a *app) source() macaddr.Source {
	if a.cfg.MAC.Seed != 0 {
		a.logger.Debug("using seeded MAC source", "seed", a.cfg.MAC.Seed)
		return macaddr.NewSeededSource(a.cfg.MAC.Seed)
	}
	return macaddr.NewSource()
}

// nicOptions are the flags shared by commands that build NICs.
type nicOptions struct {
	hypervisor string
	bridge     string
	model      string
}

func (o *nicOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.hypervisor, "hypervisor", "", "hypervisor name or id (default from config)")
	cmd.Flags().StringVar(&o.bridge, "bridge", "", "host bridge to attach to")
	cmd.Flags().StringVar(&o.model, "model", "", "NIC model (default depends on the hypervisor)")
}

// buildNICs generates one NIC per name.
func (a *app) buildNICs(o *nicOptions, names []string) ([]*v1alpha1.NetworkInterface, error) {
	h, err := a.hypervisor(o.hypervisor)
	if err != nil {
		return nil, err
	}

	model := o.model
	if model == "" {
		model = libvirt.NICModel(h)
	}

	src := a.source()
	nics := make([]*v1alpha1.NetworkInterface, 0, len(names))
	for _, name := range names {
		nic, err := resource.NewNetworkInterface(name, h, src)
		if err != nil {
			return nil, err
		}
		nic.Spec.Bridge = o.bridge
		nic.Spec.Model = model
		a.logger.Debug("generated NIC", "name", name, "mac", nic.Spec.MACAddress)
		nics = append(nics, nic)
	}
	return nics, nil
}

func newMACCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mac",
		Short: "Generate and check vendor-prefixed MAC addresses",
	}

	var opts nicOptions
	var count int
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate NIC MAC addresses for a hypervisor",
		Long: `Generate MAC addresses using the hypervisor vendor's prefix.

Addresses are random and not checked for uniqueness. Set mac.seed in the config
(or HVCAT_MAC_SEED) for reproducible output.

Example:
  hvcat mac generate --hypervisor KVM --count 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			names := make([]string, count)
			for i := range names {
				names[i] = fmt.Sprintf("eth%d", i)
			}

			nics, err := a.buildNICs(&opts, names)
			if err != nil {
				return err
			}
			return a.render(cmd, func(f output.Formatter) (string, error) {
				return f.FormatInterfaces(nics)
			})
		},
	}
	opts.register(generate)
	generate.Flags().IntVarP(&count, "count", "n", 1, "number of addresses")
	cmd.AddCommand(generate)

	var checkHV string
	check := &cobra.Command{
		Use:   "check <address>",
		Short: "Report which hypervisor policies an address satisfies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := args[0]

			candidates := catalog.Hypervisors()
			if checkHV != "" {
				h, err := parseHypervisor(checkHV)
				if err != nil {
					return err
				}
				candidates = []catalog.Hypervisor{h}
			}

			var matched []string
			for _, h := range candidates {
				if p, ok := macaddr.PolicyFor(h); ok && p.Matches(addr) {
					matched = append(matched, h.Name())
				}
			}
			if len(matched) == 0 {
				return fmt.Errorf("%s does not match any hypervisor address policy", addr)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(matched, "\n"))
			return err
		},
	}
	check.Flags().StringVar(&checkHV, "hypervisor", "", "only check this hypervisor's policy")
	cmd.AddCommand(check)

	return cmd
}

func newNICCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nic",
		Short: "Render libvirt network interface definitions",
	}

	var opts nicOptions
	xmlCmd := &cobra.Command{
		Use:   "xml [name]",
		Short: "Print a libvirt <interface> element with a generated MAC",
		Long: `Print a libvirt <interface> element bridged to --bridge with a MAC address
drawn from the hypervisor's vendor prefix.

Example:
  hvcat nic xml --hypervisor KVM --bridge br0 | virsh attach-device myvm /dev/stdin --config`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.bridge == "" {
				return fmt.Errorf("--bridge is required")
			}
			name := "eth0"
			if len(args) == 1 {
				name = args[0]
			}

			nics, err := a.buildNICs(&opts, []string{name})
			if err != nil {
				return err
			}

			xml, err := libvirt.GenerateInterfaceXML(nics[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), xml)
			return err
		},
	}
	opts.register(xmlCmd)
	cmd.AddCommand(xmlCmd)

	return cmd
}

func newDiskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disk",
		Short: "Render libvirt disk definitions",
	}

	var hv, format, dev, bus string
	xmlCmd := &cobra.Command{
		Use:   "xml <pool> <volume>",
		Short: "Print a libvirt <disk> element for a pool volume",
		Long: `Print a libvirt <disk> element for a pool volume. The disk format is checked
against the hypervisor first; incompatible formats produce no XML.

Example:
  hvcat disk xml default data.qcow2 --hypervisor KVM --format QCOW2_SPARSE --dev vdb`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.hypervisor(hv)
			if err != nil {
				return err
			}
			f, err := parseDiskFormat(format)
			if err != nil {
				return err
			}

			xml, err := libvirt.GenerateDiskXML(h, libvirt.DiskSpec{
				Pool:   args[0],
				Volume: args[1],
				Format: f,
				Dev:    dev,
				Bus:    bus,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), xml)
			return err
		},
	}
	xmlCmd.Flags().StringVar(&hv, "hypervisor", "", "hypervisor name or id (default from config)")
	xmlCmd.Flags().StringVar(&format, "format", "", "catalog disk format of the volume")
	xmlCmd.Flags().StringVar(&dev, "dev", "vdb", "target device")
	xmlCmd.Flags().StringVar(&bus, "bus", "virtio", "target bus")
	_ = xmlCmd.MarkFlagRequired("format")
	cmd.AddCommand(xmlCmd)

	return cmd
}
