package main

import (
	"github.com/spf13/cobra"

	"github.com/jbweber/hvcompat/api/v1alpha1"
	"github.com/jbweber/hvcompat/internal/catalog"
	"github.com/jbweber/hvcompat/internal/output"
	"github.com/jbweber/hvcompat/internal/resource"
)

func newFormatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "Inspect the disk format catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every disk format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var profiles []*v1alpha1.DiskFormatProfile
			for _, f := range catalog.DiskFormats() {
				profiles = append(profiles, resource.NewDiskFormatProfile(f))
			}
			return a.render(cmd, func(f output.Formatter) (string, error) {
				return f.FormatDiskFormats(profiles)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id|name|uri>...",
		Short: "Show disk formats by id, name, or URI",
		Long: `Show one or more disk formats. Each argument may be a numeric catalog id,
a catalog name such as QCOW2_SPARSE, or the format's URI.

Example:
  hvcat formats get 11 VHD_FLAT http://raw`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var profiles []*v1alpha1.DiskFormatProfile
			for _, arg := range args {
				f, err := parseDiskFormat(arg)
				if err != nil {
					return err
				}
				profiles = append(profiles, resource.NewDiskFormatProfile(f))
			}
			return a.render(cmd, func(f output.Formatter) (string, error) {
				return f.FormatDiskFormats(profiles)
			})
		},
	})

	return cmd
}

func newHypervisorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hypervisors",
		Aliases: []string{"hv"},
		Short:   "Inspect the hypervisor catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every hypervisor platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var profiles []*v1alpha1.HypervisorProfile
			for _, h := range catalog.Hypervisors() {
				profiles = append(profiles, resource.NewHypervisorProfile(h))
			}
			return a.render(cmd, func(f output.Formatter) (string, error) {
				return f.FormatHypervisors(profiles)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id|name>...",
		Short: "Show hypervisors by id or name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var profiles []*v1alpha1.HypervisorProfile
			for _, arg := range args {
				h, err := parseHypervisor(arg)
				if err != nil {
					return err
				}
				profiles = append(profiles, resource.NewHypervisorProfile(h))
			}
			return a.render(cmd, func(f output.Formatter) (string, error) {
				return f.FormatHypervisors(profiles)
			})
		},
	})

	return cmd
}
