package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jbweber/hvcompat/api/v1alpha1"
	"github.com/jbweber/hvcompat/internal/catalog"
	"github.com/jbweber/hvcompat/internal/loader"
	"github.com/jbweber/hvcompat/internal/output"
	"github.com/jbweber/hvcompat/internal/resource"
)

func newCompatCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compat",
		Short: "Check hypervisor and disk format compatibility",
	}

	var hv, file string
	var strict bool

	check := &cobra.Command{
		Use:   "check <format>...",
		Short: "Check whether a hypervisor can import disk formats",
		Long: `Check whether a hypervisor can import each given disk format, or answer
the CompatibilityReview requests in a YAML file.

With --strict the command fails when any format is rejected.

Example:
  hvcat compat check --hypervisor HYPERV_301 VHD_SPARSE QCOW2_SPARSE
  hvcat compat check -f reviews.yaml --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var reviews []*v1alpha1.CompatibilityReview
			switch {
			case file != "" && len(args) > 0:
				return fmt.Errorf("give disk formats or --filename, not both")
			case file != "":
				loaded, err := loader.LoadFromFile(file)
				if err != nil {
					return err
				}
				a.logger.Debug("loaded review requests", "file", file, "count", len(loaded))
				reviews = loaded
			case len(args) == 0:
				return fmt.Errorf("give at least one disk format or --filename")
			default:
				h, err := a.hypervisor(hv)
				if err != nil {
					return err
				}
				for _, arg := range args {
					f, err := parseDiskFormat(arg)
					if err != nil {
						return err
					}
					reviews = append(reviews, resource.NewCompatibilityReview(h, f, ""))
				}
			}

			if err := a.render(cmd, func(f output.Formatter) (string, error) {
				return f.FormatReviews(reviews)
			}); err != nil {
				return err
			}

			if strict {
				return firstRejection(reviews)
			}
			return nil
		},
	}
	check.Flags().StringVar(&hv, "hypervisor", "", "hypervisor name or id (default from config)")
	check.Flags().StringVarP(&file, "filename", "f", "", "YAML file of CompatibilityReview requests")
	check.Flags().BoolVar(&strict, "strict", false, "fail if any format is incompatible")
	cmd.AddCommand(check)

	cmd.AddCommand(&cobra.Command{
		Use:   "hypervisors <format>",
		Short: "List the hypervisors that accept a disk format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseDiskFormat(args[0])
			if err != nil {
				return err
			}

			var profiles []*v1alpha1.HypervisorProfile
			for _, h := range catalog.CompatibleHypervisors(f) {
				profiles = append(profiles, resource.NewHypervisorProfile(h))
			}
			return a.render(cmd, func(f output.Formatter) (string, error) {
				return f.FormatHypervisors(profiles)
			})
		},
	})

	return cmd
}

// firstRejection returns an ErrIncompatible error for the first review that
// was not accepted.
func firstRejection(reviews []*v1alpha1.CompatibilityReview) error {
	for _, r := range reviews {
		if !r.Status.Compatible {
			return fmt.Errorf("%w: %s: %s", catalog.ErrIncompatible, r.Name, r.Status.Reason)
		}
	}
	return nil
}

func newLegacyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legacy",
		Short: "Translate hypervisors to and from legacy numeric ids",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "to-int <name>",
		Short: "Print the legacy id for a hypervisor name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, ok := catalog.LegacyID(args[0])
			if !ok {
				return fmt.Errorf("no legacy id for %q", args[0])
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "from-int <id>",
		Short: "Print the hypervisor name for a legacy id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid legacy id %q: %w", args[0], err)
			}
			h, ok := catalog.HypervisorFromLegacyID(n)
			if !ok {
				return fmt.Errorf("no hypervisor for legacy id %d", n)
			}
			a.logger.Debug("resolved legacy id", "id", n, "hypervisor", h.Name())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), h.Name())
			return err
		},
	})

	return cmd
}
