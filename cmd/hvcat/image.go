package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jbweber/hvcompat/api/v1alpha1"
	"github.com/jbweber/hvcompat/internal/catalog"
	"github.com/jbweber/hvcompat/internal/imagefmt"
	"github.com/jbweber/hvcompat/internal/output"
	"github.com/jbweber/hvcompat/internal/resource"
)

func newImageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Inspect disk image files",
	}

	var hv string
	detect := &cobra.Command{
		Use:   "detect <path>...",
		Short: "Detect image formats and check them against hypervisors",
		Long: `Detect the catalog disk format of each image from its header and report
whether a hypervisor can import it. Without --hypervisor (and no configured
default) every hypervisor is checked.

Images whose format requires a file extension (VHD) are rejected when the
extension is missing.

Example:
  hvcat image detect --hypervisor KVM fedora.qcow2 windows.vhd`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := catalog.Hypervisors()
			if hv != "" || a.cfg.DefaultHypervisor != "" {
				h, err := a.hypervisor(hv)
				if err != nil {
					return err
				}
				targets = []catalog.Hypervisor{h}
			}

			var reviews []*v1alpha1.CompatibilityReview
			for _, path := range args {
				r, err := a.reviewImage(path, targets)
				if err != nil {
					return err
				}
				reviews = append(reviews, r...)
			}

			return a.render(cmd, func(f output.Formatter) (string, error) {
				return f.FormatReviews(reviews)
			})
		},
	}
	detect.Flags().StringVar(&hv, "hypervisor", "", "hypervisor name or id (default: all)")
	cmd.AddCommand(detect)

	return cmd
}

// reviewImage checks path against each target. Unrecognized images are
// reviewed as UNKNOWN and a missing required extension makes the review
// incompatible; only I/O failures are returned as errors.
func (a *app) reviewImage(path string, targets []catalog.Hypervisor) ([]*v1alpha1.CompatibilityReview, error) {
	reviews := make([]*v1alpha1.CompatibilityReview, 0, len(targets))
	for _, h := range targets {
		format, err := imagefmt.CheckImport(path, h)
		a.logger.Debug("checked image", "path", path, "hypervisor", h.Name(), "format", format.Name(), "err", err)

		switch {
		case err == nil,
			errors.Is(err, catalog.ErrIncompatible),
			errors.Is(err, imagefmt.ErrUnrecognized):
			reviews = append(reviews, resource.NewCompatibilityReview(h, format, path))
		case errors.Is(err, imagefmt.ErrExtension):
			r := resource.NewCompatibilityReview(h, format, path)
			r.Status.Compatible = false
			r.Status.Reason = v1alpha1.ReasonIncompatible
			r.Status.Message = err.Error()
			reviews = append(reviews, r)
		default:
			return nil, err
		}
	}
	return reviews, nil
}
