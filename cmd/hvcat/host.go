package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jbweber/hvcompat/api/v1alpha1"
	"github.com/jbweber/hvcompat/internal/catalog"
	"github.com/jbweber/hvcompat/internal/libvirt"
	"github.com/jbweber/hvcompat/internal/output"
	"github.com/jbweber/hvcompat/internal/resource"
	"github.com/jbweber/hvcompat/internal/storage"
)

func newHostCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Inspect the libvirt host",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "probe",
		Short: "Identify the hypervisor behind the libvirt connection",
		Long: `Connect to libvirt, report the driver, version and hostname, and map the
driver to a catalog hypervisor.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer a.closeClient(client)

			info, err := libvirt.DescribeHost(client.Libvirt())
			if err != nil {
				return err
			}
			a.logger.Info("probed host", "hostname", info.Hostname, "driver", info.Driver, "version", info.LibVersion)

			if !info.Hypervisor.Valid() {
				return fmt.Errorf("libvirt driver %q has no catalog hypervisor", info.Driver)
			}

			profile := resource.NewHypervisorProfile(info.Hypervisor)
			profile.Annotations = map[string]string{
				v1alpha1.GroupName + "/hostname":    info.Hostname,
				v1alpha1.GroupName + "/uri":         info.URI,
				v1alpha1.GroupName + "/driver":      info.Driver,
				v1alpha1.GroupName + "/lib-version": info.LibVersion,
			}
			return a.render(cmd, func(f output.Formatter) (string, error) {
				return f.FormatHypervisors([]*v1alpha1.HypervisorProfile{profile})
			})
		},
	})

	return cmd
}

func newPoolCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Inspect libvirt storage pools",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List storage pools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer a.closeClient(client)

			pools, err := storage.NewManager(client.Libvirt()).ListPools(ctx)
			if err != nil {
				return err
			}
			if len(pools) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No storage pools found")
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tTYPE\tSTATE\tCAPACITY\tAVAILABLE\tPATH")
			for _, p := range pools {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%.1fGB\t%.1fGB\t%s\n",
					p.Name, p.Type, p.State, p.CapacityGB(), p.AvailableGB(), orDash(p.Path))
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "volumes <pool>",
		Short: "List the volumes of a storage pool with their catalog formats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer a.closeClient(client)

			vols, err := storage.NewManager(client.Libvirt()).ListVolumes(ctx, args[0])
			if err != nil {
				return err
			}
			if len(vols) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No volumes found")
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tFORMAT\tCATALOG FORMAT\tCAPACITY\tPATH")
			for _, v := range vols {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%.1fGB\t%s\n",
					v.Name, orDash(v.Format), v.DiskFormat.Name(), v.CapacityGB(), orDash(v.Path))
			}
			return w.Flush()
		},
	})

	var hv string
	var all bool
	audit := &cobra.Command{
		Use:   "audit [pool]",
		Short: "Check every volume of a pool against a hypervisor",
		Long: `Read the format of every volume in a running pool and report whether the
hypervisor can import it. Without --hypervisor the configured default is used,
and failing that the hypervisor behind the libvirt connection.

Example:
  hvcat pool audit default --hypervisor HYPERV_301
  hvcat pool audit --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("give a pool name or --all")
			}

			ctx := cmd.Context()
			client, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer a.closeClient(client)

			h, err := a.auditTarget(hv, client)
			if err != nil {
				return err
			}

			mgr := storage.NewManager(client.Libvirt())
			var reviews []*v1alpha1.CompatibilityReview
			if all {
				reviews, err = mgr.AuditAll(ctx, h)
			} else {
				reviews, err = mgr.AuditPool(ctx, args[0], h)
			}
			if err != nil {
				return err
			}
			a.logger.Debug("audited volumes", "hypervisor", h.Name(), "count", len(reviews))

			return a.render(cmd, func(f output.Formatter) (string, error) {
				return f.FormatReviews(reviews)
			})
		},
	}
	audit.Flags().StringVar(&hv, "hypervisor", "", "hypervisor name or id (default from config, then the host)")
	audit.Flags().BoolVar(&all, "all", false, "audit every running pool")
	cmd.AddCommand(audit)

	return cmd
}

// auditTarget picks the hypervisor to audit against: the flag, the config
// default, then whatever the connected host runs.
func (a *app) auditTarget(flag string, client *libvirt.Client) (catalog.Hypervisor, error) {
	if flag != "" || a.cfg.DefaultHypervisor != "" {
		return a.hypervisor(flag)
	}

	info, err := libvirt.DescribeHost(client.Libvirt())
	if err != nil {
		return 0, err
	}
	if !info.Hypervisor.Valid() {
		return 0, fmt.Errorf("libvirt driver %q has no catalog hypervisor: pass --hypervisor", info.Driver)
	}
	a.logger.Info("auditing against host hypervisor", "hypervisor", info.Hypervisor.Name())
	return info.Hypervisor, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
