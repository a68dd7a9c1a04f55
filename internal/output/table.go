package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jbweber/hvcompat/api/v1alpha1"
)

// TableFormatter formats resources as human-readable tables.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

// table writes header and rows through a tabwriter. rows are tab-separated.
func (f *TableFormatter) table(header string, rows []string) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, header)
	}
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, row)
	}

	_ = w.Flush()
	return buf.String()
}

// FormatHypervisors formats hypervisor profiles as a table.
func (f *TableFormatter) FormatHypervisors(profiles []*v1alpha1.HypervisorProfile) (string, error) {
	if len(profiles) == 0 {
		return "No hypervisors found\n", nil
	}

	rows := make([]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, strings.Join([]string{
			fmt.Sprintf("%d", p.Spec.ID),
			p.Name,
			p.Spec.FriendlyName,
			fmt.Sprintf("%d", p.Spec.DefaultPort),
			p.Spec.BaseFormat,
			orDash(p.Spec.InstanceFormat),
			yesNo(p.Spec.RequiresCredentials),
			orDash(p.Spec.MACPrefix),
		}, "\t"))
	}

	return f.table("ID\tNAME\tFRIENDLY NAME\tPORT\tBASE FORMAT\tINSTANCE FORMAT\tCREDENTIALS\tMAC PREFIX", rows), nil
}

// FormatDiskFormats formats disk format profiles as a table.
func (f *TableFormatter) FormatDiskFormats(profiles []*v1alpha1.DiskFormatProfile) (string, error) {
	if len(profiles) == 0 {
		return "No disk formats found\n", nil
	}

	rows := make([]string, 0, len(profiles))
	for _, p := range profiles {
		hvs := "-"
		if len(p.Spec.CompatibleHypervisors) > 0 {
			hvs = strings.Join(p.Spec.CompatibleHypervisors, ",")
		}
		rows = append(rows, strings.Join([]string{
			fmt.Sprintf("%d", p.Spec.ID),
			p.Name,
			p.Spec.Alias,
			orDash(p.Spec.Extension),
			hvs,
		}, "\t"))
	}

	return f.table("ID\tNAME\tALIAS\tEXTENSION\tHYPERVISORS", rows), nil
}

// FormatReviews formats compatibility reviews as a table.
func (f *TableFormatter) FormatReviews(reviews []*v1alpha1.CompatibilityReview) (string, error) {
	if len(reviews) == 0 {
		return "No reviews found\n", nil
	}

	rows := make([]string, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, strings.Join([]string{
			r.Name,
			r.Spec.Hypervisor,
			r.Spec.DiskFormat,
			yesNo(r.Status.Compatible),
			r.Status.Reason,
		}, "\t"))
	}

	return f.table("NAME\tHYPERVISOR\tFORMAT\tCOMPATIBLE\tREASON", rows), nil
}

// FormatInterfaces formats generated NICs as a table.
func (f *TableFormatter) FormatInterfaces(nics []*v1alpha1.NetworkInterface) (string, error) {
	if len(nics) == 0 {
		return "No interfaces found\n", nil
	}

	rows := make([]string, 0, len(nics))
	for _, nic := range nics {
		age := "-"
		if !nic.CreationTimestamp.IsZero() {
			age = formatAge(time.Since(nic.CreationTimestamp.Time))
		}
		rows = append(rows, strings.Join([]string{
			nic.Name,
			nic.Spec.Hypervisor,
			nic.Spec.MACAddress,
			orDash(nic.Spec.Bridge),
			orDash(nic.Spec.Model),
			age,
		}, "\t"))
	}

	return f.table("NAME\tHYPERVISOR\tMAC\tBRIDGE\tMODEL\tAGE", rows), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// formatAge formats a duration as a human-readable age string.
// Examples: "5s", "2m", "3h", "4d", "2w", "1y"
func formatAge(d time.Duration) string {
	if d < 0 {
		return "unknown"
	}

	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd", days)
	}

	weeks := days / 7
	if weeks < 8 {
		return fmt.Sprintf("%dw", weeks)
	}

	years := days / 365
	if years > 0 {
		return fmt.Sprintf("%dy", years)
	}

	return fmt.Sprintf("%dd", days)
}
