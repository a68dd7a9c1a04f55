package output

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/hvcompat/api/v1alpha1"
)

// YAMLFormatter formats resources as a YAML stream, one document per resource.
type YAMLFormatter struct{}

// FormatHypervisors formats hypervisor profiles as YAML.
func (f *YAMLFormatter) FormatHypervisors(profiles []*v1alpha1.HypervisorProfile) (string, error) {
	for _, p := range profiles {
		p.SetDefaults(v1alpha1.HypervisorProfileKind)
	}
	return marshalYAMLStream(profiles, func(p *v1alpha1.HypervisorProfile) string { return p.Name })
}

// FormatDiskFormats formats disk format profiles as YAML.
func (f *YAMLFormatter) FormatDiskFormats(profiles []*v1alpha1.DiskFormatProfile) (string, error) {
	for _, p := range profiles {
		p.SetDefaults(v1alpha1.DiskFormatProfileKind)
	}
	return marshalYAMLStream(profiles, func(p *v1alpha1.DiskFormatProfile) string { return p.Name })
}

// FormatReviews formats compatibility reviews as YAML.
func (f *YAMLFormatter) FormatReviews(reviews []*v1alpha1.CompatibilityReview) (string, error) {
	for _, r := range reviews {
		r.SetDefaults(v1alpha1.CompatibilityReviewKind)
	}
	return marshalYAMLStream(reviews, func(r *v1alpha1.CompatibilityReview) string { return r.Name })
}

// FormatInterfaces formats generated NICs as YAML.
func (f *YAMLFormatter) FormatInterfaces(nics []*v1alpha1.NetworkInterface) (string, error) {
	for _, nic := range nics {
		nic.SetDefaults(v1alpha1.NetworkInterfaceKind)
	}
	return marshalYAMLStream(nics, func(n *v1alpha1.NetworkInterface) string { return n.Name })
}

// marshalYAMLStream outputs items as documents separated by ---.
func marshalYAMLStream[T any](items []T, name func(T) string) (string, error) {
	if len(items) == 0 {
		return "", nil
	}

	var buf bytes.Buffer

	for i, item := range items {
		data, err := yaml.Marshal(item)
		if err != nil {
			return "", fmt.Errorf("failed to marshal %s to YAML: %w", name(item), err)
		}

		if i > 0 {
			buf.WriteString("---\n")
		}

		buf.Write(data)
	}

	return buf.String(), nil
}
