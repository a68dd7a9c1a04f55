package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jbweber/hvcompat/api/v1alpha1"
)

// JSONFormatter formats resources as JSON arrays, or as a List object when
// List is set.
type JSONFormatter struct {
	List bool
}

// FormatHypervisors formats hypervisor profiles as JSON.
func (f *JSONFormatter) FormatHypervisors(profiles []*v1alpha1.HypervisorProfile) (string, error) {
	for _, p := range profiles {
		p.SetDefaults(v1alpha1.HypervisorProfileKind)
	}
	return marshalJSONAs(f.List, v1alpha1.HypervisorProfileKind, profiles, "hypervisors")
}

// FormatDiskFormats formats disk format profiles as JSON.
func (f *JSONFormatter) FormatDiskFormats(profiles []*v1alpha1.DiskFormatProfile) (string, error) {
	for _, p := range profiles {
		p.SetDefaults(v1alpha1.DiskFormatProfileKind)
	}
	return marshalJSONAs(f.List, v1alpha1.DiskFormatProfileKind, profiles, "disk formats")
}

// FormatReviews formats compatibility reviews as JSON.
func (f *JSONFormatter) FormatReviews(reviews []*v1alpha1.CompatibilityReview) (string, error) {
	for _, r := range reviews {
		r.SetDefaults(v1alpha1.CompatibilityReviewKind)
	}
	return marshalJSONAs(f.List, v1alpha1.CompatibilityReviewKind, reviews, "reviews")
}

// FormatInterfaces formats generated NICs as JSON.
func (f *JSONFormatter) FormatInterfaces(nics []*v1alpha1.NetworkInterface) (string, error) {
	for _, nic := range nics {
		nic.SetDefaults(v1alpha1.NetworkInterfaceKind)
	}
	return marshalJSONAs(f.List, v1alpha1.NetworkInterfaceKind, nics, "interfaces")
}

func marshalJSONAs[T any](list bool, kind string, items []T, what string) (string, error) {
	if list {
		return FormatListAsItems(kind, items)
	}
	return marshalJSON(items, what)
}

func marshalJSON[T any](items []T, what string) (string, error) {
	if len(items) == 0 {
		return "[]\n", nil
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to JSON: %w", what, err)
	}

	return string(data) + "\n", nil
}

// FormatListAsItems wraps items in a Kubernetes-style List object:
//
//	{
//	  "apiVersion": "hvcompat.cofront.xyz/v1alpha1",
//	  "kind": "HypervisorProfileList",
//	  "items": [...]
//	}
func FormatListAsItems[T any](kind string, items []T) (string, error) {
	if items == nil {
		items = []T{}
	}

	wrapper := map[string]interface{}{
		"apiVersion": v1alpha1.GroupName + "/" + v1alpha1.Version,
		"kind":       kind + "List",
		"items":      items,
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(wrapper); err != nil {
		return "", fmt.Errorf("failed to marshal %s list to JSON: %w", kind, err)
	}

	return buf.String(), nil
}
