// Package loader provides functions for loading CompatibilityReview requests
// from YAML files.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/hvcompat/api/v1alpha1"
	"github.com/jbweber/hvcompat/internal/catalog"
	"github.com/jbweber/hvcompat/internal/resource"
)

// LoadFromFile loads CompatibilityReview requests from a YAML file.
// The file may hold several documents separated by "---".
func LoadFromFile(path string) ([]*v1alpha1.CompatibilityReview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return LoadFromYAML(data)
}

// LoadFromYAML loads CompatibilityReview requests from YAML bytes and
// evaluates each one against the catalog. Any status present in the input is
// replaced.
func LoadFromYAML(data []byte) ([]*v1alpha1.CompatibilityReview, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var reviews []*v1alpha1.CompatibilityReview
	for i := 0; ; i++ {
		var req v1alpha1.CompatibilityReview
		err := dec.Decode(&req)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML document %d: %w", i, err)
		}

		r, err := evaluate(&req)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		reviews = append(reviews, r)
	}

	if len(reviews) == 0 {
		return nil, fmt.Errorf("no CompatibilityReview documents found")
	}
	return reviews, nil
}

// SaveToFile writes reviews to path as a YAML stream.
func SaveToFile(reviews []*v1alpha1.CompatibilityReview, path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	for _, r := range reviews {
		r.SetDefaults(v1alpha1.CompatibilityReviewKind)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to marshal review %s to YAML: %w", r.Name, err)
		}
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

// evaluate validates a request and builds the answered review.
func evaluate(req *v1alpha1.CompatibilityReview) (*v1alpha1.CompatibilityReview, error) {
	if req.APIVersion == "" {
		return nil, fmt.Errorf("missing required field: apiVersion")
	}
	if req.Kind == "" {
		return nil, fmt.Errorf("missing required field: kind")
	}

	expectedAPIVersion := v1alpha1.GroupName + "/" + v1alpha1.Version
	if req.APIVersion != expectedAPIVersion {
		return nil, fmt.Errorf("unsupported apiVersion: %s (expected: %s)", req.APIVersion, expectedAPIVersion)
	}
	if req.Kind != v1alpha1.CompatibilityReviewKind {
		return nil, fmt.Errorf("unsupported kind: %s (expected: %s)", req.Kind, v1alpha1.CompatibilityReviewKind)
	}

	if req.Spec.Hypervisor == "" {
		return nil, fmt.Errorf("spec.hypervisor is required")
	}
	if req.Spec.DiskFormat == "" {
		return nil, fmt.Errorf("spec.diskFormat is required")
	}

	h, err := catalog.HypervisorByName(req.Spec.Hypervisor)
	if err != nil {
		return nil, fmt.Errorf("spec.hypervisor: %w", err)
	}
	f, err := resolveFormat(req.Spec.DiskFormat)
	if err != nil {
		return nil, fmt.Errorf("spec.diskFormat: %w", err)
	}

	r := resource.NewCompatibilityReview(h, f, req.Spec.Subject)
	if req.Name != "" {
		r.Name = req.Name
	}
	r.Labels = req.Labels
	r.Annotations = req.Annotations
	return r, nil
}

// resolveFormat accepts a disk format name or its URI.
func resolveFormat(s string) (catalog.DiskFormat, error) {
	if strings.Contains(s, "://") {
		f, ok := catalog.DiskFormatByURI(s)
		if !ok {
			return 0, fmt.Errorf("%w: no disk format with URI %q", catalog.ErrUnknownVariant, s)
		}
		return f, nil
	}
	return catalog.DiskFormatByName(s)
}
