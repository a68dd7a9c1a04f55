// Package v1alpha1 contains API types for hvcompat.cofront.xyz/v1alpha1
//
// These are read-only views of the compatibility catalog, shaped like
// Kubernetes objects so they render consistently as YAML or JSON. They are
// hand-rolled to avoid a k8s.io/apimachinery dependency; field names and JSON
// tags follow the apimachinery conventions.
package v1alpha1

import (
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"
)

// TypeMeta describes an individual object's type and API version.
type TypeMeta struct {
	// Kind is the CamelCase name of the resource, e.g. "HypervisorProfile".
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is GroupName/Version.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
}

// SetDefaults fills in APIVersion and Kind when they are empty.
func (m *TypeMeta) SetDefaults(kind string) {
	if m.APIVersion == "" {
		m.APIVersion = GroupName + "/" + Version
	}
	if m.Kind == "" {
		m.Kind = kind
	}
}

// ObjectMeta is the metadata carried by every resource.
type ObjectMeta struct {
	// Name is the catalog name for catalog entries, or a user-chosen name
	// for generated objects.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Labels are key/value pairs used for grouping, e.g. the disk format alias.
	// +optional
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`

	// Annotations carry non-identifying data.
	// +optional
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`

	// CreationTimestamp is set on generated objects only. Catalog entries
	// have no creation time.
	// +optional
	CreationTimestamp Time `json:"creationTimestamp,omitempty" yaml:"creationTimestamp,omitempty"`

	// UID is set on generated objects only.
	// +optional
	UID string `json:"uid,omitempty" yaml:"uid,omitempty"`
}

// Time is a wrapper around time.Time for RFC3339 JSON/YAML serialization.
type Time struct {
	time.Time `json:"-" yaml:"-"`
}

// MarshalJSON returns an RFC3339 timestamp, or null for zero values.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// UnmarshalJSON parses an RFC3339 timestamp or null.
func (t *Time) UnmarshalJSON(b []byte) error {
	if string(b) == "null" || string(b) == `""` {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (t Time) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time.Format(time.RFC3339), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (t *Time) UnmarshalYAML(node *yaml.Node) error {
	if node.Value == "" || node.Value == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, node.Value)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
