package v1alpha1

// HypervisorProfile is a read-only view of one hypervisor catalog entry.
type HypervisorProfile struct {
	TypeMeta   `json:",inline" yaml:",inline"`
	ObjectMeta `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	Spec HypervisorProfileSpec `json:"spec" yaml:"spec"`
}

// HypervisorProfileSpec holds the catalog data for a hypervisor.
type HypervisorProfileSpec struct {
	// ID is the 1-based catalog id.
	ID int `json:"id" yaml:"id"`

	// LegacyID is the number used by the legacy wire/database bridge.
	// Zero when the bridge has no entry.
	// +optional
	LegacyID int `json:"legacyId,omitempty" yaml:"legacyId,omitempty"`

	FriendlyName string `json:"friendlyName" yaml:"friendlyName"`
	DefaultPort  int    `json:"defaultPort" yaml:"defaultPort"`

	// BaseFormat is the disk format name the platform natively understands.
	BaseFormat string `json:"baseFormat" yaml:"baseFormat"`

	// CompatibleFormats are the disk format names the platform can import.
	CompatibleFormats []string `json:"compatibleFormats" yaml:"compatibleFormats"`

	// InstanceFormat is the format captured instances are normalized to.
	// Empty when the native format is preserved.
	// +optional
	InstanceFormat string `json:"instanceFormat,omitempty" yaml:"instanceFormat,omitempty"`

	RequiresCredentials bool `json:"requiresCredentials" yaml:"requiresCredentials"`
	SupportsExtraDisks  bool `json:"supportsExtraDisks" yaml:"supportsExtraDisks"`

	// MACPrefix is the vendor OUI used for generated NIC addresses.
	// +optional
	MACPrefix string `json:"macPrefix,omitempty" yaml:"macPrefix,omitempty"`
}

// DiskFormatProfile is a read-only view of one disk format catalog entry.
type DiskFormatProfile struct {
	TypeMeta   `json:",inline" yaml:",inline"`
	ObjectMeta `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	Spec DiskFormatProfileSpec `json:"spec" yaml:"spec"`
}

// DiskFormatProfileSpec holds the catalog data for a disk format.
type DiskFormatProfileSpec struct {
	// ID is the 0-based catalog id.
	ID int `json:"id" yaml:"id"`

	// URI is the canonical wire identity.
	URI         string `json:"uri" yaml:"uri"`
	Description string `json:"description" yaml:"description"`
	Alias       string `json:"alias" yaml:"alias"`

	// Extension is the required filename suffix, if any.
	// +optional
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`

	// CompatibleHypervisors are the hypervisor names that accept the format.
	// +optional
	CompatibleHypervisors []string `json:"compatibleHypervisors,omitempty" yaml:"compatibleHypervisors,omitempty"`
}

// CompatibilityReview records whether a hypervisor accepts a disk format,
// optionally for a named subject such as an image file or a pool volume.
type CompatibilityReview struct {
	TypeMeta   `json:",inline" yaml:",inline"`
	ObjectMeta `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	Spec   CompatibilityReviewSpec   `json:"spec" yaml:"spec"`
	Status CompatibilityReviewStatus `json:"status" yaml:"status"`
}

// CompatibilityReviewSpec is the question being asked.
type CompatibilityReviewSpec struct {
	Hypervisor string `json:"hypervisor" yaml:"hypervisor"`
	DiskFormat string `json:"diskFormat" yaml:"diskFormat"`

	// Subject names what was inspected (a file path or pool/volume).
	// +optional
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
}

// CompatibilityReviewStatus is the answer.
type CompatibilityReviewStatus struct {
	Compatible bool `json:"compatible" yaml:"compatible"`

	// Reason is a CamelCase token: Compatible, Incompatible, UnknownFormat.
	Reason string `json:"reason" yaml:"reason"`

	// +optional
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Review reasons.
const (
	ReasonCompatible    = "Compatible"
	ReasonIncompatible  = "Incompatible"
	ReasonUnknownFormat = "UnknownFormat"
)

// NetworkInterface is a generated virtual NIC for a hypervisor platform.
type NetworkInterface struct {
	TypeMeta   `json:",inline" yaml:",inline"`
	ObjectMeta `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	Spec NetworkInterfaceSpec `json:"spec" yaml:"spec"`
}

// NetworkInterfaceSpec describes the NIC.
type NetworkInterfaceSpec struct {
	Hypervisor string `json:"hypervisor" yaml:"hypervisor"`
	MACAddress string `json:"macAddress" yaml:"macAddress"`

	// Bridge is the host bridge the NIC attaches to.
	// +optional
	Bridge string `json:"bridge,omitempty" yaml:"bridge,omitempty"`

	// Model is the emulated device model, e.g. "virtio".
	// +optional
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
}
