package v1alpha1

const (
	// GroupName is the API group for hvcompat resources.
	GroupName = "hvcompat.cofront.xyz"

	// Version is the API version.
	Version = "v1alpha1"

	HypervisorProfileKind   = "HypervisorProfile"
	DiskFormatProfileKind   = "DiskFormatProfile"
	CompatibilityReviewKind = "CompatibilityReview"
	NetworkInterfaceKind    = "NetworkInterface"
)

// LabelAlias is the label carrying a disk format's alias.
const LabelAlias = GroupName + "/alias"

// NewTypeMeta returns the TypeMeta for kind in this API version.
func NewTypeMeta(kind string) TypeMeta {
	return TypeMeta{APIVersion: GroupName + "/" + Version, Kind: kind}
}
