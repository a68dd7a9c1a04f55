package catalog

import "strings"

// The legacy bridge numbers hypervisors for wire and database compatibility.
// It is maintained separately from the catalog ids; today both numberings
// agree, but a new platform must be added to both tables.
var (
	legacyIDsByName = map[string]int{
		"VBOX":       1,
		"KVM":        2,
		"XEN_3":      3,
		"VMX_04":     4,
		"HYPERV_301": 5,
		"XENSERVER":  6,
	}

	legacyHypervisorsByID = map[int]Hypervisor{
		1: VBox,
		2: KVM,
		3: Xen3,
		4: VMX04,
		5: HyperV301,
		6: XenServer,
	}
)

// LegacyID returns the legacy integer for a hypervisor name, ignoring case.
// The second result is false for unrecognized names.
func LegacyID(name string) (int, bool) {
	id, ok := legacyIDsByName[strings.ToUpper(name)]
	return id, ok
}

// HypervisorFromLegacyID returns the hypervisor for a legacy integer.
// The second result is false for integers outside the table.
func HypervisorFromLegacyID(id int) (Hypervisor, bool) {
	h, ok := legacyHypervisorsByID[id]
	return h, ok
}
