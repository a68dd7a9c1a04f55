// Package catalog provides the fixed registries of virtual disk formats and
// hypervisor platforms, and the compatibility relation between them.
//
// Both registries are compiled-in tables. They are never mutated after
// package initialization, so every function in this package is safe for
// concurrent use without locking.
//
// Identity:
//
// Disk formats are numbered 0..MaxDiskFormatID and carry a canonical URI that
// upstream serialization layers depend on byte-for-byte. Hypervisors are
// numbered 1..MaxHypervisorID in a separate numbering space. A second,
// independently maintained legacy table maps hypervisor names to small
// integers for wire and database compatibility (see LegacyID).
//
// Lookup:
//
// Disk format names are matched exactly (case-sensitive). Hypervisor names
// are matched case-insensitively.
//
//	kvm, err := catalog.HypervisorByName("kvm")
//	if err != nil {
//	    return err
//	}
//
//	format, ok := catalog.DiskFormatByURI(uri)
//	if !ok {
//	    // unknown URI, treat as absent
//	}
//
//	if err := catalog.CheckCompatible(kvm, format); err != nil {
//	    return err // reject the import, do not attempt it
//	}
package catalog
