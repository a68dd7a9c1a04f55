// Package storage audits libvirt storage pools against the compatibility
// catalog.
//
// A pool audit lists every volume of a running pool, parses each volume's
// XML with libvirtxml to read its format, maps that format to a catalog disk
// format, and answers with one CompatibilityReview per volume:
//
//	mgr := storage.NewManager(client.Libvirt())
//
//	reviews, err := mgr.AuditPool(ctx, "default", catalog.KVM)
//	if err != nil {
//	    return err
//	}
//	for _, r := range reviews {
//	    fmt.Println(r.Name, r.Status.Reason)
//	}
//
// Libvirt names formats by family only ("qcow2", "vpc"), so a volume is
// reported as the sparse member of its family. Formats the catalog does not
// know are reviewed as UNKNOWN rather than skipped.
//
// Consumer-Side Interface:
//
// LibvirtClient lists only the libvirt calls this package makes.
// *libvirt.Libvirt satisfies it implicitly; tests use an in-memory mock.
package storage
