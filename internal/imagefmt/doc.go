// Package imagefmt identifies the catalog disk format of an image file by
// reading its magic bytes and header fields.
//
// Detection is pure Go and reads at most the first and last 512 bytes of an
// image (plus the descriptor text of a VMDK descriptor file). It never trusts
// the filename; CheckExtension enforces the suffix separately for formats that
// require one.
//
// Example usage:
//
//	format, err := imagefmt.CheckImport("/images/win2019.vhd", catalog.HyperV301)
//	if errors.Is(err, catalog.ErrIncompatible) {
//	    return fmt.Errorf("cannot import %s on Hyper-V", format)
//	}
package imagefmt
