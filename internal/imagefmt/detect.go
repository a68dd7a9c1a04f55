package imagefmt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jbweber/hvcompat/internal/catalog"
)

// Magic bytes and signatures for disk image format detection
var (
	// qcow2Magic is "QFI" followed by 0xfb at offset 0.
	// Reference: https://www.qemu.org/docs/master/interop/qcow2.html
	qcow2Magic = []byte{0x51, 0x46, 0x49, 0xfb}

	// vmdkSparseMagic is "KDMV" at offset 0 of a hosted sparse extent.
	// Reference: VMware Virtual Disk Format 1.1, "Hosted Sparse Extent Header"
	vmdkSparseMagic = []byte("KDMV")

	// vmdkDescriptorHeader starts a plain-text VMDK descriptor file.
	vmdkDescriptorHeader = []byte("# Disk DescriptorFile")

	// vhdCookie is the footer cookie. Dynamic disks copy the footer to offset 0,
	// fixed disks only carry it in the last 512 bytes.
	// Reference: Microsoft Virtual Hard Disk Image Format Specification, "Hard Disk Footer Format"
	vhdCookie = []byte("conectix")

	// vhdxSignature is "vhdxfile" at offset 0.
	vhdxSignature = []byte("vhdxfile")

	// vdiSignature is 0xbeda107f (little-endian) at offset 0x40.
	vdiSignature = []byte{0x7f, 0x10, 0xda, 0xbe}

	// mbrSignature is the boot sector signature 0x55 0xaa at offset 510.
	// It is present for MBR and (protective MBR) GPT disks.
	mbrSignature = []byte{0x55, 0xaa}
)

const (
	qcow2SizeOffset = 24

	vmdkFlagsOffset     = 8
	vmdkCompressOffset  = 77
	vmdkFlagCompressed  = 1 << 16
	vmdkCompressDeflate = 1

	vhdFooterSize     = 512
	vhdDiskTypeOffset = 60
	vhdTypeFixed      = 2
	vhdTypeDynamic    = 3
	vhdTypeDiff       = 4

	vdiSignatureOffset = 0x40
	vdiTypeOffset      = 0x4c
	vdiTypeNormal      = 1
	vdiTypeFixed       = 2

	mbrSignatureOffset = 510
)

var (
	// ErrUnrecognized is returned when no known signature matches.
	ErrUnrecognized = errors.New("unrecognized disk image")

	// ErrExtension is returned when a format's required file extension is missing.
	ErrExtension = errors.New("missing required file extension")
)

var createTypePattern = regexp.MustCompile(`(?m)^\s*createType\s*=\s*"([^"]+)"`)

// DetectFile detects the catalog disk format of the image at path.
func DetectFile(path string) (catalog.DiskFormat, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Unknown, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return catalog.Unknown, fmt.Errorf("failed to stat file: %w", err)
	}

	return Detect(f, st.Size())
}

// Detect detects the catalog disk format of an image of the given size.
//
// Detection rules, in order:
//   - QCOW2: magic "QFI\xfb"; flat when the file is at least as large as the
//     virtual size in the header (fully preallocated), sparse otherwise
//   - VMDK hosted sparse extent: magic "KDMV"; stream-optimized when grains
//     are deflate-compressed, sparse otherwise
//   - VMDK text descriptor: createType selects flat, sparse or stream-optimized
//   - VDI: signature at 0x40; image type 1 is sparse, 2 is flat
//   - VHD: "conectix" cookie at offset 0 or in the trailing footer; the disk
//     type field selects fixed (flat) or dynamic/differencing (sparse)
//   - VHDX: recognized and reported as catalog.Incompatible
//   - RAW: MBR signature 0x55aa at offset 510
func Detect(r io.ReaderAt, size int64) (catalog.DiskFormat, error) {
	head := readAt(r, 0, 512)
	if len(head) < 4 {
		return catalog.Unknown, fmt.Errorf("file too small to be valid image (< 4 bytes): %w", ErrUnrecognized)
	}

	switch {
	case bytes.HasPrefix(head, qcow2Magic):
		return detectQCOW2(head, size)
	case bytes.HasPrefix(head, vmdkSparseMagic):
		return detectVMDKSparse(head)
	case bytes.HasPrefix(head, vmdkDescriptorHeader):
		return detectVMDKDescriptor(r, size)
	case bytes.HasPrefix(head, vhdxSignature):
		return catalog.Incompatible, nil
	case bytes.HasPrefix(head, vhdCookie):
		return vhdFormat(head)
	}

	if sig := readAt(r, vdiSignatureOffset, 4); bytes.Equal(sig, vdiSignature) {
		return detectVDI(r)
	}

	if size >= vhdFooterSize {
		if footer := readAt(r, size-vhdFooterSize, vhdFooterSize); bytes.HasPrefix(footer, vhdCookie) {
			return vhdFormat(footer)
		}
	}

	if len(head) < 512 {
		return catalog.Unknown, fmt.Errorf("file too small for boot sector (< 512 bytes): %w", ErrUnrecognized)
	}
	if bytes.Equal(head[mbrSignatureOffset:mbrSignatureOffset+2], mbrSignature) {
		return catalog.Raw, nil
	}

	return catalog.Unknown, fmt.Errorf("no known image signature and missing boot sector signature (0x55aa at offset 510): %w", ErrUnrecognized)
}

func detectQCOW2(head []byte, size int64) (catalog.DiskFormat, error) {
	if len(head) < qcow2SizeOffset+8 {
		return catalog.Unknown, fmt.Errorf("truncated qcow2 header: %w", ErrUnrecognized)
	}
	virtual := binary.BigEndian.Uint64(head[qcow2SizeOffset:])
	if virtual > 0 && uint64(size) >= virtual {
		return catalog.QCOW2Flat, nil
	}
	return catalog.QCOW2Sparse, nil
}

func detectVMDKSparse(head []byte) (catalog.DiskFormat, error) {
	if len(head) < vmdkCompressOffset+2 {
		return catalog.Unknown, fmt.Errorf("truncated vmdk sparse header: %w", ErrUnrecognized)
	}
	flags := binary.LittleEndian.Uint32(head[vmdkFlagsOffset:])
	compress := binary.LittleEndian.Uint16(head[vmdkCompressOffset:])
	if flags&vmdkFlagCompressed != 0 || compress == vmdkCompressDeflate {
		return catalog.VMDKStreamOptimized, nil
	}
	return catalog.VMDKSparse, nil
}

func detectVMDKDescriptor(r io.ReaderAt, size int64) (catalog.DiskFormat, error) {
	// Descriptors are small text files; 64 KiB is far more than any real one.
	n := size
	if n > 64*1024 {
		n = 64 * 1024
	}
	text := readAt(r, 0, int(n))

	m := createTypePattern.FindSubmatch(text)
	if m == nil {
		return catalog.Unknown, fmt.Errorf("vmdk descriptor without createType: %w", ErrUnrecognized)
	}

	switch strings.ToLower(string(m[1])) {
	case "monolithicflat", "twogbmaxextentflat", "vmfs":
		return catalog.VMDKFlat, nil
	case "monolithicsparse", "twogbmaxextentsparse", "vmfssparse":
		return catalog.VMDKSparse, nil
	case "streamoptimized":
		return catalog.VMDKStreamOptimized, nil
	default:
		return catalog.Incompatible, nil
	}
}

func detectVDI(r io.ReaderAt) (catalog.DiskFormat, error) {
	raw := readAt(r, vdiTypeOffset, 4)
	if len(raw) < 4 {
		return catalog.Unknown, fmt.Errorf("truncated vdi header: %w", ErrUnrecognized)
	}
	switch binary.LittleEndian.Uint32(raw) {
	case vdiTypeNormal:
		return catalog.VDISparse, nil
	case vdiTypeFixed:
		return catalog.VDIFlat, nil
	default:
		return catalog.Incompatible, nil
	}
}

func vhdFormat(footer []byte) (catalog.DiskFormat, error) {
	if len(footer) < vhdDiskTypeOffset+4 {
		return catalog.Unknown, fmt.Errorf("truncated vhd footer: %w", ErrUnrecognized)
	}
	switch binary.BigEndian.Uint32(footer[vhdDiskTypeOffset:]) {
	case vhdTypeFixed:
		return catalog.VHDFlat, nil
	case vhdTypeDynamic, vhdTypeDiff:
		return catalog.VHDSparse, nil
	default:
		return catalog.Incompatible, nil
	}
}

// readAt reads up to n bytes at off. Short reads return what was read.
func readAt(r io.ReaderAt, off int64, n int) []byte {
	if n <= 0 || off < 0 {
		return nil
	}
	buf := make([]byte, n)
	read, _ := r.ReadAt(buf, off)
	return buf[:read]
}

// CheckExtension verifies that path carries the suffix format requires.
func CheckExtension(path string, format catalog.DiskFormat) error {
	if !format.RequiresExtension() {
		return nil
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if !strings.EqualFold(ext, format.Extension()) {
		return fmt.Errorf("%w: %s images must use .%s, got %q", ErrExtension, format, format.Extension(), filepath.Base(path))
	}
	return nil
}

// CheckImport detects the format of the image at path and verifies that h
// can import it. The detected format is returned even when the check fails.
// Errors wrap ErrUnrecognized, ErrExtension or catalog.ErrIncompatible when
// those are the cause.
func CheckImport(path string, h catalog.Hypervisor) (catalog.DiskFormat, error) {
	format, err := DetectFile(path)
	if err != nil {
		return format, err
	}
	if err := CheckExtension(path, format); err != nil {
		return format, err
	}
	if err := catalog.CheckCompatible(h, format); err != nil {
		return format, err
	}
	return format, nil
}
