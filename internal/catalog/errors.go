package catalog

import "errors"

var (
	// ErrOutOfRange is returned when a numeric id is outside the documented bounds.
	ErrOutOfRange = errors.New("id out of range")

	// ErrUnknownVariant is returned when a name token matches no catalog entry.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrIncompatible is returned by CheckCompatible when a hypervisor cannot
	// import a disk format.
	ErrIncompatible = errors.New("incompatible disk format")
)
