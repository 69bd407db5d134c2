package shader

import "errors"

var (
	// ErrUnknownType is returned when an attribute names a type the registry does not hold.
	ErrUnknownType = errors.New("unknown attribute type")

	// ErrDuplicateAttribute is returned when two attributes share a name.
	ErrDuplicateAttribute = errors.New("duplicate attribute name")

	// ErrLocationConflict is returned when the locations of two attributes overlap.
	ErrLocationConflict = errors.New("attribute locations overlap")

	// ErrEntryPointNotFound is returned when a shader has no vertex entry point of the requested name.
	ErrEntryPointNotFound = errors.New("vertex entry point not found")

	// ErrUnsupportedInputType is returned when a vertex input has a type with no attribute equivalent.
	ErrUnsupportedInputType = errors.New("unsupported vertex input type")
)
