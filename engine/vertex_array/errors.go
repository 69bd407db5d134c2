package vertex_array

import "errors"

var (
	// ErrUnknownAttribute is returned when content names an attribute the program does not have.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrInvalidBindFormat is returned by Bind when the format is not a single attribute node
	// without a step-rate tail.
	ErrInvalidBindFormat = errors.New("invalid bind format")

	// ErrInvalidNormalize is returned by Bind when normalization is requested for a node or
	// call family that cannot be normalized.
	ErrInvalidNormalize = errors.New("invalid normalize")

	// ErrInvalidDrawRange is returned when a draw resolves to a negative count or offset.
	ErrInvalidDrawRange = errors.New("invalid draw range")
)
