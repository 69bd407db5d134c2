package loader

import "errors"

var (
	// ErrUnsupportedAccessor is returned for accessors the format language cannot describe:
	// sparse or zero-filled accessors, normalized signed or 16-bit storage, matrices of
	// sub-word components.
	ErrUnsupportedAccessor = errors.New("unsupported accessor")

	// ErrInvalidPrimitive is returned for primitives whose accessors do not form a valid layout.
	ErrInvalidPrimitive = errors.New("invalid primitive")

	// ErrUnsupportedFormat is returned for model files other than .gltf and .glb.
	ErrUnsupportedFormat = errors.New("unsupported model format")
)
