package loader

import "io"

// loaderBackend defines the generic interface for translating model files into primitives.
// Concrete implementations (e.g., gltfLoaderBackendImpl) handle format-specific details.
type loaderBackend interface {
	// Load translates the model file at the given path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - []Primitive: the primitives of every mesh in the file
	//   - error: error if loading fails
	Load(path string) ([]Primitive, error)

	// LoadReader translates a model from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data, false for text-based formats
	//
	// Returns:
	//   - []Primitive: the primitives of every mesh in the stream
	//   - error: error if loading fails
	LoadReader(r io.Reader, isGLB bool) ([]Primitive, error)
}
