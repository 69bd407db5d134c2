package vertex_array

import "github.com/Carmen-Shannon/oxy-vertex/engine/binding"

// VertexArrayBuilderOption is a functional option used to configure a VertexArray during construction.
type VertexArrayBuilderOption func(*vertexArray)

// WithIndexBuffer makes the vertex array indexed. The implicit vertex count becomes the
// number of indices in the buffer.
//
// Parameters:
//   - buffer: the index buffer
//   - elementSize: the byte width of one index: 1, 2 or 4
//
// Returns:
//   - VertexArrayBuilderOption: a function that sets the index buffer of the vertex array
func WithIndexBuffer(buffer binding.Buffer, elementSize int) VertexArrayBuilderOption {
	return func(v *vertexArray) {
		v.index = &binding.IndexBuffer{Buffer: buffer, ElementSize: elementSize}
	}
}

// WithSkipErrors turns attribute names the program does not know into gaps instead of errors.
//
// Parameters:
//   - skip: true to skip unknown attributes
//
// Returns:
//   - VertexArrayBuilderOption: a function that sets the unknown-attribute policy
func WithSkipErrors(skip bool) VertexArrayBuilderOption {
	return func(v *vertexArray) {
		v.skipErrors = skip
	}
}

// WithBackend sets the backend the resolved layout is applied to.
//
// Parameters:
//   - b: the layout backend
//
// Returns:
//   - VertexArrayBuilderOption: a function that sets the backend of the vertex array
func WithBackend(b Backend) VertexArrayBuilderOption {
	return func(v *vertexArray) {
		v.backend = b
	}
}

// WithResolver replaces the default resolver, which rejects streams without attributes.
//
// Parameters:
//   - r: the resolver
//
// Returns:
//   - VertexArrayBuilderOption: a function that sets the resolver of the vertex array
func WithResolver(r binding.Resolver) VertexArrayBuilderOption {
	return func(v *vertexArray) {
		v.resolver = r
	}
}

// WithInstances sets the initial implicit instance count.
//
// Parameters:
//   - n: the instance count
//
// Returns:
//   - VertexArrayBuilderOption: a function that sets the instance count
func WithInstances(n int) VertexArrayBuilderOption {
	return func(v *vertexArray) {
		v.instances = n
	}
}
