package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
)

// AttributeType describes the location footprint of a shader input type.
type AttributeType struct {
	// Name is the type name as written in shader source, e.g. "vec3" or "mat4x3".
	Name string

	// Rows is the number of consecutive locations the input consumes. Matrices consume one
	// location per column.
	Rows int

	// Components is the number of components read per location.
	Components int

	// Scalar is the scalar class the input is declared with.
	Scalar binding.ScalarClass
}

// TypeRegistry maps shader type names to their AttributeType. Registries are plain values;
// callers that need extra names register them on their own copy.
type TypeRegistry struct {
	types map[string]AttributeType
}

// NewTypeRegistry creates a registry holding the GLSL vertex input types: scalars, vectors
// and (double) matrices of every supported dimension.
//
// Returns:
//   - *TypeRegistry: the populated registry
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{types: make(map[string]AttributeType)}

	scalars := []struct {
		name   string
		prefix string
		class  binding.ScalarClass
	}{
		{"float", "", binding.ScalarFloat},
		{"int", "i", binding.ScalarInt},
		{"uint", "u", binding.ScalarUint},
		{"double", "d", binding.ScalarDouble},
	}
	for _, s := range scalars {
		r.Register(AttributeType{Name: s.name, Rows: 1, Components: 1, Scalar: s.class})
		for n := 2; n <= 4; n++ {
			r.Register(AttributeType{Name: fmt.Sprintf("%svec%d", s.prefix, n), Rows: 1, Components: n, Scalar: s.class})
		}
	}

	for _, m := range []struct {
		prefix string
		class  binding.ScalarClass
	}{{"", binding.ScalarFloat}, {"d", binding.ScalarDouble}} {
		for cols := 2; cols <= 4; cols++ {
			r.Register(AttributeType{Name: fmt.Sprintf("%smat%d", m.prefix, cols), Rows: cols, Components: cols, Scalar: m.class})
			for rows := 2; rows <= 4; rows++ {
				r.Register(AttributeType{Name: fmt.Sprintf("%smat%dx%d", m.prefix, cols, rows), Rows: cols, Components: rows, Scalar: m.class})
			}
		}
	}

	return r
}

// Register adds or replaces a type in the registry.
//
// Parameters:
//   - t: the type to register, keyed by its Name
func (r *TypeRegistry) Register(t AttributeType) {
	r.types[t.Name] = t
}

// Lookup returns the type registered under name.
//
// Parameters:
//   - name: the shader type name
//
// Returns:
//   - AttributeType: the registered type
//   - bool: false when the name is unknown
func (r *TypeRegistry) Lookup(name string) (AttributeType, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Len returns the number of registered types.
func (r *TypeRegistry) Len() int {
	return len(r.types)
}
