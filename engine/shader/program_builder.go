package shader

// ProgramBuilderOption is a functional option used to configure a Program during construction.
type ProgramBuilderOption func(*program)

// WithTypeRegistry sets the registry attribute type names are looked up in.
//
// Parameters:
//   - r: the type registry
//
// Returns:
//   - ProgramBuilderOption: a function that sets the program's type registry
func WithTypeRegistry(r *TypeRegistry) ProgramBuilderOption {
	return func(p *program) {
		p.registry = r
	}
}

// WithAttribute declares an attribute by type name, e.g. "vec3" or "mat4".
//
// Parameters:
//   - name: the attribute name
//   - location: the first location the attribute occupies
//   - typeName: the attribute's type name in the program's registry
//
// Returns:
//   - ProgramBuilderOption: a function that adds the attribute to the program
func WithAttribute(name string, location uint32, typeName string) ProgramBuilderOption {
	return func(p *program) {
		p.declarations = append(p.declarations, declaration{name: name, location: location, typeName: typeName})
	}
}

// WithAttributeType declares an attribute with an explicit type.
//
// Parameters:
//   - name: the attribute name
//   - location: the first location the attribute occupies
//   - t: the attribute's type
//
// Returns:
//   - ProgramBuilderOption: a function that adds the attribute to the program
func WithAttributeType(name string, location uint32, t AttributeType) ProgramBuilderOption {
	return func(p *program) {
		p.declarations = append(p.declarations, declaration{name: name, location: location, typ: &t})
	}
}
