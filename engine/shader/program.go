package shader

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
)

// Attribute is one named vertex input of a Program.
type Attribute struct {
	Name     string
	Location uint32
	Type     AttributeType
}

// Spec returns the binding description of the attribute.
func (a Attribute) Spec() binding.AttributeSpec {
	return binding.AttributeSpec{Location: a.Location, Rows: a.Type.Rows, Scalar: a.Type.Scalar}
}

// declaration is an attribute as given to the builder, before its type is looked up.
type declaration struct {
	name     string
	location uint32
	typeName string
	typ      *AttributeType
}

// program is the implementation of the Program interface.
type program struct {
	registry     *TypeRegistry
	declarations []declaration

	attributes []Attribute
	byName     map[string]int
}

// Program is the vertex input table of a shader program. Attribute names given to a vertex
// array are looked up here.
type Program interface {
	// Attribute returns the binding description of the named attribute.
	//
	// Parameters:
	//   - name: the attribute name
	//
	// Returns:
	//   - binding.AttributeSpec: the attribute's location, row count and scalar class
	//   - bool: false when the program has no attribute of that name
	Attribute(name string) (binding.AttributeSpec, bool)

	// Attributes returns every attribute of the program ordered by location.
	//
	// Returns:
	//   - []Attribute: the attributes
	Attributes() []Attribute
}

var _ Program = &program{}

// NewProgram creates a Program from the attributes given as options. Attribute types named
// by string are looked up in the program's TypeRegistry, the GLSL registry unless
// WithTypeRegistry says otherwise.
//
// Parameters:
//   - opts: the builder options declaring the attributes
//
// Returns:
//   - Program: the program
//   - error: ErrUnknownType, ErrDuplicateAttribute or ErrLocationConflict
func NewProgram(opts ...ProgramBuilderOption) (Program, error) {
	p := &program{byName: make(map[string]int)}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = NewTypeRegistry()
	}

	for _, d := range p.declarations {
		if err := p.add(d); err != nil {
			return nil, err
		}
	}
	p.declarations = nil

	slices.SortFunc(p.attributes, func(a, b Attribute) int {
		return int(a.Location) - int(b.Location)
	})
	for i, a := range p.attributes {
		p.byName[a.Name] = i
	}
	if err := checkLocations(p.attributes); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *program) Attribute(name string) (binding.AttributeSpec, bool) {
	i, ok := p.byName[name]
	if !ok {
		return binding.AttributeSpec{}, false
	}
	return p.attributes[i].Spec(), true
}

func (p *program) Attributes() []Attribute {
	return slices.Clone(p.attributes)
}

func (p *program) add(d declaration) error {
	if d.name == "" {
		return errors.New("shader: attribute name must not be empty")
	}
	for _, a := range p.attributes {
		if a.Name == d.name {
			return fmt.Errorf("%w: %q", ErrDuplicateAttribute, d.name)
		}
	}

	var typ AttributeType
	if d.typ != nil {
		typ = *d.typ
	} else {
		t, ok := p.registry.Lookup(d.typeName)
		if !ok {
			return fmt.Errorf("attribute %q: %w %q", d.name, ErrUnknownType, d.typeName)
		}
		typ = t
	}
	if typ.Rows < 1 {
		return fmt.Errorf("attribute %q: type %q consumes no locations", d.name, typ.Name)
	}

	p.attributes = append(p.attributes, Attribute{Name: d.name, Location: d.location, Type: typ})
	return nil
}

// checkLocations expects attrs sorted by location.
func checkLocations(attrs []Attribute) error {
	for i := 1; i < len(attrs); i++ {
		prev, cur := attrs[i-1], attrs[i]
		if uint64(prev.Location)+uint64(prev.Type.Rows) > uint64(cur.Location) {
			return fmt.Errorf("%w: %q at %d and %q at %d", ErrLocationConflict, prev.Name, prev.Location, cur.Name, cur.Location)
		}
	}
	return nil
}
