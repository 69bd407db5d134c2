package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// ReflectWGSL builds a Program from the @location inputs of a WGSL vertex entry point.
// Inputs are read from the entry point's arguments and from the members of struct
// arguments; builtins are ignored. WGSL has no matrix vertex inputs, so every reflected
// attribute occupies a single location.
//
// Parameters:
//   - source: the WGSL source
//   - entryPoint: the vertex entry point name, or "" for the first vertex entry point
//
// Returns:
//   - Program: the reflected program
//   - error: a parse error, ErrEntryPointNotFound or ErrUnsupportedInputType
func ReflectWGSL(source, entryPoint string) (Program, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse wgsl: %w", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("lower wgsl: %w", err)
	}

	ep, err := findVertexEntryPoint(module, entryPoint)
	if err != nil {
		return nil, err
	}

	var opts []ProgramBuilderOption
	for _, arg := range ep.Function.Arguments {
		if arg.Binding != nil {
			loc, ok := locationOf(*arg.Binding)
			if !ok {
				continue
			}
			t, err := inputType(module, arg.Type)
			if err != nil {
				return nil, fmt.Errorf("input %q: %w", arg.Name, err)
			}
			opts = append(opts, WithAttributeType(arg.Name, loc, t))
			continue
		}

		st, ok := typeInner(module, arg.Type).(ir.StructType)
		if !ok {
			continue
		}
		for _, m := range st.Members {
			if m.Binding == nil {
				continue
			}
			loc, ok := locationOf(*m.Binding)
			if !ok {
				continue
			}
			t, err := inputType(module, m.Type)
			if err != nil {
				return nil, fmt.Errorf("input %q: %w", m.Name, err)
			}
			opts = append(opts, WithAttributeType(m.Name, loc, t))
		}
	}

	return NewProgram(opts...)
}

func findVertexEntryPoint(module *ir.Module, name string) (*ir.EntryPoint, error) {
	for i := range module.EntryPoints {
		ep := &module.EntryPoints[i]
		if ep.Stage != ir.StageVertex {
			continue
		}
		if name == "" || ep.Name == name {
			return ep, nil
		}
	}
	if name == "" {
		return nil, ErrEntryPointNotFound
	}
	return nil, fmt.Errorf("%w: %q", ErrEntryPointNotFound, name)
}

func locationOf(b ir.Binding) (uint32, bool) {
	switch loc := b.(type) {
	case ir.LocationBinding:
		return loc.Location, true
	case *ir.LocationBinding:
		return loc.Location, true
	}
	return 0, false
}

func typeInner(module *ir.Module, h ir.TypeHandle) ir.TypeInner {
	if int(h) >= len(module.Types) {
		return nil
	}
	return module.Types[h].Inner
}

func inputType(module *ir.Module, h ir.TypeHandle) (AttributeType, error) {
	var (
		scalar     ir.ScalarType
		components int
	)
	switch t := typeInner(module, h).(type) {
	case ir.ScalarType:
		scalar, components = t, 1
	case ir.VectorType:
		scalar, components = t.Scalar, int(t.Size)
	default:
		return AttributeType{}, ErrUnsupportedInputType
	}

	class, name, err := scalarClass(scalar)
	if err != nil {
		return AttributeType{}, err
	}
	if components > 1 {
		name = fmt.Sprintf("vec%d<%s>", components, name)
	}
	return AttributeType{Name: name, Rows: 1, Components: components, Scalar: class}, nil
}

func scalarClass(s ir.ScalarType) (binding.ScalarClass, string, error) {
	switch s.Kind {
	case ir.ScalarFloat:
		switch s.Width {
		case 2:
			return binding.ScalarFloat, "f16", nil
		case 4:
			return binding.ScalarFloat, "f32", nil
		case 8:
			return binding.ScalarDouble, "f64", nil
		}
	case ir.ScalarSint:
		if s.Width == 4 {
			return binding.ScalarInt, "i32", nil
		}
	case ir.ScalarUint:
		if s.Width == 4 {
			return binding.ScalarUint, "u32", nil
		}
	}
	return 0, "", fmt.Errorf("%w: scalar kind %d width %d", ErrUnsupportedInputType, s.Kind, s.Width)
}
