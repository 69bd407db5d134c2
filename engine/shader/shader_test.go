package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
)

func TestTypeRegistry(t *testing.T) {
	r := NewTypeRegistry()

	tests := []struct {
		name string
		want AttributeType
	}{
		{"float", AttributeType{Name: "float", Rows: 1, Components: 1, Scalar: binding.ScalarFloat}},
		{"vec3", AttributeType{Name: "vec3", Rows: 1, Components: 3, Scalar: binding.ScalarFloat}},
		{"ivec2", AttributeType{Name: "ivec2", Rows: 1, Components: 2, Scalar: binding.ScalarInt}},
		{"uvec4", AttributeType{Name: "uvec4", Rows: 1, Components: 4, Scalar: binding.ScalarUint}},
		{"dvec3", AttributeType{Name: "dvec3", Rows: 1, Components: 3, Scalar: binding.ScalarDouble}},
		{"mat4", AttributeType{Name: "mat4", Rows: 4, Components: 4, Scalar: binding.ScalarFloat}},
		{"mat2x3", AttributeType{Name: "mat2x3", Rows: 2, Components: 3, Scalar: binding.ScalarFloat}},
		{"dmat3x4", AttributeType{Name: "dmat3x4", Rows: 3, Components: 4, Scalar: binding.ScalarDouble}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := r.Lookup("sampler2D")
	assert.False(t, ok)
	// 4 scalars * (1 + 3 vectors) + 2 matrix families * 3 * (1 + 3)
	assert.Equal(t, 40, r.Len())
}

func TestTypeRegistriesAreIndependent(t *testing.T) {
	a, b := NewTypeRegistry(), NewTypeRegistry()
	a.Register(AttributeType{Name: "color", Rows: 1, Components: 4, Scalar: binding.ScalarFloat})

	_, ok := a.Lookup("color")
	assert.True(t, ok)
	_, ok = b.Lookup("color")
	assert.False(t, ok)
}

func TestNewProgram(t *testing.T) {
	p, err := NewProgram(
		WithAttribute("in_model", 2, "mat4"),
		WithAttribute("in_vert", 0, "vec3"),
		WithAttribute("in_id", 1, "uint"),
	)
	require.NoError(t, err)

	spec, ok := p.Attribute("in_model")
	require.True(t, ok)
	assert.Equal(t, binding.AttributeSpec{Location: 2, Rows: 4, Scalar: binding.ScalarFloat}, spec)

	spec, ok = p.Attribute("in_id")
	require.True(t, ok)
	assert.Equal(t, binding.ScalarUint, spec.Scalar)

	_, ok = p.Attribute("in_missing")
	assert.False(t, ok)

	names := make([]string, 0, 3)
	for _, a := range p.Attributes() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"in_vert", "in_id", "in_model"}, names)
}

func TestNewProgramErrors(t *testing.T) {
	_, err := NewProgram(WithAttribute("a", 0, "vec5"))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = NewProgram(WithAttribute("a", 0, "vec2"), WithAttribute("a", 1, "vec2"))
	assert.ErrorIs(t, err, ErrDuplicateAttribute)

	_, err = NewProgram(WithAttribute("m", 0, "mat3"), WithAttribute("v", 2, "vec2"))
	assert.ErrorIs(t, err, ErrLocationConflict)

	_, err = NewProgram(WithAttribute("m", 0, "mat3"), WithAttribute("v", 3, "vec2"))
	assert.NoError(t, err)

	_, err = NewProgram(WithAttribute("", 0, "vec2"))
	assert.Error(t, err)
}

func TestNewProgramCustomRegistry(t *testing.T) {
	r := &TypeRegistry{types: map[string]AttributeType{}}
	r.Register(AttributeType{Name: "vec3f", Rows: 1, Components: 3, Scalar: binding.ScalarFloat})

	_, err := NewProgram(WithTypeRegistry(r), WithAttribute("pos", 0, "vec3f"))
	require.NoError(t, err)

	_, err = NewProgram(WithTypeRegistry(r), WithAttribute("pos", 0, "vec3"))
	assert.ErrorIs(t, err, ErrUnknownType)
}

const vertexShader = `
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) uv: vec2<f32>,
    @builtin(vertex_index) index: u32,
};

@vertex
fn vs_main(in: VertexInput, @location(3) offset: vec4<f32>, @location(4) layer: i32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(in.position + offset.xyz, f32(layer));
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 1.0, 1.0, 1.0);
}
`

func TestReflectWGSL(t *testing.T) {
	p, err := ReflectWGSL(vertexShader, "vs_main")
	require.NoError(t, err)

	attrs := p.Attributes()
	require.Len(t, attrs, 4)
	assert.Equal(t, "position", attrs[0].Name)
	assert.Equal(t, AttributeType{Name: "vec3<f32>", Rows: 1, Components: 3, Scalar: binding.ScalarFloat}, attrs[0].Type)
	assert.Equal(t, "uv", attrs[1].Name)
	assert.Equal(t, uint32(3), attrs[2].Location)

	spec, ok := p.Attribute("layer")
	require.True(t, ok)
	assert.Equal(t, binding.AttributeSpec{Location: 4, Rows: 1, Scalar: binding.ScalarInt}, spec)

	_, ok = p.Attribute("index")
	assert.False(t, ok)
}

func TestReflectWGSLEntryPoint(t *testing.T) {
	_, err := ReflectWGSL(vertexShader, "")
	assert.NoError(t, err)

	_, err = ReflectWGSL(vertexShader, "fs_main")
	assert.ErrorIs(t, err, ErrEntryPointNotFound)

	_, err = ReflectWGSL("fn broken( {", "")
	assert.Error(t, err)
}
