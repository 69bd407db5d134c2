package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
	"github.com/Carmen-Shannon/oxy-vertex/engine/renderer"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex_array"
)

const quadTOML = `
version = "1.2.0"
backend = "gputypes"

[[attributes]]
name = "in_vert"
location = 0
type = "vec3"

[[attributes]]
name = "in_uv"
location = 1
type = "vec2"

[[attributes]]
name = "in_offset"
location = 2
type = "vec2"

[[buffers]]
name = "quad"
size = 80

[[buffers]]
name = "offsets"
size = 64
handle = 42

[[buffers]]
name = "indices"
size = 12

[[content]]
buffer = "quad"
format = "3f 2f"
attributes = ["in_vert", "in_uv"]

[[content]]
buffer = "offsets"
format = "2f/i"
attributes = ["in_offset"]

[index]
buffer = "indices"
element_size = 2
`

const quadYAML = `
version: "1.0.0"
skip_errors: true
instances: 3
attributes:
  - name: in_vert
    location: 0
    type: vec3
buffers:
  - name: quad
    size: 96
content:
  - buffer: quad
    format: 3f 3f
    attributes: [in_vert, in_normal]
`

func TestParseTOML(t *testing.T) {
	m, err := Parse([]byte(quadTOML), EncodingTOML)
	require.NoError(t, err)

	assert.Equal(t, "1.2.0", m.Version)
	assert.Equal(t, renderer.BackendTypeGPUTypes, m.BackendType())
	require.Len(t, m.Buffers, 3)
	require.Len(t, m.Content, 2)
	require.NotNil(t, m.Index)
	assert.Equal(t, 2, m.Index.ElementSize)

	content, index := m.Streams()
	assert.Equal(t, binding.BufferRef{ID: 1, ByteSize: 80}, content[0].Buffer)
	assert.Equal(t, binding.BufferRef{ID: 42, ByteSize: 64}, content[1].Buffer)
	require.NotNil(t, index)
	assert.Equal(t, binding.BufferRef{ID: 3, ByteSize: 12}, index.Buffer)
}

func TestParseYAML(t *testing.T) {
	m, err := Parse([]byte(quadYAML), EncodingYAML)
	require.NoError(t, err)

	assert.True(t, m.SkipErrors)
	assert.Equal(t, 3, m.Instances)
	assert.Equal(t, renderer.BackendTypeWGPU, m.BackendType())
	assert.Nil(t, m.Index)
	assert.Equal(t, []string{"in_vert", "in_normal"}, m.Content[0].Attributes)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("version = \"1.0.0\"\ncolour = \"red\"\n"), EncodingTOML)
	assert.Error(t, err)

	_, err = Parse([]byte("version: \"1.0.0\"\ncolour: red\n"), EncodingYAML)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       Manifest
		wantErr error
	}{
		{"missing version", Manifest{}, ErrUnsupportedVersion},
		{"garbage version", Manifest{Version: "one"}, ErrUnsupportedVersion},
		{"future version", Manifest{Version: "2.0.0"}, ErrUnsupportedVersion},
		{"old version", Manifest{Version: "0.9.0"}, ErrUnsupportedVersion},
		{
			"unknown stream buffer",
			Manifest{Version: "1.0.0", Content: []Stream{{Buffer: "nope", Format: "3f"}}},
			ErrUnknownBuffer,
		},
		{
			"unknown index buffer",
			Manifest{Version: "1.0.0", Index: &Index{Buffer: "nope", ElementSize: 4}},
			ErrUnknownBuffer,
		},
		{
			"duplicate buffer",
			Manifest{Version: "1.0.0", Buffers: []Buffer{{Name: "a"}, {Name: "a"}}},
			ErrInvalidManifest,
		},
		{
			"unnamed buffer",
			Manifest{Version: "1.0.0", Buffers: []Buffer{{Size: 4}}},
			ErrInvalidManifest,
		},
		{
			"negative size",
			Manifest{Version: "1.0.0", Buffers: []Buffer{{Name: "a", Size: -1}}},
			ErrInvalidManifest,
		},
		{
			"shader and attributes",
			Manifest{Version: "1.0.0", Shader: &ShaderSource{WGSL: "a.wgsl"}, Attributes: []Attribute{{Name: "a", Type: "vec2"}}},
			ErrInvalidManifest,
		},
		{"shader without path", Manifest{Version: "1.0.0", Shader: &ShaderSource{}}, ErrInvalidManifest},
		{"negative instances", Manifest{Version: "1.0.0", Instances: -2}, ErrInvalidManifest},
		{"unknown backend", Manifest{Version: "1.0.0", Backend: "metal"}, ErrInvalidManifest},
		{"minimal", Manifest{Version: "1.0.0"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEncodingFor(t *testing.T) {
	enc, err := EncodingFor("a/b.TOML")
	require.NoError(t, err)
	assert.Equal(t, EncodingTOML, enc)

	enc, err = EncodingFor("b.yml")
	require.NoError(t, err)
	assert.Equal(t, EncodingYAML, enc)

	_, err = EncodingFor("b.json")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestMarshalRoundTrip(t *testing.T) {
	m, err := Parse([]byte(quadTOML), EncodingTOML)
	require.NoError(t, err)

	for _, enc := range []Encoding{EncodingTOML, EncodingYAML} {
		t.Run(enc.String(), func(t *testing.T) {
			data, err := Marshal(m, enc)
			require.NoError(t, err)
			got, err := Parse(data, enc)
			require.NoError(t, err)
			assert.Equal(t, m.Content, got.Content)
			assert.Equal(t, m.Buffers, got.Buffers)
			assert.Equal(t, m.Index, got.Index)
		})
	}
}

func TestManifestVertexArray(t *testing.T) {
	m, err := Parse([]byte(quadTOML), EncodingTOML)
	require.NoError(t, err)

	p, err := m.Program()
	require.NoError(t, err)

	r := renderer.NewRenderer(m.BackendType())
	va, err := m.VertexArray(p, vertex_array.WithBackend(r))
	require.NoError(t, err)

	assert.Len(t, va.Bindings(), 3)
	assert.Equal(t, binding.VertexCount{Value: 6, Known: true}, va.Vertices())
	assert.Equal(t, 1, va.Instances())
	assert.Len(t, r.BufferLayouts(), 2)
}

func TestManifestSkipErrors(t *testing.T) {
	m, err := Parse([]byte(quadYAML), EncodingYAML)
	require.NoError(t, err)

	p, err := m.Program()
	require.NoError(t, err)

	va, err := m.VertexArray(p)
	require.NoError(t, err)
	assert.Len(t, va.Bindings(), 1)
	assert.Equal(t, 3, va.Instances())
	assert.Equal(t, binding.VertexCount{Value: 4, Known: true}, va.Vertices())

	m.SkipErrors = false
	_, err = m.VertexArray(p)
	assert.ErrorIs(t, err, vertex_array.ErrUnknownAttribute)
}

func TestManifestBatchRequest(t *testing.T) {
	m, err := Parse([]byte(quadTOML), EncodingTOML)
	require.NoError(t, err)
	p, err := m.Program()
	require.NoError(t, err)

	req, err := m.BatchRequest(p)
	require.NoError(t, err)
	require.Len(t, req.Entries, 2)
	require.NotNil(t, req.Index)

	results := binding.ResolveBatch(binding.NewResolver(), nil, []binding.BatchRequest{req})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Len(t, results[0].Bindings, 3)
	assert.Equal(t, binding.VertexCount{Value: 6, Known: true}, results[0].Count)
}

const triangleWGSL = `
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) color: vec4<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return vec4<f32>(in.position, 1.0) * in.color;
}
`

func TestLoadWithShader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.wgsl"), []byte(triangleWGSL), 0o644))

	manifest := `
version: "1.1.0"
shader:
  wgsl: triangle.wgsl
buffers:
  - name: verts
    size: 84
content:
  - buffer: verts
    format: 3f 4f
    attributes: [position, color]
`
	path := filepath.Join(dir, "triangle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	m, err := Load(path)
	require.NoError(t, err)

	p, err := m.Program()
	require.NoError(t, err)
	assert.Len(t, p.Attributes(), 2)

	va, err := m.VertexArray(p)
	require.NoError(t, err)
	assert.Equal(t, binding.VertexCount{Value: 3, Known: true}, va.Vertices())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "manifest.ini"))
	assert.ErrorIs(t, err, ErrUnknownEncoding)

	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`version = "3.0.0"`), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	path = filepath.Join(dir, "noshader.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = \"1.0.0\"\n[shader]\nwgsl = \"gone.wgsl\"\n"), 0o644))
	m, err := Load(path)
	require.NoError(t, err)
	_, err = m.Program()
	assert.Error(t, err)
}
