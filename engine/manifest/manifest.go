package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-vertex/common"
	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
	"github.com/Carmen-Shannon/oxy-vertex/engine/renderer"
	"github.com/Carmen-Shannon/oxy-vertex/engine/shader"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex_array"
)

// SupportedVersions is the semver constraint manifest versions must satisfy.
const SupportedVersions = "^1.0"

// Encoding is the serialization of a manifest file.
type Encoding int

const (
	EncodingTOML Encoding = iota
	EncodingYAML
)

func (e Encoding) String() string {
	if e == EncodingYAML {
		return "yaml"
	}
	return "toml"
}

// EncodingFor picks the encoding of a manifest file from its extension.
//
// Parameters:
//   - path: the manifest path
//
// Returns:
//   - Encoding: the encoding
//   - error: ErrUnknownEncoding for other extensions
func EncodingFor(path string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return EncodingTOML, nil
	case ".yaml", ".yml":
		return EncodingYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, path)
	}
}

// Load reads and validates a manifest file. Relative shader paths in the manifest are
// resolved against the file's directory.
//
// Parameters:
//   - path: the manifest path, ending in .toml, .yaml or .yml
//
// Returns:
//   - *Manifest: the validated manifest
//   - error: a read, decode or validation error
func Load(path string) (*Manifest, error) {
	enc, err := EncodingFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m, err := Parse(data, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.dir = filepath.Dir(path)

	common.Logger().Info("manifest loaded",
		"path", path,
		"version", m.Version,
		"buffers", len(m.Buffers),
		"streams", len(m.Content),
	)
	return m, nil
}

// Parse decodes and validates a manifest. Unknown fields are rejected.
//
// Parameters:
//   - data: the encoded manifest
//   - enc: the encoding of data
//
// Returns:
//   - *Manifest: the validated manifest
//   - error: a decode or validation error
func Parse(data []byte, enc Encoding) (*Manifest, error) {
	m := &Manifest{}

	switch enc {
	case EncodingTOML:
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(m); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case EncodingYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(m); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownEncoding, int(enc))
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Marshal encodes a manifest.
//
// Parameters:
//   - m: the manifest
//   - enc: the encoding to produce
//
// Returns:
//   - []byte: the encoded manifest
//   - error: an encode error
func Marshal(m *Manifest, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingTOML:
		return toml.Marshal(m)
	case EncodingYAML:
		return yaml.Marshal(m)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownEncoding, int(enc))
	}
}

// Validate checks the version and the references between the sections of the manifest.
//
// Returns:
//   - error: ErrUnsupportedVersion, ErrUnknownBuffer or ErrInvalidManifest
func (m *Manifest) Validate() error {
	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrUnsupportedVersion, m.Version, err)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w %s, want %s", ErrUnsupportedVersion, v, SupportedVersions)
	}

	if m.Shader != nil && len(m.Attributes) > 0 {
		return fmt.Errorf("%w: shader and attributes are mutually exclusive", ErrInvalidManifest)
	}
	if m.Shader != nil && m.Shader.WGSL == "" {
		return fmt.Errorf("%w: shader without a wgsl path", ErrInvalidManifest)
	}
	if m.Instances < 0 {
		return fmt.Errorf("%w: negative instance count %d", ErrInvalidManifest, m.Instances)
	}
	if _, err := renderer.ParseRendererBackendType(m.backendName()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	names := make(map[string]struct{}, len(m.Buffers))
	for i, b := range m.Buffers {
		if b.Name == "" {
			return fmt.Errorf("%w: buffer %d has no name", ErrInvalidManifest, i)
		}
		if _, dup := names[b.Name]; dup {
			return fmt.Errorf("%w: duplicate buffer %q", ErrInvalidManifest, b.Name)
		}
		if b.Size < 0 {
			return fmt.Errorf("%w: buffer %q has negative size %d", ErrInvalidManifest, b.Name, b.Size)
		}
		names[b.Name] = struct{}{}
	}
	for i, s := range m.Content {
		if _, ok := names[s.Buffer]; !ok {
			return fmt.Errorf("content %d: %w %q", i, ErrUnknownBuffer, s.Buffer)
		}
	}
	if m.Index != nil {
		if _, ok := names[m.Index.Buffer]; !ok {
			return fmt.Errorf("index: %w %q", ErrUnknownBuffer, m.Index.Buffer)
		}
	}
	return nil
}

// BackendType returns the renderer backend the manifest selects.
func (m *Manifest) BackendType() renderer.RendererBackendType {
	t, _ := renderer.ParseRendererBackendType(m.backendName())
	return t
}

func (m *Manifest) backendName() string {
	return common.Coalesce(m.Backend, renderer.BackendTypeWGPU.String())
}

// Program builds the program the manifest describes, reflected from WGSL or declared.
//
// Returns:
//   - shader.Program: the program
//   - error: a shader read, reflection or declaration error
func (m *Manifest) Program() (shader.Program, error) {
	if m.Shader == nil {
		opts := make([]shader.ProgramBuilderOption, 0, len(m.Attributes))
		for _, a := range m.Attributes {
			opts = append(opts, shader.WithAttribute(a.Name, a.Location, a.Type))
		}
		return shader.NewProgram(opts...)
	}

	path := m.Shader.WGSL
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.dir, path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shader: %w", err)
	}
	return shader.ReflectWGSL(string(src), m.Shader.EntryPoint)
}

// Streams returns the content streams of the manifest with their buffers resolved.
//
// Returns:
//   - []vertex_array.Content: the streams
//   - *binding.IndexBuffer: the index buffer, or nil
func (m *Manifest) Streams() ([]vertex_array.Content, *binding.IndexBuffer) {
	buffers := m.buffers()

	content := make([]vertex_array.Content, len(m.Content))
	for i, s := range m.Content {
		content[i] = vertex_array.Content{Buffer: buffers[s.Buffer], Format: s.Format, Attributes: s.Attributes}
	}

	var index *binding.IndexBuffer
	if m.Index != nil {
		index = &binding.IndexBuffer{Buffer: buffers[m.Index.Buffer], ElementSize: m.Index.ElementSize}
	}
	return content, index
}

func (m *Manifest) buffers() map[string]binding.Buffer {
	out := make(map[string]binding.Buffer, len(m.Buffers))
	for i, b := range m.Buffers {
		out[b.Name] = binding.BufferRef{ID: common.Coalesce(b.Handle, uint32(i+1)), ByteSize: b.Size}
	}
	return out
}

// VertexArray builds the vertex array the manifest describes.
//
// Parameters:
//   - program: the program, typically from Program
//   - opts: extra builder options, applied after the manifest's own
//
// Returns:
//   - vertex_array.VertexArray: the vertex array
//   - error: any vertex array construction error
func (m *Manifest) VertexArray(program shader.Program, opts ...vertex_array.VertexArrayBuilderOption) (vertex_array.VertexArray, error) {
	content, index := m.Streams()

	base := []vertex_array.VertexArrayBuilderOption{
		vertex_array.WithSkipErrors(m.SkipErrors),
		vertex_array.WithInstances(common.Coalesce(m.Instances, 1)),
	}
	if index != nil {
		base = append(base, vertex_array.WithIndexBuffer(index.Buffer, index.ElementSize))
	}
	return vertex_array.NewVertexArray(program, content, append(base, opts...)...)
}

// BatchRequest turns the manifest into a resolution request for binding.ResolveBatch.
//
// Parameters:
//   - program: the program, typically from Program
//
// Returns:
//   - binding.BatchRequest: the request
//   - error: an attribute lookup error
func (m *Manifest) BatchRequest(program shader.Program) (binding.BatchRequest, error) {
	content, index := m.Streams()
	entries, err := vertex_array.BindingEntries(program, content, m.SkipErrors)
	if err != nil {
		return binding.BatchRequest{}, err
	}
	return binding.BatchRequest{Entries: entries, Index: index}, nil
}
