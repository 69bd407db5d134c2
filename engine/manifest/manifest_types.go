package manifest

// Manifest is the on-disk description of a vertex array: the program attributes, the
// buffers the streams read from and how each stream is laid out. Buffers are described by
// size only; their contents are never read.
type Manifest struct {
	// Version is the manifest format version, checked against SupportedVersions.
	Version string `toml:"version" yaml:"version"`

	// Backend names the renderer backend layouts are exported to; "wgpu" when empty.
	Backend string `toml:"backend,omitempty" yaml:"backend,omitempty"`

	// SkipErrors turns content attributes the program lacks into gaps.
	SkipErrors bool `toml:"skip_errors,omitempty" yaml:"skip_errors,omitempty"`

	// Instances is the implicit instance count; 1 when zero.
	Instances int `toml:"instances,omitempty" yaml:"instances,omitempty"`

	// Shader reflects the program from WGSL source. Mutually exclusive with Attributes.
	Shader *ShaderSource `toml:"shader,omitempty" yaml:"shader,omitempty"`

	// Attributes declares the program attributes by GLSL type name.
	Attributes []Attribute `toml:"attributes,omitempty" yaml:"attributes,omitempty"`

	Buffers []Buffer `toml:"buffers" yaml:"buffers"`
	Content []Stream `toml:"content" yaml:"content"`
	Index   *Index   `toml:"index,omitempty" yaml:"index,omitempty"`

	// dir is the directory relative shader paths are resolved against.
	dir string
}

// ShaderSource points at the WGSL source of the program.
type ShaderSource struct {
	// WGSL is the path of the WGSL source, relative to the manifest.
	WGSL string `toml:"wgsl" yaml:"wgsl"`

	// EntryPoint is the vertex entry point; the first one when empty.
	EntryPoint string `toml:"entry_point,omitempty" yaml:"entry_point,omitempty"`
}

// Attribute is one declared program attribute.
type Attribute struct {
	Name     string `toml:"name" yaml:"name"`
	Location uint32 `toml:"location" yaml:"location"`
	Type     string `toml:"type" yaml:"type"`
}

// Buffer is a named buffer of a given size.
type Buffer struct {
	Name string `toml:"name" yaml:"name"`
	Size int    `toml:"size" yaml:"size"`

	// Handle is the backend handle reported for the buffer; its 1-based position when zero.
	Handle uint32 `toml:"handle,omitempty" yaml:"handle,omitempty"`
}

// Stream is one content entry: a buffer, its format string and the attributes it feeds.
type Stream struct {
	Buffer     string   `toml:"buffer" yaml:"buffer"`
	Format     string   `toml:"format" yaml:"format"`
	Attributes []string `toml:"attributes" yaml:"attributes"`
}

// Index names the index buffer of an indexed vertex array.
type Index struct {
	Buffer      string `toml:"buffer" yaml:"buffer"`
	ElementSize int    `toml:"element_size" yaml:"element_size"`
}
