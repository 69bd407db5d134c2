package vertex_array

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-vertex/common"
	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
	"github.com/Carmen-Shannon/oxy-vertex/engine/shader"
)

// Content is one vertex stream of a vertex array: a buffer, the format of its elements and
// the program attributes fed from it, one name per non-padding format node. An empty name
// skips its node.
type Content struct {
	Buffer     binding.Buffer
	Format     string
	Attributes []string
}

// vertexArray is the implementation of the VertexArray interface.
type vertexArray struct {
	mu *sync.RWMutex

	program    shader.Program
	content    []Content
	backend    Backend
	resolver   binding.Resolver
	skipErrors bool

	index     *binding.IndexBuffer
	entries   []binding.BindingEntry
	bindings  []binding.ResolvedBinding
	vertices  binding.VertexCount
	instances int
}

// VertexArray ties vertex streams to the attributes of a program and resolves draw calls
// against them.
type VertexArray interface {
	// Program returns the program the attributes were looked up in.
	//
	// Returns:
	//   - shader.Program: the program
	Program() shader.Program

	// Bindings returns the resolved bindings in the order they were applied to the backend.
	//
	// Returns:
	//   - []binding.ResolvedBinding: the bindings
	Bindings() []binding.ResolvedBinding

	// IndexBuffer returns the index buffer, or nil for non-indexed vertex arrays.
	//
	// Returns:
	//   - *binding.IndexBuffer: the index buffer
	IndexBuffer() *binding.IndexBuffer

	// SetIndexBuffer replaces the index buffer and re-derives the vertex count from it.
	// A nil buffer removes the index buffer and re-derives the count from the streams.
	//
	// Parameters:
	//   - buffer: the new index buffer, or nil
	//   - elementSize: the byte width of one index: 1, 2 or 4
	//
	// Returns:
	//   - error: binding.ErrInvalidIndexElementSize for other widths
	SetIndexBuffer(buffer binding.Buffer, elementSize int) error

	// Vertices returns the implicit vertex count used when a draw passes a negative count.
	//
	// Returns:
	//   - binding.VertexCount: the count, unknown when nothing determines it
	Vertices() binding.VertexCount

	// SetVertices overrides the implicit vertex count. A negative count makes it unknown.
	//
	// Parameters:
	//   - n: the new vertex count
	SetVertices(n int)

	// Instances returns the implicit instance count, 1 unless changed.
	//
	// Returns:
	//   - int: the instance count
	Instances() int

	// SetInstances overrides the implicit instance count.
	//
	// Parameters:
	//   - n: the new instance count
	SetInstances(n int)

	// Draw resolves a direct draw. Negative vertices or instances select the implicit counts.
	//
	// Parameters:
	//   - vertices: the vertex (or index) count, negative for the implicit count
	//   - first: the first vertex (or index)
	//   - instances: the instance count, negative for the implicit count
	//
	// Returns:
	//   - DrawCall: the resolved draw
	//   - error: binding.ErrAmbiguousVertexCount when the implicit vertex count is unknown
	Draw(vertices, first, instances int) (DrawCall, error)

	// DrawIndirect resolves an indirect draw. A negative count executes every command from
	// first to the end of the buffer.
	//
	// Parameters:
	//   - buffer: the buffer holding the draw commands
	//   - count: the number of commands, negative for all remaining commands
	//   - first: the index of the first command
	//
	// Returns:
	//   - IndirectCall: the resolved indirect draw
	//   - error: an error if the range is invalid
	DrawIndirect(buffer binding.Buffer, count, first int) (IndirectCall, error)

	// Bind binds a single attribute location outside of the content streams.
	//
	// Parameters:
	//   - req: the attribute binding
	//
	// Returns:
	//   - error: ErrInvalidBindFormat, ErrInvalidNormalize or a backend error
	Bind(req BindRequest) error
}

var _ VertexArray = &vertexArray{}

// NewVertexArray resolves the content streams against the program attributes, applies the
// resulting bindings to the backend and infers the implicit vertex count.
//
// Parameters:
//   - program: the program whose attributes the content names
//   - content: the vertex streams
//   - opts: builder options
//
// Returns:
//   - VertexArray: the vertex array
//   - error: an attribute lookup, resolution, vertex count or backend error
func NewVertexArray(program shader.Program, content []Content, opts ...VertexArrayBuilderOption) (VertexArray, error) {
	v := &vertexArray{
		mu:        &sync.RWMutex{},
		program:   program,
		content:   content,
		backend:   nopBackend{},
		instances: 1,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.resolver == nil {
		v.resolver = binding.NewResolver(binding.WithRequireAttributes(true))
	}

	if err := v.build(); err != nil {
		return nil, err
	}

	common.Logger().Info("vertex array assembled",
		"streams", len(v.entries),
		"bindings", len(v.bindings),
		"vertices", v.vertices.Value,
		"vertices_known", v.vertices.Known,
		"indexed", v.index != nil,
	)
	return v, nil
}

func (v *vertexArray) build() error {
	if v.program == nil {
		return fmt.Errorf("vertex array: program must not be nil")
	}
	if v.index != nil && !binding.ValidIndexElementSize(v.index.ElementSize) {
		return fmt.Errorf("%w, not %d", binding.ErrInvalidIndexElementSize, v.index.ElementSize)
	}

	entries, err := BindingEntries(v.program, v.content, v.skipErrors)
	if err != nil {
		return err
	}

	infos, err := v.resolver.Describe(entries)
	if err != nil {
		return err
	}
	bindings, err := v.resolver.Resolve(entries)
	if err != nil {
		return err
	}
	count, err := binding.InferVertexCountFromInfos(v.index, entries, infos)
	if err != nil {
		return err
	}

	if err := v.apply(bindings...); err != nil {
		return err
	}

	v.entries = entries
	v.bindings = bindings
	v.vertices = count
	return nil
}

// BindingEntries looks up the attribute names of content streams in a program. Empty
// names become gaps. Unknown names are an error unless skipErrors is set, in which case
// they become gaps as well.
//
// Parameters:
//   - program: the program to look attributes up in
//   - content: the vertex streams
//   - skipErrors: true to turn unknown attributes into gaps
//
// Returns:
//   - []binding.BindingEntry: one binding entry per stream
//   - error: ErrUnknownAttribute
func BindingEntries(program shader.Program, content []Content, skipErrors bool) ([]binding.BindingEntry, error) {
	entries := make([]binding.BindingEntry, len(content))
	for i, c := range content {
		attrs := make([]*binding.AttributeSpec, len(c.Attributes))
		for j, name := range c.Attributes {
			if name == "" {
				continue
			}
			spec, ok := program.Attribute(name)
			if !ok {
				if skipErrors {
					common.Logger().Warn("attribute not found in program, skipping", "stream", i, "attribute", name)
					continue
				}
				return nil, fmt.Errorf("content %d: %w %q", i, ErrUnknownAttribute, name)
			}
			attrs[j] = &spec
		}
		entries[i] = binding.BindingEntry{Buffer: c.Buffer, Format: c.Format, Attributes: attrs}
	}
	return entries, nil
}

func (v *vertexArray) apply(bindings ...binding.ResolvedBinding) error {
	for _, b := range bindings {
		common.Logger().Debug("binding attribute",
			"location", b.Location,
			"components", b.Components,
			"kind", b.Kind.String(),
			"stride", b.Stride,
			"offset", b.Offset,
			"divisor", b.Divisor.String(),
			"call", b.Call.String(),
		)
	}

	if lb, ok := v.backend.(LayoutBackend); ok {
		return lb.ApplyLayout(bindings)
	}
	for _, b := range bindings {
		if err := v.backend.SetAttributeLayout(b); err != nil {
			return fmt.Errorf("location %d: %w", b.Location, err)
		}
		if err := v.backend.SetStepRate(b.Location, b.Divisor); err != nil {
			return fmt.Errorf("location %d: %w", b.Location, err)
		}
	}
	return nil
}

func (v *vertexArray) Program() shader.Program {
	return v.program
}

func (v *vertexArray) Bindings() []binding.ResolvedBinding {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.bindings)
}

func (v *vertexArray) IndexBuffer() *binding.IndexBuffer {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.index == nil {
		return nil
	}
	index := *v.index
	return &index
}

func (v *vertexArray) SetIndexBuffer(buffer binding.Buffer, elementSize int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	var index *binding.IndexBuffer
	if buffer != nil {
		index = &binding.IndexBuffer{Buffer: buffer, ElementSize: elementSize}
	}
	count, err := binding.InferVertexCount(index, v.entries)
	if err != nil {
		return err
	}

	v.index = index
	v.vertices = count
	return nil
}

func (v *vertexArray) Vertices() binding.VertexCount {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.vertices
}

func (v *vertexArray) SetVertices(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n < 0 {
		v.vertices = binding.VertexCount{}
		return
	}
	v.vertices = binding.VertexCount{Value: n, Known: true}
}

func (v *vertexArray) Instances() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.instances
}

func (v *vertexArray) SetInstances(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.instances = n
}
