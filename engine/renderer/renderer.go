package renderer

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
	"github.com/Carmen-Shannon/oxy-vertex/engine/format"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex_array"
	"github.com/gogpu/gputypes"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	limits      gputypes.Limits

	state layoutState
}

// layoutState is the collected layout of a renderer. ApplyLayout works on a clone and swaps
// it in only when every binding was accepted.
type layoutState struct {
	layouts    []BufferLayout
	byEntry    map[int]int
	byLocation map[uint32]int
}

func newLayoutState() layoutState {
	return layoutState{byEntry: make(map[int]int), byLocation: make(map[uint32]int)}
}

func (s layoutState) clone() layoutState {
	c := layoutState{
		layouts:    make([]BufferLayout, len(s.layouts)),
		byEntry:    maps.Clone(s.byEntry),
		byLocation: maps.Clone(s.byLocation),
	}
	for i, l := range s.layouts {
		c.layouts[i] = l
		c.layouts[i].Attributes = slices.Clone(l.Attributes)
	}
	return c
}

// Renderer collects the attribute layout of a vertex array as WebGPU vertex buffer layouts,
// one per binding entry and one per single attribute bind. It is the vertex_array.Backend
// of the WebGPU family of APIs, which have no per-location attribute state.
type Renderer interface {
	vertex_array.LayoutBackend

	// BackendType returns the GPU API the layouts are exported to by Export.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	BackendType() RendererBackendType

	// BufferLayouts returns a copy of the collected layouts in binding order.
	//
	// Returns:
	//   - []BufferLayout: the layouts
	BufferLayouts() []BufferLayout

	// Export converts the collected layouts to the backend's own types:
	// []wgpu.VertexBufferLayout for BackendTypeWGPU and []gputypes.VertexBufferLayout for
	// BackendTypeGPUTypes.
	//
	// Returns:
	//   - any: the converted layouts
	//   - error: ErrUnsupportedVertexFormat if the backend lacks a collected format
	Export() (any, error)

	// Validate checks the collected layouts against the backend's formats and strides
	// without converting them.
	//
	// Returns:
	//   - error: the first layout the backend cannot represent
	Validate() error

	// Reset discards every collected layout.
	Reset()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer validating layouts against the WebGPU default limits unless
// WithLimits says otherwise.
//
// Parameters:
//   - backendType: the GPU API layouts are exported to
//   - options: builder options
//
// Returns:
//   - Renderer: the renderer
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		limits:      gputypes.DefaultLimits(),
		state:       newLayoutState(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) SetAttributeLayout(b binding.ResolvedBinding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.setAttributeLayout(&r.state, b)
}

func (r *renderer) SetStepRate(location uint32, divisor format.Divisor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return setStepRate(&r.state, location, divisor)
}

// ApplyLayout applies every binding and its step rate, or none of them.
func (r *renderer) ApplyLayout(bindings []binding.ResolvedBinding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := r.state.clone()
	for _, b := range bindings {
		if err := r.setAttributeLayout(&staged, b); err != nil {
			return fmt.Errorf("location %d: %w", b.Location, err)
		}
		if err := setStepRate(&staged, b.Location, b.Divisor); err != nil {
			return fmt.Errorf("location %d: %w", b.Location, err)
		}
	}
	r.state = staged
	return nil
}

func (r *renderer) setAttributeLayout(s *layoutState, b binding.ResolvedBinding) error {
	f, err := VertexFormatFor(b)
	if err != nil {
		return err
	}
	if b.Location >= r.limits.MaxVertexAttributes {
		return fmt.Errorf("%w: location %d, max vertex attributes %d", ErrLimitExceeded, b.Location, r.limits.MaxVertexAttributes)
	}
	if _, ok := s.byLocation[b.Location]; ok {
		return fmt.Errorf("location %d is already bound", b.Location)
	}
	if uint64(b.Stride) > uint64(r.limits.MaxVertexBufferArrayStride) {
		return fmt.Errorf("%w: stride %d, max array stride %d", ErrLimitExceeded, b.Stride, r.limits.MaxVertexBufferArrayStride)
	}

	idx, ok := s.byEntry[b.Entry]
	if !ok || b.Entry < 0 {
		if uint32(len(s.layouts)) >= r.limits.MaxVertexBuffers {
			return fmt.Errorf("%w: max vertex buffers %d", ErrLimitExceeded, r.limits.MaxVertexBuffers)
		}
		idx = len(s.layouts)
		s.layouts = append(s.layouts, BufferLayout{
			Entry:       b.Entry,
			Buffer:      b.Buffer,
			ArrayStride: uint64(b.Stride),
			StepMode:    StepModeVertex,
		})
		if b.Entry >= 0 {
			s.byEntry[b.Entry] = idx
		}
	}

	l := &s.layouts[idx]
	l.Attributes = append(l.Attributes, VertexAttribute{
		Format:         f,
		Offset:         uint64(b.Offset),
		ShaderLocation: b.Location,
	})
	s.byLocation[b.Location] = idx
	return nil
}

func setStepRate(s *layoutState, location uint32, divisor format.Divisor) error {
	idx, ok := s.byLocation[location]
	if !ok {
		return fmt.Errorf("step rate for unbound location %d", location)
	}
	l := &s.layouts[idx]

	switch divisor {
	case format.DivisorVertex:
		l.StepMode = StepModeVertex
	case format.DivisorInstance:
		l.StepMode = StepModeInstance
	case format.DivisorWholeBuffer:
		l.StepMode = StepModeVertex
		l.ArrayStride = 0
	default:
		return fmt.Errorf("%w: %s at location %d", ErrUnsupportedStepRate, divisor, location)
	}
	return nil
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) BufferLayouts() []BufferLayout {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.clone().layouts
}

func (r *renderer) Export() (any, error) {
	layouts := r.BufferLayouts()
	switch r.backendType {
	case BackendTypeWGPU:
		return WGPUVertexBufferLayouts(layouts)
	case BackendTypeGPUTypes:
		return GPUTypesVertexBufferLayouts(layouts)
	default:
		return nil, fmt.Errorf("unknown renderer backend %s", r.backendType)
	}
}

func (r *renderer) Validate() error {
	layouts := r.BufferLayouts()
	switch r.backendType {
	case BackendTypeWGPU:
		return validateWGPULayouts(layouts)
	case BackendTypeGPUTypes:
		return validateGPUTypesLayouts(layouts)
	default:
		return fmt.Errorf("unknown renderer backend %s", r.backendType)
	}
}

func (r *renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = newLayoutState()
}
