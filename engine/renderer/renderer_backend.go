package renderer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
)

// RendererBackendType identifies the GPU API a layout is exported to.
type RendererBackendType int

const (
	// BackendTypeWGPU exports layouts as github.com/cogentcore/webgpu/wgpu types.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeGPUTypes exports layouts as pure Go github.com/gogpu/gputypes types.
	BackendTypeGPUTypes
)

func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeGPUTypes:
		return "gputypes"
	default:
		return fmt.Sprintf("RendererBackendType(%d)", int(t))
	}
}

// ParseRendererBackendType parses a backend name as printed by String.
//
// Parameters:
//   - s: the backend name, case insensitive
//
// Returns:
//   - RendererBackendType: the backend type
//   - error: an error if the name is unknown
func ParseRendererBackendType(s string) (RendererBackendType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wgpu", "webgpu":
		return BackendTypeWGPU, nil
	case "gputypes":
		return BackendTypeGPUTypes, nil
	default:
		return 0, fmt.Errorf("unknown renderer backend %q", s)
	}
}

// StepMode is how a vertex buffer advances.
type StepMode int

const (
	// StepModeVertex advances once per vertex.
	StepModeVertex StepMode = iota

	// StepModeInstance advances once per instance.
	StepModeInstance
)

func (m StepMode) String() string {
	if m == StepModeInstance {
		return "instance"
	}
	return "vertex"
}

// VertexAttribute is one attribute of a BufferLayout.
type VertexAttribute struct {
	Format         VertexFormat
	Offset         uint64
	ShaderLocation uint32
}

// BufferLayout is the backend independent layout of one vertex buffer.
type BufferLayout struct {
	// Entry is the binding entry the layout was built from, -1 for single attribute binds.
	Entry  int
	Buffer binding.Buffer
	// ArrayStride is zero for whole-buffer streams: every vertex reads the same element.
	ArrayStride uint64
	StepMode    StepMode
	Attributes  []VertexAttribute
}
