package vertex_array

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
	"github.com/Carmen-Shannon/oxy-vertex/engine/format"
)

// BindRequest describes a single attribute binding made outside of the content streams.
type BindRequest struct {
	Location uint32
	Call     binding.CallFamily
	Buffer   binding.Buffer
	// Format must start with its only attribute node and carry no instance or whole-buffer
	// tail, e.g. "4f1". The step rate comes from Divisor.
	Format    string
	Offset    int
	Stride    int
	Divisor   format.Divisor
	Normalize bool
}

func (v *vertexArray) Bind(req BindRequest) error {
	b, err := resolveBind(req)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.apply(b); err != nil {
		return err
	}
	v.bindings = append(v.bindings, b)
	return nil
}

func resolveBind(req BindRequest) (binding.ResolvedBinding, error) {
	if req.Buffer == nil {
		return binding.ResolvedBinding{}, fmt.Errorf("bind location %d: %w", req.Location, binding.ErrMissingBuffer)
	}

	nodes, info, err := format.Nodes(req.Format)
	if err != nil {
		return binding.ResolvedBinding{}, fmt.Errorf("bind location %d: %w", req.Location, err)
	}
	if info.Nodes != 1 || info.Divisor != format.DivisorVertex || nodes[0].IsPadding() {
		return binding.ResolvedBinding{}, fmt.Errorf("%w %q", ErrInvalidBindFormat, req.Format)
	}
	node := nodes[0]

	if req.Normalize && (req.Call != binding.CallFloat || node.Kind.IsFloat()) {
		return binding.ResolvedBinding{}, fmt.Errorf("%w: %s node through the %s path", ErrInvalidNormalize, node.Kind, req.Call)
	}
	if req.Offset < 0 || req.Stride < 0 {
		return binding.ResolvedBinding{}, fmt.Errorf("%w: offset %d stride %d", ErrInvalidDrawRange, req.Offset, req.Stride)
	}

	return binding.ResolvedBinding{
		Entry:      -1,
		Buffer:     req.Buffer,
		Location:   req.Location,
		Components: node.Count,
		Kind:       node.Kind,
		Normalize:  req.Call == binding.CallFloat && (req.Normalize || node.Normalize),
		Stride:     req.Stride,
		Offset:     req.Offset,
		Divisor:    req.Divisor,
		Call:       req.Call,
	}, nil
}
