package vertex_array

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
)

// IndirectCommandSize is the byte size of one indirect draw command: five 32-bit words.
const IndirectCommandSize = 20

// DrawCall is a fully resolved direct draw.
type DrawCall struct {
	// Vertices is the number of vertices, or indices for indexed draws.
	Vertices int
	// First is the first vertex, or the first index for indexed draws.
	First int
	// Instances is the number of instances.
	Instances int
	// Indexed is set when the draw reads an index buffer.
	Indexed bool
	// IndexElementSize is the byte width of one index; zero for non-indexed draws.
	IndexElementSize int
	// IndexOffset is the byte offset of First in the index buffer.
	IndexOffset int
}

// IndirectCall is a fully resolved indirect draw.
type IndirectCall struct {
	// Buffer holds the draw commands.
	Buffer binding.Buffer
	// Count is the number of commands to execute.
	Count int
	// First is the index of the first command.
	First int
	// Offset is the byte offset of the first command.
	Offset int
	// Stride is the byte distance between commands.
	Stride int
	// Indexed is set when the commands are indexed draw commands.
	Indexed bool
	// IndexElementSize is the byte width of one index; zero for non-indexed draws.
	IndexElementSize int
}

func (v *vertexArray) Draw(vertices, first, instances int) (DrawCall, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if vertices < 0 {
		n, err := v.vertices.Require()
		if err != nil {
			return DrawCall{}, err
		}
		vertices = n
	}
	if instances < 0 {
		instances = v.instances
	}
	if first < 0 {
		return DrawCall{}, fmt.Errorf("%w: first %d", ErrInvalidDrawRange, first)
	}

	call := DrawCall{Vertices: vertices, First: first, Instances: instances}
	if v.index != nil {
		call.Indexed = true
		call.IndexElementSize = v.index.ElementSize
		call.IndexOffset = first * v.index.ElementSize
	}
	return call, nil
}

func (v *vertexArray) DrawIndirect(buffer binding.Buffer, count, first int) (IndirectCall, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if buffer == nil {
		return IndirectCall{}, fmt.Errorf("indirect buffer: %w", binding.ErrMissingBuffer)
	}
	if first < 0 {
		return IndirectCall{}, fmt.Errorf("%w: first %d", ErrInvalidDrawRange, first)
	}
	if count < 0 {
		count = buffer.Size()/IndirectCommandSize - first
		if count < 0 {
			return IndirectCall{}, fmt.Errorf("%w: first command %d past the end of a %d byte buffer", ErrInvalidDrawRange, first, buffer.Size())
		}
	}

	call := IndirectCall{
		Buffer: buffer,
		Count:  count,
		First:  first,
		Offset: first * IndirectCommandSize,
		Stride: IndirectCommandSize,
	}
	if v.index != nil {
		call.Indexed = true
		call.IndexElementSize = v.index.ElementSize
	}
	return call, nil
}
