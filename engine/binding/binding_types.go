package binding

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-vertex/engine/format"
)

// ScalarClass is the scalar class of a shader attribute as reported by reflection.
// It selects which backend binding call family an attribute is bound with.
type ScalarClass int

const (
	// ScalarFloat is a single precision float attribute (float, vecN, matN).
	ScalarFloat ScalarClass = iota

	// ScalarDouble is a double precision attribute (double, dvecN, dmatN).
	ScalarDouble

	// ScalarInt is a signed integer attribute (int, ivecN).
	ScalarInt

	// ScalarUint is an unsigned integer attribute (uint, uvecN).
	ScalarUint
)

func (s ScalarClass) String() string {
	switch s {
	case ScalarFloat:
		return "float"
	case ScalarDouble:
		return "double"
	case ScalarInt:
		return "int"
	case ScalarUint:
		return "uint"
	default:
		return fmt.Sprintf("ScalarClass(%d)", int(s))
	}
}

// CallFamily identifies which family of backend "set attribute layout" calls a binding needs.
type CallFamily int

const (
	// CallFloat binds through the float path; integer nodes are converted, optionally normalized.
	CallFloat CallFamily = iota

	// CallInteger binds integer nodes to integer attributes without conversion.
	CallInteger

	// CallDouble binds double precision nodes to double attributes.
	CallDouble
)

func (c CallFamily) String() string {
	switch c {
	case CallFloat:
		return "float"
	case CallInteger:
		return "integer"
	case CallDouble:
		return "double"
	default:
		return fmt.Sprintf("CallFamily(%d)", int(c))
	}
}

// Family returns the binding call family used for attributes of this scalar class.
func (s ScalarClass) Family() CallFamily {
	switch s {
	case ScalarDouble:
		return CallDouble
	case ScalarInt, ScalarUint:
		return CallInteger
	default:
		return CallFloat
	}
}

// AttributeSpec is the reflection data of one shader attribute. It is owned by the caller
// and only read by the resolver.
type AttributeSpec struct {
	// Location is the first shader location of the attribute.
	Location uint32
	// Rows is the number of consecutive locations the attribute spans; 1 for scalars and
	// vectors, the column count for matrices.
	Rows int
	// Scalar is the attribute's scalar class.
	Scalar ScalarClass
}

// Buffer is the view of a GPU buffer object the resolver needs: an opaque handle and its size.
// Buffer contents are never read.
type Buffer interface {
	// Handle returns the backend's opaque identifier for the buffer.
	Handle() uint32

	// Size returns the size of the buffer in bytes.
	Size() int
}

// BufferRef is a plain Buffer value for callers that only know a handle and a size.
type BufferRef struct {
	ID       uint32
	ByteSize int
}

var _ Buffer = BufferRef{}

func (b BufferRef) Handle() uint32 {
	return b.ID
}

func (b BufferRef) Size() int {
	return b.ByteSize
}

// BindingEntry pairs one buffer and its format string with the attributes fed from it.
type BindingEntry struct {
	// Buffer is the buffer the stream is read from.
	Buffer Buffer
	// Format is the layout of one element of the stream, e.g. "3f 2f/i".
	Format string
	// Attributes holds one slot per non-padding node of Format, in order. A nil slot is a
	// gap: the node's bytes are skipped and nothing is bound.
	Attributes []*AttributeSpec
}

// ResolvedBinding is the concrete binding descriptor of one attribute row.
type ResolvedBinding struct {
	// Entry is the index of the BindingEntry the binding was resolved from.
	Entry int
	// Buffer is the buffer of that entry.
	Buffer Buffer
	// Location is the shader location of this row.
	Location uint32
	// Components is the number of components read for this row.
	Components int
	// Kind is the storage type of each component in the buffer.
	Kind format.ScalarKind
	// Normalize is set when integer storage is mapped to 0.0..1.0 through the float path.
	Normalize bool
	// Stride is the byte distance between consecutive elements of the stream.
	Stride int
	// Offset is the byte offset of this row inside one element.
	Offset int
	// Divisor is the step rate of the stream.
	Divisor format.Divisor
	// Call is the backend binding call family to use.
	Call CallFamily
}

// IndexBuffer describes the element buffer of an indexed draw.
type IndexBuffer struct {
	Buffer Buffer
	// ElementSize is the byte width of one index: 1, 2 or 4.
	ElementSize int
}
