package format

import "fmt"

// ScalarKind identifies the storage type of a single component of a format node.
type ScalarKind int

const (
	// KindPadding marks a node that reserves bytes but binds nothing.
	KindPadding ScalarKind = iota

	// KindFloat16 is a 2-byte IEEE half float component ("f2").
	KindFloat16

	// KindFloat32 is a 4-byte IEEE float component ("f", "f4").
	KindFloat32

	// KindFloat64 is an 8-byte IEEE double component ("f8").
	KindFloat64

	// KindInt8 is a signed byte component ("i1").
	KindInt8

	// KindInt16 is a signed 2-byte component ("i2").
	KindInt16

	// KindInt32 is a signed 4-byte component ("i", "i4").
	KindInt32

	// KindUint8 is an unsigned byte component ("u1", and "f1" when normalized).
	KindUint8

	// KindUint16 is an unsigned 2-byte component ("u2").
	KindUint16

	// KindUint32 is an unsigned 4-byte component ("u", "u4").
	KindUint32
)

var scalarKindNames = [...]string{
	KindPadding: "padding",
	KindFloat16: "f16",
	KindFloat32: "f32",
	KindFloat64: "f64",
	KindInt8:    "i8",
	KindInt16:   "i16",
	KindInt32:   "i32",
	KindUint8:   "u8",
	KindUint16:  "u16",
	KindUint32:  "u32",
}

func (k ScalarKind) String() string {
	if k < 0 || int(k) >= len(scalarKindNames) {
		return fmt.Sprintf("ScalarKind(%d)", int(k))
	}
	return scalarKindNames[k]
}

// IsFloat reports whether the kind is stored as a floating point value.
func (k ScalarKind) IsFloat() bool {
	return k == KindFloat16 || k == KindFloat32 || k == KindFloat64
}

// IsInteger reports whether the kind is stored as a signed or unsigned integer.
func (k ScalarKind) IsInteger() bool {
	return k >= KindInt8 && k <= KindUint32
}

// IsSigned reports whether the kind is a signed integer.
func (k ScalarKind) IsSigned() bool {
	return k >= KindInt8 && k <= KindInt32
}

// Divisor is the step rate of a format string: how many instances must be drawn before
// an attribute read from the stream advances to the next element.
type Divisor uint32

const (
	// DivisorVertex advances once per vertex. Used for "/v" and for strings without a tail.
	DivisorVertex Divisor = 0

	// DivisorInstance advances once per instance ("/i").
	DivisorInstance Divisor = 1

	// DivisorWholeBuffer never advances: the whole buffer is one logical element ("/r").
	// The value matches the oversized divisor adjoining GL-style backends expect.
	DivisorWholeBuffer Divisor = 0x7fffffff
)

func (d Divisor) String() string {
	switch d {
	case DivisorVertex:
		return "vertex"
	case DivisorInstance:
		return "instance"
	case DivisorWholeBuffer:
		return "whole-buffer"
	default:
		return fmt.Sprintf("Divisor(%d)", uint32(d))
	}
}

// PerVertex reports whether the stream advances once per vertex.
func (d Divisor) PerVertex() bool {
	return d == DivisorVertex
}

// Node is one parsed unit of a format string: either an attribute's storage shape or padding.
// Nodes are produced one at a time by a Cursor and are not retained by the parser.
type Node struct {
	// ByteSize is the total number of bytes the node occupies (component width * Count).
	ByteSize int
	// Count is the repeat count of the node, at least 1.
	Count int
	// Kind is the component storage type, KindPadding for "x" nodes.
	Kind ScalarKind
	// Normalize is set for "f1" nodes: unsigned bytes mapped to 0.0..1.0.
	Normalize bool
}

// IsPadding reports whether the node reserves space without binding an attribute.
func (n Node) IsPadding() bool {
	return n.Kind == KindPadding
}

// ComponentSize returns the byte width of a single component of the node.
func (n Node) ComponentSize() int {
	if n.Count == 0 {
		return 0
	}
	return n.ByteSize / n.Count
}

func (n Node) String() string {
	if n.Normalize {
		return fmt.Sprintf("%d x %s (normalized, %d bytes)", n.Count, n.Kind, n.ByteSize)
	}
	return fmt.Sprintf("%d x %s (%d bytes)", n.Count, n.Kind, n.ByteSize)
}

// Info is the aggregate description of a whole format string.
type Info struct {
	// Size is the stride of one element: the sum of every node's ByteSize, padding included.
	Size int
	// Nodes is the number of non-padding nodes, i.e. the number of attribute slots the string expects.
	Nodes int
	// Divisor is the step rate parsed from the optional tail.
	Divisor Divisor
	// Valid is false when the string failed to parse; all other fields are zero then.
	Valid bool
}
