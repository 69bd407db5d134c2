package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
	"github.com/Carmen-Shannon/oxy-vertex/engine/format"
)

var (
	// ErrUnsupportedVertexFormat is returned for bindings with no WebGPU vertex format.
	ErrUnsupportedVertexFormat = errors.New("unsupported vertex format")

	// ErrUnsupportedStepRate is returned for step rates other than per vertex, per instance
	// and whole buffer.
	ErrUnsupportedStepRate = errors.New("unsupported step rate")

	// ErrLimitExceeded is returned when a layout exceeds the configured device limits.
	ErrLimitExceeded = errors.New("vertex layout exceeds device limits")
)

// VertexFormat is a backend independent vertex format, named as in WebGPU.
type VertexFormat string

const (
	VertexFormatUint8x2   VertexFormat = "uint8x2"
	VertexFormatUint8x4   VertexFormat = "uint8x4"
	VertexFormatSint8x2   VertexFormat = "sint8x2"
	VertexFormatSint8x4   VertexFormat = "sint8x4"
	VertexFormatUnorm8x2  VertexFormat = "unorm8x2"
	VertexFormatUnorm8x4  VertexFormat = "unorm8x4"
	VertexFormatSnorm8x2  VertexFormat = "snorm8x2"
	VertexFormatSnorm8x4  VertexFormat = "snorm8x4"
	VertexFormatUint16x2  VertexFormat = "uint16x2"
	VertexFormatUint16x4  VertexFormat = "uint16x4"
	VertexFormatSint16x2  VertexFormat = "sint16x2"
	VertexFormatSint16x4  VertexFormat = "sint16x4"
	VertexFormatUnorm16x2 VertexFormat = "unorm16x2"
	VertexFormatUnorm16x4 VertexFormat = "unorm16x4"
	VertexFormatSnorm16x2 VertexFormat = "snorm16x2"
	VertexFormatSnorm16x4 VertexFormat = "snorm16x4"
	VertexFormatFloat16x2 VertexFormat = "float16x2"
	VertexFormatFloat16x4 VertexFormat = "float16x4"
	VertexFormatFloat32   VertexFormat = "float32"
	VertexFormatFloat32x2 VertexFormat = "float32x2"
	VertexFormatFloat32x3 VertexFormat = "float32x3"
	VertexFormatFloat32x4 VertexFormat = "float32x4"
	VertexFormatUint32    VertexFormat = "uint32"
	VertexFormatUint32x2  VertexFormat = "uint32x2"
	VertexFormatUint32x3  VertexFormat = "uint32x3"
	VertexFormatUint32x4  VertexFormat = "uint32x4"
	VertexFormatSint32    VertexFormat = "sint32"
	VertexFormatSint32x2  VertexFormat = "sint32x2"
	VertexFormatSint32x3  VertexFormat = "sint32x3"
	VertexFormatSint32x4  VertexFormat = "sint32x4"
)

// VertexFormatFor maps a resolved binding to its vertex format.
//
// Floats bind through the float path only. 8 and 16 bit integers have two and four
// component formats only; through the float path they must be normalized. 32 bit integers
// bind through the integer path only.
//
// Parameters:
//   - b: the resolved binding
//
// Returns:
//   - VertexFormat: the vertex format
//   - error: ErrUnsupportedVertexFormat when WebGPU has no matching format
func VertexFormatFor(b binding.ResolvedBinding) (VertexFormat, error) {
	unsupported := fmt.Errorf("%w: %d x %s through the %s path (normalize %t)",
		ErrUnsupportedVertexFormat, b.Components, b.Kind, b.Call, b.Normalize)

	if b.Components < 1 || b.Components > 4 {
		return "", unsupported
	}

	var base string
	switch b.Kind {
	case format.KindFloat32:
		if b.Call != binding.CallFloat {
			return "", unsupported
		}
		if b.Components == 1 {
			return VertexFormatFloat32, nil
		}
		return VertexFormat(fmt.Sprintf("float32x%d", b.Components)), nil
	case format.KindFloat16:
		if b.Call != binding.CallFloat {
			return "", unsupported
		}
		base = "float16"
	case format.KindInt8, format.KindUint8, format.KindInt16, format.KindUint16:
		switch {
		case b.Call == binding.CallFloat && b.Normalize:
			base = normPrefix(b.Kind) + widthSuffix(b.Kind)
		case b.Call == binding.CallInteger:
			base = intPrefix(b.Kind) + widthSuffix(b.Kind)
		default:
			return "", unsupported
		}
	case format.KindInt32, format.KindUint32:
		if b.Call != binding.CallInteger {
			return "", unsupported
		}
		if b.Components == 1 {
			return VertexFormat(intPrefix(b.Kind) + "32"), nil
		}
		return VertexFormat(fmt.Sprintf("%s32x%d", intPrefix(b.Kind), b.Components)), nil
	default:
		return "", unsupported
	}

	// 8 and 16 bit formats come in pairs and quads only.
	if b.Components != 2 && b.Components != 4 {
		return "", unsupported
	}
	return VertexFormat(fmt.Sprintf("%sx%d", base, b.Components)), nil
}

func intPrefix(k format.ScalarKind) string {
	if k.IsSigned() {
		return "sint"
	}
	return "uint"
}

func normPrefix(k format.ScalarKind) string {
	if k.IsSigned() {
		return "snorm"
	}
	return "unorm"
}

func widthSuffix(k format.ScalarKind) string {
	if k == format.KindInt8 || k == format.KindUint8 {
		return "8"
	}
	return "16"
}
