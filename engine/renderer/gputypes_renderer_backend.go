package renderer

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// gputypesVertexFormatMap maps vertex formats to their gputypes equivalent
var gputypesVertexFormatMap = map[VertexFormat]gputypes.VertexFormat{
	VertexFormatUint8x2:   gputypes.VertexFormatUint8x2,
	VertexFormatUint8x4:   gputypes.VertexFormatUint8x4,
	VertexFormatSint8x2:   gputypes.VertexFormatSint8x2,
	VertexFormatSint8x4:   gputypes.VertexFormatSint8x4,
	VertexFormatUnorm8x2:  gputypes.VertexFormatUnorm8x2,
	VertexFormatUnorm8x4:  gputypes.VertexFormatUnorm8x4,
	VertexFormatSnorm8x2:  gputypes.VertexFormatSnorm8x2,
	VertexFormatSnorm8x4:  gputypes.VertexFormatSnorm8x4,
	VertexFormatUint16x2:  gputypes.VertexFormatUint16x2,
	VertexFormatUint16x4:  gputypes.VertexFormatUint16x4,
	VertexFormatSint16x2:  gputypes.VertexFormatSint16x2,
	VertexFormatSint16x4:  gputypes.VertexFormatSint16x4,
	VertexFormatUnorm16x2: gputypes.VertexFormatUnorm16x2,
	VertexFormatUnorm16x4: gputypes.VertexFormatUnorm16x4,
	VertexFormatSnorm16x2: gputypes.VertexFormatSnorm16x2,
	VertexFormatSnorm16x4: gputypes.VertexFormatSnorm16x4,
	VertexFormatFloat16x2: gputypes.VertexFormatFloat16x2,
	VertexFormatFloat16x4: gputypes.VertexFormatFloat16x4,
	VertexFormatFloat32:   gputypes.VertexFormatFloat32,
	VertexFormatFloat32x2: gputypes.VertexFormatFloat32x2,
	VertexFormatFloat32x3: gputypes.VertexFormatFloat32x3,
	VertexFormatFloat32x4: gputypes.VertexFormatFloat32x4,
	VertexFormatUint32:    gputypes.VertexFormatUint32,
	VertexFormatUint32x2:  gputypes.VertexFormatUint32x2,
	VertexFormatUint32x3:  gputypes.VertexFormatUint32x3,
	VertexFormatUint32x4:  gputypes.VertexFormatUint32x4,
	VertexFormatSint32:    gputypes.VertexFormatSint32,
	VertexFormatSint32x2:  gputypes.VertexFormatSint32x2,
	VertexFormatSint32x3:  gputypes.VertexFormatSint32x3,
	VertexFormatSint32x4:  gputypes.VertexFormatSint32x4,
}

// GPUTypesVertexBufferLayouts converts buffer layouts into gputypes vertex buffer layouts.
// The attribute offsets are checked against the element stride with gputypes' format sizes.
//
// Parameters:
//   - layouts: the layouts to convert
//
// Returns:
//   - []gputypes.VertexBufferLayout: one gputypes layout per input layout, in order
//   - error: ErrUnsupportedVertexFormat, or an error for attributes reaching past the stride
func GPUTypesVertexBufferLayouts(layouts []BufferLayout) ([]gputypes.VertexBufferLayout, error) {
	if err := validateGPUTypesLayouts(layouts); err != nil {
		return nil, err
	}

	out := make([]gputypes.VertexBufferLayout, 0, len(layouts))
	for _, l := range layouts {
		attrs := make([]gputypes.VertexAttribute, 0, len(l.Attributes))
		for _, a := range l.Attributes {
			attrs = append(attrs, gputypes.VertexAttribute{
				Format:         gputypesVertexFormatMap[a.Format],
				Offset:         a.Offset,
				ShaderLocation: a.ShaderLocation,
			})
		}

		stepMode := gputypes.VertexStepModeVertex
		if l.StepMode == StepModeInstance {
			stepMode = gputypes.VertexStepModeInstance
		}
		out = append(out, gputypes.VertexBufferLayout{
			ArrayStride: l.ArrayStride,
			StepMode:    stepMode,
			Attributes:  attrs,
		})
	}
	return out, nil
}

func validateGPUTypesLayouts(layouts []BufferLayout) error {
	for i, l := range layouts {
		for _, a := range l.Attributes {
			f, ok := gputypesVertexFormatMap[a.Format]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnsupportedVertexFormat, a.Format)
			}
			if l.ArrayStride > 0 && a.Offset+f.Size() > l.ArrayStride {
				return fmt.Errorf("buffer layout %d: location %d (%s at offset %d) exceeds stride %d",
					i, a.ShaderLocation, f, a.Offset, l.ArrayStride)
			}
		}
	}
	return nil
}
