package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuVertexFormatMap maps vertex formats to their wgpu equivalent
var wgpuVertexFormatMap = map[VertexFormat]wgpu.VertexFormat{
	VertexFormatUint8x2:   wgpu.VertexFormatUint8x2,
	VertexFormatUint8x4:   wgpu.VertexFormatUint8x4,
	VertexFormatSint8x2:   wgpu.VertexFormatSint8x2,
	VertexFormatSint8x4:   wgpu.VertexFormatSint8x4,
	VertexFormatUnorm8x2:  wgpu.VertexFormatUnorm8x2,
	VertexFormatUnorm8x4:  wgpu.VertexFormatUnorm8x4,
	VertexFormatSnorm8x2:  wgpu.VertexFormatSnorm8x2,
	VertexFormatSnorm8x4:  wgpu.VertexFormatSnorm8x4,
	VertexFormatUint16x2:  wgpu.VertexFormatUint16x2,
	VertexFormatUint16x4:  wgpu.VertexFormatUint16x4,
	VertexFormatSint16x2:  wgpu.VertexFormatSint16x2,
	VertexFormatSint16x4:  wgpu.VertexFormatSint16x4,
	VertexFormatUnorm16x2: wgpu.VertexFormatUnorm16x2,
	VertexFormatUnorm16x4: wgpu.VertexFormatUnorm16x4,
	VertexFormatSnorm16x2: wgpu.VertexFormatSnorm16x2,
	VertexFormatSnorm16x4: wgpu.VertexFormatSnorm16x4,
	VertexFormatFloat16x2: wgpu.VertexFormatFloat16x2,
	VertexFormatFloat16x4: wgpu.VertexFormatFloat16x4,
	VertexFormatFloat32:   wgpu.VertexFormatFloat32,
	VertexFormatFloat32x2: wgpu.VertexFormatFloat32x2,
	VertexFormatFloat32x3: wgpu.VertexFormatFloat32x3,
	VertexFormatFloat32x4: wgpu.VertexFormatFloat32x4,
	VertexFormatUint32:    wgpu.VertexFormatUint32,
	VertexFormatUint32x2:  wgpu.VertexFormatUint32x2,
	VertexFormatUint32x3:  wgpu.VertexFormatUint32x3,
	VertexFormatUint32x4:  wgpu.VertexFormatUint32x4,
	VertexFormatSint32:    wgpu.VertexFormatSint32,
	VertexFormatSint32x2:  wgpu.VertexFormatSint32x2,
	VertexFormatSint32x3:  wgpu.VertexFormatSint32x3,
	VertexFormatSint32x4:  wgpu.VertexFormatSint32x4,
}

// WGPUVertexBufferLayouts converts buffer layouts into wgpu vertex buffer layouts, ready to
// be set on a wgpu.VertexState.
//
// Parameters:
//   - layouts: the layouts to convert
//
// Returns:
//   - []wgpu.VertexBufferLayout: one wgpu layout per input layout, in order
//   - error: ErrUnsupportedVertexFormat for formats wgpu does not define
func WGPUVertexBufferLayouts(layouts []BufferLayout) ([]wgpu.VertexBufferLayout, error) {
	if err := validateWGPULayouts(layouts); err != nil {
		return nil, err
	}

	out := make([]wgpu.VertexBufferLayout, 0, len(layouts))
	for _, l := range layouts {
		attrs := make([]wgpu.VertexAttribute, 0, len(l.Attributes))
		for _, a := range l.Attributes {
			attrs = append(attrs, wgpu.VertexAttribute{
				Format:         wgpuVertexFormatMap[a.Format],
				Offset:         a.Offset,
				ShaderLocation: a.ShaderLocation,
			})
		}

		stepMode := wgpu.VertexStepModeVertex
		if l.StepMode == StepModeInstance {
			stepMode = wgpu.VertexStepModeInstance
		}
		out = append(out, wgpu.VertexBufferLayout{
			ArrayStride: l.ArrayStride,
			StepMode:    stepMode,
			Attributes:  attrs,
		})
	}
	return out, nil
}

func validateWGPULayouts(layouts []BufferLayout) error {
	for _, l := range layouts {
		for _, a := range l.Attributes {
			if _, ok := wgpuVertexFormatMap[a.Format]; !ok {
				return fmt.Errorf("%w: %q", ErrUnsupportedVertexFormat, a.Format)
			}
		}
	}
	return nil
}
