package renderer

import "github.com/gogpu/gputypes"

// RendererBuilderOption is a functional option used to configure a Renderer during construction.
type RendererBuilderOption func(*renderer)

// WithLimits sets the device limits collected layouts are validated against.
//
// Parameters:
//   - limits: the device limits, typically reported by the adapter
//
// Returns:
//   - RendererBuilderOption: a function that sets the limits of the renderer
func WithLimits(limits gputypes.Limits) RendererBuilderOption {
	return func(r *renderer) {
		r.limits = limits
	}
}
