package vertex_array

import (
	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
	"github.com/Carmen-Shannon/oxy-vertex/engine/format"
)

// Backend receives the attribute layout of a vertex array. Bindings are delivered in
// resolution order; SetStepRate follows each SetAttributeLayout for the same location.
type Backend interface {
	// SetAttributeLayout configures one attribute location from a resolved binding.
	//
	// Parameters:
	//   - b: the resolved binding
	//
	// Returns:
	//   - error: an error if the backend cannot represent the binding
	SetAttributeLayout(b binding.ResolvedBinding) error

	// SetStepRate sets the step rate of an attribute location.
	//
	// Parameters:
	//   - location: the shader location
	//   - divisor: the step rate
	//
	// Returns:
	//   - error: an error if the backend cannot represent the step rate
	SetStepRate(location uint32, divisor format.Divisor) error
}

// LayoutBackend is a Backend that can apply several bindings at once. ApplyLayout either
// applies every binding with its step rate or leaves the backend unchanged. Vertex arrays
// prefer it over per-binding calls; plain Backends may keep the bindings applied before a
// failing one.
type LayoutBackend interface {
	Backend

	// ApplyLayout applies the bindings and their step rates in order, all or nothing.
	//
	// Parameters:
	//   - bindings: the resolved bindings
	//
	// Returns:
	//   - error: the first binding the backend cannot represent
	ApplyLayout(bindings []binding.ResolvedBinding) error
}

// nopBackend discards the layout. Used when a vertex array is only resolved, not applied.
type nopBackend struct{}

var _ Backend = nopBackend{}

func (nopBackend) SetAttributeLayout(binding.ResolvedBinding) error { return nil }

func (nopBackend) SetStepRate(uint32, format.Divisor) error { return nil }
