// Package common holds the small pieces shared across the engine packages: the package
// logger and generic value helpers.
package common

// Coalesce returns the first non-zero value, or the zero value if all are zero. Manifest
// defaults are applied with it.
//
// Parameters:
//   - values: the candidates, in order of preference
//
// Returns:
//   - T: the first non-zero value
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
