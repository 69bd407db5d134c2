package binding

// ResolverBuilderOption is a functional option used to configure a Resolver during construction.
type ResolverBuilderOption func(*resolver)

// WithRequireAttributes rejects binding entries that supply no attribute slots, even when
// their format string is padding only.
//
// Parameters:
//   - require: true to reject empty entries with ErrEmptyAttributes
//
// Returns:
//   - ResolverBuilderOption: a function that sets the empty-entry policy of the resolver
func WithRequireAttributes(require bool) ResolverBuilderOption {
	return func(r *resolver) {
		r.requireAttributes = require
	}
}

// WithLocationLimit rejects attributes whose rows reach past the given number of shader
// locations, typically the backend's maximum vertex attribute count. Zero disables the check.
//
// Parameters:
//   - limit: the exclusive upper bound of shader locations
//
// Returns:
//   - ResolverBuilderOption: a function that sets the location limit of the resolver
func WithLocationLimit(limit uint32) ResolverBuilderOption {
	return func(r *resolver) {
		r.locationLimit = limit
	}
}
