package loader

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithAttributeNames maps glTF attribute semantics to program attribute names, e.g.
// "TEXCOORD_0" to "in_uv". Unmapped semantics are lowercased; a semantic mapped to ""
// is left unbound.
//
// Parameters:
//   - names: semantic to attribute name
//
// Returns:
//   - LoaderBuilderOption: a function that applies the names option to a loader
func WithAttributeNames(names map[string]string) LoaderBuilderOption {
	return func(l *loader) {
		for k, v := range names {
			l.names[k] = v
		}
	}
}

// WithPrimitives is an option builder that pre-populates the cache.
//
// Parameters:
//   - key: the cache key
//   - primitives: the primitives to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the primitives option to a loader
func WithPrimitives(key string, primitives []Primitive) LoaderBuilderOption {
	return func(l *loader) {
		l.cache[key] = primitives
	}
}
