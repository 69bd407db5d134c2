package loader

import (
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-vertex/common"
	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex_array"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// Stream is one vertex stream of a primitive.
type Stream struct {
	vertex_array.Content
	// BufferView is the glTF buffer view the stream reads.
	BufferView int
	// ByteOffset is where the first element of the stream starts in its glTF buffer.
	ByteOffset int
}

// Primitive is one mesh primitive translated to vertex array content. Stream buffers are
// identified by their buffer view index plus one and sized to exactly Vertices elements.
type Primitive struct {
	Mesh      string
	MeshIndex int
	Index     int
	Streams   []Stream
	Indices   *binding.IndexBuffer
	// Vertices is the element count shared by every attribute accessor.
	Vertices int
}

// Content returns the streams as vertex array content.
func (p Primitive) Content() []vertex_array.Content {
	out := make([]vertex_array.Content, len(p.Streams))
	for i, s := range p.Streams {
		out[i] = s.Content
	}
	return out
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu *sync.RWMutex

	names   map[string]string
	cache   map[string][]Primitive
	backend loaderBackend
}

// Loader translates model files into vertex array content and caches the result.
type Loader interface {
	// Load translates a model file and caches the result by path.
	// The backend is selected based on the file extension (.gltf/.glb → glTF backend).
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - []Primitive: the primitives of every mesh
	//   - error: ErrUnsupportedFormat, or a parse or translation error
	Load(path string) ([]Primitive, error)

	// LoadReader translates a model from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the result
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - []Primitive: the primitives of every mesh
	//   - error: a parse or translation error
	LoadReader(name string, r io.Reader, isGLB bool) ([]Primitive, error)

	// Get retrieves cached primitives by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - []Primitive: the cached primitives or nil
	Get(name string) []Primitive

	// Cached returns a copy of the whole cache.
	//
	// Returns:
	//   - map[string][]Primitive: all cached primitives keyed by name
	Cached() map[string][]Primitive
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:    &sync.RWMutex{},
		names: make(map[string]string),
		cache: make(map[string][]Primitive),
	}

	for _, option := range options {
		option(l)
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend(l.names)
	}
	return l
}

func (l *loader) Load(path string) ([]Primitive, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	primitives, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	l.store(path, primitives)
	return primitives, nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) ([]Primitive, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	primitives, err := l.backend.LoadReader(r, isGLB)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	l.store(name, primitives)
	return primitives, nil
}

func (l *loader) store(name string, primitives []Primitive) {
	l.mu.Lock()
	l.cache[name] = primitives
	l.mu.Unlock()

	common.Logger().Info("model translated", "name", name, "primitives", len(primitives))
}

func (l *loader) Get(name string) []Primitive {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache[name]
}

func (l *loader) Cached() map[string][]Primitive {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.cache)
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF/GLB is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
