package loader

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-vertex/engine/binding"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex_array"
)

// viewAttribute is one accessor of a primitive, keyed to the buffer view it reads.
type viewAttribute struct {
	semantic string
	accessor gltfAccessor
	node     string
	size     int
}

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	names map[string]string
}

// gltfMeshExtractor translates the mesh primitives of a document into vertex streams.
type gltfMeshExtractor interface {
	// Extract translates every primitive of every mesh, in document order.
	//
	// Parameters:
	//   - doc: the parsed document
	//
	// Returns:
	//   - []Primitive: the primitives
	//   - error: the first primitive that cannot be translated
	Extract(doc *gltfDocument) ([]Primitive, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

func newGLTFMeshExtractor(names map[string]string) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{names: names}
}

func (e *gltfMeshExtractorImpl) Extract(doc *gltfDocument) ([]Primitive, error) {
	var out []Primitive
	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			p, err := e.extractPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			p.Mesh, p.MeshIndex, p.Index = mesh.Name, mi, pi
			out = append(out, p)
		}
	}
	return out, nil
}

func (e *gltfMeshExtractorImpl) extractPrimitive(doc *gltfDocument, prim gltfPrimitive) (Primitive, error) {
	groups := make(map[int][]viewAttribute)
	vertices := -1

	for _, semantic := range slices.Sorted(maps.Keys(prim.Attributes)) {
		acc, view, err := accessorAt(doc, prim.Attributes[semantic])
		if err != nil {
			return Primitive{}, fmt.Errorf("%s: %w", semantic, err)
		}
		if vertices >= 0 && acc.Count != vertices {
			return Primitive{}, fmt.Errorf("%w: %s has %d elements, want %d", ErrInvalidPrimitive, semantic, acc.Count, vertices)
		}
		vertices = acc.Count

		node, size, err := accessorNode(acc)
		if err != nil {
			return Primitive{}, fmt.Errorf("%s: %w", semantic, err)
		}
		groups[view] = append(groups[view], viewAttribute{semantic: semantic, accessor: acc, node: node, size: size})
	}

	p := Primitive{Vertices: max(vertices, 0)}
	for _, view := range slices.Sorted(maps.Keys(groups)) {
		s, err := e.stream(doc.BufferViews[view], view, groups[view], p.Vertices)
		if err != nil {
			return Primitive{}, err
		}
		p.Streams = append(p.Streams, s)
	}

	if prim.Indices != nil {
		index, err := indexBuffer(doc, *prim.Indices)
		if err != nil {
			return Primitive{}, fmt.Errorf("indices: %w", err)
		}
		p.Indices = index
	}
	return p, nil
}

// stream lays the accessors reading one buffer view out as a single format string, filling
// the gaps between them and the rest of the stride with padding.
func (e *gltfMeshExtractorImpl) stream(view gltfBufferView, viewIndex int, attrs []viewAttribute, vertices int) (Stream, error) {
	slices.SortFunc(attrs, func(a, b viewAttribute) int {
		return cmp.Compare(a.accessor.ByteOffset, b.accessor.ByteOffset)
	})

	var stride int
	switch {
	case view.ByteStride != nil:
		stride = *view.ByteStride
	case len(attrs) == 1:
		stride = attrs[0].size
	default:
		return Stream{}, fmt.Errorf("%w: buffer view %d is read by %d accessors but has no byte stride", ErrInvalidPrimitive, viewIndex, len(attrs))
	}
	if stride <= 0 {
		return Stream{}, fmt.Errorf("%w: buffer view %d has stride %d", ErrInvalidPrimitive, viewIndex, stride)
	}

	start := attrs[0].accessor.ByteOffset / stride * stride
	parts := make([]string, 0, len(attrs)*2+1)
	names := make([]string, 0, len(attrs))
	cursor := 0
	for _, a := range attrs {
		offset := a.accessor.ByteOffset - start
		if offset < cursor {
			return Stream{}, fmt.Errorf("%w: %s overlaps the previous attribute in buffer view %d", ErrInvalidPrimitive, a.semantic, viewIndex)
		}
		if offset > cursor {
			parts = append(parts, fmt.Sprintf("%dx", offset-cursor))
		}
		parts = append(parts, a.node)
		names = append(names, e.attributeName(a.semantic))
		cursor = offset + a.size
	}
	if cursor > stride {
		return Stream{}, fmt.Errorf("%w: attributes of buffer view %d span %d bytes, stride is %d", ErrInvalidPrimitive, viewIndex, cursor, stride)
	}
	if cursor < stride {
		parts = append(parts, fmt.Sprintf("%dx", stride-cursor))
	}
	if vertices > 0 && start+(vertices-1)*stride+cursor > view.ByteLength {
		return Stream{}, fmt.Errorf("%w: %d elements overrun buffer view %d", ErrInvalidPrimitive, vertices, viewIndex)
	}

	return Stream{
		Content: vertex_array.Content{
			Buffer:     binding.BufferRef{ID: uint32(viewIndex + 1), ByteSize: vertices * stride},
			Format:     strings.Join(parts, " "),
			Attributes: names,
		},
		BufferView: viewIndex,
		ByteOffset: view.ByteOffset + start,
	}, nil
}

// attributeName maps a glTF semantic to a program attribute name. Semantics without an
// explicit name are lowercased; an explicit empty name leaves the attribute unbound.
func (e *gltfMeshExtractorImpl) attributeName(semantic string) string {
	if name, ok := e.names[semantic]; ok {
		return name
	}
	return strings.ToLower(semantic)
}

func accessorAt(doc *gltfDocument, index int) (gltfAccessor, int, error) {
	if index < 0 || index >= len(doc.Accessors) {
		return gltfAccessor{}, 0, fmt.Errorf("%w: accessor %d out of range", ErrInvalidPrimitive, index)
	}
	acc := doc.Accessors[index]
	if acc.BufferView == nil {
		return gltfAccessor{}, 0, fmt.Errorf("%w: accessor %d has no buffer view", ErrUnsupportedAccessor, index)
	}
	if acc.Sparse != nil {
		return gltfAccessor{}, 0, fmt.Errorf("%w: accessor %d is sparse", ErrUnsupportedAccessor, index)
	}
	view := *acc.BufferView
	if view < 0 || view >= len(doc.BufferViews) {
		return gltfAccessor{}, 0, fmt.Errorf("%w: buffer view %d out of range", ErrInvalidPrimitive, view)
	}
	return acc, view, nil
}

// accessorNode returns the format node describing one element of an accessor and its size.
func accessorNode(acc gltfAccessor) (string, int, error) {
	count := gltfAccessorTypeComponentCount(acc.Type)
	size := gltfComponentTypeSize(acc.ComponentType)
	if count == 0 || size == 0 {
		return "", 0, fmt.Errorf("%w: type %s component type %d", ErrUnsupportedAccessor, acc.Type, acc.ComponentType)
	}
	// sub-word matrix columns are padded to 4 bytes
	if strings.HasPrefix(acc.Type, "MAT") && size < 4 {
		return "", 0, fmt.Errorf("%w: %s of %d-byte components", ErrUnsupportedAccessor, acc.Type, size)
	}

	var kind string
	switch acc.ComponentType {
	case gltfComponentTypeFloat:
		kind = "f"
	case gltfComponentTypeUnsignedByte:
		kind = "u1"
		if acc.Normalized {
			kind = "f1"
		}
	case gltfComponentTypeByte:
		kind = "i1"
	case gltfComponentTypeUnsignedShort:
		kind = "u2"
	case gltfComponentTypeShort:
		kind = "i2"
	case gltfComponentTypeUnsignedInt:
		kind = "u"
	}
	if acc.Normalized && kind != "f1" && kind != "f" {
		return "", 0, fmt.Errorf("%w: normalized component type %d", ErrUnsupportedAccessor, acc.ComponentType)
	}
	return fmt.Sprintf("%d%s", count, kind), count * size, nil
}

func indexBuffer(doc *gltfDocument, index int) (*binding.IndexBuffer, error) {
	acc, view, err := accessorAt(doc, index)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltfAccessorTypeScalar {
		return nil, fmt.Errorf("%w: index accessor of type %s", ErrInvalidPrimitive, acc.Type)
	}

	var size int
	switch acc.ComponentType {
	case gltfComponentTypeUnsignedByte, gltfComponentTypeUnsignedShort, gltfComponentTypeUnsignedInt:
		size = gltfComponentTypeSize(acc.ComponentType)
	default:
		return nil, fmt.Errorf("%w: index component type %d", ErrInvalidPrimitive, acc.ComponentType)
	}

	return &binding.IndexBuffer{
		Buffer:      binding.BufferRef{ID: uint32(view + 1), ByteSize: acc.Count * size},
		ElementSize: size,
	}, nil
}
