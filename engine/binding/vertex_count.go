package binding

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-vertex/engine/format"
)

// VertexCount is an implicitly derived draw count. Known is false when nothing determines it.
type VertexCount struct {
	Value int
	Known bool
}

// Require returns the count, or ErrAmbiguousVertexCount when it is not known.
func (v VertexCount) Require() (int, error) {
	if !v.Known {
		return 0, ErrAmbiguousVertexCount
	}
	return v.Value, nil
}

// ValidIndexElementSize reports whether size is a supported index width in bytes.
func ValidIndexElementSize(size int) bool {
	return size == 1 || size == 2 || size == 4
}

// InferVertexCount derives the implicit draw count of a set of binding entries.
//
// With an index buffer the count is the number of whole indices it holds and no vertex
// buffers are scanned. Otherwise it is the smallest number of whole elements held by any
// per-vertex entry; instanced and whole-buffer entries do not constrain it. Without an
// index buffer and without per-vertex entries the count is left unknown.
//
// Parameters:
//   - index: the index buffer, or nil for non-indexed draws
//   - entries: the binding entries of the draw
//
// Returns:
//   - VertexCount: the inferred count
//   - error: ErrInvalidIndexElementSize, ErrNegativeBufferSize, or any format error from the entries
func InferVertexCount(index *IndexBuffer, entries []BindingEntry) (VertexCount, error) {
	if index != nil {
		return indexCount(index)
	}

	infos := make([]format.Info, len(entries))
	for i, entry := range entries {
		info, err := format.Describe(entry.Format)
		if err != nil {
			return VertexCount{}, fmt.Errorf("binding entry %d: %w", i, err)
		}
		infos[i] = info
	}
	return inferFromInfos(entries, infos)
}

// InferVertexCountFromInfos is InferVertexCount for callers that already described the
// entries, e.g. with Resolver.Describe. infos must be parallel to entries.
func InferVertexCountFromInfos(index *IndexBuffer, entries []BindingEntry, infos []format.Info) (VertexCount, error) {
	if index != nil {
		return indexCount(index)
	}
	if len(infos) != len(entries) {
		return VertexCount{}, fmt.Errorf("binding: %d format infos for %d entries", len(infos), len(entries))
	}
	return inferFromInfos(entries, infos)
}

func indexCount(index *IndexBuffer) (VertexCount, error) {
	if !ValidIndexElementSize(index.ElementSize) {
		return VertexCount{}, fmt.Errorf("%w, not %d", ErrInvalidIndexElementSize, index.ElementSize)
	}
	if index.Buffer == nil {
		return VertexCount{}, fmt.Errorf("index buffer: %w", ErrMissingBuffer)
	}
	size, err := bufferSize(index.Buffer)
	if err != nil {
		return VertexCount{}, fmt.Errorf("index buffer: %w", err)
	}
	return VertexCount{Value: size / index.ElementSize, Known: true}, nil
}

func bufferSize(b Buffer) (int, error) {
	size := b.Size()
	if size < 0 {
		return 0, fmt.Errorf("%w %d", ErrNegativeBufferSize, size)
	}
	return size, nil
}

func inferFromInfos(entries []BindingEntry, infos []format.Info) (VertexCount, error) {
	var count VertexCount
	for i, entry := range entries {
		info := infos[i]
		// An empty per-vertex string has no stride and cannot bound the count.
		if !info.Divisor.PerVertex() || info.Size == 0 {
			continue
		}
		if entry.Buffer == nil {
			return VertexCount{}, fmt.Errorf("binding entry %d: %w", i, ErrMissingBuffer)
		}

		size, err := bufferSize(entry.Buffer)
		if err != nil {
			return VertexCount{}, fmt.Errorf("binding entry %d: %w", i, err)
		}
		candidate := size / info.Size
		if !count.Known || candidate < count.Value {
			count = VertexCount{Value: candidate, Known: true}
		}
	}
	return count, nil
}
