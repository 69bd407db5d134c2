package binding

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-vertex/engine/format"
)

// resolver is the implementation of the Resolver interface.
// It holds only configuration; every call works on its own cursors and slices.
type resolver struct {
	// requireAttributes rejects entries that supply no attribute slots at all.
	requireAttributes bool
	// locationLimit, when non-zero, is the exclusive upper bound of shader locations.
	locationLimit uint32
}

// Resolver turns binding entries into concrete per-row binding descriptors.
//
// Resolution is two-phase: every entry's format string is described first (validating the
// strings and the slot counts), then each string is re-walked with a fresh cursor in
// lock-step with its attribute slots. Resolution is all-or-nothing.
type Resolver interface {
	// Describe runs the first phase only: it parses every entry's format string and checks
	// the slot count against the attribute node count.
	//
	// Parameters:
	//   - entries: the binding entries to describe
	//
	// Returns:
	//   - []format.Info: one Info per entry, in order
	//   - error: a wrapped *format.FormatError, a *CountMismatchError, or ErrMissingBuffer
	Describe(entries []BindingEntry) ([]format.Info, error)

	// Resolve runs both phases and returns one ResolvedBinding per attribute row, ordered by
	// entry and then by node. Padding nodes and gap slots produce no bindings.
	//
	// Parameters:
	//   - entries: the binding entries to resolve
	//
	// Returns:
	//   - []ResolvedBinding: the binding descriptors, nil on error
	//   - error: any error from Describe, or a *RowSplitError
	Resolve(entries []BindingEntry) ([]ResolvedBinding, error)
}

var _ Resolver = &resolver{}

// NewResolver creates a new Resolver with all specified options applied.
//
// Parameters:
//   - options: functional options configuring validation limits
//
// Returns:
//   - Resolver: a resolver safe for concurrent use
func NewResolver(options ...ResolverBuilderOption) Resolver {
	r := &resolver{}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *resolver) Describe(entries []BindingEntry) ([]format.Info, error) {
	infos := make([]format.Info, len(entries))
	for i, entry := range entries {
		if entry.Buffer == nil {
			return nil, fmt.Errorf("binding entry %d: %w", i, ErrMissingBuffer)
		}

		info, err := format.Describe(entry.Format)
		if err != nil {
			return nil, fmt.Errorf("binding entry %d: %w", i, err)
		}

		if r.requireAttributes && len(entry.Attributes) == 0 {
			return nil, fmt.Errorf("binding entry %d: %w", i, ErrEmptyAttributes)
		}

		if len(entry.Attributes) != info.Nodes {
			return nil, &CountMismatchError{
				Entry:      i,
				Format:     entry.Format,
				Nodes:      info.Nodes,
				Attributes: len(entry.Attributes),
			}
		}

		infos[i] = info
	}
	return infos, nil
}

func (r *resolver) Resolve(entries []BindingEntry) ([]ResolvedBinding, error) {
	infos, err := r.Describe(entries)
	if err != nil {
		return nil, err
	}

	var bindings []ResolvedBinding
	for i, entry := range entries {
		bindings, err = r.resolveEntry(bindings, i, entry, infos[i])
		if err != nil {
			return nil, err
		}
	}
	return bindings, nil
}

// resolveEntry re-walks one entry's format string and appends its bindings to dst.
func (r *resolver) resolveEntry(dst []ResolvedBinding, index int, entry BindingEntry, info format.Info) ([]ResolvedBinding, error) {
	cursor := format.NewCursor(entry.Format)
	offset := 0
	slot := 0

	for {
		node, ok, err := cursor.Next()
		if err != nil {
			return nil, fmt.Errorf("binding entry %d: %w", index, err)
		}
		if !ok {
			break
		}

		if node.IsPadding() {
			offset += node.ByteSize
			continue
		}

		spec := entry.Attributes[slot]
		slot++
		if spec == nil {
			offset += node.ByteSize
			continue
		}

		rows := spec.Rows
		if rows < 1 || node.Count%rows != 0 || node.ByteSize%rows != 0 {
			return nil, &RowSplitError{
				Entry:    index,
				Format:   entry.Format,
				Location: spec.Location,
				Rows:     rows,
				ByteSize: node.ByteSize,
				Count:    node.Count,
			}
		}

		if uint64(spec.Location)+uint64(rows) > r.maxLocations() {
			return nil, fmt.Errorf("binding entry %d: attribute at location %d with %d rows exceeds limit %d: %w",
				index, spec.Location, rows, r.maxLocations(), ErrLocationOutOfRange)
		}

		call := spec.Scalar.Family()
		rowSize := node.ByteSize / rows
		for row := 0; row < rows; row++ {
			dst = append(dst, ResolvedBinding{
				Entry:      index,
				Buffer:     entry.Buffer,
				Location:   spec.Location + uint32(row),
				Components: node.Count / rows,
				Kind:       node.Kind,
				Normalize:  node.Normalize && call == CallFloat,
				Stride:     info.Size,
				Offset:     offset + row*rowSize,
				Divisor:    info.Divisor,
				Call:       call,
			})
		}
		offset += node.ByteSize
	}

	return dst, nil
}

// maxLocations is the number of addressable shader locations: the configured limit, or
// every uint32 location without one.
func (r *resolver) maxLocations() uint64 {
	if r.locationLimit == 0 {
		return math.MaxUint32 + 1
	}
	return uint64(r.locationLimit)
}
