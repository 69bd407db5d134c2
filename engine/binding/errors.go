package binding

import (
	"errors"
	"fmt"
)

var (
	// ErrAttributeCountMismatch is returned when an entry supplies a different number of
	// attribute slots than its format string has attribute nodes.
	ErrAttributeCountMismatch = errors.New("attribute count mismatch")

	// ErrUnsupportedRowSplit is returned when a matrix attribute cannot be split evenly
	// across its rows.
	ErrUnsupportedRowSplit = errors.New("unsupported row split")

	// ErrAmbiguousVertexCount is returned when a concrete vertex count is required but
	// neither an index buffer nor a per-vertex stream determines one.
	ErrAmbiguousVertexCount = errors.New("cannot detect the number of vertices")

	// ErrInvalidIndexElementSize is returned for index element sizes other than 1, 2 and 4.
	ErrInvalidIndexElementSize = errors.New("index element size must be 1, 2, or 4")

	// ErrMissingBuffer is returned for an entry without a buffer.
	ErrMissingBuffer = errors.New("binding entry has no buffer")

	// ErrEmptyAttributes is returned for entries without attribute slots when the resolver
	// was built WithRequireAttributes.
	ErrEmptyAttributes = errors.New("binding entry has no attributes")

	// ErrNegativeBufferSize is returned when a buffer reports a size below zero.
	ErrNegativeBufferSize = errors.New("negative buffer size")

	// ErrLocationOutOfRange is returned when an attribute row lands beyond the location
	// limit configured with WithLocationLimit.
	ErrLocationOutOfRange = errors.New("shader location out of range")
)

// CountMismatchError reports an entry whose attribute slot count does not match the
// number of attribute nodes of its format string.
type CountMismatchError struct {
	Entry      int
	Format     string
	Nodes      int
	Attributes int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("binding entry %d: format %q has %d attribute nodes but %d attributes were given",
		e.Entry, e.Format, e.Nodes, e.Attributes)
}

func (e *CountMismatchError) Unwrap() error {
	return ErrAttributeCountMismatch
}

// RowSplitError reports a matrix attribute whose node does not divide evenly by its row count.
type RowSplitError struct {
	Entry    int
	Format   string
	Location uint32
	Rows     int
	ByteSize int
	Count    int
}

func (e *RowSplitError) Error() string {
	return fmt.Sprintf("binding entry %d: format %q: attribute at location %d with %d rows cannot split a node of %d components (%d bytes)",
		e.Entry, e.Format, e.Location, e.Rows, e.Count, e.ByteSize)
}

func (e *RowSplitError) Unwrap() error {
	return ErrUnsupportedRowSplit
}
