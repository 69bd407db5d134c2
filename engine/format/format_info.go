package format

// Describe runs a fresh Cursor over the format string to exhaustion and aggregates the
// element stride, the number of attribute nodes, and the step rate of the tail.
// Describe holds no state between calls: the same input always yields the same Info.
//
// Parameters:
//   - src: the format string to describe, e.g. "3f 2f/v"
//
// Returns:
//   - Info: the aggregate description with Valid set
//   - error: a *FormatError (matching ErrMalformedFormat) when the string is malformed
func Describe(src string) (Info, error) {
	info := Info{Valid: true}

	c := NewCursor(src)
	for {
		node, ok, err := c.Next()
		if err != nil {
			return Info{}, err
		}
		if !ok {
			break
		}
		info.Size += node.ByteSize
		if !node.IsPadding() {
			info.Nodes++
		}
	}

	divisor, err := c.Tail()
	if err != nil {
		return Info{}, err
	}
	info.Divisor = divisor

	return info, nil
}

// Inspect is Describe for callers that only need the validity flag.
// A malformed string yields the zero Info with Valid false.
func Inspect(src string) Info {
	info, err := Describe(src)
	if err != nil {
		return Info{}
	}
	return info
}

// Nodes materializes every node of a format string alongside its Info.
// Resolution does not need this; it exists for debugging and tooling output.
//
// Parameters:
//   - src: the format string to expand
//
// Returns:
//   - []Node: all nodes in declaration order, padding included
//   - Info: the aggregate description of the string
//   - error: a *FormatError when the string is malformed
func Nodes(src string) ([]Node, Info, error) {
	info, err := Describe(src)
	if err != nil {
		return nil, Info{}, err
	}

	nodes := make([]Node, 0, info.Nodes)
	c := NewCursor(src)
	for {
		node, ok, err := c.Next()
		if err != nil {
			return nil, Info{}, err
		}
		if !ok {
			break
		}
		nodes = append(nodes, node)
	}
	return nodes, info, nil
}
