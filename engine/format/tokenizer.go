package format

// maxNodeCount bounds the repeat count of a single node so ByteSize cannot overflow.
const maxNodeCount = 1 << 24

// scalarFor returns the storage type a kind character selects for an explicit size digit.
// ok is false when the size is not valid for the kind.
func scalarFor(kind, size byte) (ScalarKind, bool) {
	switch kind {
	case 'f':
		switch size {
		case '1':
			return KindUint8, true
		case '2':
			return KindFloat16, true
		case '4':
			return KindFloat32, true
		case '8':
			return KindFloat64, true
		}
	case 'i':
		switch size {
		case '1':
			return KindInt8, true
		case '2':
			return KindInt16, true
		case '4':
			return KindInt32, true
		}
	case 'u':
		switch size {
		case '1':
			return KindUint8, true
		case '2':
			return KindUint16, true
		case '4':
			return KindUint32, true
		}
	case 'x':
		switch size {
		case '1', '2', '4', '8':
			return KindPadding, true
		}
	}
	return KindPadding, false
}

// Cursor is a restartable scan position over a format string. It is a plain value: copying
// a Cursor forks the scan, and a fresh Cursor always starts from the beginning of the string.
//
// The zero value scans the empty string.
type Cursor struct {
	src string
	pos int
}

// NewCursor creates a Cursor positioned at the start of the given format string.
//
// Parameters:
//   - src: the format string to scan, e.g. "3f 2f/v"
//
// Returns:
//   - Cursor: a cursor ready to produce the first node
func NewCursor(src string) Cursor {
	return Cursor{src: src}
}

// Source returns the format string the cursor scans.
func (c *Cursor) Source() string {
	return c.src
}

// Pos returns the current byte offset of the cursor.
func (c *Cursor) Pos() int {
	return c.pos
}

// Next scans the next node. It stops, without consuming it, at the '/' that starts the
// step-rate tail or at the end of the string, reporting ok=false. Spaces between nodes are
// skipped. The scan is a single pass with one character of lookahead.
//
// Returns:
//   - Node: the scanned node, valid only when ok is true
//   - bool: false once no more nodes remain
//   - error: a *FormatError when the string is malformed
func (c *Cursor) Next() (Node, bool, error) {
	count := 0
	digits := false

	for c.pos < len(c.src) {
		ch := c.src[c.pos]
		switch {
		case ch >= '0' && ch <= '9':
			count = count*10 + int(ch-'0')
			if count > maxNodeCount {
				return Node{}, false, malformed(c.src, c.pos, "repeat count exceeds %d", maxNodeCount)
			}
			digits = true
			c.pos++

		case ch == ' ':
			if digits {
				return Node{}, false, malformed(c.src, c.pos, "expected kind after repeat count")
			}
			c.pos++

		case ch == '/':
			if digits {
				return Node{}, false, malformed(c.src, c.pos, "expected kind after repeat count")
			}
			return Node{}, false, nil

		case ch == 'f' || ch == 'i' || ch == 'u' || ch == 'x':
			if count == 0 {
				count = 1
			}
			c.pos++
			return c.sized(ch, count)

		default:
			return Node{}, false, malformed(c.src, c.pos, "unknown character %q", ch)
		}
	}

	if digits {
		return Node{}, false, malformed(c.src, c.pos, "expected kind after repeat count")
	}
	return Node{}, false, nil
}

// sized reads the optional size digit that follows a kind character and builds the node.
func (c *Cursor) sized(kind byte, count int) (Node, bool, error) {
	// "x" alone reserves a single byte; every other kind defaults to 4-byte components.
	width := 4
	if kind == 'x' {
		width = 1
	}
	scalar, _ := scalarFor(kind, '4')

	if c.pos < len(c.src) {
		ch := c.src[c.pos]
		switch ch {
		case ' ', '/':
		case '1', '2', '4', '8':
			k, ok := scalarFor(kind, ch)
			if !ok {
				return Node{}, false, malformed(c.src, c.pos, "size %q is not valid for kind %q", ch, kind)
			}
			scalar = k
			width = int(ch - '0')
			c.pos++
			if c.pos < len(c.src) && c.src[c.pos] != ' ' && c.src[c.pos] != '/' {
				return Node{}, false, malformed(c.src, c.pos, "unexpected character %q after size", c.src[c.pos])
			}
		default:
			if ch < '0' || ch > '9' {
				return Node{}, false, malformed(c.src, c.pos, "unknown character %q", ch)
			}
			return Node{}, false, malformed(c.src, c.pos, "size %q is not valid for kind %q", ch, kind)
		}
	}

	return Node{
		ByteSize:  width * count,
		Count:     count,
		Kind:      scalar,
		Normalize: kind == 'f' && width == 1,
	}, true, nil
}

// Tail parses the step-rate tail once Next has reported the end of the nodes. A missing
// tail classifies as DivisorVertex. The tail must be the last thing in the string.
//
// Returns:
//   - Divisor: the step rate named by the tail
//   - error: a *FormatError for an empty, unknown, or trailing tail
func (c *Cursor) Tail() (Divisor, error) {
	if c.pos >= len(c.src) {
		return DivisorVertex, nil
	}
	if c.src[c.pos] != '/' {
		return 0, malformed(c.src, c.pos, "unexpected character %q", c.src[c.pos])
	}
	c.pos++
	if c.pos >= len(c.src) {
		return 0, malformed(c.src, c.pos, "missing step rate after '/'")
	}

	var d Divisor
	switch c.src[c.pos] {
	case 'v':
		d = DivisorVertex
	case 'i':
		d = DivisorInstance
	case 'r':
		d = DivisorWholeBuffer
	default:
		return 0, malformed(c.src, c.pos, "unknown step rate %q", c.src[c.pos])
	}
	c.pos++

	if c.pos < len(c.src) {
		return 0, malformed(c.src, c.pos, "trailing character %q after step rate", c.src[c.pos])
	}
	return d, nil
}
