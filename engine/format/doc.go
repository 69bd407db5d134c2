// Package format parses vertex format strings, the compact descriptors of one stream's
// per-element memory layout.
//
// A format string is a sequence of nodes followed by an optional step-rate tail:
//
//	format := node* tail?
//	node   := count? kind size
//	kind   := 'f' | 'i' | 'u' | 'x'
//	size   := '1' | '2' | '4' | '8' | ''
//	tail   := '/' ('i' | 'v' | 'r')
//
// "3f 2f/v" describes a per-vertex stream of a 3 component float followed by a 2 component
// float, 20 bytes per vertex. "4x" reserves four bytes without binding anything, "f1" is an
// unsigned byte normalized to 0.0..1.0, "/i" steps per instance and "/r" never steps.
//
// Nodes are separated by spaces only; tabs and other whitespace are unknown characters.
//
// Parsing is a single linear scan with one character of lookahead. A Cursor is a plain
// value, so parsing is allocation free and safe to run from any number of goroutines.
package format
