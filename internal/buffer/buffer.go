// Package buffer stores text as lines of grapheme clusters and applies the
// insert, delete and join edits the editor performs on them.
package buffer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/studiowebux/blueline/internal/grapheme"
)

// ErrOutOfBounds is returned when a mutation targets a position outside the
// buffer.
var ErrOutOfBounds = errors.New("position out of bounds")

// Position addresses a grapheme cluster: Line is 0-based, Column counts
// clusters (not bytes, not cells). Column == LineLen(Line) is the position
// just past the last cluster.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Line, p.Column)
}

// Compare orders positions by line, then column.
func Compare(a, b Position) int {
	switch {
	case a.Line < b.Line:
		return -1
	case a.Line > b.Line:
		return 1
	case a.Column < b.Column:
		return -1
	case a.Column > b.Column:
		return 1
	default:
		return 0
	}
}

// Buffer is an ordered sequence of lines, each a sequence of grapheme
// clusters. It always holds at least one line.
type Buffer struct {
	lines   [][]string
	version uint64
}

// New creates a buffer from text. Line breaks are "\n"; a trailing "\r" on a
// line is dropped.
func New(text string) *Buffer {
	b := &Buffer{}
	b.lines = splitLines(text)
	return b
}

// FromLines creates a buffer holding the given lines.
func FromLines(lines []string) *Buffer {
	b := &Buffer{}
	if len(lines) == 0 {
		b.lines = [][]string{{}}
		return b
	}
	b.lines = make([][]string, len(lines))
	for i, l := range lines {
		b.lines[i] = grapheme.Split(l)
	}
	return b
}

// Version increases on every successful mutation.
func (b *Buffer) Version() uint64 { return b.version }

// LineCount returns the number of lines (never zero).
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the clusters of line i. The slice must not be modified.
func (b *Buffer) Line(i int) []string {
	if i < 0 || i >= len(b.lines) {
		return nil
	}
	return b.lines[i]
}

// LineLen returns the cluster count of line i, or 0 when i is out of range.
func (b *Buffer) LineLen(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return len(b.lines[i])
}

// LineText returns line i as a string.
func (b *Buffer) LineText(i int) string {
	return grapheme.Join(b.Line(i))
}

// Lines returns every line as a string.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = grapheme.Join(l)
	}
	return out
}

// Text returns the whole buffer joined with "\n".
func (b *Buffer) Text() string {
	return strings.Join(b.Lines(), "\n")
}

// IsEmpty reports whether the buffer is a single empty line.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

// Replace swaps the whole content.
func (b *Buffer) Replace(text string) {
	b.lines = splitLines(text)
	b.version++
}

// Valid reports whether p addresses a cluster or an end-of-line slot.
func (b *Buffer) Valid(p Position) bool {
	return p.Line >= 0 && p.Line < len(b.lines) &&
		p.Column >= 0 && p.Column <= len(b.lines[p.Line])
}

// Clamp moves p to the nearest valid position.
func (b *Buffer) Clamp(p Position) Position {
	p.Line = clamp(p.Line, 0, len(b.lines)-1)
	p.Column = clamp(p.Column, 0, len(b.lines[p.Line]))
	return p
}

func (b *Buffer) checkBounds(p Position) error {
	if !b.Valid(p) {
		return fmt.Errorf("%w: %s in %d lines", ErrOutOfBounds, p, len(b.lines))
	}
	return nil
}

func splitLines(text string) [][]string {
	parts := strings.Split(text, "\n")
	lines := make([][]string, len(parts))
	for i, s := range parts {
		lines[i] = grapheme.Split(strings.TrimSuffix(s, "\r"))
	}
	return lines
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
