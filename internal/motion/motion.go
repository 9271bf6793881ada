// Package motion maps (buffer, cursor, scroll, command, count) to a new cursor
// and scroll offset. Motions never fail: out-of-range requests clamp.
package motion

import (
	"github.com/studiowebux/blueline/internal/buffer"
	"github.com/studiowebux/blueline/internal/grapheme"
)

// Kind identifies a motion command.
type Kind int

const (
	Left Kind = iota
	Right
	Up
	Down
	LineStart
	LineEnd
	FirstNonBlank
	WordForward
	WordBackward
	WordEnd
	BufferStart
	BufferEnd
	HalfPageDown
	HalfPageUp
	PageDown
	PageUp
)

var kindNames = map[Kind]string{
	Left:          "left",
	Right:         "right",
	Up:            "up",
	Down:          "down",
	LineStart:     "line_start",
	LineEnd:       "line_end",
	FirstNonBlank: "first_non_blank",
	WordForward:   "word_forward",
	WordBackward:  "word_backward",
	WordEnd:       "word_end",
	BufferStart:   "buffer_start",
	BufferEnd:     "buffer_end",
	HalfPageDown:  "half_page_down",
	HalfPageUp:    "half_page_up",
	PageDown:      "page_down",
	PageUp:        "page_up",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// State is the part of a pane a motion reads and writes.
type State struct {
	Cursor buffer.Position
	Scroll int
	Height int // viewport rows
}

// Apply runs motion k count times (count <= 0 means once). For BufferStart
// and BufferEnd a positive count is a 1-indexed line number instead.
func Apply(buf *buffer.Buffer, st State, k Kind, count int) State {
	st.Cursor = buf.Clamp(st.Cursor)

	switch k {
	case BufferStart, BufferEnd:
		if count > 0 {
			return GotoLine(buf, st, count)
		}
		if k == BufferStart {
			st.Cursor = buffer.Position{}
			st.Scroll = 0
			return st
		}
		st.Cursor = buffer.Position{Line: buf.LineCount() - 1}
		st.Scroll = ClampScroll(st.Scroll, st.Cursor.Line, st.Height, buf.LineCount())
		return st
	case HalfPageDown, HalfPageUp, PageDown, PageUp:
		return page(buf, st, k, max(count, 1))
	}

	if count <= 0 {
		count = 1
	}
	p := st.Cursor
	for i := 0; i < count; i++ {
		next := step(buf, p, k)
		if next == p {
			break
		}
		p = next
	}
	st.Cursor = p
	st.Scroll = ClampScroll(st.Scroll, p.Line, st.Height, buf.LineCount())
	return st
}

// GotoLine moves to 1-indexed line n at column 0. n == 0 is ignored and n
// past the end clamps to the last line.
func GotoLine(buf *buffer.Buffer, st State, n int) State {
	if n <= 0 {
		return st
	}
	line := min(n-1, buf.LineCount()-1)
	st.Cursor = buffer.Position{Line: line}
	st.Scroll = ClampScroll(st.Scroll, line, st.Height, buf.LineCount())
	return st
}

// ClampScroll keeps scroll inside [0, max(0, lineCount-height)] and the
// cursor line inside the viewport.
func ClampScroll(scroll, cursorLine, height, lineCount int) int {
	if height <= 0 {
		return 0
	}
	if cursorLine < scroll {
		scroll = cursorLine
	}
	if cursorLine >= scroll+height {
		scroll = cursorLine - height + 1
	}
	maxScroll := max(0, lineCount-height)
	return max(0, min(scroll, maxScroll))
}

func step(buf *buffer.Buffer, p buffer.Position, k Kind) buffer.Position {
	switch k {
	case Left:
		if p.Column > 0 {
			p.Column--
		}
	case Right:
		if p.Column < buf.LineLen(p.Line) {
			p.Column++
		}
	case Up:
		if p.Line > 0 {
			p.Line--
			p.Column = min(p.Column, buf.LineLen(p.Line))
		}
	case Down:
		if p.Line < buf.LineCount()-1 {
			p.Line++
			p.Column = min(p.Column, buf.LineLen(p.Line))
		}
	case LineStart:
		p.Column = 0
	case LineEnd:
		p.Column = buf.LineLen(p.Line)
	case FirstNonBlank:
		p.Column = firstNonBlank(buf.Line(p.Line))
	case WordForward:
		return wordForward(buf, p)
	case WordBackward:
		return wordBackward(buf, p)
	case WordEnd:
		return wordEnd(buf, p)
	}
	return p
}

func page(buf *buffer.Buffer, st State, k Kind, count int) State {
	h := max(st.Height, 1)
	delta := h
	if k == HalfPageDown || k == HalfPageUp {
		delta = max(h/2, 1)
	}
	delta *= count
	if k == HalfPageUp || k == PageUp {
		delta = -delta
	}

	last := buf.LineCount() - 1
	line := max(0, min(st.Cursor.Line+delta, last))
	st.Cursor = buffer.Position{Line: line, Column: min(st.Cursor.Column, buf.LineLen(line))}
	st.Scroll = ClampScroll(st.Scroll+delta, line, st.Height, buf.LineCount())
	return st
}

func firstNonBlank(line []string) int {
	for i, c := range line {
		if !grapheme.IsSpace(c) {
			return i
		}
	}
	return len(line)
}
