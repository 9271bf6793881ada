package window

import "github.com/studiowebux/blueline/internal/buffer"

// Selection is a Visual-mode span: Anchor stays where Visual mode started,
// Active follows the cursor. Both ends are inclusive.
type Selection struct {
	Anchor buffer.Position
	Active buffer.Position
}

// Normalized returns the selection ends in document order.
func (s Selection) Normalized() (start, end buffer.Position) {
	if buffer.Compare(s.Anchor, s.Active) <= 0 {
		return s.Anchor, s.Active
	}
	return s.Active, s.Anchor
}

// Contains reports whether p lies inside the selection.
func (s Selection) Contains(p buffer.Position) bool {
	start, end := s.Normalized()
	return buffer.Compare(start, p) <= 0 && buffer.Compare(p, end) <= 0
}

// LineSpan returns the half-open column range [from, to) selected on line.
// An empty selected line reports (0, 0, true).
func (s Selection) LineSpan(line, lineLen int) (from, to int, ok bool) {
	start, end := s.Normalized()
	if line < start.Line || line > end.Line {
		return 0, 0, false
	}
	from, to = 0, lineLen
	if line == start.Line {
		from = min(start.Column, lineLen)
	}
	if line == end.Line {
		to = min(end.Column+1, lineLen)
	}
	if to < from {
		to = from
	}
	return from, to, true
}
