package motion

import (
	"github.com/studiowebux/blueline/internal/buffer"
	"github.com/studiowebux/blueline/internal/grapheme"
)

// Word motions treat Latin words and CJK runs as stops. Whitespace and
// punctuation separate words but are never landed on by w or b. A change of
// class (abc名前) is a word boundary even without a separator, and a line
// break always is.

func isStop(c grapheme.WordClass) bool {
	return c == grapheme.ClassWord || c == grapheme.ClassCJK
}

// wordForward returns the start of the next word, or p when there is none.
func wordForward(buf *buffer.Buffer, p buffer.Position) buffer.Position {
	line, col := p.Line, p.Column
	clusters := buf.Line(line)

	if col < len(clusters) {
		cls := grapheme.Class(clusters[col])
		if isStop(cls) {
			for col < len(clusters) && grapheme.Class(clusters[col]) == cls {
				col++
			}
		}
	}

	last := buf.LineCount() - 1
	for {
		if col >= len(clusters) {
			if line == last {
				return p
			}
			line++
			col = 0
			clusters = buf.Line(line)
			continue
		}
		if isStop(grapheme.Class(clusters[col])) {
			return buffer.Position{Line: line, Column: col}
		}
		col++
	}
}

// wordBackward returns the start of the previous word, or p when there is
// none.
func wordBackward(buf *buffer.Buffer, p buffer.Position) buffer.Position {
	line, col := p.Line, p.Column
	clusters := buf.Line(line)
	col = min(col, len(clusters))

	for {
		if col == 0 {
			if line == 0 {
				return p
			}
			line--
			clusters = buf.Line(line)
			col = len(clusters)
			continue
		}
		col--
		if isStop(grapheme.Class(clusters[col])) {
			break
		}
	}

	cls := grapheme.Class(clusters[col])
	for col > 0 && grapheme.Class(clusters[col-1]) == cls {
		col--
	}
	return buffer.Position{Line: line, Column: col}
}

// wordEnd returns the last cluster of the current or next run of word or
// punctuation clusters, or p when there is none.
func wordEnd(buf *buffer.Buffer, p buffer.Position) buffer.Position {
	line, col := p.Line, p.Column+1
	clusters := buf.Line(line)

	last := buf.LineCount() - 1
	for {
		if col >= len(clusters) {
			if line == last {
				return p
			}
			line++
			col = 0
			clusters = buf.Line(line)
			continue
		}
		if grapheme.Class(clusters[col]) != grapheme.ClassSpace {
			break
		}
		col++
	}

	cls := grapheme.Class(clusters[col])
	for col+1 < len(clusters) && grapheme.Class(clusters[col+1]) == cls {
		col++
	}
	return buffer.Position{Line: line, Column: col}
}
