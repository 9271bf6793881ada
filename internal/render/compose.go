package render

import (
	"fmt"
	"strings"

	"github.com/studiowebux/blueline/internal/grapheme"
	"github.com/studiowebux/blueline/internal/window"
)

// State is the editor-side input to Compose.
type State struct {
	Mode        string
	CursorStyle CursorStyle
	Status      Status
}

// Compose projects the window onto a frame.
func Compose(w *window.Window, st State) Frame {
	f := Frame{
		Width:  w.Cols(),
		Height: w.Rows(),
		Status: st.Status,
		Rows:   make([]Row, 0, w.ContentRows()),
	}
	f.Status.Mode = st.Mode

	top := 0
	for _, id := range []window.PaneID{window.Request, window.Response} {
		p := w.Pane(id)
		if p.Height() == 0 {
			continue
		}
		active := id == w.ActiveID()
		rows, cur := composePane(p, w.Cols(), active)
		if active {
			f.Cursor = Cursor{Row: top + cur.Row, Col: cur.Col, Style: st.CursorStyle}
		}
		f.Rows = append(f.Rows, rows...)
		top += p.Height()
	}
	return f
}

func gutterWidth(p *window.Pane) int {
	if !p.Options().Number {
		return 0
	}
	digits := len(fmt.Sprint(p.Buffer().LineCount()))
	return max(3, digits) + 1
}

func gutter(line, width int) string {
	if width == 0 {
		return ""
	}
	if line == 0 {
		return strings.Repeat(" ", width)
	}
	return fmt.Sprintf("%*d ", width-1, line)
}

func composePane(p *window.Pane, cols int, active bool) ([]Row, Cursor) {
	gw := gutterWidth(p)
	textW := max(1, cols-gw)
	if p.Options().Wrap {
		return composeWrapped(p, gw, textW, active)
	}
	return composeClipped(p, gw, textW, active)
}

func composeClipped(p *window.Pane, gw, textW int, active bool) ([]Row, Cursor) {
	buf := p.Buffer()
	cur := p.Cursor()
	sel, hasSel := p.Selection()

	curCell := grapheme.CellOffset(buf.Line(cur.Line), cur.Column)
	hs := 0
	if curCell >= textW {
		hs = curCell - textW + 1
	}

	rows := make([]Row, 0, p.Height())
	for i := 0; i < p.Height(); i++ {
		ln := p.Scroll() + i
		if ln >= buf.LineCount() {
			rows = append(rows, fillerRow(p.ID(), gw, active))
			continue
		}
		line := buf.Line(ln)
		row := Row{
			Pane:   p.ID(),
			Line:   ln + 1,
			Gutter: gutter(ln+1, gw),
			Text:   clip(line, hs, textW),
			Active: active,
		}
		if hasSel {
			if from, to, ok := sel.LineSpan(ln, len(line)); ok {
				row.Selection = cellSpan(line, from, to, hs, textW)
			}
		}
		rows = append(rows, row)
	}
	return rows, Cursor{Row: cur.Line - p.Scroll(), Col: gw + curCell - hs}
}

// segment is one wrapped screen row of a line, in cluster columns.
type segment struct {
	start, end int
	startCell  int
}

func wrapLine(line []string, width int) []segment {
	if len(line) == 0 {
		return []segment{{}}
	}
	var segs []segment
	seg := segment{}
	acc := 0
	for i, c := range line {
		w := grapheme.Width(c)
		if acc+w > width && i > seg.start {
			seg.end = i
			segs = append(segs, seg)
			seg = segment{start: i, startCell: seg.startCell + acc}
			acc = 0
		}
		acc += w
	}
	seg.end = len(line)
	return append(segs, seg)
}

func composeWrapped(p *window.Pane, gw, textW int, active bool) ([]Row, Cursor) {
	buf := p.Buffer()
	cur := p.Cursor()

	// Start at the pane scroll and advance while the cursor row does not fit.
	for start := p.Scroll(); start <= cur.Line; start++ {
		rows, c, ok := wrappedRows(p, start, gw, textW, active)
		if ok || start == cur.Line {
			return rows, c
		}
	}
	rows, c, _ := wrappedRows(p, min(cur.Line, buf.LineCount()-1), gw, textW, active)
	return rows, c
}

func wrappedRows(p *window.Pane, start, gw, textW int, active bool) ([]Row, Cursor, bool) {
	buf := p.Buffer()
	cur := p.Cursor()
	sel, hasSel := p.Selection()

	rows := make([]Row, 0, p.Height())
	c := Cursor{}
	found := false
	for ln := start; ln < buf.LineCount() && len(rows) < p.Height(); ln++ {
		line := buf.Line(ln)
		segs := wrapLine(line, textW)
		for si, seg := range segs {
			if len(rows) == p.Height() {
				break
			}
			n := ln + 1
			if si > 0 {
				n = 0
			}
			row := Row{
				Pane:   p.ID(),
				Line:   n,
				Gutter: gutter(n, gw),
				Text:   grapheme.Join(line[seg.start:seg.end]),
				Active: active,
			}
			if hasSel {
				if from, to, ok := sel.LineSpan(ln, len(line)); ok {
					from, to = max(from, seg.start), min(to, seg.end)
					if to > from || (len(line) == 0 && si == 0) {
						row.Selection = cellSpan(line[seg.start:seg.end], from-seg.start, to-seg.start, 0, textW)
					}
				}
			}
			if ln == cur.Line && !found {
				last := si == len(segs)-1
				if cur.Column >= seg.start && (cur.Column < seg.end || last) {
					cell := grapheme.CellOffset(line, cur.Column) - seg.startCell
					c = Cursor{Row: len(rows), Col: gw + min(cell, textW-1)}
					found = true
				}
			}
			rows = append(rows, row)
		}
	}
	for len(rows) < p.Height() {
		rows = append(rows, fillerRow(p.ID(), gw, active))
	}
	return rows, c, found
}

func fillerRow(id window.PaneID, gw int, active bool) Row {
	return Row{Pane: id, Gutter: gutter(0, gw), Text: "~", Filler: true, Active: active}
}

// clip returns the part of line visible in cells [from, from+width). Wide
// clusters cut by either edge are replaced by spaces.
func clip(line []string, from, width int) string {
	var sb strings.Builder
	cell := 0
	for _, c := range line {
		w := grapheme.Width(c)
		start, end := cell, cell+w
		cell = end
		switch {
		case end <= from:
			continue
		case start >= from+width:
			return sb.String()
		case start < from || end > from+width:
			visible := min(end, from+width) - max(start, from)
			sb.WriteString(strings.Repeat(" ", visible))
		default:
			sb.WriteString(c)
		}
	}
	return sb.String()
}

// cellSpan converts the selected cluster columns [from, to) of line into a
// cell span relative to the visible text. An empty selection still marks
// one cell.
func cellSpan(line []string, from, to, hs, width int) *Span {
	a := grapheme.CellOffset(line, from) - hs
	b := grapheme.CellOffset(line, to) - hs
	if b <= a {
		b = a + 1
	}
	a, b = max(a, 0), min(b, width)
	if b <= a {
		return nil
	}
	return &Span{From: a, To: b}
}
