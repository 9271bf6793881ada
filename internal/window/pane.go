package window

import (
	"fmt"

	"github.com/studiowebux/blueline/internal/buffer"
	"github.com/studiowebux/blueline/internal/motion"
)

// PaneID names one of the two panes.
type PaneID int

const (
	Request PaneID = iota
	Response
)

func (id PaneID) String() string {
	if id == Response {
		return "response"
	}
	return "request"
}

// Options are per-pane display settings toggled with :set.
type Options struct {
	Wrap   bool
	Number bool
}

// Pane is one text viewport: a buffer plus cursor, scroll, height and an
// optional Visual selection.
type Pane struct {
	id         PaneID
	buf        *buffer.Buffer
	cursor     buffer.Position
	scroll     int
	height     int
	sel        *Selection
	opts       Options
	readOnly   bool
	generation uint64
}

func newPane(id PaneID, readOnly bool) *Pane {
	return &Pane{id: id, buf: buffer.New(""), readOnly: readOnly}
}

func (p *Pane) ID() PaneID { return p.id }

// Buffer returns the pane's text.
func (p *Pane) Buffer() *buffer.Buffer { return p.buf }

func (p *Pane) Cursor() buffer.Position { return p.cursor }
func (p *Pane) Scroll() int { return p.scroll }
func (p *Pane) Height() int { return p.height }
func (p *Pane) Options() Options { return p.opts }
func (p *Pane) SetOptions(o Options) { p.opts = o }
func (p *Pane) HasSelection() bool { return p.sel != nil }

// Generation counts wholesale content replacements.
func (p *Pane) Generation() uint64 { return p.generation }

func (p *Pane) setHeight(h int) {
	p.height = h
	p.fit()
}

func (p *Pane) motionState() motion.State {
	return motion.State{Cursor: p.cursor, Scroll: p.scroll, Height: p.height}
}

// Selection returns a copy of the Visual selection.
func (p *Pane) Selection() (Selection, bool) {
	if p.sel == nil {
		return Selection{}, false
	}
	return *p.sel, true
}

// StartSelection anchors a selection at the cursor.
func (p *Pane) StartSelection() {
	p.sel = &Selection{Anchor: p.cursor, Active: p.cursor}
}

// ClearSelection drops the selection.
func (p *Pane) ClearSelection() { p.sel = nil }

// SetCursor moves the cursor, clamping it and the scroll offset.
func (p *Pane) SetCursor(pos buffer.Position) {
	p.cursor = p.buf.Clamp(pos)
	p.fit()
}

// Move applies a motion. The selection, if any, follows the cursor.
func (p *Pane) Move(k motion.Kind, count int) {
	p.apply(motion.Apply(p.buf, p.motionState(), k, count))
}

// GotoLine jumps to 1-indexed line n; n == 0 is ignored.
func (p *Pane) GotoLine(n int) {
	p.apply(motion.GotoLine(p.buf, p.motionState(), n))
}

func (p *Pane) apply(st motion.State) {
	p.cursor = st.Cursor
	p.scroll = st.Scroll
	if p.sel != nil {
		p.sel.Active = p.cursor
	}
}

// fit re-establishes the cursor and scroll invariants.
func (p *Pane) fit() {
	p.cursor = p.buf.Clamp(p.cursor)
	p.scroll = motion.ClampScroll(p.scroll, p.cursor.Line, p.height, p.buf.LineCount())
	if p.sel != nil {
		p.sel.Anchor = p.buf.Clamp(p.sel.Anchor)
		p.sel.Active = p.cursor
	}
}

func (p *Pane) writable() error {
	if p.readOnly {
		return fmt.Errorf("%s pane: %w", p.id, ErrReadOnly)
	}
	return nil
}

func (p *Pane) edit(fn func(buffer.Position) (buffer.Position, error)) error {
	if err := p.writable(); err != nil {
		return err
	}
	next, err := fn(p.cursor)
	if err != nil {
		return err
	}
	p.cursor = next
	p.fit()
	return nil
}

// Insert inserts text at the cursor and moves past it.
func (p *Pane) Insert(text string) error {
	return p.edit(func(pos buffer.Position) (buffer.Position, error) {
		return p.buf.InsertText(pos, text)
	})
}

// Newline splits the line at the cursor.
func (p *Pane) Newline() error {
	return p.edit(p.buf.InsertNewline)
}

// Backspace deletes before the cursor, joining lines at column 0.
func (p *Pane) Backspace() error {
	return p.edit(p.buf.DeleteBackward)
}

// Delete deletes under the cursor, joining lines at end of line.
func (p *Pane) Delete() error {
	return p.edit(p.buf.DeleteForward)
}

// OpenLine inserts an empty line below (or above) the cursor line and moves
// there.
func (p *Pane) OpenLine(above bool) error {
	return p.edit(func(pos buffer.Position) (buffer.Position, error) {
		at := pos.Line + 1
		if above {
			at = pos.Line
		}
		return p.buf.OpenLine(at)
	})
}

// CheckWritable reports ErrReadOnly for the response pane.
func (p *Pane) CheckWritable() error { return p.writable() }

// replace swaps the whole content and resets the view.
func (p *Pane) replace(text string) {
	p.buf.Replace(text)
	p.cursor = buffer.Position{}
	p.scroll = 0
	p.sel = nil
	p.generation++
}
