// Package screen is the tcell terminal driver. Unlike the Bubble Tea driver
// it honors render intents cell by cell: a full redraw clears the screen, a
// content update rewrites only the changed rows and the status bar, and a
// cursor-only intent just moves the cursor.
package screen

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/studiowebux/blueline/internal/grapheme"
	"github.com/studiowebux/blueline/internal/render"
)

var (
	styleText     = tcell.StyleDefault
	styleGutter   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFiller   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSelected = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleStatus   = tcell.StyleDefault.Reverse(true)
	styleMode     = styleStatus.Bold(true)
	styleError    = styleStatus.Foreground(tcell.ColorRed)
)

// Terminal implements render.Terminal on a tcell.Screen.
type Terminal struct {
	screen tcell.Screen
	frame  *render.Frame
}

// New wraps s. The screen is initialized by Initialize, not here.
func New(s tcell.Screen) *Terminal {
	return &Terminal{screen: s}
}

// Screen returns the underlying tcell screen.
func (t *Terminal) Screen() tcell.Screen { return t.screen }

func (t *Terminal) Initialize() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	t.screen.Clear()
	return nil
}

func (t *Terminal) Cleanup() error {
	t.screen.Fini()
	return nil
}

// Draw applies one render intent and flushes it.
func (t *Terminal) Draw(in render.Intent) error {
	f := in.Frame
	switch in.Category {
	case render.Full:
		t.screen.Clear()
		for y, row := range f.Rows {
			t.drawRow(y, row, f)
		}
		t.drawStatus(f)
	case render.ContentUpdate:
		for _, y := range in.Rows {
			if y < len(f.Rows) {
				t.drawRow(y, f.Rows[y], f)
			}
		}
		if in.StatusChanged {
			t.drawStatus(f)
		}
	}
	t.placeCursor(f)
	t.frame = f
	t.screen.Show()
	return nil
}

func (t *Terminal) drawRow(y int, row render.Row, f *render.Frame) {
	x := t.drawString(0, y, row.Gutter, styleGutter, f.Width)
	base := styleText
	if row.Filler {
		base = styleFiller
	}

	cell := 0
	for _, c := range grapheme.Split(row.Text) {
		if x >= f.Width {
			break
		}
		st := base
		if row.Selection != nil && cell >= row.Selection.From && cell < row.Selection.To {
			st = styleSelected
		}
		w := grapheme.Width(c)
		setCluster(t.screen, x, y, c, st)
		x += w
		cell += w
	}
	for ; x < f.Width; x++ {
		st := styleText
		if row.Selection != nil && cell >= row.Selection.From && cell < row.Selection.To {
			st = styleSelected
		}
		t.screen.SetContent(x, y, ' ', nil, st)
		cell++
	}
}

// drawStatus paints the bottom row: the command line in Command mode,
// otherwise the mode, the message and the right-aligned summary.
func (t *Terminal) drawStatus(f *render.Frame) {
	y := f.Height - 1
	for x := 0; x < f.Width; x++ {
		t.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
	st := f.Status
	if st.Command {
		t.drawString(0, y, ":"+st.CommandText, styleStatus, f.Width)
		return
	}

	right := st.Right
	rw := runewidth.StringWidth(right)
	x := t.drawString(0, y, " "+st.Mode+" ", styleMode, f.Width)
	if st.Left != "" {
		msgStyle := styleStatus
		if st.IsError {
			msgStyle = styleError
		}
		x = t.drawString(x+1, y, st.Left, msgStyle, max(x+1, f.Width-rw-1))
	}
	if right != "" && f.Width-rw > x {
		t.drawString(f.Width-rw, y, right, styleStatus, f.Width)
	}
}

func (t *Terminal) placeCursor(f *render.Frame) {
	c := f.Cursor
	switch {
	case f.Status.Command:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
		t.screen.ShowCursor(1+f.Status.CommandCursor, f.Height-1)
	case c.Style == render.CursorHidden:
		t.screen.HideCursor()
	case c.Style == render.CursorBar:
		t.screen.SetCursorStyle(tcell.CursorStyleBlinkingBar)
		t.screen.ShowCursor(c.Col, c.Row)
	default:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
		t.screen.ShowCursor(c.Col, c.Row)
	}
}

// drawString writes s from column x, stopping before limit, and returns the
// column after the last cluster written.
func (t *Terminal) drawString(x, y int, s string, style tcell.Style, limit int) int {
	for _, c := range grapheme.Split(s) {
		w := grapheme.Width(c)
		if x+w > limit {
			break
		}
		setCluster(t.screen, x, y, c, style)
		x += w
	}
	return x
}

func setCluster(s tcell.Screen, x, y int, cluster string, style tcell.Style) {
	runes := []rune(cluster)
	if len(runes) == 0 {
		return
	}
	s.SetContent(x, y, runes[0], runes[1:], style)
}
