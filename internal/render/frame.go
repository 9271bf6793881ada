// Package render turns the window into frames and decides, per event, the
// cheapest redraw that brings the terminal up to date: a full redraw, a
// content update of the changed rows, or a cursor move. The decision is a
// pure function of what changed between two snapshots.
package render

import "github.com/studiowebux/blueline/internal/window"

// Category is the kind of redraw a frame needs.
type Category int

const (
	None Category = iota
	Full
	ContentUpdate
	CursorOnly
)

func (c Category) String() string {
	switch c {
	case Full:
		return "full"
	case ContentUpdate:
		return "content_update"
	case CursorOnly:
		return "cursor_only"
	default:
		return "none"
	}
}

// CursorStyle is how the terminal should draw the cursor.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorBar               // blinking bar, Insert mode
	CursorHidden            // Command mode
)

// Span is a half-open cell range relative to the start of Row.Text.
type Span struct {
	From int
	To   int
}

// Row is one screen row of a pane.
type Row struct {
	Pane window.PaneID
	// Line is the 1-based buffer line, 0 for wrap continuations and filler.
	Line      int
	Gutter    string
	Text      string
	Selection *Span
	Filler    bool
	Active    bool
}

// Cursor is a screen position in cells.
type Cursor struct {
	Row   int
	Col   int
	Style CursorStyle
}

// Status is the bottom bar.
type Status struct {
	Mode    string
	Left    string
	Right   string
	IsError bool
	// Command is set in Command mode; the bar then shows ":" + CommandText.
	Command       bool
	CommandText   string
	CommandCursor int
}

// Frame is everything a terminal driver needs to draw one screen.
type Frame struct {
	Width  int
	Height int
	Rows   []Row
	Status Status
	Cursor Cursor
}

// Intent is what the engine hands to the terminal driver. For ContentUpdate
// only Rows (indices into Frame.Rows) and, if StatusChanged, the status bar
// need redrawing. For CursorOnly only the cursor moved from PrevCursor.
type Intent struct {
	Category      Category
	Frame         *Frame
	Rows          []int
	StatusChanged bool
	PrevCursor    Cursor
}

// Terminal is the driver the engine renders to. Initialize and Cleanup are
// called exactly once each.
type Terminal interface {
	Initialize() error
	Cleanup() error
	Draw(Intent) error
}
