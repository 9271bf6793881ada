// Package window owns the request and response panes, their heights and the
// active-pane pointer. Every layout change re-checks that the visible pane
// heights add up to the terminal rows minus the status bar.
package window

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/studiowebux/blueline/internal/logger"
)

const (
	// StatusBarRows is reserved at the bottom of the screen.
	StatusBarRows = 1
	// MinPaneHeight is the floor for every visible pane.
	MinPaneHeight = 3
)

var (
	// ErrReadOnly is returned when an edit targets the response pane.
	ErrReadOnly = errors.New("pane is read-only")
	// ErrInvariant reports a layout the manager should never produce.
	ErrInvariant = errors.New("window invariant violated")
)

// Window is the aggregate that owns both panes.
type Window struct {
	panes           [2]*Pane
	active          PaneID
	responseVisible bool
	// hiddenBySize is set when a resize hid the response pane, so growing
	// the terminal again brings it back.
	hiddenBySize bool
	rows         int
	cols         int
	// lastResponse is the response height to restore when the pane is shown.
	lastResponse int
}

// New creates a window for a rows x cols terminal. The response pane starts
// hidden and empty.
func New(rows, cols int) *Window {
	w := &Window{
		panes: [2]*Pane{newPane(Request, false), newPane(Response, true)},
		rows:  rows,
		cols:  cols,
	}
	w.layout(0)
	return w
}

func (w *Window) Pane(id PaneID) *Pane { return w.panes[id] }
func (w *Window) Request() *Pane { return w.panes[Request] }
func (w *Window) Response() *Pane { return w.panes[Response] }
func (w *Window) Active() *Pane { return w.panes[w.active] }
func (w *Window) ActiveID() PaneID { return w.active }
func (w *Window) ResponseVisible() bool {
	return w.responseVisible
}

// Rows and Cols return the terminal size.
func (w *Window) Rows() int { return w.rows }
func (w *Window) Cols() int { return w.cols }

// ContentRows is the number of rows shared by the panes.
func (w *Window) ContentRows() int {
	return max(0, w.rows-StatusBarRows)
}

// HasResponse reports whether a response was ever received.
func (w *Window) HasResponse() bool {
	return w.panes[Response].generation > 0
}

// SwitchPane makes target active. Switching to a hidden response pane is a
// no-op.
func (w *Window) SwitchPane(target PaneID) bool {
	if target == Response && !w.responseVisible {
		return false
	}
	if target == w.active {
		return false
	}
	w.active = target
	logger.L().Debug("pane switched", zap.Stringer("active", target))
	return true
}

// OtherPane switches to whichever pane is not active.
func (w *Window) OtherPane() bool {
	if w.active == Request {
		return w.SwitchPane(Response)
	}
	return w.SwitchPane(Request)
}

// GrowResponse moves one row from the request pane to the response pane.
func (w *Window) GrowResponse() bool {
	if !w.canResize() || w.panes[Request].height-1 < MinPaneHeight {
		return false
	}
	w.layout(w.panes[Response].height + 1)
	return true
}

// ShrinkResponse moves one row from the response pane to the request pane.
func (w *Window) ShrinkResponse() bool {
	if !w.canResize() || w.panes[Response].height-1 < MinPaneHeight {
		return false
	}
	w.layout(w.panes[Response].height - 1)
	return true
}

func (w *Window) canResize() bool {
	return w.responseVisible && w.HasResponse()
}

// ToggleResponse hides or shows the response pane. Hiding gives every row to
// the request pane; showing restores the last split and activates the
// request pane. Showing is refused when the terminal is too small.
func (w *Window) ToggleResponse() bool {
	if w.responseVisible {
		w.hide()
		w.hiddenBySize = false
		return true
	}
	return w.show()
}

func (w *Window) hide() {
	w.lastResponse = w.panes[Response].height
	w.responseVisible = false
	w.active = Request
	w.panes[Response].ClearSelection()
	w.layout(0)
}

func (w *Window) show() bool {
	if w.ContentRows() < 2*MinPaneHeight {
		return false
	}
	w.responseVisible = true
	w.hiddenBySize = false
	w.active = Request
	h := w.lastResponse
	if h == 0 {
		h = w.defaultResponseHeight()
	}
	w.layout(h)
	return true
}

func (w *Window) defaultResponseHeight() int {
	content := w.ContentRows()
	return content - content/2
}

// ReplaceResponse swaps the response content wholesale and shows the pane.
func (w *Window) ReplaceResponse(text string) {
	w.panes[Response].replace(text)
	if !w.responseVisible {
		w.show()
	}
}

// SetSize applies a terminal resize keeping the split ratio.
func (w *Window) SetSize(rows, cols int) {
	oldContent := w.ContentRows()
	oldResponse := w.panes[Response].height
	w.rows, w.cols = rows, cols
	content := w.ContentRows()

	if w.responseVisible && content < 2*MinPaneHeight {
		w.hide()
		w.hiddenBySize = true
		return
	}
	if !w.responseVisible {
		if w.hiddenBySize && content >= 2*MinPaneHeight {
			w.show()
			return
		}
		w.layout(0)
		return
	}

	h := w.defaultResponseHeight()
	if oldContent > 0 {
		h = (oldResponse*content + oldContent/2) / oldContent
	}
	w.layout(h)
}

// layout assigns heights: the response pane gets response rows (clamped to
// the floors) when visible and the request pane gets the rest.
func (w *Window) layout(response int) {
	content := w.ContentRows()
	if !w.responseVisible {
		w.panes[Request].setHeight(content)
		w.panes[Response].setHeight(0)
	} else {
		response = max(MinPaneHeight, min(response, content-MinPaneHeight))
		w.panes[Request].setHeight(content - response)
		w.panes[Response].setHeight(response)
	}
	if err := w.Check(); err != nil {
		logger.L().Error("layout check failed", zap.Error(err))
	}
}

// Check verifies the height invariants.
func (w *Window) Check() error {
	req, resp := w.panes[Request].height, w.panes[Response].height
	content := w.ContentRows()
	if !w.responseVisible {
		if req != content || resp != 0 {
			return fmt.Errorf("%w: request %d response %d (hidden) content %d", ErrInvariant, req, resp, content)
		}
		if w.active == Response {
			return fmt.Errorf("%w: hidden response pane is active", ErrInvariant)
		}
		return nil
	}
	if req+resp != content {
		return fmt.Errorf("%w: heights %d+%d != %d", ErrInvariant, req, resp, content)
	}
	if req < MinPaneHeight || resp < MinPaneHeight {
		return fmt.Errorf("%w: heights %d/%d below %d", ErrInvariant, req, resp, MinPaneHeight)
	}
	return nil
}
