package render

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/studiowebux/blueline/internal/logger"
	"github.com/studiowebux/blueline/internal/window"
)

// ErrNotInitialized is returned when Render runs before Initialize.
var ErrNotInitialized = errors.New("terminal not initialized")

// Engine owns the last snapshot and drives a Terminal.
type Engine struct {
	term        Terminal
	prev        *Snapshot
	initialized bool
	closed      bool
	counts      map[Category]int
}

// NewEngine creates an engine for term.
func NewEngine(term Terminal) *Engine {
	return &Engine{term: term, counts: make(map[Category]int)}
}

// Initialize sets up the terminal once.
func (e *Engine) Initialize() error {
	if e.initialized {
		return nil
	}
	if err := e.term.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	e.initialized = true
	return nil
}

// Cleanup restores the terminal once. Later calls are no-ops.
func (e *Engine) Cleanup() error {
	if !e.initialized || e.closed {
		return nil
	}
	e.closed = true
	if err := e.term.Cleanup(); err != nil {
		return fmt.Errorf("failed to clean up terminal: %w", err)
	}
	return nil
}

// Invalidate drops the snapshot so the next frame is drawn in full.
func (e *Engine) Invalidate() { e.prev = nil }

// Counts returns how many intents of each category were drawn.
func (e *Engine) Counts() map[Category]int {
	out := make(map[Category]int, len(e.counts))
	for k, v := range e.counts {
		out[k] = v
	}
	return out
}

// Render composes a frame, decides the redraw and draws it. It returns the
// category drawn, None when nothing observable changed.
func (e *Engine) Render(w *window.Window, st State) (Category, error) {
	if !e.initialized || e.closed {
		return None, ErrNotInitialized
	}
	frame := Compose(w, st)
	snap := Capture(w, &frame)
	d := Decide(e.prev, snap)
	if d.Category == None {
		return None, nil
	}

	intent := Intent{
		Category:      d.Category,
		Frame:         &frame,
		Rows:          d.Rows,
		StatusChanged: d.StatusChanged,
	}
	if e.prev != nil {
		intent.PrevCursor = e.prev.Cursor
	}
	if err := e.term.Draw(intent); err != nil {
		// the terminal state is unknown; redraw everything next time
		e.prev = nil
		return d.Category, fmt.Errorf("draw %s: %w", d.Category, err)
	}
	e.prev = snap
	e.counts[d.Category]++
	logger.L().Debug("frame drawn",
		zap.Stringer("category", d.Category),
		zap.Int("rows", len(d.Rows)),
		zap.Bool("status", d.StatusChanged))
	return d.Category, nil
}
