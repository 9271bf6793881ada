// Package editor is the modal state machine. It turns key events into
// motions, buffer edits, pane operations and colon commands, and renders
// exactly once per key through the render engine.
package editor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/studiowebux/blueline/internal/executor"
	"github.com/studiowebux/blueline/internal/filter"
	"github.com/studiowebux/blueline/internal/keybinds"
	"github.com/studiowebux/blueline/internal/logger"
	"github.com/studiowebux/blueline/internal/render"
	"github.com/studiowebux/blueline/internal/types"
	"github.com/studiowebux/blueline/internal/window"
)

// Dispatcher sends a prepared request off the input goroutine and returns
// its ID. *executor.Dispatcher implements it.
type Dispatcher interface {
	Submit(req *types.HttpRequest, profile *types.Profile) (string, error)
}

// Profiles supplies the active profile. *session.Manager implements it.
type Profiles interface {
	GetActiveProfile() *types.Profile
	SetActiveProfile(name string) error
	ProfileNames() []string
}

// Config wires the editor's collaborators. Keys defaults to the built-in
// bindings; Profiles and Dispatcher may be nil.
type Config struct {
	Keys       *keybinds.Registry
	Dispatcher Dispatcher
	Profiles   Profiles
	// Env resolves {{env.NAME}} placeholders.
	Env map[string]string
}

// Editor owns the window and every piece of editing state. It is not safe
// for concurrent use; the driver calls it from one goroutine.
type Editor struct {
	win    *window.Window
	engine *render.Engine
	keys   *keybinds.Registry

	mode  Mode
	prior Mode
	line  cmdline
	count int

	status status

	dispatcher Dispatcher
	profiles   Profiles
	env        map[string]string

	pendingID  string
	lastResult *types.RequestResult
	filterExpr string
}

// New creates an editor for a rows x cols terminal drawing to term.
func New(term render.Terminal, rows, cols int, cfg Config) *Editor {
	keys := cfg.Keys
	if keys == nil {
		keys = keybinds.NewDefaultRegistry()
	}
	return &Editor{
		win:        window.New(rows, cols),
		engine:     render.NewEngine(term),
		keys:       keys,
		dispatcher: cfg.Dispatcher,
		profiles:   cfg.Profiles,
		env:        cfg.Env,
	}
}

func (e *Editor) Window() *window.Window { return e.win }
func (e *Editor) Mode() Mode { return e.mode }

// Engine exposes render counters to drivers and tests.
func (e *Editor) Engine() *render.Engine { return e.engine }

// CommandText is the current command-line text.
func (e *Editor) CommandText() string { return e.line.String() }

// Pending is the ID of the request the editor is waiting for, or "".
func (e *Editor) Pending() string { return e.pendingID }

// StatusMessage returns the transient message and whether it is an error.
func (e *Editor) StatusMessage() (string, bool) {
	return e.status.message, e.status.isError
}

// Load replaces the Request pane content, e.g. from a file on startup.
func (e *Editor) Load(text string) {
	p := e.win.Request()
	p.Buffer().Replace(text)
	p.SetCursor(p.Cursor())
}

// Start initializes the terminal and draws the first frame.
func (e *Editor) Start() error {
	if err := e.engine.Initialize(); err != nil {
		return err
	}
	return e.render()
}

// Stop restores the terminal.
func (e *Editor) Stop() error {
	counts := e.engine.Counts()
	logger.L().Debug("render totals",
		zap.Int("full", counts[render.Full]),
		zap.Int("content_update", counts[render.ContentUpdate]),
		zap.Int("cursor_only", counts[render.CursorOnly]))
	return e.engine.Cleanup()
}

// Resize applies a terminal size change and redraws.
func (e *Editor) Resize(rows, cols int) error {
	e.win.SetSize(rows, cols)
	e.dropLostSelection()
	return e.render()
}

// HandleKey processes one key event and renders once.
func (e *Editor) HandleKey(k Key) (Effect, error) {
	var effect Effect
	switch e.mode {
	case Insert:
		effect = e.handleInsert(k)
	case Command:
		effect = e.handleCommandLine(k)
	default:
		effect = e.handleNormal(k)
	}
	if err := e.render(); err != nil {
		return effect, err
	}
	return effect, nil
}

// ApplyCompletion shows a finished request. Completions for anything but
// the newest submitted request are dropped.
func (e *Editor) ApplyCompletion(c executor.Completion) error {
	if c.ID == "" || c.ID != e.pendingID {
		logger.L().Debug("dropping stale completion",
			zap.String("id", c.ID),
			zap.String("pending", e.pendingID))
		return nil
	}
	e.pendingID = ""
	e.status.executing = false
	e.lastResult = c.Result
	e.status.setResult(c.Result)
	e.win.ReplaceResponse(filter.FormatResponse(c.Result, e.filterExpr))
	e.dropLostSelection()
	logger.L().Info("request completed",
		zap.String("id", c.ID),
		zap.Int("status", c.Result.Status),
		zap.Int64("duration_ms", c.Result.Duration),
		zap.String("error", c.Result.Error))
	return e.render()
}

// dropLostSelection leaves Visual mode when the active pane lost its
// selection to a response replacement or a hidden Response pane.
func (e *Editor) dropLostSelection() {
	if e.win.Active().HasSelection() {
		return
	}
	switch {
	case e.mode == Visual:
		e.setMode(Normal)
	case e.mode == Command && e.prior == Visual:
		e.prior = Normal
	}
}

func (e *Editor) setMode(m Mode) {
	if m == e.mode {
		return
	}
	logger.L().Debug("mode changed",
		zap.Stringer("from", e.mode),
		zap.Stringer("to", m))
	e.mode = m
}

func (e *Editor) render() error {
	st := render.State{
		Mode:        e.mode.String(),
		CursorStyle: e.cursorStyle(),
		Status:      e.status.bar(e.mode, &e.line),
	}
	if _, err := e.engine.Render(e.win, st); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (e *Editor) cursorStyle() render.CursorStyle {
	switch e.mode {
	case Insert:
		return render.CursorBar
	case Command:
		return render.CursorHidden
	default:
		return render.CursorBlock
	}
}
