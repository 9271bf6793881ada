package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/blueline/internal/editor"
	"github.com/studiowebux/blueline/internal/executor"
	"github.com/studiowebux/blueline/internal/history"
	"github.com/studiowebux/blueline/internal/keybinds"
	"github.com/studiowebux/blueline/internal/logger"
)

const (
	defaultRows = 24
	defaultCols = 80
)

// Options configures the driver. Dispatcher and History may be nil.
type Options struct {
	// Text preloads the Request pane.
	Text       string
	Keys       *keybinds.Registry
	Profiles   editor.Profiles
	Dispatcher *executor.Dispatcher
	History    *history.Manager
	Env        map[string]string
}

// Model is the Bubble Tea model wrapping the editor.
type Model struct {
	ed         *editor.Editor
	canvas     *canvas
	dispatcher *executor.Dispatcher
	history    *history.Manager

	spinner  spinner.Model
	spinning bool

	quitting bool
	err      error
}

// Custom message types
type completionMsg executor.Completion

type resultsClosedMsg struct{}

// New builds the model and draws the first frame at 80x24 until the first
// WindowSizeMsg arrives.
func New(opts Options) (*Model, error) {
	c := newCanvas()
	cfg := editor.Config{
		Keys:     opts.Keys,
		Profiles: opts.Profiles,
		Env:      opts.Env,
	}
	if opts.Dispatcher != nil {
		cfg.Dispatcher = opts.Dispatcher
	}

	ed := editor.New(c, defaultRows, defaultCols, cfg)
	ed.Load(opts.Text)
	if err := ed.Start(); err != nil {
		return nil, err
	}

	return &Model{
		ed:         ed,
		canvas:     c,
		dispatcher: opts.Dispatcher,
		history:    opts.History,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(styleExecuting),
		),
	}, nil
}

// Editor exposes the wrapped editor.
func (m *Model) Editor() *editor.Editor { return m.ed }

// Err is the error that stopped the program, if any.
func (m *Model) Err() error { return m.err }

// Init starts listening for request completions.
func (m *Model) Init() tea.Cmd {
	return m.waitForCompletion()
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		if err := m.ed.Resize(msg.Height, msg.Width); err != nil {
			return m, m.fail(err)
		}

	case completionMsg:
		c := executor.Completion(msg)
		m.record(c)
		if err := m.ed.ApplyCompletion(c); err != nil {
			return m, m.fail(err)
		}
		return m, m.waitForCompletion()

	case resultsClosedMsg:
		logger.L().Debug("dispatcher results closed")

	case spinner.TickMsg:
		if m.ed.Pending() == "" {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	effect, err := m.ed.HandleKey(keyFromMsg(msg))
	if err != nil {
		return m.fail(err)
	}

	switch effect {
	case editor.EffectQuit:
		logger.L().Info("quit")
		m.quitting = true
		return tea.Quit
	case editor.EffectForceQuit:
		m.err = editor.ErrForceQuit
		m.quitting = true
		return tea.Quit
	}

	if m.ed.Pending() != "" && !m.spinning {
		m.spinning = true
		return m.spinner.Tick
	}
	return nil
}

// record appends a completed request to the history database.
func (m *Model) record(c executor.Completion) {
	if m.history == nil || c.Request == nil || c.Result == nil {
		return
	}
	if err := m.history.Save(c.ID, c.Profile, c.Request, c.Result); err != nil {
		logger.L().Warn("failed to save history", zap.String("id", c.ID), zap.Error(err))
	}
}

func (m *Model) waitForCompletion() tea.Cmd {
	if m.dispatcher == nil {
		return nil
	}
	results := m.dispatcher.Results()
	return func() tea.Msg {
		c, ok := <-results
		if !ok {
			return resultsClosedMsg{}
		}
		return completionMsg(c)
	}
}

func (m *Model) fail(err error) tea.Cmd {
	logger.L().Error("terminal driver stopped", zap.Error(err))
	m.err = err
	m.quitting = true
	return tea.Quit
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting || m.canvas.frame == nil {
		return ""
	}
	return paint(m.canvas.frame, m.spinner.View())
}

// Run starts the Bubble Tea program and blocks until the editor quits.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return fmt.Errorf("failed to start editor: %w", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, runErr := p.Run()
	stopErr := m.ed.Stop()

	switch {
	case runErr != nil:
		return fmt.Errorf("terminal program failed: %w", runErr)
	case m.err != nil:
		return m.err
	case stopErr != nil:
		return stopErr
	}
	return nil
}
