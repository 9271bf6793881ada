package screen

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/studiowebux/blueline/internal/editor"
	"github.com/studiowebux/blueline/internal/executor"
	"github.com/studiowebux/blueline/internal/history"
	"github.com/studiowebux/blueline/internal/keybinds"
	"github.com/studiowebux/blueline/internal/logger"
)

var newScreen = tcell.NewScreen

// Options configures the driver. Dispatcher and History may be nil.
type Options struct {
	Text       string
	Keys       *keybinds.Registry
	Profiles   editor.Profiles
	Dispatcher *executor.Dispatcher
	History    *history.Manager
	Env        map[string]string
}

// Run opens the terminal and processes events until the editor quits.
func Run(opts Options) error {
	s, err := newScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	term := New(s)

	cfg := editor.Config{Keys: opts.Keys, Profiles: opts.Profiles, Env: opts.Env}
	if opts.Dispatcher != nil {
		cfg.Dispatcher = opts.Dispatcher
	}
	ed := editor.New(term, 24, 80, cfg)
	ed.Load(opts.Text)
	if err := ed.Start(); err != nil {
		return err
	}
	defer func() {
		if err := ed.Stop(); err != nil {
			logger.L().Warn("terminal cleanup failed", zap.Error(err))
		}
	}()

	// Init has sized the screen; adopt the real size before the first key.
	w, h := s.Size()
	if err := ed.Resize(h, w); err != nil {
		return err
	}
	return loop(s, ed, opts)
}

func loop(s tcell.Screen, ed *editor.Editor, opts Options) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go s.ChannelEvents(events, quit)
	defer close(quit)

	var results <-chan executor.Completion
	if opts.Dispatcher != nil {
		results = opts.Dispatcher.Results()
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			done, err := handleEvent(ed, ev)
			if err != nil || done {
				return err
			}

		case c, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			record(opts.History, c)
			if err := ed.ApplyCompletion(c); err != nil {
				return err
			}
		}
	}
}

// handleEvent reports whether the editor asked to quit.
func handleEvent(ed *editor.Editor, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return false, ed.Resize(h, w)
	case *tcell.EventKey:
		effect, err := ed.HandleKey(keyFromEvent(ev))
		if err != nil {
			return true, err
		}
		switch effect {
		case editor.EffectQuit:
			logger.L().Info("quit")
			return true, nil
		case editor.EffectForceQuit:
			return true, editor.ErrForceQuit
		}
	}
	return false, nil
}

func record(h *history.Manager, c executor.Completion) {
	if h == nil || c.Request == nil || c.Result == nil {
		return
	}
	if err := h.Save(c.ID, c.Profile, c.Request, c.Result); err != nil {
		logger.L().Warn("failed to save history", zap.String("id", c.ID), zap.Error(err))
	}
}
