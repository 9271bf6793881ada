package editor

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/studiowebux/blueline/internal/keybinds"
	"github.com/studiowebux/blueline/internal/logger"
	"github.com/studiowebux/blueline/internal/motion"
	"github.com/studiowebux/blueline/internal/window"
)

const (
	maxCount = 99999
	tabWidth = 4
)

var errResponseReadOnly = errors.New("response pane is read-only")

var motions = map[keybinds.Action]motion.Kind{
	keybinds.ActionMoveLeft:      motion.Left,
	keybinds.ActionMoveRight:     motion.Right,
	keybinds.ActionMoveUp:        motion.Up,
	keybinds.ActionMoveDown:      motion.Down,
	keybinds.ActionLineStart:     motion.LineStart,
	keybinds.ActionLineEnd:       motion.LineEnd,
	keybinds.ActionFirstNonBlank: motion.FirstNonBlank,
	keybinds.ActionWordForward:   motion.WordForward,
	keybinds.ActionWordBackward:  motion.WordBackward,
	keybinds.ActionWordEnd:       motion.WordEnd,
	keybinds.ActionGoToTop:       motion.BufferStart,
	keybinds.ActionGoToBottom:    motion.BufferEnd,
	keybinds.ActionHalfPageDown:  motion.HalfPageDown,
	keybinds.ActionHalfPageUp:    motion.HalfPageUp,
	keybinds.ActionPageDown:      motion.PageDown,
	keybinds.ActionPageUp:        motion.PageUp,
}

// handleNormal serves Normal and Visual mode: counts, two-key sequences and
// single-key commands.
func (e *Editor) handleNormal(k Key) Effect {
	ctx := e.mode.context()
	_, pending := e.keys.Pending(ctx)
	if pending {
		// escape cancels a half-typed sequence and still leaves the mode
		if action, ok := e.keys.Match(ctx, k.Name); ok && action == keybinds.ActionEscape {
			e.escape()
			return EffectNone
		}
	} else if e.countDigit(k.Name) {
		return EffectNone
	}

	action, complete, partial := e.keys.MatchMultiKey(ctx, k.Name)
	if partial {
		return EffectNone
	}
	count := e.count
	e.count = 0
	if !complete {
		return EffectNone
	}
	return e.dispatch(action, count)
}

// countDigit accumulates a count prefix. A leading 0 is the line-start
// motion, not a count.
func (e *Editor) countDigit(name string) bool {
	if len(name) != 1 || name[0] < '0' || name[0] > '9' {
		return false
	}
	if name == "0" && e.count == 0 {
		return false
	}
	if e.count <= maxCount/10 {
		e.count = e.count*10 + int(name[0]-'0')
	}
	return true
}

func (e *Editor) handleInsert(k Key) Effect {
	if action, ok := e.keys.Match(keybinds.ContextInsert, k.Name); ok {
		p := e.win.Active()
		switch action {
		case keybinds.ActionBackspace:
			e.edit(p.Backspace)
		case keybinds.ActionDelete:
			e.edit(p.Delete)
		case keybinds.ActionNewline:
			e.edit(p.Newline)
		case keybinds.ActionTab:
			n := tabWidth - p.Cursor().Column%tabWidth
			e.edit(func() error { return p.Insert(strings.Repeat(" ", n)) })
		default:
			return e.dispatch(action, 0)
		}
		return EffectNone
	}
	if k.Text != "" {
		p := e.win.Active()
		e.edit(func() error { return p.Insert(k.Text) })
	}
	return EffectNone
}

func (e *Editor) handleCommandLine(k Key) Effect {
	if action, ok := e.keys.Match(keybinds.ContextCommand, k.Name); ok {
		switch action {
		case keybinds.ActionCommandSubmit:
			return e.submit()
		case keybinds.ActionCommandBackspace:
			if !e.line.backspace() {
				e.escape()
			}
		case keybinds.ActionCommandDelete:
			e.line.delete()
		case keybinds.ActionCommandHome:
			e.line.home()
		case keybinds.ActionCommandEnd:
			e.line.end()
		default:
			return e.dispatch(action, 0)
		}
		return EffectNone
	}
	if k.Text != "" {
		e.line.insert(k.Text)
	}
	return EffectNone
}

// dispatch runs a bound action. Motions move the active pane cursor in
// every mode.
func (e *Editor) dispatch(action keybinds.Action, count int) Effect {
	if kind, ok := motions[action]; ok {
		e.win.Active().Move(kind, count)
		return EffectNone
	}

	switch action {
	case keybinds.ActionQuitForce:
		return EffectForceQuit
	case keybinds.ActionRedraw:
		e.engine.Invalidate()
	case keybinds.ActionEscape:
		e.escape()
	case keybinds.ActionInsert, keybinds.ActionAppend, keybinds.ActionAppendLineEnd,
		keybinds.ActionInsertLineStart, keybinds.ActionOpenBelow, keybinds.ActionOpenAbove:
		e.enterInsert(action)
	case keybinds.ActionVisual:
		e.toggleVisual()
	case keybinds.ActionCommandLine:
		e.enterCommand()
	case keybinds.ActionPaneNext:
		e.switchPane(e.win.OtherPane)
	case keybinds.ActionPaneDown:
		e.switchPane(func() bool { return e.win.SwitchPane(window.Response) })
	case keybinds.ActionPaneUp:
		e.switchPane(func() bool { return e.win.SwitchPane(window.Request) })
	case keybinds.ActionGrowResponse:
		e.win.GrowResponse()
	case keybinds.ActionShrinkResponse:
		e.win.ShrinkResponse()
	default:
		logger.L().Debug("action not handled in mode",
			zap.String("action", string(action)),
			zap.Stringer("mode", e.mode))
	}
	return EffectNone
}

// edit applies a buffer mutation, reporting read-only rejections.
func (e *Editor) edit(fn func() error) {
	if err := fn(); err != nil {
		e.reject(err)
	}
}

func (e *Editor) reject(err error) {
	if errors.Is(err, window.ErrReadOnly) {
		logger.L().Info("edit rejected", zap.Error(err))
		e.status.fail(errResponseReadOnly)
		return
	}
	logger.L().Error("edit failed", zap.Error(err))
	e.status.fail(err)
}

func (e *Editor) escape() {
	e.keys.ClearMultiKeyState(e.mode.context())
	e.count = 0
	switch e.mode {
	case Command:
		e.line.reset()
		e.setMode(e.prior)
	case Visual:
		e.win.Active().ClearSelection()
		e.setMode(Normal)
	case Insert:
		e.setMode(Normal)
	default:
		e.status.clear()
	}
}

func (e *Editor) enterInsert(action keybinds.Action) {
	p := e.win.Active()
	if err := p.CheckWritable(); err != nil {
		e.reject(err)
		return
	}

	switch action {
	case keybinds.ActionAppend:
		if c := p.Cursor(); c.Column < p.Buffer().LineLen(c.Line) {
			c.Column++
			p.SetCursor(c)
		}
	case keybinds.ActionAppendLineEnd:
		p.Move(motion.LineEnd, 0)
	case keybinds.ActionInsertLineStart:
		p.Move(motion.FirstNonBlank, 0)
	case keybinds.ActionOpenBelow:
		e.edit(func() error { return p.OpenLine(false) })
	case keybinds.ActionOpenAbove:
		e.edit(func() error { return p.OpenLine(true) })
	}

	p.ClearSelection()
	e.status.clear()
	e.setMode(Insert)
}

func (e *Editor) toggleVisual() {
	p := e.win.Active()
	if e.mode == Visual {
		p.ClearSelection()
		e.setMode(Normal)
		return
	}
	p.StartSelection()
	e.status.clear()
	e.setMode(Visual)
}

func (e *Editor) enterCommand() {
	e.prior = e.mode
	e.line.reset()
	e.status.clear()
	e.setMode(Command)
}

// switchPane runs fn and, in Visual mode, moves the selection to the newly
// active pane.
func (e *Editor) switchPane(fn func() bool) {
	prev := e.win.Active()
	if !fn() {
		return
	}
	if e.mode == Visual {
		prev.ClearSelection()
		e.win.Active().StartSelection()
	}
}
