package editor

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/studiowebux/blueline/internal/filter"
	"github.com/studiowebux/blueline/internal/logger"
	"github.com/studiowebux/blueline/internal/parser"
	"github.com/studiowebux/blueline/internal/types"
)

var (
	errNoTransport      = errors.New("request execution is not available")
	errNoProfiles       = errors.New("no profiles loaded")
	errTerminalTooSmall = errors.New("terminal too small for the response pane")
)

// submit parses and runs the command line. The editor is back in Normal
// mode afterwards whatever the outcome.
func (e *Editor) submit() Effect {
	text := e.line.String()
	e.line.reset()
	if e.prior == Visual {
		e.win.Request().ClearSelection()
		e.win.Response().ClearSelection()
	}
	e.setMode(Normal)

	cmd, err := ParseCommand(text)
	if err != nil {
		logger.L().Info("command rejected", zap.String("text", text), zap.Error(err))
		e.status.fail(err)
		return EffectNone
	}
	logger.L().Debug("command", zap.String("text", text))
	return e.run(cmd)
}

func (e *Editor) run(cmd ParsedCommand) Effect {
	switch cmd.Kind {
	case CmdQuit:
		return EffectQuit
	case CmdForceQuit:
		return EffectForceQuit
	case CmdToggleResponse:
		if !e.win.ToggleResponse() {
			e.status.fail(errTerminalTooSmall)
		}
	case CmdExecute:
		e.execute()
	case CmdSet:
		e.setOption(cmd.Option, cmd.Toggle)
	case CmdGoto:
		e.win.Active().GotoLine(cmd.Line)
	case CmdShowProfile:
		e.showProfile()
	case CmdProfile:
		e.switchProfile(cmd.Arg)
	case CmdFilter:
		e.setFilter(cmd.Arg)
	}
	return EffectNone
}

func (e *Editor) setOption(name string, t Toggle) {
	p := e.win.Active()
	opts := p.Options()
	var v *bool
	switch name {
	case OptWrap:
		v = &opts.Wrap
	case OptNumber:
		v = &opts.Number
	default:
		return
	}
	switch t {
	case ToggleOn:
		*v = true
	case ToggleOff:
		*v = false
	default:
		*v = !*v
	}
	p.SetOptions(opts)
}

// execute hands the Request pane to the dispatcher without waiting.
func (e *Editor) execute() {
	if e.dispatcher == nil {
		e.status.fail(errNoTransport)
		return
	}

	req, err := parser.ParseRequest(e.win.Request().Buffer().Text())
	if err != nil {
		e.status.fail(err)
		return
	}

	var profile *types.Profile
	if e.profiles != nil {
		profile = e.profiles.GetActiveProfile()
	}
	prepared, unresolved := parser.Prepare(req, profile, e.env)

	id, err := e.dispatcher.Submit(prepared, profile)
	if err != nil {
		e.status.fail(err)
		return
	}
	if e.pendingID != "" {
		logger.L().Info("request superseded",
			zap.String("old", e.pendingID),
			zap.String("new", id))
	}
	e.pendingID = id
	e.status.executing = true
	if len(unresolved) > 0 {
		e.status.info("Unresolved variables: %s", strings.Join(unresolved, ", "))
	} else {
		e.status.clear()
	}
}

func (e *Editor) showProfile() {
	if e.profiles == nil {
		e.status.fail(errNoProfiles)
		return
	}
	p := e.profiles.GetActiveProfile()
	base := p.BaseURL
	if base == "" {
		base = "no base URL"
	}
	e.status.info("Profile: %s (%s)", p.Name, base)
}

func (e *Editor) switchProfile(name string) {
	if e.profiles == nil {
		e.status.fail(errNoProfiles)
		return
	}
	if err := e.profiles.SetActiveProfile(name); err != nil {
		if names := e.profiles.ProfileNames(); len(names) > 0 {
			err = fmt.Errorf("%w (available: %s)", err, strings.Join(names, ", "))
		}
		e.status.fail(err)
		return
	}
	logger.L().Info("profile switched", zap.String("profile", name))
	e.status.info("Profile: %s", name)
}

// setFilter re-renders the last response through a JMESPath expression. An
// empty expression clears the filter.
func (e *Editor) setFilter(expr string) {
	e.filterExpr = expr
	if e.lastResult != nil {
		e.win.ReplaceResponse(filter.FormatResponse(e.lastResult, expr))
	}
	if expr == "" {
		e.status.info("Filter cleared")
		return
	}
	e.status.info("Filter: %s", expr)
}
