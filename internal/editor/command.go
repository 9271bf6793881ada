package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

var (
	// ErrUnknownCommand is wrapped by CommandError for unrecognized input.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUnknownOption is wrapped by CommandError for :set with an option
	// outside the allow-list.
	ErrUnknownOption = errors.New("unknown option")
	// ErrMissingArgument is wrapped by CommandError when a command needs an
	// argument.
	ErrMissingArgument = errors.New("missing argument")
)

// CommandError carries the literal command text that failed.
type CommandError struct {
	Text       string
	Suggestion string
	Err        error
}

func (e *CommandError) Error() string {
	msg := e.Err.Error()
	msg = strings.ToUpper(msg[:1]) + msg[1:] + ": " + e.Text
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean :%s?)", e.Suggestion)
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// CommandKind identifies a parsed colon command.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdQuit
	CmdForceQuit
	CmdToggleResponse
	CmdExecute
	CmdSet
	CmdGoto
	CmdShowProfile
	CmdProfile
	CmdFilter
)

// Toggle is the requested value of a :set option.
type Toggle int

const (
	ToggleFlip Toggle = iota
	ToggleOn
	ToggleOff
)

// Options accepted by :set.
const (
	OptWrap   = "wrap"
	OptNumber = "number"
)

var setOptions = map[string]bool{OptWrap: true, OptNumber: true}

// knownCommands feed the "did you mean" suggestion.
var knownCommands = []string{"q", "q!", "r", "x", "set wrap", "set number", "show profile", "profile", "filter"}

// ParsedCommand is the typed form of a command line.
type ParsedCommand struct {
	Kind   CommandKind
	Line   int
	Option string
	Toggle Toggle
	Arg    string
}

// ParseCommand parses command-line text (without the leading colon).
func ParseCommand(text string) (ParsedCommand, error) {
	trimmed := strings.TrimSpace(text)
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return ParsedCommand{Kind: CmdNone}, nil
	}

	switch trimmed {
	case "q":
		return ParsedCommand{Kind: CmdQuit}, nil
	case "q!":
		return ParsedCommand{Kind: CmdForceQuit}, nil
	case "r":
		return ParsedCommand{Kind: CmdToggleResponse}, nil
	case "x":
		return ParsedCommand{Kind: CmdExecute}, nil
	case "show profile":
		return ParsedCommand{Kind: CmdShowProfile}, nil
	}

	switch fields[0] {
	case "set":
		return parseSet(trimmed, fields[1:])
	case "profile":
		if len(fields) != 2 {
			return ParsedCommand{}, &CommandError{Text: trimmed, Err: ErrMissingArgument}
		}
		return ParsedCommand{Kind: CmdProfile, Arg: fields[1]}, nil
	case "filter":
		expr := strings.TrimSpace(strings.TrimPrefix(trimmed, "filter"))
		return ParsedCommand{Kind: CmdFilter, Arg: expr}, nil
	}

	// targets too large for an int saturate and clamp to the last line
	if n, err := strconv.Atoi(trimmed); (err == nil || errors.Is(err, strconv.ErrRange)) && n >= 0 {
		return ParsedCommand{Kind: CmdGoto, Line: n}, nil
	}

	return ParsedCommand{}, &CommandError{Text: trimmed, Suggestion: suggest(trimmed), Err: ErrUnknownCommand}
}

// parseSet handles "set <opt>", "set no<opt>" and "set <opt> on|off".
func parseSet(text string, args []string) (ParsedCommand, error) {
	if len(args) == 0 || len(args) > 2 {
		return ParsedCommand{}, &CommandError{Text: text, Err: ErrMissingArgument}
	}

	cmd := ParsedCommand{Kind: CmdSet, Option: args[0], Toggle: ToggleFlip}
	if !setOptions[cmd.Option] {
		if name, ok := strings.CutPrefix(cmd.Option, "no"); ok && setOptions[name] && len(args) == 1 {
			cmd.Option = name
			cmd.Toggle = ToggleOff
			return cmd, nil
		}
		return ParsedCommand{}, &CommandError{Text: args[0], Err: ErrUnknownOption}
	}

	if len(args) == 2 {
		switch args[1] {
		case "on":
			cmd.Toggle = ToggleOn
		case "off":
			cmd.Toggle = ToggleOff
		default:
			return ParsedCommand{}, &CommandError{Text: text, Err: ErrUnknownCommand}
		}
	}
	return cmd, nil
}

func suggest(text string) string {
	matches := fuzzy.Find(text, knownCommands)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
