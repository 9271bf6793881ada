package editor

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/studiowebux/blueline/internal/executor"
	"github.com/studiowebux/blueline/internal/render"
	"github.com/studiowebux/blueline/internal/types"
)

// ExecutingIndicator is shown on the right of the status bar while a
// request is in flight.
const ExecutingIndicator = "Executing…"

// status holds what the status bar shows besides the mode.
type status struct {
	message   string
	isError   bool
	executing bool
	// result is the right-aligned summary of the last response.
	result string
}

func (s *status) info(format string, args ...any) {
	s.message = fmt.Sprintf(format, args...)
	s.isError = false
}

// fail shows err with its first letter capitalized.
func (s *status) fail(err error) {
	msg := err.Error()
	if msg != "" {
		r, size := utf8.DecodeRuneInString(msg)
		msg = string(unicode.ToUpper(r)) + msg[size:]
	}
	s.message = msg
	s.isError = true
}

func (s *status) clear() {
	s.message = ""
	s.isError = false
}

// setResult formats "200 OK 123ms", or "Error 12ms" for transport failures.
func (s *status) setResult(r *types.RequestResult) {
	if r == nil {
		s.result = ""
		return
	}
	if r.Error != "" {
		s.result = "Error " + executor.FormatDuration(r.Duration)
		return
	}
	s.result = fmt.Sprintf("%d %s %s", r.Status, r.StatusText, executor.FormatDuration(r.Duration))
}

func (s *status) bar(m Mode, line *cmdline) render.Status {
	st := render.Status{
		Left:    s.message,
		IsError: s.isError,
		Right:   s.result,
	}
	if s.executing {
		st.Right = ExecutingIndicator
	}
	if m == Command {
		st.Command = true
		st.CommandText = line.String()
		st.CommandCursor = line.cell()
	}
	return st
}
