package editor

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studiowebux/blueline/internal/buffer"
	"github.com/studiowebux/blueline/internal/executor"
	"github.com/studiowebux/blueline/internal/grapheme"
	"github.com/studiowebux/blueline/internal/render"
	"github.com/studiowebux/blueline/internal/types"
	"github.com/studiowebux/blueline/internal/window"
)

type fakeDispatcher struct {
	submitted []*types.HttpRequest
	profiles  []*types.Profile
	err       error
}

func (d *fakeDispatcher) Submit(req *types.HttpRequest, profile *types.Profile) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.submitted = append(d.submitted, req)
	d.profiles = append(d.profiles, profile)
	return fmt.Sprintf("req-%d", len(d.submitted)), nil
}

type fakeProfiles struct {
	active   string
	profiles map[string]*types.Profile
}

func (p *fakeProfiles) GetActiveProfile() *types.Profile { return p.profiles[p.active] }

func (p *fakeProfiles) SetActiveProfile(name string) error {
	if _, ok := p.profiles[name]; !ok {
		return fmt.Errorf("profile not found: %s", name)
	}
	p.active = name
	return nil
}

func (p *fakeProfiles) ProfileNames() []string {
	names := make([]string, 0, len(p.profiles))
	for name := range p.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type harness struct {
	ed   *Editor
	rec  *render.Recorder
	disp *fakeDispatcher
	prof *fakeProfiles
}

func newHarness(t *testing.T, text string) *harness {
	t.Helper()
	h := &harness{
		rec:  &render.Recorder{},
		disp: &fakeDispatcher{},
		prof: &fakeProfiles{
			active: "dev",
			profiles: map[string]*types.Profile{
				"dev":     {Name: "dev", BaseURL: "http://localhost:8080", Headers: map[string]string{"Accept": "application/json"}},
				"staging": {Name: "staging", BaseURL: "https://staging.example.com"},
			},
		},
	}
	h.ed = New(h.rec, 24, 80, Config{Dispatcher: h.disp, Profiles: h.prof})
	h.ed.Load(text)
	require.NoError(t, h.ed.Start())
	require.Equal(t, 1, h.rec.Count(render.Full), "first frame is a full redraw")
	h.rec.Reset()
	return h
}

var namedKeys = map[string]bool{
	"esc": true, "enter": true, "backspace": true, "delete": true, "tab": true,
	"left": true, "right": true, "up": true, "down": true,
	"home": true, "end": true, "pgup": true, "pgdown": true,
}

func keyOf(s string) Key {
	if namedKeys[s] || strings.HasPrefix(s, "ctrl+") {
		return Named(s)
	}
	return Printable(s)
}

func (h *harness) press(t *testing.T, keys ...string) Effect {
	t.Helper()
	var last Effect
	for _, k := range keys {
		eff, err := h.ed.HandleKey(keyOf(k))
		require.NoError(t, err)
		last = eff
	}
	return last
}

func (h *harness) typeText(t *testing.T, text string) {
	t.Helper()
	for _, c := range grapheme.Split(text) {
		h.press(t, c)
	}
}

func (h *harness) command(t *testing.T, text string) Effect {
	t.Helper()
	h.press(t, ":")
	h.typeText(t, text)
	return h.press(t, "enter")
}

func (h *harness) cursor() buffer.Position {
	return h.ed.Window().Active().Cursor()
}

func (h *harness) complete(t *testing.T, id string, result *types.RequestResult) {
	t.Helper()
	require.NoError(t, h.ed.ApplyCompletion(executor.Completion{ID: id, Result: result}))
}

func okResult(body string) *types.RequestResult {
	return &types.RequestResult{
		Status:     200,
		StatusText: "OK",
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
		Duration:   42,
	}
}

func TestRender_PureMotionIsOneCursorOnly(t *testing.T) {
	h := newHarness(t, "GET /users\nAccept: text/plain")

	for _, k := range []string{"l", "j", "h", "k"} {
		h.rec.Reset()
		h.press(t, k)
		require.Len(t, h.rec.Intents, 1, "key %q", k)
		require.Equal(t, render.CursorOnly, h.rec.Intents[0].Category, "key %q", k)
	}
	require.Equal(t, buffer.Position{Line: 0, Column: 0}, h.cursor())
}

func TestRender_MotionWithoutEffectDrawsNothing(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.press(t, "h")
	require.Empty(t, h.rec.Intents)
}

func TestRender_EnterInsertIsOneFull(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.press(t, "i")
	require.Equal(t, Insert, h.ed.Mode())
	require.Len(t, h.rec.Intents, 1)
	require.Equal(t, render.Full, h.rec.Intents[0].Category)
	require.Equal(t, render.CursorBar, h.rec.Intents[0].Frame.Cursor.Style)
}

func TestRender_TypingIsContentUpdate(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.press(t, "A")
	h.rec.Reset()

	h.typeText(t, "bc")
	require.Equal(t, 0, h.rec.Count(render.Full))
	require.Equal(t, 2, h.rec.Count(render.ContentUpdate))
	require.Equal(t, "GET /abc", h.ed.Window().Request().Buffer().LineText(0))
}

func TestRender_CommandModeHidesCursor(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.press(t, ":")
	last, ok := h.rec.Last()
	require.True(t, ok)
	require.Equal(t, render.Full, last.Category)
	require.Equal(t, render.CursorHidden, last.Frame.Cursor.Style)
	require.True(t, last.Frame.Status.Command)
}

func TestRender_RedrawForcesFull(t *testing.T) {
	h := newHarness(t, "GET /a")
	for _, mode := range []string{"", "i"} {
		if mode != "" {
			h.press(t, mode)
		}
		h.rec.Reset()
		h.press(t, "ctrl+l")
		require.Len(t, h.rec.Intents, 1)
		require.Equal(t, render.Full, h.rec.Intents[0].Category)
	}
	require.Equal(t, Insert, h.ed.Mode())
}

func TestInsert_EditingKeys(t *testing.T) {
	h := newHarness(t, "GET /a\n\n{}")
	h.press(t, "j")
	h.press(t, "i", "backspace")
	require.Equal(t, []string{"GET /a", "{}"}, h.ed.Window().Request().Buffer().Lines())
	require.Equal(t, buffer.Position{Line: 0, Column: 6}, h.cursor())

	h.press(t, "enter")
	require.Equal(t, []string{"GET /a", "", "{}"}, h.ed.Window().Request().Buffer().Lines())
	require.Equal(t, buffer.Position{Line: 1, Column: 0}, h.cursor())
}

func TestInsert_NewlineThenBackspaceRestores(t *testing.T) {
	h := newHarness(t, "GET /users")
	h.press(t, "l", "l", "l", "i", "enter")
	require.Equal(t, []string{"GET", " /users"}, h.ed.Window().Request().Buffer().Lines())
	require.Equal(t, buffer.Position{Line: 1, Column: 0}, h.cursor())

	h.press(t, "backspace")
	require.Equal(t, []string{"GET /users"}, h.ed.Window().Request().Buffer().Lines())
	require.Equal(t, buffer.Position{Line: 0, Column: 3}, h.cursor())
}

func TestInsert_EntryVariants(t *testing.T) {
	h := newHarness(t, "  GET /a")

	h.press(t, "A")
	require.Equal(t, buffer.Position{Line: 0, Column: 8}, h.cursor())
	h.press(t, "esc", "I")
	require.Equal(t, buffer.Position{Line: 0, Column: 2}, h.cursor())
	h.press(t, "esc", "a")
	require.Equal(t, buffer.Position{Line: 0, Column: 3}, h.cursor())
	h.press(t, "esc", "o")
	require.Equal(t, buffer.Position{Line: 1, Column: 0}, h.cursor())
	h.typeText(t, "X-A: 1")
	h.press(t, "esc", "O")
	require.Equal(t, []string{"  GET /a", "", "X-A: 1"}, h.ed.Window().Request().Buffer().Lines())
	require.Equal(t, Insert, h.ed.Mode())
}

func TestInsert_TabInsertsSpacesToNextStop(t *testing.T) {
	h := newHarness(t, "ab")
	h.press(t, "A", "tab")
	require.Equal(t, "ab  ", h.ed.Window().Request().Buffer().LineText(0))
}

func TestInsert_ArrowKeysMoveWithoutLeavingInsert(t *testing.T) {
	h := newHarness(t, "abc")
	h.press(t, "i", "right", "right")
	require.Equal(t, Insert, h.ed.Mode())
	require.Equal(t, buffer.Position{Line: 0, Column: 2}, h.cursor())
}

func TestCounts(t *testing.T) {
	h := newHarness(t, "one two three four\na\nb\nc\nd")
	h.press(t, "3", "w")
	require.Equal(t, buffer.Position{Line: 0, Column: 14}, h.cursor())
	h.press(t, "0")
	require.Equal(t, buffer.Position{Line: 0, Column: 0}, h.cursor())
	h.press(t, "1", "0", "j")
	require.Equal(t, buffer.Position{Line: 4, Column: 0}, h.cursor())
	h.press(t, "2", "g", "g")
	require.Equal(t, buffer.Position{Line: 1, Column: 0}, h.cursor())
	h.press(t, "G")
	require.Equal(t, 4, h.cursor().Line)
	h.press(t, "g", "g")
	require.Equal(t, buffer.Position{}, h.cursor())
}

func TestCommand_LineJump(t *testing.T) {
	h := newHarness(t, "GET /a\nAccept: */*")
	h.command(t, "1000")
	require.Equal(t, buffer.Position{Line: 1, Column: 0}, h.cursor())
	require.Equal(t, Normal, h.ed.Mode())

	h.press(t, "l", "l")
	before := h.cursor()
	h.command(t, "0")
	require.Equal(t, before, h.cursor())

	h.command(t, "1")
	require.Equal(t, buffer.Position{}, h.cursor())

	h.command(t, "99999999999999999999")
	require.Equal(t, buffer.Position{Line: 1, Column: 0}, h.cursor())
	_, isErr := h.ed.StatusMessage()
	require.False(t, isErr)
}

func TestCommand_Unknown(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.press(t, "v")
	h.command(t, "shw profile")

	require.Equal(t, Normal, h.ed.Mode())
	require.False(t, h.ed.Window().Active().HasSelection())
	msg, isErr := h.ed.StatusMessage()
	require.True(t, isErr)
	require.True(t, strings.HasPrefix(msg, "Unknown command: shw profile"), msg)
	require.Contains(t, msg, "show profile")

	last, _ := h.rec.Last()
	require.Equal(t, msg, last.Frame.Status.Left)
	require.True(t, last.Frame.Status.IsError)
}

func TestCommand_EscapeRestoresPriorMode(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.press(t, "v", "l", ":")
	h.typeText(t, "abc")
	require.Equal(t, "abc", h.ed.CommandText())

	h.press(t, "esc")
	require.Equal(t, Visual, h.ed.Mode())
	require.True(t, h.ed.Window().Active().HasSelection())
	require.Equal(t, "", h.ed.CommandText())

	h.press(t, "esc")
	require.Equal(t, Normal, h.ed.Mode())
	require.False(t, h.ed.Window().Active().HasSelection())
}

func TestCommand_BackspaceOnEmptyLineCancels(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.press(t, ":", "x", "backspace")
	require.Equal(t, Command, h.ed.Mode())
	h.press(t, "backspace")
	require.Equal(t, Normal, h.ed.Mode())
}

func TestCommand_LineEditing(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.press(t, ":")
	h.typeText(t, "et")
	h.press(t, "home")
	h.typeText(t, "s")
	h.press(t, "end")
	h.typeText(t, " number")
	require.Equal(t, "set number", h.ed.CommandText())
	h.press(t, "enter")
	require.True(t, h.ed.Window().Active().Options().Number)
}

func TestCommand_ArrowsMovePaneCursor(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.press(t, ":", "right")
	require.Equal(t, Command, h.ed.Mode())
	require.Equal(t, buffer.Position{Line: 0, Column: 1}, h.cursor())
}

func TestCommand_Quit(t *testing.T) {
	h := newHarness(t, "GET /a")
	require.Equal(t, EffectQuit, h.command(t, "q"))
	require.Equal(t, EffectForceQuit, h.command(t, "q!"))
	require.Equal(t, EffectForceQuit, h.press(t, "ctrl+c"))
}

func TestCommand_SetOptions(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.command(t, "set wrap")
	require.True(t, h.ed.Window().Active().Options().Wrap)
	require.Equal(t, render.Full, h.rec.Intents[len(h.rec.Intents)-1].Category)

	h.command(t, "set wrap")
	require.False(t, h.ed.Window().Active().Options().Wrap)
	h.command(t, "set number on")
	require.True(t, h.ed.Window().Active().Options().Number)
	h.command(t, "set nonumber")
	require.False(t, h.ed.Window().Active().Options().Number)

	h.command(t, "set spell")
	msg, isErr := h.ed.StatusMessage()
	require.True(t, isErr)
	require.Equal(t, "Unknown option: spell", msg)
}

func TestCommand_Profiles(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.command(t, "show profile")
	msg, _ := h.ed.StatusMessage()
	require.Equal(t, "Profile: dev (http://localhost:8080)", msg)

	h.command(t, "profile staging")
	require.Equal(t, "staging", h.prof.active)

	h.command(t, "profile nope")
	msg, isErr := h.ed.StatusMessage()
	require.True(t, isErr)
	require.Equal(t, "Profile not found: nope (available: dev, staging)", msg)
	require.Equal(t, "staging", h.prof.active)
}

func TestExecute_SubmitsPreparedRequest(t *testing.T) {
	h := newHarness(t, "POST /users\nX-Trace: 1\n\n{\"name\":\"a\"}")
	h.command(t, "x")

	require.Len(t, h.disp.submitted, 1)
	req := h.disp.submitted[0]
	require.Equal(t, "POST", req.Method)
	require.Equal(t, "http://localhost:8080/users", req.URL)
	require.Equal(t, []string{"Accept: application/json", "X-Trace: 1"}, req.HeaderList())
	require.Equal(t, `{"name":"a"}`, req.Body)
	require.Equal(t, "dev", h.disp.profiles[0].Name)

	require.Equal(t, Normal, h.ed.Mode())
	require.Equal(t, "req-1", h.ed.Pending())
	last, _ := h.rec.Last()
	require.Equal(t, ExecutingIndicator, last.Frame.Status.Right)

	// the editor stays interactive while the request is in flight
	h.press(t, "l")
	require.Equal(t, buffer.Position{Line: 0, Column: 1}, h.cursor())
}

func TestExecute_EmptyRequest(t *testing.T) {
	h := newHarness(t, "")
	h.command(t, "x")
	require.Empty(t, h.disp.submitted)
	msg, isErr := h.ed.StatusMessage()
	require.True(t, isErr)
	require.Equal(t, "No request to execute", msg)
}

func TestExecute_DispatcherError(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.disp.err = errors.New("dispatcher closed")
	h.command(t, "x")
	require.Equal(t, "", h.ed.Pending())
	msg, _ := h.ed.StatusMessage()
	require.Equal(t, "Dispatcher closed", msg)
}

func TestExecute_SupersedeDropsStaleCompletion(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.command(t, "x")
	h.command(t, "x")
	require.Equal(t, "req-2", h.ed.Pending())
	h.rec.Reset()

	h.complete(t, "req-1", okResult(`{"stale":true}`))
	require.Empty(t, h.rec.Intents)
	require.False(t, h.ed.Window().HasResponse())
	require.Equal(t, "req-2", h.ed.Pending())

	h.complete(t, "req-2", okResult(`{"fresh":true}`))
	require.Len(t, h.rec.Intents, 1)
	require.Equal(t, render.Full, h.rec.Intents[0].Category)
	require.Equal(t, "", h.ed.Pending())

	resp := h.ed.Window().Response()
	require.True(t, h.ed.Window().ResponseVisible())
	require.Equal(t, "HTTP 200 OK", resp.Buffer().LineText(0))
	require.Contains(t, resp.Buffer().Text(), `"fresh": true`)
	require.Equal(t, "200 OK 42ms", h.rec.Intents[0].Frame.Status.Right)

	// a late duplicate is ignored
	h.rec.Reset()
	h.complete(t, "req-2", okResult(`{}`))
	require.Empty(t, h.rec.Intents)
}

func TestExecute_TransportFailure(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.command(t, "x")
	h.complete(t, "req-1", &types.RequestResult{Error: "connection refused", Duration: 3})

	require.Equal(t, "Error: connection refused", h.ed.Window().Response().Buffer().Text())
	last, _ := h.rec.Last()
	require.Equal(t, "Error 3ms", last.Frame.Status.Right)
	require.Equal(t, Normal, h.ed.Mode())
}

func TestFilter(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.command(t, "x")
	h.complete(t, "req-1", okResult(`{"items":[{"id":1},{"id":2}]}`))

	h.command(t, "filter items[].id")
	text := h.ed.Window().Response().Buffer().Text()
	require.True(t, strings.HasSuffix(text, "\n\n[1, 2]"), text)

	h.command(t, "filter")
	require.Contains(t, h.ed.Window().Response().Buffer().Text(), `"items": [`)
}

func TestResponsePane_ReadOnlyAndNavigation(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.command(t, "x")
	h.complete(t, "req-1", okResult(`{"a":1}`))

	h.press(t, "ctrl+w", "j")
	require.Equal(t, window.Response, h.ed.Window().ActiveID())

	for _, k := range []string{"i", "a", "A", "I", "o", "O"} {
		h.press(t, k)
		require.Equal(t, Normal, h.ed.Mode(), "key %q", k)
		msg, isErr := h.ed.StatusMessage()
		require.True(t, isErr)
		require.Equal(t, "Response pane is read-only", msg)
	}

	h.press(t, "j", "j")
	require.Equal(t, 2, h.cursor().Line)
	h.press(t, "v", "j")
	sel, ok := h.ed.Window().Response().Selection()
	require.True(t, ok)
	require.Equal(t, 3, sel.Active.Line)

	h.press(t, "ctrl+w", "k")
	require.Equal(t, window.Request, h.ed.Window().ActiveID())
	require.Equal(t, Visual, h.ed.Mode())
	require.False(t, h.ed.Window().Response().HasSelection())
	require.True(t, h.ed.Window().Request().HasSelection())
}

func TestPaneResizeFloors(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.press(t, "ctrl+j")
	require.Equal(t, 0, h.ed.Window().Response().Height(), "no response content yet")

	h.command(t, "x")
	h.complete(t, "req-1", okResult(`{}`))
	win := h.ed.Window()
	for i := 0; i < 40; i++ {
		h.press(t, "ctrl+j")
	}
	require.Equal(t, window.MinPaneHeight, win.Request().Height())
	require.Equal(t, win.ContentRows()-window.MinPaneHeight, win.Response().Height())

	h.rec.Reset()
	h.press(t, "ctrl+j")
	require.Empty(t, h.rec.Intents, "resize at the floor is a no-op")

	for i := 0; i < 40; i++ {
		h.press(t, "ctrl+k")
	}
	require.Equal(t, window.MinPaneHeight, win.Response().Height())
	require.NoError(t, win.Check())
}

func TestToggleResponse(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.command(t, "x")
	h.complete(t, "req-1", okResult(`{}`))
	h.press(t, "ctrl+w", "w")
	require.Equal(t, window.Response, h.ed.Window().ActiveID())

	h.command(t, "r")
	require.False(t, h.ed.Window().ResponseVisible())
	require.Equal(t, window.Request, h.ed.Window().ActiveID())
	require.Equal(t, h.ed.Window().ContentRows(), h.ed.Window().Request().Height())

	h.command(t, "r")
	require.True(t, h.ed.Window().ResponseVisible())
	require.Equal(t, window.Request, h.ed.Window().ActiveID())
}

func TestVisual_SelectionNormalization(t *testing.T) {
	h := newHarness(t, "GET /a\n0123456789\nx\nabcdef")
	h.ed.Window().Active().SetCursor(buffer.Position{Line: 1, Column: 8})
	h.press(t, "v", "j", "j", "0", "l", "l")

	sel, ok := h.ed.Window().Active().Selection()
	require.True(t, ok)
	start, end := sel.Normalized()
	require.Equal(t, buffer.Position{Line: 1, Column: 8}, start)
	require.Equal(t, buffer.Position{Line: 3, Column: 2}, end)

	h.press(t, "v")
	require.Equal(t, Normal, h.ed.Mode())
	require.False(t, h.ed.Window().Active().HasSelection())
}

func TestVisual_ResponseReplacedLeavesVisual(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.command(t, "x")
	h.complete(t, "req-1", okResult(`{"a":1,"b":2}`))
	h.command(t, "x")

	h.press(t, "ctrl+w", "j", "v", "j")
	require.Equal(t, Visual, h.ed.Mode())
	require.Same(t, h.ed.Window().Response(), h.ed.Window().Active())
	require.True(t, h.ed.Window().Active().HasSelection())

	h.complete(t, "req-2", okResult(`{"c":3}`))
	require.Equal(t, Normal, h.ed.Mode())
	require.False(t, h.ed.Window().Active().HasSelection())

	// motions keep working and a fresh v selects again
	h.press(t, "v", "l")
	require.Equal(t, Visual, h.ed.Mode())
	require.True(t, h.ed.Window().Active().HasSelection())
}

func TestVisual_CommandOverLostSelectionReturnsToNormal(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.command(t, "x")
	h.complete(t, "req-1", okResult(`{"a":1}`))
	h.command(t, "x")

	h.press(t, "ctrl+w", "j", "v", ":")
	h.complete(t, "req-2", okResult(`{}`))
	require.Equal(t, Command, h.ed.Mode())

	h.press(t, "esc")
	require.Equal(t, Normal, h.ed.Mode())
}

func TestVisual_HiddenResponseLeavesVisual(t *testing.T) {
	h := newHarness(t, "GET /a")
	h.command(t, "x")
	h.complete(t, "req-1", okResult(`{"a":1,"b":2}`))

	h.press(t, "ctrl+w", "j", "v", "j")
	require.Equal(t, Visual, h.ed.Mode())

	require.NoError(t, h.ed.Resize(5, 40))
	require.False(t, h.ed.Window().ResponseVisible())
	require.Same(t, h.ed.Window().Request(), h.ed.Window().Active())
	require.Equal(t, Normal, h.ed.Mode())
	require.False(t, h.ed.Window().Active().HasSelection())
}

func TestEscape_CancelsPendingSequence(t *testing.T) {
	h := newHarness(t, "GET /a\nline two\nline three")

	h.press(t, "v", "l", "ctrl+w", "esc")
	require.Equal(t, Normal, h.ed.Mode())
	require.False(t, h.ed.Window().Active().HasSelection())

	h.press(t, "v", "g", "esc")
	require.Equal(t, Normal, h.ed.Mode())

	// the prefix is gone: j is a plain motion again
	h.press(t, "g", "esc", "j")
	require.Equal(t, 1, h.cursor().Line)
}

func TestResize(t *testing.T) {
	h := newHarness(t, "GET /a")
	require.NoError(t, h.ed.Resize(10, 40))
	require.Equal(t, 9, h.ed.Window().Request().Height())
	last, _ := h.rec.Last()
	require.Equal(t, render.Full, last.Category)
	require.Equal(t, 40, last.Frame.Width)
}

func TestStartStop(t *testing.T) {
	rec := &render.Recorder{}
	ed := New(rec, 24, 80, Config{})
	require.NoError(t, ed.Start())
	require.NoError(t, ed.Stop())
	require.Equal(t, 1, rec.Inits)
	require.Equal(t, 1, rec.Cleanups)

	_, err := ed.HandleKey(Printable("l"))
	require.ErrorIs(t, err, render.ErrNotInitialized)
}

func TestCursorInvariantUnderRandomKeys(t *testing.T) {
	h := newHarness(t, "GET /こんにちは\n\n{\"a\": 1}\nBorat です")
	keys := []string{"w", "e", "b", "j", "k", "$", "0", "G", "g", "g", "i", "x", "enter", "backspace", "delete", "esc",
		"o", "é", "esc", "ctrl+d", "ctrl+u", "l", "h", "A", "backspace", "backspace", "esc", "v", "w", "esc"}
	for i := 0; i < 300; i++ {
		h.press(t, keys[(i*7)%len(keys)])
		p := h.ed.Window().Active()
		c := p.Cursor()
		require.GreaterOrEqual(t, c.Line, 0)
		require.Less(t, c.Line, p.Buffer().LineCount())
		require.LessOrEqual(t, c.Column, p.Buffer().LineLen(c.Line))
		require.NoError(t, h.ed.Window().Check())
	}
}
