/*
Package tui is the default terminal driver. It runs the editor inside a
Bubble Tea program.

# Architecture

The editor never touches the terminal. It renders through a canvas that
implements render.Terminal and keeps the last frame; View paints that frame
with lipgloss styles.

  - model.go: Model, the Bubble Tea Init/Update/View loop and Run
  - keys.go: tea.KeyMsg to editor.Key conversion
  - render.go: frame painting (panes, selection, cursor, status bar)
  - canvas.go: the render.Terminal the editor draws into

# Threading Model

Update runs on Bubble Tea's event loop and is the only caller of the
editor. Requests run on the dispatcher's goroutines; completions come back
as messages through a tea.Cmd that blocks on Dispatcher.Results.

# Example Usage

	err := tui.Run(tui.Options{
		Text:       string(data),
		Profiles:   sessionMgr,
		Dispatcher: executor.NewDispatcher(nil),
		History:    historyMgr,
	})
*/
package tui
