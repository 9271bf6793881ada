package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/blueline/internal/editor"
)

// keyFromMsg converts a Bubble Tea key event. Runes keep their text so the
// editor can insert them; everything else is named the way keybindings are
// written ("ctrl+w", "esc", "pgdown").
func keyFromMsg(msg tea.KeyMsg) editor.Key {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return editor.Named(msg.String())
		}
		return editor.Printable(string(msg.Runes))
	case tea.KeySpace:
		return editor.Printable(" ")
	}
	return editor.Named(msg.String())
}
