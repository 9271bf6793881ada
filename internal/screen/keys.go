package screen

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/studiowebux/blueline/internal/editor"
)

// keyNames maps tcell keys to the names keybindings use.
var keyNames = map[tcell.Key]string{
	tcell.KeyEscape:     "esc",
	tcell.KeyEnter:      "enter",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyDelete:     "delete",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "shift+tab",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdown",
}

func init() {
	for k := tcell.KeyCtrlA; k <= tcell.KeyCtrlZ; k++ {
		if _, ok := keyNames[k]; !ok {
			keyNames[k] = "ctrl+" + string(rune('a'+k-tcell.KeyCtrlA))
		}
	}
}

// keyFromEvent converts a tcell key event.
func keyFromEvent(ev *tcell.EventKey) editor.Key {
	if ev.Key() == tcell.KeyRune {
		s := string(ev.Rune())
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return editor.Named("alt+" + s)
		}
		return editor.Printable(s)
	}
	if name, ok := keyNames[ev.Key()]; ok {
		return editor.Named(name)
	}
	return editor.Named(strings.ToLower(ev.Name()))
}
