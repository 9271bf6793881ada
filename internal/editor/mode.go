package editor

import (
	"errors"

	"github.com/studiowebux/blueline/internal/keybinds"
)

// Mode is the key interpretation regime for the whole window.
type Mode int

const (
	Normal Mode = iota
	Insert
	Command
	Visual
)

func (m Mode) String() string {
	switch m {
	case Insert:
		return "INSERT"
	case Command:
		return "COMMAND"
	case Visual:
		return "VISUAL"
	default:
		return "NORMAL"
	}
}

func (m Mode) context() keybinds.Context {
	switch m {
	case Insert:
		return keybinds.ContextInsert
	case Command:
		return keybinds.ContextCommand
	case Visual:
		return keybinds.ContextVisual
	default:
		return keybinds.ContextNormal
	}
}

// Key is one key event. Name uses keybinding notation ("a", "G", "ctrl+w",
// "enter", "esc", "left"). Text is the text a printable key inserts and is
// empty for named and modified keys.
type Key struct {
	Name string
	Text string
}

// Printable returns the key event for typed text.
func Printable(text string) Key {
	return Key{Name: text, Text: text}
}

// Named returns the key event for a named or modified key.
func Named(name string) Key {
	return Key{Name: name}
}

// Effect tells the driver what to do after a key.
type Effect int

const (
	EffectNone Effect = iota
	// EffectQuit asks for a normal shutdown (:q).
	EffectQuit
	// EffectForceQuit asks for an immediate exit (:q!, ctrl+c).
	EffectForceQuit
)

// ErrForceQuit is returned by the drivers after :q! once the terminal is
// restored. Callers exit without running their shutdown hooks.
var ErrForceQuit = errors.New("force quit")
