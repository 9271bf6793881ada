/*
Package keybinds maps keys to editor actions per mode.

# Contexts

Each editor mode has a context (normal, visual, insert, command). A key is
looked up in the mode's context first and then in the global context, so
arrow keys, page keys, esc and ctrl+c bound globally work in every mode.

# Sequences

Two-key sequences are written with their prefix: "gg" for go-to-top and
"ctrl+w j" for pane switching. Registering a sequence marks its first key as
a prefix; MatchMultiKey then reports a partial match for the prefix and
resolves the sequence on the next key.

# Configuration File Format

~/.blueline/keybinds.json maps action names to comma-separated keys. Keys
listed for an action replace its defaults in that section:

	{
	  "version": "1.0",
	  "normal": {
	    "word_forward": "w,ctrl+right",
	    "grow_response": "ctrl+n"
	  },
	  "insert": {
	    "tab": ""
	  }
	}

# Validation

The validator reports unknown actions, single keys that collide with a
sequence prefix, reserved-key rebinds (ctrl+c, esc) and mode bindings that
shadow global ones.
*/
package keybinds
