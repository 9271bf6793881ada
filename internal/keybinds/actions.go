package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the editor mode in which keybindings are active
type Context string

const (
	ContextGlobal  Context = "global"  // Available in every mode
	ContextNormal  Context = "normal"  // Normal mode
	ContextVisual  Context = "visual"  // Visual mode
	ContextInsert  Context = "insert"  // Insert mode
	ContextCommand Context = "command" // Colon command line
)

const (
	// Global actions
	ActionQuitForce Action = "quit_force" // Exit immediately (ctrl+c)
	ActionRedraw    Action = "redraw"     // Repaint the whole screen (ctrl+l)

	// Motions
	ActionMoveLeft      Action = "move_left"
	ActionMoveRight     Action = "move_right"
	ActionMoveUp        Action = "move_up"
	ActionMoveDown      Action = "move_down"
	ActionLineStart     Action = "line_start"
	ActionLineEnd       Action = "line_end"
	ActionFirstNonBlank Action = "first_non_blank"
	ActionWordForward   Action = "word_forward"
	ActionWordBackward  Action = "word_backward"
	ActionWordEnd       Action = "word_end"
	ActionGoToTop       Action = "go_to_top"    // gg
	ActionGoToBottom    Action = "go_to_bottom" // G
	ActionHalfPageDown  Action = "half_page_down"
	ActionHalfPageUp    Action = "half_page_up"
	ActionPageDown      Action = "page_down"
	ActionPageUp        Action = "page_up"

	// Mode changes
	ActionInsert          Action = "insert"            // i
	ActionAppend          Action = "append"            // a
	ActionAppendLineEnd   Action = "append_line_end"   // A
	ActionInsertLineStart Action = "insert_line_start" // I
	ActionOpenBelow       Action = "open_below"        // o
	ActionOpenAbove       Action = "open_above"        // O
	ActionVisual          Action = "visual"            // v
	ActionCommandLine     Action = "command_line"      // :
	ActionEscape          Action = "escape"

	// Panes
	ActionPaneNext       Action = "pane_next"
	ActionPaneDown       Action = "pane_down"
	ActionPaneUp         Action = "pane_up"
	ActionGrowResponse   Action = "grow_response"   // ctrl+j
	ActionShrinkResponse Action = "shrink_response" // ctrl+k

	// Insert mode editing
	ActionBackspace Action = "backspace"
	ActionDelete    Action = "delete"
	ActionNewline   Action = "newline"
	ActionTab       Action = "tab"

	// Command line editing
	ActionCommandSubmit    Action = "command_submit"
	ActionCommandBackspace Action = "command_backspace"
	ActionCommandDelete    Action = "command_delete"
	ActionCommandHome      Action = "command_home"
	ActionCommandEnd       Action = "command_end"
)

// AllContexts lists the contexts in configuration order.
var AllContexts = []Context{ContextGlobal, ContextNormal, ContextVisual, ContextInsert, ContextCommand}

// knownActions is used to reject typos in keybinds.json.
var knownActions = map[Action]bool{
	ActionQuitForce: true, ActionRedraw: true,

	ActionMoveLeft: true, ActionMoveRight: true, ActionMoveUp: true, ActionMoveDown: true,
	ActionLineStart: true, ActionLineEnd: true, ActionFirstNonBlank: true,
	ActionWordForward: true, ActionWordBackward: true, ActionWordEnd: true,
	ActionGoToTop: true, ActionGoToBottom: true,
	ActionHalfPageDown: true, ActionHalfPageUp: true, ActionPageDown: true, ActionPageUp: true,

	ActionInsert: true, ActionAppend: true, ActionAppendLineEnd: true, ActionInsertLineStart: true,
	ActionOpenBelow: true, ActionOpenAbove: true, ActionVisual: true, ActionCommandLine: true,
	ActionEscape: true,

	ActionPaneNext: true, ActionPaneDown: true, ActionPaneUp: true,
	ActionGrowResponse: true, ActionShrinkResponse: true,

	ActionBackspace: true, ActionDelete: true, ActionNewline: true, ActionTab: true,

	ActionCommandSubmit: true, ActionCommandBackspace: true, ActionCommandDelete: true,
	ActionCommandHome: true, ActionCommandEnd: true,
}

// IsKnown reports whether a is an action the editor handles.
func (a Action) IsKnown() bool {
	return knownActions[a]
}
