package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerMotionBindings(r, ContextNormal)
	registerMotionBindings(r, ContextVisual)
	registerPaneBindings(r, ContextNormal)
	registerPaneBindings(r, ContextVisual)
	registerNormalModeBindings(r)
	registerVisualModeBindings(r)
	registerInsertModeBindings(r)
	registerCommandLineBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes. Arrow and
// page keys move the cursor in every mode, the command line included.
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "ctrl+l", ActionRedraw)
	r.Register(ContextGlobal, "esc", ActionEscape)
	r.Register(ContextGlobal, "left", ActionMoveLeft)
	r.Register(ContextGlobal, "right", ActionMoveRight)
	r.Register(ContextGlobal, "up", ActionMoveUp)
	r.Register(ContextGlobal, "down", ActionMoveDown)
	r.Register(ContextGlobal, "pgup", ActionPageUp)
	r.Register(ContextGlobal, "pgdown", ActionPageDown)
}

func registerMotionBindings(r *Registry, ctx Context) {
	r.Register(ctx, "h", ActionMoveLeft)
	r.Register(ctx, "l", ActionMoveRight)
	r.Register(ctx, "k", ActionMoveUp)
	r.Register(ctx, "j", ActionMoveDown)
	r.RegisterMultiple(ctx, []string{"0", "home"}, ActionLineStart)
	r.RegisterMultiple(ctx, []string{"$", "end"}, ActionLineEnd)
	r.Register(ctx, "^", ActionFirstNonBlank)
	r.Register(ctx, "w", ActionWordForward)
	r.Register(ctx, "b", ActionWordBackward)
	r.Register(ctx, "e", ActionWordEnd)
	r.Register(ctx, "gg", ActionGoToTop)
	r.Register(ctx, "G", ActionGoToBottom)
	r.Register(ctx, "ctrl+d", ActionHalfPageDown)
	r.Register(ctx, "ctrl+u", ActionHalfPageUp)
	r.Register(ctx, "ctrl+f", ActionPageDown)
	r.Register(ctx, "ctrl+b", ActionPageUp)
	r.Register(ctx, ":", ActionCommandLine)
}

func registerPaneBindings(r *Registry, ctx Context) {
	r.RegisterMultiple(ctx, []string{"ctrl+w w", "ctrl+w ctrl+w"}, ActionPaneNext)
	r.RegisterMultiple(ctx, []string{"ctrl+w j", "ctrl+w down"}, ActionPaneDown)
	r.RegisterMultiple(ctx, []string{"ctrl+w k", "ctrl+w up"}, ActionPaneUp)
	r.Register(ctx, "ctrl+j", ActionGrowResponse)
	r.Register(ctx, "ctrl+k", ActionShrinkResponse)
}

func registerNormalModeBindings(r *Registry) {
	r.Register(ContextNormal, "i", ActionInsert)
	r.Register(ContextNormal, "a", ActionAppend)
	r.Register(ContextNormal, "A", ActionAppendLineEnd)
	r.Register(ContextNormal, "I", ActionInsertLineStart)
	r.Register(ContextNormal, "o", ActionOpenBelow)
	r.Register(ContextNormal, "O", ActionOpenAbove)
	r.Register(ContextNormal, "v", ActionVisual)
}

func registerVisualModeBindings(r *Registry) {
	r.Register(ContextVisual, "v", ActionVisual)
}

func registerInsertModeBindings(r *Registry) {
	r.Register(ContextInsert, "backspace", ActionBackspace)
	r.Register(ContextInsert, "delete", ActionDelete)
	r.Register(ContextInsert, "enter", ActionNewline)
	r.Register(ContextInsert, "tab", ActionTab)
	r.Register(ContextInsert, "home", ActionLineStart)
	r.Register(ContextInsert, "end", ActionLineEnd)
}

func registerCommandLineBindings(r *Registry) {
	r.Register(ContextCommand, "enter", ActionCommandSubmit)
	r.Register(ContextCommand, "backspace", ActionCommandBackspace)
	r.Register(ContextCommand, "delete", ActionCommandDelete)
	r.RegisterMultiple(ContextCommand, []string{"home", "ctrl+a"}, ActionCommandHome)
	r.RegisterMultiple(ContextCommand, []string{"end", "ctrl+e"}, ActionCommandEnd)
}
