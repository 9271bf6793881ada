package keybinds

import (
	"strings"
	"testing"
)

func TestMatch_FallsBackToGlobal(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		context Context
		key     string
		want    Action
	}{
		{ContextNormal, "j", ActionMoveDown},
		{ContextNormal, "down", ActionMoveDown},
		{ContextInsert, "left", ActionMoveLeft},
		{ContextCommand, "up", ActionMoveUp},
		{ContextCommand, "esc", ActionEscape},
		{ContextInsert, "enter", ActionNewline},
		{ContextCommand, "enter", ActionCommandSubmit},
		{ContextVisual, "v", ActionVisual},
		{ContextNormal, "ctrl+c", ActionQuitForce},
	}
	for _, tt := range tests {
		got, ok := r.Match(tt.context, tt.key)
		if !ok || got != tt.want {
			t.Errorf("Match(%s, %q) = %q, %v; want %q", tt.context, tt.key, got, ok, tt.want)
		}
	}

	if _, ok := r.Match(ContextInsert, "j"); ok {
		t.Error("j must not be bound in insert mode")
	}
}

func TestMatchMultiKey_GG(t *testing.T) {
	r := NewDefaultRegistry()

	action, complete, partial := r.MatchMultiKey(ContextNormal, "g")
	if action != "" || complete || !partial {
		t.Fatalf("first g = %q complete=%v partial=%v", action, complete, partial)
	}
	if p, ok := r.Pending(ContextNormal); !ok || p != "g" {
		t.Errorf("Pending = %q, %v", p, ok)
	}

	action, complete, partial = r.MatchMultiKey(ContextNormal, "g")
	if action != ActionGoToTop || !complete || partial {
		t.Errorf("gg = %q complete=%v partial=%v", action, complete, partial)
	}
	if _, ok := r.Pending(ContextNormal); ok {
		t.Error("pending state should be cleared")
	}
}

func TestMatchMultiKey_CtrlW(t *testing.T) {
	r := NewDefaultRegistry()

	if _, _, partial := r.MatchMultiKey(ContextVisual, "ctrl+w"); !partial {
		t.Fatal("ctrl+w should be a prefix")
	}
	action, complete, _ := r.MatchMultiKey(ContextVisual, "j")
	if !complete || action != ActionPaneDown {
		t.Errorf("ctrl+w j = %q, %v", action, complete)
	}

	r.MatchMultiKey(ContextNormal, "ctrl+w")
	action, complete, _ = r.MatchMultiKey(ContextNormal, "ctrl+w")
	if !complete || action != ActionPaneNext {
		t.Errorf("ctrl+w ctrl+w = %q, %v", action, complete)
	}
}

func TestMatchMultiKey_UnknownSequenceClears(t *testing.T) {
	r := NewDefaultRegistry()
	r.MatchMultiKey(ContextNormal, "g")

	action, complete, partial := r.MatchMultiKey(ContextNormal, "x")
	if action != "" || complete || partial {
		t.Errorf("gx = %q complete=%v partial=%v", action, complete, partial)
	}
	action, complete, _ = r.MatchMultiKey(ContextNormal, "j")
	if !complete || action != ActionMoveDown {
		t.Error("state should be clear after an unknown sequence")
	}
}

func TestMatchMultiKey_NoPrefixInInsert(t *testing.T) {
	r := NewDefaultRegistry()
	if _, complete, partial := r.MatchMultiKey(ContextInsert, "g"); complete || partial {
		t.Error("g is plain text in insert mode")
	}
}

func TestSequence(t *testing.T) {
	if got := Sequence("g", "g"); got != "gg" {
		t.Errorf("Sequence(g, g) = %q", got)
	}
	if got := Sequence("ctrl+w", "k"); got != "ctrl+w k" {
		t.Errorf("Sequence(ctrl+w, k) = %q", got)
	}
}

func TestGetBinding(t *testing.T) {
	r := NewDefaultRegistry()
	if got := strings.Join(r.GetBinding(ContextNormal, ActionLineEnd), ", "); got != "$, end" {
		t.Errorf("GetBinding = %q", got)
	}
	if got := r.GetBinding(ContextInsert, ActionVisual); len(got) != 0 {
		t.Errorf("GetBinding = %q", got)
	}
	if got := strings.Join(r.GetBinding(ContextInsert, ActionPageDown), ", "); got != "pgdown" {
		t.Errorf("global fallback = %q", got)
	}
}

func TestValidate(t *testing.T) {
	r := NewDefaultRegistry()
	if err := r.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
	before := len(r.ListBindings(ContextNormal))
	r.Register(ContextNormal, "x", Action("bogus"))
	if err := r.Validate(); err == nil {
		t.Error("an unknown action should fail validation")
	}
	if len(r.ListBindings(ContextNormal)) != before+1 {
		t.Error("registry should hold one extra binding")
	}
}
