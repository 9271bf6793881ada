package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// Binding represents a keybinding mapping
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry manages keybinding mappings and matching
type Registry struct {
	// bindings maps context -> key -> action
	bindings map[Context]map[string]Action

	// prefixes are keys that start a two-key sequence (g, ctrl+w)
	prefixes map[Context]map[string]bool

	// multiKeyState tracks the pending prefix per context
	multiKeyState map[Context]string
}

// NewRegistry creates a new keybinding registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[Context]map[string]Action),
		prefixes:      make(map[Context]map[string]bool),
		multiKeyState: make(map[Context]string),
	}
}

// Sequence joins a prefix and the following key the way sequences are
// written in bindings: "g"+"g" is "gg", "ctrl+w"+"j" is "ctrl+w j".
func Sequence(prefix, key string) string {
	if len(prefix) == 1 && len(key) == 1 {
		return prefix + key
	}
	return prefix + " " + key
}

// Register adds a keybinding to the registry. Registering a sequence marks
// its first key as a prefix in that context.
func (r *Registry) Register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
	if prefix, ok := sequencePrefix(key); ok {
		if r.prefixes[context] == nil {
			r.prefixes[context] = make(map[string]bool)
		}
		r.prefixes[context][prefix] = true
	}
}

// RegisterMultiple registers multiple keybindings for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Unbind removes a key from a context.
func (r *Registry) Unbind(context Context, key string) {
	delete(r.bindings[context], key)
}

func sequencePrefix(key string) (string, bool) {
	if first, _, ok := strings.Cut(key, " "); ok {
		return first, true
	}
	// two printable characters without a modifier: "gg"
	if len(key) == 2 && !strings.Contains(key, "+") && key[0] == 'g' {
		return key[:1], true
	}
	return "", false
}

// Match attempts to match a key to an action in the given context
// Contexts are checked in priority order: specific context -> global
func (r *Registry) Match(context Context, key string) (Action, bool) {
	if contextBindings, ok := r.bindings[context]; ok {
		if action, ok := contextBindings[key]; ok {
			return action, true
		}
	}
	if globalBindings, ok := r.bindings[ContextGlobal]; ok {
		if action, ok := globalBindings[key]; ok {
			return action, true
		}
	}
	return "", false
}

// MatchMultiKey handles two-key sequences like 'gg' and 'ctrl+w j'
// Returns the action, whether it's a complete match, and whether it's a partial match
func (r *Registry) MatchMultiKey(context Context, key string) (Action, bool, bool) {
	if prevKey, hasPending := r.multiKeyState[context]; hasPending {
		delete(r.multiKeyState, context)
		if action, ok := r.Match(context, Sequence(prevKey, key)); ok {
			return action, true, false
		}
		return "", false, false
	}

	if r.prefixes[context][key] {
		r.multiKeyState[context] = key
		return "", false, true
	}

	action, ok := r.Match(context, key)
	return action, ok, false
}

// Pending returns the prefix waiting for its second key, if any.
func (r *Registry) Pending(context Context) (string, bool) {
	k, ok := r.multiKeyState[context]
	return k, ok
}

// ClearMultiKeyState clears any pending multi-key state for a context
func (r *Registry) ClearMultiKeyState(context Context) {
	delete(r.multiKeyState, context)
}

// GetBinding returns the key(s) bound to an action in a context, sorted
func (r *Registry) GetBinding(context Context, action Action) []string {
	var keys []string
	for key, act := range r.bindings[context] {
		if act == action {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		for key, act := range r.bindings[ContextGlobal] {
			if act == action {
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// ListBindings returns all bindings for a context, global ones included
func (r *Registry) ListBindings(context Context) []Binding {
	var bindings []Binding
	for key, action := range r.bindings[context] {
		bindings = append(bindings, Binding{Key: key, Action: action, Context: context})
	}
	if context != ContextGlobal {
		for key, action := range r.bindings[ContextGlobal] {
			bindings = append(bindings, Binding{Key: key, Action: action, Context: ContextGlobal})
		}
	}
	sort.Slice(bindings, func(i, j int) bool {
		if bindings[i].Context != bindings[j].Context {
			return bindings[i].Context < bindings[j].Context
		}
		return bindings[i].Key < bindings[j].Key
	})
	return bindings
}

// Validate checks that every bound action is known
func (r *Registry) Validate() error {
	for context, contextBindings := range r.bindings {
		for key, action := range contextBindings {
			if !action.IsKnown() {
				return fmt.Errorf("unknown action '%s' for key '%s' in context '%s'", action, key, context)
			}
		}
	}
	return nil
}
