package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry resolves key presses to actions per interaction scope,
// with a global-scope fallback. First registration of a key within a
// scope wins.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal  = "global"
	scopeSidebar = "sidebar"
	scopePopover = "popover"
	scopeRange   = "range"
)

const (
	actionQuit         Action = "quit"
	actionTogglePopup  Action = "toggle_popup"
	actionFocusNext    Action = "focus_next"
	actionFocusPrev    Action = "focus_prev"
	actionCollapse     Action = "collapse"
	actionExpand       Action = "expand"
	actionResetHeight  Action = "reset_height"
	actionGrow         Action = "grow"
	actionShrink       Action = "shrink"
	actionFocusOpacity Action = "focus_opacity"
	actionFocusZoom    Action = "focus_zoom"
	actionBlurRange    Action = "blur_range"
	actionPanelJump1   Action = "panel_jump_1"
	actionPanelJump2   Action = "panel_jump_2"
	actionPanelJump3   Action = "panel_jump_3"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	// Global fallback lookup.
	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")
	reg(scopeGlobal, actionTogglePopup, []string{"b"}, "blend mode")
	reg(scopeGlobal, actionPanelJump1, []string{"alt+1"}, "layers")
	reg(scopeGlobal, actionPanelJump2, []string{"alt+2"}, "adjustments")
	reg(scopeGlobal, actionPanelJump3, []string{"alt+3"}, "history")

	reg(scopeSidebar, actionFocusNext, []string{"j", "down"}, "next panel")
	reg(scopeSidebar, actionFocusPrev, []string{"k", "up"}, "prev panel")
	reg(scopeSidebar, actionCollapse, []string{"c"}, "collapse")
	reg(scopeSidebar, actionExpand, []string{"e", "enter"}, "expand")
	reg(scopeSidebar, actionResetHeight, []string{"r"}, "reset height")
	reg(scopeSidebar, actionGrow, []string{"+", "="}, "grow")
	reg(scopeSidebar, actionShrink, []string{"-"}, "shrink")
	reg(scopeSidebar, actionFocusOpacity, []string{"o"}, "opacity")
	reg(scopeSidebar, actionFocusZoom, []string{"z"}, "zoom")

	reg(scopeRange, actionBlurRange, []string{"esc", "enter"}, "done")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup resolves a key within a scope, falling back to the global
// scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		if b := r.lookupInScope(keyName, scopeGlobal); b != nil {
			return b
		}
	}
	return nil
}

// HelpBindings converts a scope's bindings into bubbles help entries.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

// ApplyPanelShortcuts rebinds the panel jump combos from config. An
// override that collides with an existing global binding is an error.
func (r *KeyRegistry) ApplyPanelShortcuts(combos []string) error {
	actions := []Action{actionPanelJump1, actionPanelJump2, actionPanelJump3}
	for i, combo := range combos {
		if i >= len(actions) {
			break
		}
		combo = normalizeKeyName(combo)
		if combo == "" {
			continue
		}
		current := r.keysForAction(scopeGlobal, actions[i])
		if len(current) == 1 && current[0] == combo {
			continue
		}
		if existing := r.lookupInScope(combo, scopeGlobal); existing != nil {
			return fmt.Errorf("panel shortcut %q already bound to %q", combo, existing.Action)
		}
		r.rebind(scopeGlobal, actions[i], combo)
	}
	return nil
}

func (r *KeyRegistry) keysForAction(scope string, action Action) []string {
	for _, b := range r.bindingsByScope[scope] {
		if b.Action == action {
			return b.Keys
		}
	}
	return nil
}

func (r *KeyRegistry) rebind(scope string, action Action, keyName string) {
	for _, b := range r.bindingsByScope[scope] {
		if b.Action != action {
			continue
		}
		for _, old := range b.Keys {
			delete(r.indexByScope[scope], old)
		}
		b.Keys = []string{keyName}
		r.indexByScope[scope][keyName] = b
		return
	}
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Uppercase and lowercase single runes stay distinct bindings.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	return s
}
