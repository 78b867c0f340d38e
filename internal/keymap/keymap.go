// Package keymap maps key events to UI actions through an explicit table.
package keymap

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action represents a user action that can be triggered by a key
type Action string

const (
	ActionQuit            Action = "quit"
	ActionToggleOverlay   Action = "toggle_overlay"
	ActionOpen            Action = "open"
	ActionNext            Action = "next"
	ActionPrevious        Action = "previous"
	ActionCopy            Action = "copy"
	ActionClose           Action = "close"
	ActionNextPlatform    Action = "next_platform"
	ActionPrevPlatform    Action = "prev_platform"
	ActionNextCategory    Action = "next_category"
	ActionPrevCategory    Action = "prev_category"
	ActionToggleAutoClose Action = "toggle_auto_close"
	ActionResetFilters    Action = "reset_filters"
	ActionScrollDown      Action = "scroll_down"
	ActionScrollUp        Action = "scroll_up"
)

// Context is the part of the UI that currently receives keys
type Context int

const (
	ContextLauncher Context = iota // Overlay collapsed
	ContextOverlay                 // Overlay open, nothing selected
	ContextDetail                  // Overlay open with the detail panel
)

var (
	allContexts  = []Context{ContextLauncher, ContextOverlay, ContextDetail}
	openContexts = []Context{ContextOverlay, ContextDetail}
)

// entry is one row of the command table
type entry struct {
	action   Action
	binding  key.Binding
	contexts []Context
}

// Table resolves key messages to actions. Rows are checked in order and
// the first row active in the context wins.
type Table struct {
	entries []entry
}

// Default returns the default command table
func Default() *Table {
	return &Table{entries: []entry{
		{ActionQuit, key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")), allContexts},
		{ActionQuit, key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")), []Context{ContextLauncher}},
		{ActionToggleOverlay, key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle")), allContexts},
		{ActionOpen, key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "open")), []Context{ContextLauncher}},
		{ActionNext, key.NewBinding(key.WithKeys("down", "ctrl+j"), key.WithHelp("↓", "next")), openContexts},
		{ActionPrevious, key.NewBinding(key.WithKeys("up", "ctrl+k"), key.WithHelp("↑", "prev")), openContexts},
		{ActionCopy, key.NewBinding(key.WithKeys("enter", "ctrl+y"), key.WithHelp("enter", "copy")), []Context{ContextDetail}},
		{ActionClose, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")), openContexts},
		{ActionNextPlatform, key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "platform")), openContexts},
		{ActionPrevPlatform, key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "platform")), openContexts},
		{ActionNextCategory, key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n/p", "category")), openContexts},
		{ActionPrevCategory, key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "category")), openContexts},
		{ActionToggleAutoClose, key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "auto-close")), openContexts},
		{ActionResetFilters, key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")), openContexts},
		{ActionScrollDown, key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn/pgup", "scroll")), []Context{ContextDetail}},
		{ActionScrollUp, key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll")), []Context{ContextDetail}},
	}}
}

// Actions lists every action known to the table
func (t *Table) Actions() []Action {
	var actions []Action
	for _, e := range t.entries {
		if !slices.Contains(actions, e.action) {
			actions = append(actions, e.action)
		}
	}
	return actions
}

// Override replaces the keys for every row bound to action
func (t *Table) Override(action Action, keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("no keys given for action %q", action)
	}

	found := false
	for i := range t.entries {
		e := &t.entries[i]
		if e.action != action {
			continue
		}
		found = true
		e.binding.SetKeys(keys...)
		e.binding.SetHelp(strings.Join(keys, "/"), e.binding.Help().Desc)
	}
	if !found {
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

// Apply overrides several actions at once, keyed by action name
func (t *Table) Apply(overrides map[string][]string) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := t.Override(Action(name), overrides[name]); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the action bound to msg in ctx
func (t *Table) Resolve(ctx Context, msg tea.KeyMsg) (Action, bool) {
	for _, e := range t.entries {
		if !slices.Contains(e.contexts, ctx) {
			continue
		}
		if key.Matches(msg, e.binding) {
			return e.action, true
		}
	}
	return "", false
}

// Help returns the bindings to show in the footer for ctx, one per action
func (t *Table) Help(ctx Context) []key.Binding {
	var (
		bindings []key.Binding
		seen     = make(map[Action]bool)
	)
	for _, e := range t.entries {
		if !slices.Contains(e.contexts, ctx) || seen[e.action] {
			continue
		}
		// Paired actions share a single help entry
		if e.action == ActionPrevCategory || e.action == ActionPrevPlatform || e.action == ActionScrollUp {
			continue
		}
		seen[e.action] = true
		bindings = append(bindings, e.binding)
	}
	return bindings
}

// Binding returns the first binding for action that is active in ctx
func (t *Table) Binding(ctx Context, action Action) (key.Binding, bool) {
	for _, e := range t.entries {
		if e.action == action && slices.Contains(e.contexts, ctx) {
			return e.binding, true
		}
	}
	return key.Binding{}, false
}
