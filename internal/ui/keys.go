package ui

import (
	"strings"

	"github.com/atomicstack/list-creation/internal/partition"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit       key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Toggle     key.Binding
	StartMerge key.Binding
	Retry      key.Binding
	NextPane   key.Binding
	PrevPane   key.Binding
	Move       key.Binding
	Commit     key.Binding
	Cancel     key.Binding
	Back       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Up:         key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑/↓", "move")),
		Down:       key.NewBinding(key.WithKeys("down", "ctrl+n")),
		PageUp:     key.NewBinding(key.WithKeys("pgup")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown")),
		Home:       key.NewBinding(key.WithKeys("home")),
		End:        key.NewBinding(key.WithKeys("end")),
		Toggle:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "select list")),
		StartMerge: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create a new list")),
		Retry:      key.NewBinding(key.WithKeys("enter", "ctrl+r"), key.WithHelp("enter", "retry")),
		NextPane:   key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab/→", "next column")),
		PrevPane:   key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab/←", "previous column")),
		Move:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "move item")),
		Commit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "update")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
	}
}

// bindingsFor lists the bindings advertised in the footer for a mode.
func (k keyMap) bindingsFor(mode partition.Mode) []key.Binding {
	switch mode {
	case partition.ModeLoading:
		return []key.Binding{k.Quit}
	case partition.ModeFailed:
		return []key.Binding{k.Retry, k.Quit}
	case partition.ModeMerging:
		return []key.Binding{k.Up, k.NextPane, k.PrevPane, k.Move, k.Commit, k.Cancel}
	default:
		return []key.Binding{k.Up, k.Toggle, k.StartMerge, k.Back}
	}
}

func (k keyMap) helpLine(mode partition.Mode) string {
	bindings := k.bindingsFor(mode)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
