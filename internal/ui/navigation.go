package ui

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/list-creation/internal/logging/events"
	"github.com/atomicstack/list-creation/internal/partition"
	uistate "github.com/atomicstack/list-creation/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// currentPane returns the pane receiving cursor and filter input, or nil
// while loading or failed.
func (m *Model) currentPane() *pane {
	switch m.manager.Mode() {
	case partition.ModeBrowsing:
		return m.lists
	case partition.ModeMerging:
		return m.columns[m.focus]
	default:
		return nil
	}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	switch m.manager.Mode() {
	case partition.ModeLoading:
		return nil
	case partition.ModeFailed:
		if key.Matches(keyMsg, m.keys.Retry) {
			return m.retryLoad()
		}
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	if m.handleCursorKey(keyMsg) {
		return nil
	}
	if m.manager.Mode() == partition.ModeMerging {
		return m.handleMergingKey(keyMsg)
	}
	return m.handleBrowsingKey(keyMsg)
}

func (m *Model) handleBrowsingKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleCurrentList()
	case key.Matches(msg, m.keys.StartMerge):
		return m.startMerge()
	case key.Matches(msg, m.keys.Back):
		return tea.Quit
	}
	return nil
}

func (m *Model) handleMergingKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextPane):
		m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.PrevPane):
		m.setFocus(m.focus - 1)
	case key.Matches(msg, m.keys.Move):
		return m.moveCurrentItem()
	case key.Matches(msg, m.keys.Commit):
		return m.commitDraft()
	case key.Matches(msg, m.keys.Cancel):
		return m.cancelMerge()
	}
	return nil
}

func (m *Model) handleCursorKey(msg tea.KeyMsg) bool {
	current := m.currentPane()
	if current == nil {
		return false
	}
	moved := false
	switch {
	case key.Matches(msg, m.keys.Up):
		moved = wrapCursor(current, -1)
	case key.Matches(msg, m.keys.Down):
		moved = wrapCursor(current, 1)
	case key.Matches(msg, m.keys.PageUp):
		moved = current.MoveCursorPageUp(m.paneCapacity())
	case key.Matches(msg, m.keys.PageDown):
		moved = current.MoveCursorPageDown(m.paneCapacity())
	case key.Matches(msg, m.keys.Home):
		moved = current.MoveCursorHome()
	case key.Matches(msg, m.keys.End):
		moved = current.MoveCursorEnd()
	default:
		return false
	}
	if moved {
		events.UI.Cursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
	return true
}

// wrapCursor moves one row, wrapping at either end.
func wrapCursor(p *pane, delta int) bool {
	n := len(p.Rows)
	if n == 0 {
		return false
	}
	p.Cursor = ((p.Cursor+delta)%n + n) % n
	return true
}

func (m *Model) syncViewport(p *pane) {
	if p == nil {
		return
	}
	p.EnsureCursorVisible(m.paneCapacity())
}

func (m *Model) syncAllViewports() {
	m.syncViewport(m.lists)
	for _, c := range m.columns {
		m.syncViewport(c)
	}
}

// refreshLists rebuilds the browse pane from the grouping.
func (m *Model) refreshLists() {
	m.lists.UpdateRows(m.listRows())
	m.syncViewport(m.lists)
}

func (m *Model) listRows() []uistate.Row {
	g := m.manager.Grouping()
	numbers := g.ListNumbersSorted()
	rows := make([]uistate.Row, len(numbers))
	for i, n := range numbers {
		rows[i] = uistate.Row{
			ID:     strconv.Itoa(n),
			Label:  listLabel(n),
			Detail: itemCount(len(g[n])),
		}
	}
	return rows
}

func (m *Model) columnRows(c column) []uistate.Row {
	var items []partition.Item
	switch c {
	case columnLeft, columnRight:
		slot := partition.SlotLeft
		if c == columnRight {
			slot = partition.SlotRight
		}
		n, ok := m.manager.SlotList(slot)
		if !ok {
			return nil
		}
		items = m.manager.List(n)
	case columnDraft:
		items = m.manager.Draft()
	}
	return itemRows(items)
}

func (m *Model) columnTitle(c column) string {
	switch c {
	case columnDraft:
		return fmt.Sprintf("%s (%d)", draftTitle, len(m.manager.Draft()))
	case columnRight:
		if n, ok := m.manager.SlotList(partition.SlotRight); ok {
			return fmt.Sprintf("%s (%d)", listLabel(n), len(m.manager.List(n)))
		}
	default:
		if n, ok := m.manager.SlotList(partition.SlotLeft); ok {
			return fmt.Sprintf("%s (%d)", listLabel(n), len(m.manager.List(n)))
		}
	}
	return ""
}

// draftOrigins maps staged item ids to the list they were taken from.
func (m *Model) draftOrigins() map[string]int {
	draft := m.manager.Draft()
	origins := make(map[string]int, len(draft))
	for _, it := range draft {
		if it.Origin != nil {
			origins[string(it.ID)] = it.Origin.ListNumber
		}
	}
	return origins
}

func itemRows(items []partition.Item) []uistate.Row {
	rows := make([]uistate.Row, len(items))
	for i, it := range items {
		rows[i] = uistate.Row{ID: string(it.ID), Label: it.Name, Detail: it.ScientificName}
	}
	return rows
}

func listLabel(n int) string {
	return "List " + strconv.Itoa(n)
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}
