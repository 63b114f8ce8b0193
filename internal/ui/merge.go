package ui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/atomicstack/list-creation/internal/logging"
	"github.com/atomicstack/list-creation/internal/logging/events"
	"github.com/atomicstack/list-creation/internal/partition"
	uistate "github.com/atomicstack/list-creation/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// fault records an operation the manager refused. These indicate the UI and
// the manager disagree about state, so they are logged as errors.
func (m *Model) fault(op string, err error) {
	events.Partition.Fault(op, err)
	logging.Error(fmt.Errorf("%s: %w", op, err))
	m.errMsg = err.Error()
}

// audit checks that no item was lost or duplicated since the last load.
func (m *Model) audit(op string) {
	err := m.manager.Audit(m.dispatcher.Baseline())
	events.Partition.Audit(m.manager.Total(), err)
	if err != nil {
		logging.Error(fmt.Errorf("after %s: %w", op, err))
		m.errMsg = err.Error()
	}
}

func (m *Model) toggleCurrentList() tea.Cmd {
	row, ok := m.lists.Current()
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(row.ID)
	if err != nil {
		m.fault("toggle selection", fmt.Errorf("%w: bad list row %q", partition.ErrPrecondition, row.ID))
		return nil
	}
	if err := m.manager.ToggleSelection(n); err != nil {
		m.fault("toggle selection", err)
		return nil
	}
	m.errMsg = ""
	events.Partition.Toggle(n, m.manager.IsSelected(n), m.manager.Selection())
	return nil
}

func (m *Model) startMerge() tea.Cmd {
	err := m.manager.StartMerge()
	if errors.Is(err, partition.ErrInvalidSelection) {
		events.Partition.MergeRefused(len(m.manager.Selection()))
		return nil
	}
	if err != nil {
		m.fault("start merge", err)
		return nil
	}
	m.errMsg = ""
	m.forceClearInfo()
	events.Partition.MergeStart(m.manager.Selection())
	m.openColumns()
	return nil
}

// openColumns builds fresh panes for the two selected lists and the draft.
func (m *Model) openColumns() {
	for c := columnLeft; c < columnCount; c++ {
		m.columns[c] = uistate.NewPane(columnIDs[c], m.columnTitle(c), m.columnRows(c))
	}
	m.focus = columnLeft
	m.syncAllViewports()
}

func (m *Model) refreshColumns() {
	for c := columnLeft; c < columnCount; c++ {
		if m.columns[c] == nil {
			continue
		}
		m.columns[c].Title = m.columnTitle(c)
		m.columns[c].UpdateRows(m.columnRows(c))
	}
	m.syncAllViewports()
}

func (m *Model) moveCurrentItem() tea.Cmd {
	current := m.currentPane()
	if current == nil {
		return nil
	}
	row, ok := current.Current()
	if !ok {
		return nil
	}
	id := partition.ItemID(row.ID)
	switch m.focus {
	case columnLeft, columnRight:
		slot := partition.SlotLeft
		if m.focus == columnRight {
			slot = partition.SlotRight
		}
		list, _ := m.manager.SlotList(slot)
		if err := m.manager.MoveToDraft(id, slot); err != nil {
			m.fault("move to draft", err)
			return nil
		}
		events.Partition.MoveToDraft(row.ID, list)
	case columnDraft:
		origin := m.draftOrigins()[row.ID]
		if err := m.manager.MoveFromDraft(id); err != nil {
			m.fault("move from draft", err)
			return nil
		}
		events.Partition.MoveFromDraft(row.ID, origin)
	}
	m.errMsg = ""
	m.refreshColumns()
	m.audit("move")
	return nil
}

func (m *Model) commitDraft() tea.Cmd {
	staged := len(m.manager.Draft())
	next, err := m.manager.Commit()
	if err != nil {
		m.fault("commit", err)
		return nil
	}
	events.Partition.Commit(next, staged)
	m.errMsg = ""
	m.closeColumns()
	m.refreshLists()
	m.lists.FocusID(strconv.Itoa(next))
	m.syncViewport(m.lists)
	if m.verbose {
		m.setInfo(fmt.Sprintf("Created %s with %s", listLabel(next), itemCount(staged)))
	}
	m.audit("commit")
	return nil
}

// cancelMerge drops the draft and reloads from the source, which is the
// only way staged items return to their lists.
func (m *Model) cancelMerge() tea.Cmd {
	staged := len(m.manager.Draft())
	if err := m.manager.Cancel(); err != nil {
		m.fault("cancel", err)
		return nil
	}
	events.Partition.Cancel(staged)
	m.errMsg = ""
	m.forceClearInfo()
	m.closeColumns()
	return m.reload("cancel")
}

func (m *Model) retryLoad() tea.Cmd {
	if err := m.manager.Retry(); err != nil {
		m.fault("retry", err)
		return nil
	}
	m.errMsg = ""
	return m.reload("retry")
}

func (m *Model) closeColumns() {
	for c := range m.columns {
		m.columns[c] = nil
	}
	m.focus = columnLeft
}

func (m *Model) setFocus(c column) {
	if c < 0 {
		c = columnCount - 1
	}
	if c >= columnCount {
		c = columnLeft
	}
	if c == m.focus {
		return
	}
	m.focus = c
	m.filterCursorDirty = true
	events.UI.Focus(columnIDs[c])
}
