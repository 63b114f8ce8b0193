package ui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/list-creation/internal/backend"
	"github.com/atomicstack/list-creation/internal/logging"
	"github.com/atomicstack/list-creation/internal/partition"
	"github.com/atomicstack/list-creation/internal/source"
	"github.com/atomicstack/list-creation/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

func quietLogs(t *testing.T) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "test.log"))
	t.Cleanup(func() { logging.Configure("") })
}

func listsEvent(seq int, records []source.Record) backendEventMsg {
	return backendEventMsg{event: backend.Event{Kind: backend.KindLists, Seq: seq, Data: records}}
}

// loadedHarness returns a harness whose model has received the sample
// catalog and is browsing.
func loadedHarness(t *testing.T, width, height int) *Harness {
	t.Helper()
	quietLogs(t)
	h := NewHarness(NewModel(width, height, false, false, nil))
	h.Send(listsEvent(1, testutil.SampleRecords()))
	if got := h.Model().Mode(); got != partition.ModeBrowsing {
		t.Fatalf("expected browsing after load, got %s", got)
	}
	return h
}

func rowIDs(p *pane) string {
	ids := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		ids[i] = r.ID
	}
	return strings.Join(ids, ",")
}

func TestNewModelStartsLoading(t *testing.T) {
	m := NewModel(80, 20, false, false, nil)
	if m.Mode() != partition.ModeLoading {
		t.Fatalf("expected loading, got %s", m.Mode())
	}
	if m.dispatcher.Expected() != 1 {
		t.Fatalf("expected first load to be seq 1, got %d", m.dispatcher.Expected())
	}
	if !strings.Contains(m.View(), "Loading lists") {
		t.Fatalf("expected loading indicator, got:\n%s", m.View())
	}
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	quietLogs(t)
	h := NewHarness(NewModel(80, 20, false, false, nil))
	h.Keys(tea.KeyTab, tea.KeyEnter, tea.KeyEsc)
	h.Type("abc")
	if h.Model().Mode() != partition.ModeLoading {
		t.Fatalf("expected loading, got %s", h.Model().Mode())
	}
}

func TestLoadPopulatesLists(t *testing.T) {
	h := loadedHarness(t, 80, 20)
	m := h.Model()
	if got := rowIDs(m.lists); got != "1,2,3" {
		t.Fatalf("expected lists 1,2,3, got %s", got)
	}
	if m.lists.Rows[0].Detail != "2 items" || m.lists.Rows[1].Detail != "1 item" {
		t.Fatalf("unexpected list details: %#v", m.lists.Rows)
	}
	if m.catalog.Fetches() != 1 {
		t.Fatalf("expected one recorded fetch, got %d", m.catalog.Fetches())
	}
	if len(m.dispatcher.Baseline()) != 4 {
		t.Fatalf("expected baseline of 4 items, got %d", len(m.dispatcher.Baseline()))
	}
}

func TestToggleSelectionMarksList(t *testing.T) {
	h := loadedHarness(t, 80, 20)
	h.Keys(tea.KeyTab)
	m := h.Model()
	if !m.manager.IsSelected(1) {
		t.Fatalf("expected list 1 selected")
	}
	if !strings.Contains(h.View(), "[✓] List 1") {
		t.Fatalf("expected checked list 1 in view, got:\n%s", h.View())
	}
	h.Keys(tea.KeyTab)
	if m.manager.IsSelected(1) {
		t.Fatalf("expected second tab to deselect list 1")
	}
}

func TestStartMergeRequiresTwoLists(t *testing.T) {
	h := loadedHarness(t, 80, 20)
	h.Keys(tea.KeyEnter)
	if h.Model().Mode() != partition.ModeBrowsing {
		t.Fatalf("expected browsing, got %s", h.Model().Mode())
	}
	if !strings.Contains(h.View(), partition.SelectionMessage) {
		t.Fatalf("expected validation message, got:\n%s", h.View())
	}

	h.Keys(tea.KeyTab, tea.KeyDown, tea.KeyTab, tea.KeyDown, tea.KeyTab, tea.KeyEnter)
	if h.Model().Mode() != partition.ModeBrowsing {
		t.Fatalf("expected three selected lists to be refused, got %s", h.Model().Mode())
	}
	if h.Model().manager.Validation() != partition.SelectionMessage {
		t.Fatalf("expected validation message, got %q", h.Model().manager.Validation())
	}

	// Toggling clears the message.
	h.Keys(tea.KeyTab)
	if h.Model().manager.Validation() != "" {
		t.Fatalf("expected toggle to clear validation, got %q", h.Model().manager.Validation())
	}
}

func TestStartMergeOpensColumns(t *testing.T) {
	h := loadedHarness(t, 120, 20)
	// Select list 2 first so the ordering of the columns is checked.
	h.Keys(tea.KeyDown, tea.KeyTab, tea.KeyUp, tea.KeyTab, tea.KeyEnter)
	m := h.Model()
	if m.Mode() != partition.ModeMerging {
		t.Fatalf("expected merging, got %s", m.Mode())
	}
	if got := m.columns[columnLeft].Title; got != "List 1 (2)" {
		t.Fatalf("expected left column List 1 (2), got %q", got)
	}
	if got := m.columns[columnRight].Title; got != "List 2 (1)" {
		t.Fatalf("expected right column List 2 (1), got %q", got)
	}
	if got := m.columns[columnDraft].Title; got != "New list (0)" {
		t.Fatalf("expected empty draft column, got %q", got)
	}
	if m.focus != columnLeft {
		t.Fatalf("expected focus on left column, got %d", m.focus)
	}
}

func TestQuitKeys(t *testing.T) {
	m := NewModel(80, 20, false, false, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !yieldsQuit(cmd) {
		t.Fatalf("expected ctrl+c to quit while loading")
	}

	h := loadedHarness(t, 80, 20)
	_, cmd = h.Model().Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !yieldsQuit(cmd) {
		t.Fatalf("expected esc to quit while browsing")
	}
}

func yieldsQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if yieldsQuit(c) {
				return true
			}
		}
	}
	return false
}

func TestSpinnerOnlyTicksWhileLoading(t *testing.T) {
	m := NewModel(80, 20, false, false, nil)
	if cmd := m.handleSpinnerTickMsg(m.spinner.Tick()); cmd == nil {
		t.Fatalf("expected spinner to keep ticking while loading")
	}
	h := loadedHarness(t, 80, 20)
	m = h.Model()
	if cmd := m.handleSpinnerTickMsg(m.spinner.Tick()); cmd != nil {
		t.Fatalf("expected spinner to stop once browsing")
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	m := NewModel(0, 12, false, false, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.width != 100 {
		t.Fatalf("expected width from resize, got %d", m.width)
	}
	if m.height != 12 {
		t.Fatalf("expected fixed height 12, got %d", m.height)
	}
}
