package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/list-creation/internal/backend"
	"github.com/atomicstack/list-creation/internal/partition"
	"github.com/atomicstack/list-creation/internal/source"
	"github.com/atomicstack/list-creation/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

// mergingHarness selects lists 1 and 2 and starts a merge.
func mergingHarness(t *testing.T, width, height int) *Harness {
	t.Helper()
	h := loadedHarness(t, width, height)
	h.Keys(tea.KeyTab, tea.KeyDown, tea.KeyTab, tea.KeyEnter)
	if h.Model().Mode() != partition.ModeMerging {
		t.Fatalf("expected merging, got %s", h.Model().Mode())
	}
	return h
}

func TestMoveItemsIntoDraftAndCommit(t *testing.T) {
	h := mergingHarness(t, 120, 24)
	m := h.Model()

	h.Keys(tea.KeyEnter)
	if got := rowIDs(m.columns[columnLeft]); got != "2" {
		t.Fatalf("expected lion to leave list 1, got %s", got)
	}
	if got := rowIDs(m.columns[columnDraft]); got != "1" {
		t.Fatalf("expected lion in draft, got %s", got)
	}

	h.Keys(tea.KeyTab, tea.KeyTab)
	if m.focus != columnRight {
		t.Fatalf("expected focus on right column, got %d", m.focus)
	}
	h.Keys(tea.KeyEnter)
	if got := rowIDs(m.columns[columnDraft]); got != "1,3" {
		t.Fatalf("expected draft in move order, got %s", got)
	}
	if got := m.columns[columnDraft].Title; got != "New list (2)" {
		t.Fatalf("expected draft title to count items, got %q", got)
	}
	if m.manager.Total() != 4 {
		t.Fatalf("expected 4 items in total, got %d", m.manager.Total())
	}

	h.Keys(tea.KeyCtrlS)
	if m.Mode() != partition.ModeBrowsing {
		t.Fatalf("expected browsing after commit, got %s", m.Mode())
	}
	if got := rowIDs(m.lists); got != "1,2,3,4" {
		t.Fatalf("expected new list 4, got %s", got)
	}
	row, _ := m.lists.Current()
	if row.ID != "4" {
		t.Fatalf("expected cursor on the new list, got %s", row.ID)
	}
	created := m.manager.List(4)
	if len(created) != 2 || created[0].Name != "Lion" || created[1].Name != "Wolf" {
		t.Fatalf("unexpected new list: %#v", created)
	}
	if len(m.manager.List(2)) != 0 {
		t.Fatalf("expected list 2 to stay empty, got %#v", m.manager.List(2))
	}
	for c := range m.columns {
		if m.columns[c] != nil {
			t.Fatalf("expected merge columns to close")
		}
	}
	if m.errMsg != "" {
		t.Fatalf("expected no error, got %q", m.errMsg)
	}
}

func TestMoveFromDraftAppendsToOriginList(t *testing.T) {
	h := mergingHarness(t, 120, 24)
	m := h.Model()
	h.Keys(tea.KeyEnter)
	h.Keys(tea.KeyTab, tea.KeyTab, tea.KeyEnter)
	if got := rowIDs(m.columns[columnDraft]); got != "1,3" {
		t.Fatalf("expected lion and wolf in draft, got %s", got)
	}

	h.Keys(tea.KeyShiftTab, tea.KeyEnter)
	if got := rowIDs(m.columns[columnLeft]); got != "2,1" {
		t.Fatalf("expected lion appended after the tiger, got %s", got)
	}
	if got := rowIDs(m.columns[columnDraft]); got != "3" {
		t.Fatalf("expected only the wolf left in draft, got %s", got)
	}

	h.Keys(tea.KeyEnter)
	if got := rowIDs(m.columns[columnRight]); got != "3" {
		t.Fatalf("expected wolf back in list 2, got %s", got)
	}
	if len(m.columns[columnDraft].Rows) != 0 {
		t.Fatalf("expected empty draft, got %#v", m.columns[columnDraft].Rows)
	}
	if m.errMsg != "" {
		t.Fatalf("expected no error, got %q", m.errMsg)
	}
}

func TestDraftShowsProvenance(t *testing.T) {
	h := mergingHarness(t, 150, 24)
	h.Keys(tea.KeyEnter)
	if !strings.Contains(h.View(), "← List 1") {
		t.Fatalf("expected provenance in draft column, got:\n%s", h.View())
	}
}

func TestFocusWrapsAcrossColumns(t *testing.T) {
	h := mergingHarness(t, 120, 24)
	m := h.Model()
	h.Keys(tea.KeyShiftTab)
	if m.focus != columnRight {
		t.Fatalf("expected shift+tab to wrap to the right column, got %d", m.focus)
	}
	h.Keys(tea.KeyRight)
	if m.focus != columnLeft {
		t.Fatalf("expected right arrow to wrap to the left column, got %d", m.focus)
	}
	h.Keys(tea.KeyLeft)
	if m.focus != columnRight {
		t.Fatalf("expected left arrow to wrap back, got %d", m.focus)
	}
}

func TestEnterOnEmptyColumnDoesNothing(t *testing.T) {
	h := mergingHarness(t, 120, 24)
	m := h.Model()
	h.Keys(tea.KeyTab, tea.KeyEnter)
	if m.manager.Total() != 4 || len(m.manager.Draft()) != 0 {
		t.Fatalf("expected no change from an empty draft")
	}
	if m.errMsg != "" {
		t.Fatalf("expected no error, got %q", m.errMsg)
	}
}

func TestCommitEmptyDraftCreatesEmptyList(t *testing.T) {
	h := mergingHarness(t, 120, 24)
	m := h.Model()
	h.Keys(tea.KeyCtrlS)
	if m.Mode() != partition.ModeBrowsing {
		t.Fatalf("expected browsing, got %s", m.Mode())
	}
	if !m.manager.Grouping().Has(4) || len(m.manager.List(4)) != 0 {
		t.Fatalf("expected empty list 4, got %#v", m.manager.Grouping())
	}
	if m.lists.Rows[3].Detail != "0 items" {
		t.Fatalf("expected 0 items detail, got %q", m.lists.Rows[3].Detail)
	}
}

func TestCancelReloadsAndIgnoresStaleResults(t *testing.T) {
	h := mergingHarness(t, 120, 24)
	m := h.Model()
	h.Keys(tea.KeyEnter)
	h.Keys(tea.KeyEsc)
	if m.Mode() != partition.ModeLoading {
		t.Fatalf("expected loading after cancel, got %s", m.Mode())
	}
	if m.loadSeq != 2 || m.dispatcher.Expected() != 2 {
		t.Fatalf("expected second load generation, got seq %d expected %d", m.loadSeq, m.dispatcher.Expected())
	}

	h.Send(listsEvent(1, testutil.SampleRecords()[:1]))
	if m.Mode() != partition.ModeLoading {
		t.Fatalf("expected stale result to be ignored, got %s", m.Mode())
	}

	h.Send(listsEvent(2, testutil.SampleRecords()))
	if m.Mode() != partition.ModeBrowsing {
		t.Fatalf("expected browsing after reload, got %s", m.Mode())
	}
	if got := m.manager.List(1); len(got) != 2 || got[0].Name != "Lion" {
		t.Fatalf("expected list 1 restored from source, got %#v", got)
	}
	if len(m.manager.Selection()) != 0 {
		t.Fatalf("expected selection cleared, got %v", m.manager.Selection())
	}
	if m.catalog.Fetches() != 2 {
		t.Fatalf("expected two recorded fetches, got %d", m.catalog.Fetches())
	}
}

func TestLoadFailureAndRetry(t *testing.T) {
	quietLogs(t)
	h := NewHarness(NewModel(80, 20, false, false, nil))
	h.Send(backendEventMsg{event: backend.Event{
		Kind: backend.KindLists,
		Seq:  1,
		Err:  fmt.Errorf("get lists: %w: 503 Service Unavailable", source.ErrStatus),
	}})
	m := h.Model()
	if m.Mode() != partition.ModeFailed {
		t.Fatalf("expected failed, got %s", m.Mode())
	}
	view := h.View()
	if !strings.Contains(view, "Failed to load lists") || !strings.Contains(view, "code: status") {
		t.Fatalf("expected failure details, got:\n%s", view)
	}

	h.Keys(tea.KeyTab)
	if m.Mode() != partition.ModeFailed {
		t.Fatalf("expected tab to be ignored while failed, got %s", m.Mode())
	}

	h.Keys(tea.KeyEnter)
	if m.Mode() != partition.ModeLoading {
		t.Fatalf("expected loading after retry, got %s", m.Mode())
	}
	if m.dispatcher.Expected() != 2 {
		t.Fatalf("expected retry to use seq 2, got %d", m.dispatcher.Expected())
	}
	h.Send(listsEvent(2, testutil.SampleRecords()))
	if m.Mode() != partition.ModeBrowsing {
		t.Fatalf("expected browsing after retry, got %s", m.Mode())
	}
}

func TestDuplicateIDsFailTheLoad(t *testing.T) {
	quietLogs(t)
	h := NewHarness(NewModel(80, 20, false, false, nil))
	records := append(testutil.SampleRecords(), source.Record{ID: "1", Name: "Copy", ListNumber: 3})
	h.Send(listsEvent(1, records))
	m := h.Model()
	if m.Mode() != partition.ModeFailed {
		t.Fatalf("expected failed, got %s", m.Mode())
	}
	if !errors.Is(m.manager.LoadErr(), partition.ErrDuplicateItem) {
		t.Fatalf("expected duplicate item error, got %v", m.manager.LoadErr())
	}
	if !strings.Contains(h.View(), "code: data") {
		t.Fatalf("expected data code, got:\n%s", h.View())
	}
}

func TestStaleRowReportsFault(t *testing.T) {
	h := mergingHarness(t, 120, 24)
	m := h.Model()
	// Move the lion behind the UI's back so the highlighted row is stale.
	if err := m.manager.MoveToDraft("1", partition.SlotLeft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.Keys(tea.KeyEnter)
	if !strings.Contains(m.errMsg, "precondition") {
		t.Fatalf("expected precondition fault, got %q", m.errMsg)
	}
	if !strings.Contains(h.View(), "Error:") {
		t.Fatalf("expected error on status line, got:\n%s", h.View())
	}
	if m.manager.Total() != 4 {
		t.Fatalf("expected refused move to leave items intact, got %d", m.manager.Total())
	}
}

func TestFilterThenMove(t *testing.T) {
	h := mergingHarness(t, 120, 24)
	m := h.Model()
	h.Type("tig")
	left := m.columns[columnLeft]
	if left.Filter != "tig" {
		t.Fatalf("expected filter tig, got %q", left.Filter)
	}
	if got := rowIDs(left); got != "2" {
		t.Fatalf("expected only the tiger, got %s", got)
	}
	h.Keys(tea.KeyEnter)
	if got := rowIDs(m.columns[columnDraft]); got != "2" {
		t.Fatalf("expected tiger in draft, got %s", got)
	}
	if !strings.Contains(h.View(), `No matches for "tig"`) {
		t.Fatalf("expected empty filter result, got:\n%s", h.View())
	}
	h.Keys(tea.KeyCtrlU)
	if got := rowIDs(left); got != "1" {
		t.Fatalf("expected lion after clearing the filter, got %s", got)
	}
}

func TestFiltersArePerColumn(t *testing.T) {
	h := mergingHarness(t, 120, 24)
	m := h.Model()
	h.Type("lion")
	h.Keys(tea.KeyTab, tea.KeyTab)
	if m.columns[columnRight].Filter != "" {
		t.Fatalf("expected right column filter to be empty, got %q", m.columns[columnRight].Filter)
	}
	if m.columns[columnLeft].Filter != "lion" {
		t.Fatalf("expected left filter to be kept, got %q", m.columns[columnLeft].Filter)
	}
}
