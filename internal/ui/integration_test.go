package ui

import (
	"net/http"
	"testing"
	"time"

	"github.com/atomicstack/list-creation/internal/backend"
	"github.com/atomicstack/list-creation/internal/partition"
	"github.com/atomicstack/list-creation/internal/source"
	"github.com/atomicstack/list-creation/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

func startLoader(t *testing.T, srv *testutil.ListServer) *backend.Loader {
	t.Helper()
	loader := backend.NewLoader(source.NewHTTP(srv.URL, 2*time.Second), 0)
	t.Cleanup(func() {
		loader.Stop()
		loader.Wait()
	})
	return loader
}

// deliverNext issues the model's current load and feeds the result back.
// The re-armed wait command is dropped so the test stays in control.
func deliverNext(t *testing.T, m *Model) {
	t.Helper()
	m.issueLoad(m.loadSeq, "test")()
	done := make(chan tea.Msg, 1)
	go func() { done <- waitForBackendEvent(m.loader)() }()
	select {
	case msg := <-done:
		m.Update(msg)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for load seq %d", m.loadSeq)
	}
}

func sendKeys(m *Model, keys ...tea.KeyType) {
	for _, k := range keys {
		m.Update(tea.KeyMsg{Type: k})
	}
}

func TestLoaderRoundTripThroughModel(t *testing.T) {
	quietLogs(t)
	srv := testutil.NewListServer(t, testutil.SampleRecords())
	m := NewModel(120, 24, false, false, startLoader(t, srv))

	deliverNext(t, m)
	if m.Mode() != partition.ModeBrowsing {
		t.Fatalf("expected browsing, got %s", m.Mode())
	}
	if got := rowIDs(m.lists); got != "1,2,3" {
		t.Fatalf("expected lists 1,2,3, got %s", got)
	}

	sendKeys(m, tea.KeyTab, tea.KeyDown, tea.KeyTab, tea.KeyEnter, tea.KeyEnter, tea.KeyEsc)
	if m.Mode() != partition.ModeLoading {
		t.Fatalf("expected loading after cancel, got %s", m.Mode())
	}
	deliverNext(t, m)
	if m.Mode() != partition.ModeBrowsing {
		t.Fatalf("expected browsing after reload, got %s", m.Mode())
	}
	if len(m.manager.List(1)) != 2 {
		t.Fatalf("expected cancelled move to be undone, got %#v", m.manager.List(1))
	}
	if srv.Hits() != 2 {
		t.Fatalf("expected two requests, got %d", srv.Hits())
	}
}

func TestLoaderFailureThenRetry(t *testing.T) {
	quietLogs(t)
	srv := testutil.NewListServer(t, testutil.SampleRecords())
	srv.FailWith(http.StatusInternalServerError)
	m := NewModel(120, 24, false, false, startLoader(t, srv))

	deliverNext(t, m)
	if m.Mode() != partition.ModeFailed {
		t.Fatalf("expected failed, got %s", m.Mode())
	}
	if got := failureCode(m.manager.LoadErr()); got != "status" {
		t.Fatalf("expected status code, got %q", got)
	}

	srv.FailWith(0)
	sendKeys(m, tea.KeyCtrlR)
	if m.Mode() != partition.ModeLoading {
		t.Fatalf("expected loading after retry, got %s", m.Mode())
	}
	deliverNext(t, m)
	if m.Mode() != partition.ModeBrowsing {
		t.Fatalf("expected browsing after retry, got %s", m.Mode())
	}
}

func TestLoaderClosedStopsWaiting(t *testing.T) {
	quietLogs(t)
	srv := testutil.NewListServer(t, testutil.SampleRecords())
	loader := backend.NewLoader(source.NewHTTP(srv.URL, time.Second), 0)
	m := NewModel(120, 24, false, false, loader)
	loader.Stop()
	loader.Wait()
	msg := waitForBackendEvent(loader)()
	if _, ok := msg.(backendDoneMsg); !ok {
		t.Fatalf("expected done message, got %#v", msg)
	}
	m.Update(msg)
	if m.loader != nil {
		t.Fatalf("expected model to drop the closed loader")
	}
}
