package ui

import (
	"errors"
	"fmt"

	"github.com/atomicstack/list-creation/internal/backend"
	"github.com/atomicstack/list-creation/internal/logging"
	"github.com/atomicstack/list-creation/internal/logging/events"
	"github.com/atomicstack/list-creation/internal/partition"
	"github.com/atomicstack/list-creation/internal/source"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(l *backend.Loader) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-l.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

// issueLoad returns a command asking the loader for a fetch tagged seq.
func (m *Model) issueLoad(seq int, reason string) tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		events.Load.Request(seq, reason)
		if loader != nil {
			loader.Request(seq)
		}
		return nil
	}
}

// reload starts a new load generation after the manager re-entered loading.
// Results from older generations are ignored by the dispatcher.
func (m *Model) reload(reason string) tea.Cmd {
	m.loadSeq++
	m.dispatcher.Expect(m.loadSeq)
	return tea.Batch(m.spinner.Tick, m.issueLoad(m.loadSeq, reason))
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.loader != nil {
		return waitForBackendEvent(m.loader)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.loader = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	switch {
	case res.Stale:
		events.Load.Stale(evt.Seq, m.dispatcher.Expected())
	case res.Failed:
		code := failureCode(res.Err)
		events.Load.Failure(evt.Seq, code, res.Err)
		logging.Error(fmt.Errorf("load lists (%s): %w", code, res.Err))
		m.errMsg = ""
	case res.Loaded:
		events.Load.Success(evt.Seq, res.Items, res.Lists)
		m.errMsg = ""
		m.refreshLists()
		m.audit("load")
	}
}

// failureCode extends source.Classify with data problems detected after
// decoding.
func failureCode(err error) string {
	if errors.Is(err, partition.ErrDuplicateItem) {
		return "data"
	}
	return string(source.Classify(err))
}
