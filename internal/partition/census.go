package partition

import (
	"fmt"
	"sort"
	"strings"
)

// Snapshot is a detached copy of the manager state.
type Snapshot struct {
	Mode       Mode
	Grouping   Grouping
	Selection  []int
	Draft      []Item
	Validation string
}

// Snapshot copies the current state so callers can inspect or render it
// without holding on to manager internals.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Mode:       m.mode,
		Grouping:   m.grouping.Clone(),
		Selection:  m.Selection(),
		Draft:      m.Draft(),
		Validation: m.validation,
	}
}

// Census counts every identity across the grouping and the draft.
func (m *Manager) Census() map[ItemID]int {
	counts := make(map[ItemID]int, m.Total())
	for _, items := range m.grouping {
		for _, it := range items {
			counts[it.ID]++
		}
	}
	for _, it := range m.draft {
		counts[it.ID]++
	}
	return counts
}

// Audit compares the current census against the identities present right
// after the last load.
func (m *Manager) Audit(baseline []ItemID) error {
	want := make(map[ItemID]int, len(baseline))
	for _, id := range baseline {
		want[id]++
	}
	got := m.Census()
	var problems []string
	for id, n := range want {
		if got[id] != n {
			problems = append(problems, fmt.Sprintf("%s: want %d, have %d", id, n, got[id]))
		}
	}
	for id, n := range got {
		if _, ok := want[id]; !ok {
			problems = append(problems, fmt.Sprintf("%s: want 0, have %d", id, n))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("%w: %s", ErrConservation, strings.Join(problems, "; "))
}
