package partition

import (
	"errors"
	"fmt"
	"sort"
)

// Mode governs which operations the manager accepts.
type Mode int

const (
	ModeLoading Mode = iota
	ModeFailed
	ModeBrowsing
	ModeMerging
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeFailed:
		return "failed"
	case ModeBrowsing:
		return "browsing"
	case ModeMerging:
		return "merging"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Manager owns the grouping, the selection and the draft, and enforces the
// transitions between loading, browsing and merging. It is not safe for
// concurrent use; callers drive it from a single event loop.
type Manager struct {
	mode       Mode
	grouping   Grouping
	selection  []int
	draft      []Item
	validation string
	loadErr    error
}

// New returns a manager waiting for its first load.
func New() *Manager {
	return &Manager{mode: ModeLoading, grouping: Grouping{}}
}

func (m *Manager) require(mode Mode, op string) error {
	if m.mode != mode {
		return preconditionf("%s requires %s mode (current %s)", op, mode, m.mode)
	}
	return nil
}

// Loaded installs freshly fetched items, replacing any previous grouping.
func (m *Manager) Loaded(items []Item) error {
	if err := m.require(ModeLoading, "load completion"); err != nil {
		return err
	}
	seen := make(map[ItemID]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateItem, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	m.grouping = Group(items)
	m.selection = nil
	m.draft = nil
	m.validation = ""
	m.loadErr = nil
	m.mode = ModeBrowsing
	return nil
}

// LoadFailed records a failed load.
func (m *Manager) LoadFailed(cause error) error {
	if err := m.require(ModeLoading, "load failure"); err != nil {
		return err
	}
	if cause == nil {
		cause = errors.New("load failed")
	}
	m.loadErr = cause
	m.mode = ModeFailed
	return nil
}

// Retry re-enters loading after a failure. The caller issues the request.
func (m *Manager) Retry() error {
	if err := m.require(ModeFailed, "retry"); err != nil {
		return err
	}
	m.loadErr = nil
	m.mode = ModeLoading
	return nil
}

// ToggleSelection adds or removes a list from the selection. Over-selection
// is only rejected when a merge is started.
func (m *Manager) ToggleSelection(n int) error {
	if err := m.require(ModeBrowsing, "toggle selection"); err != nil {
		return err
	}
	if !m.grouping.Has(n) {
		return preconditionf("list %d does not exist", n)
	}
	m.validation = ""
	for i, sel := range m.selection {
		if sel == n {
			m.selection = append(m.selection[:i:i], m.selection[i+1:]...)
			return nil
		}
	}
	m.selection = append(m.selection, n)
	return nil
}

// StartMerge enters merging with the two selected lists, lowest number on
// the left. With any other selection size the validation message is set and
// ErrInvalidSelection is returned.
func (m *Manager) StartMerge() error {
	if err := m.require(ModeBrowsing, "start merge"); err != nil {
		return err
	}
	if len(m.selection) != 2 {
		m.validation = SelectionMessage
		return fmt.Errorf("%w: %d lists selected", ErrInvalidSelection, len(m.selection))
	}
	sorted := append([]int(nil), m.selection...)
	sort.Ints(sorted)
	m.selection = sorted
	m.draft = []Item{}
	m.validation = ""
	m.mode = ModeMerging
	return nil
}

// MoveToDraft stages an item taken from the selected list in slot.
func (m *Manager) MoveToDraft(id ItemID, slot Slot) error {
	if err := m.require(ModeMerging, "move to draft"); err != nil {
		return err
	}
	if !slot.valid() {
		return preconditionf("invalid slot %d", int(slot))
	}
	listNumber := m.selection[slot]
	items := m.grouping[listNumber]
	idx := indexOf(items, id)
	if idx < 0 {
		return preconditionf("item %q is not in list %d", id, listNumber)
	}
	staged := items[idx].clone()
	staged.Origin = &Provenance{Slot: slot, ListNumber: listNumber}
	m.grouping[listNumber] = removeAt(items, idx)
	m.draft = append(m.draft, staged)
	return nil
}

// MoveFromDraft returns a staged item to the end of the list it came from.
func (m *Manager) MoveFromDraft(id ItemID) error {
	if err := m.require(ModeMerging, "move from draft"); err != nil {
		return err
	}
	idx := indexOf(m.draft, id)
	if idx < 0 {
		return preconditionf("item %q is not in the draft", id)
	}
	restored := m.draft[idx].clone()
	if restored.Origin == nil {
		return preconditionf("draft item %q has no provenance", id)
	}
	listNumber := restored.Origin.ListNumber
	restored.Origin = nil
	m.draft = removeAt(m.draft, idx)
	m.grouping.ensure(listNumber)
	m.grouping[listNumber] = append(m.grouping[listNumber], restored)
	return nil
}

// Commit promotes the draft to a new list numbered one past the highest
// existing list and returns to browsing. The source lists are kept.
func (m *Manager) Commit() (int, error) {
	if err := m.require(ModeMerging, "commit"); err != nil {
		return 0, err
	}
	next, ok := m.grouping.nextListNumber()
	if !ok {
		return 0, preconditionf("commit with an empty grouping")
	}
	merged := make([]Item, len(m.draft))
	for i, it := range m.draft {
		it = it.clone()
		it.ListNumber = next
		it.Origin = nil
		merged[i] = it
	}
	m.grouping[next] = merged
	m.selection = nil
	m.draft = nil
	m.mode = ModeBrowsing
	return next, nil
}

// Cancel abandons the merge. Staged items are not restored one by one: the
// manager returns to loading and the next Loaded call replaces everything.
func (m *Manager) Cancel() error {
	if err := m.require(ModeMerging, "cancel"); err != nil {
		return err
	}
	m.draft = nil
	m.selection = nil
	m.mode = ModeLoading
	return nil
}

func (m *Manager) Mode() Mode { return m.mode }

// Selection returns the selected list numbers in selection order (sorted
// while merging).
func (m *Manager) Selection() []int {
	if len(m.selection) == 0 {
		return nil
	}
	return append([]int(nil), m.selection...)
}

// IsSelected reports whether list n is selected.
func (m *Manager) IsSelected(n int) bool {
	for _, sel := range m.selection {
		if sel == n {
			return true
		}
	}
	return false
}

// SlotList returns the list number shown in slot while merging.
func (m *Manager) SlotList(slot Slot) (int, bool) {
	if m.mode != ModeMerging || !slot.valid() {
		return 0, false
	}
	return m.selection[slot], true
}

func (m *Manager) Grouping() Grouping { return m.grouping.Clone() }

// List returns a copy of list n.
func (m *Manager) List(n int) []Item { return cloneItems(m.grouping[n]) }

func (m *Manager) ListNumbersSorted() []int { return m.grouping.ListNumbersSorted() }

func (m *Manager) Draft() []Item { return cloneItems(m.draft) }

// Validation returns the pending user-facing validation message, if any.
func (m *Manager) Validation() string { return m.validation }

func (m *Manager) LoadErr() error { return m.loadErr }

// Total counts items across the grouping and the draft.
func (m *Manager) Total() int { return m.grouping.Total() + len(m.draft) }
