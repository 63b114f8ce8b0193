package partition

import "fmt"

// ItemID is the stable identity of an item across every list and the draft.
type ItemID string

// Slot identifies one of the two selected lists while merging.
type Slot int

const (
	SlotLeft Slot = iota
	SlotRight
)

func (s Slot) String() string {
	switch s {
	case SlotLeft:
		return "left"
	case SlotRight:
		return "right"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

func (s Slot) valid() bool {
	return s == SlotLeft || s == SlotRight
}

// Provenance records where a staged item was taken from.
type Provenance struct {
	Slot       Slot
	ListNumber int
}

// Item is a single entry owned by exactly one list or by the draft.
type Item struct {
	ID             ItemID
	Name           string
	ScientificName string
	ListNumber     int
	Origin         *Provenance
}

func (it Item) clone() Item {
	if it.Origin != nil {
		origin := *it.Origin
		it.Origin = &origin
	}
	return it
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	dup := make([]Item, len(items))
	for i, it := range items {
		dup[i] = it.clone()
	}
	return dup
}

func indexOf(items []Item, id ItemID) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func removeAt(items []Item, idx int) []Item {
	out := make([]Item, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}
