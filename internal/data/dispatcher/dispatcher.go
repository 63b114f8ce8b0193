package dispatcher

import (
	"time"

	"github.com/atomicstack/list-creation/internal/backend"
	"github.com/atomicstack/list-creation/internal/partition"
	"github.com/atomicstack/list-creation/internal/source"
	"github.com/atomicstack/list-creation/internal/state"
)

// Result reports what a backend event did to the manager.
type Result struct {
	Loaded bool
	Failed bool
	Stale  bool
	// Err is the load error, or the manager's refusal to accept the event.
	Err   error
	Lists int
	Items int
}

// Dispatcher applies backend events to the partition manager and the
// catalog store.
type Dispatcher struct {
	manager  *partition.Manager
	catalog  state.CatalogStore
	expected int
	now      func() time.Time
}

func New(m *partition.Manager, c state.CatalogStore) *Dispatcher {
	return &Dispatcher{manager: m, catalog: c, now: time.Now}
}

// Expect records the sequence number of the outstanding request. Events
// carrying any other number are stale.
func (d *Dispatcher) Expect(seq int) {
	d.expected = seq
}

func (d *Dispatcher) Expected() int {
	return d.expected
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Kind != backend.KindLists {
		return res
	}
	if evt.Seq != d.expected || d.manager.Mode() != partition.ModeLoading {
		res.Stale = true
		return res
	}
	if evt.Err != nil {
		res.Err = evt.Err
		res.Failed = d.fail(evt.Err)
		return res
	}
	items := Items(evt.Data)
	if err := d.manager.Loaded(items); err != nil {
		res.Err = err
		res.Failed = d.fail(err)
		return res
	}
	d.catalog.SetRecords(evt.Data)
	d.catalog.SetFetchedAt(d.now())
	res.Loaded = true
	res.Items = len(items)
	res.Lists = len(d.manager.ListNumbersSorted())
	return res
}

func (d *Dispatcher) fail(err error) bool {
	return d.manager.LoadFailed(err) == nil
}

// Baseline returns the identities present after the last successful load.
func (d *Dispatcher) Baseline() []partition.ItemID {
	records := d.catalog.Records()
	ids := make([]partition.ItemID, len(records))
	for i, r := range records {
		ids[i] = partition.ItemID(r.ID)
	}
	return ids
}

// Items converts source records into partition items, preserving order.
func Items(records []source.Record) []partition.Item {
	items := make([]partition.Item, len(records))
	for i, r := range records {
		items[i] = partition.Item{
			ID:             partition.ItemID(r.ID),
			Name:           r.Name,
			ScientificName: r.ScientificName,
			ListNumber:     r.ListNumber,
		}
	}
	return items
}
