package state

import (
	"time"

	"github.com/atomicstack/list-creation/internal/source"
)

// CatalogStore keeps the result of the last successful fetch.
type CatalogStore interface {
	Records() []source.Record
	SetRecords([]source.Record)
	FetchedAt() time.Time
	SetFetchedAt(time.Time)
	Fetches() int
}

type catalogStore struct {
	records   []source.Record
	fetchedAt time.Time
	fetches   int
}

func NewCatalogStore() CatalogStore {
	return &catalogStore{}
}

func (s *catalogStore) Records() []source.Record {
	return source.CloneRecords(s.records)
}

// SetRecords replaces the catalog and counts the fetch.
func (s *catalogStore) SetRecords(records []source.Record) {
	s.records = source.CloneRecords(records)
	s.fetches++
}

func (s *catalogStore) FetchedAt() time.Time {
	return s.fetchedAt
}

func (s *catalogStore) SetFetchedAt(t time.Time) {
	s.fetchedAt = t
}

func (s *catalogStore) Fetches() int {
	return s.fetches
}
