package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/atomicstack/list-creation/internal/source"
)

// SampleRecords returns a small catalog spread over three lists. List 1 has
// two items, lists 2 and 3 one each.
func SampleRecords() []source.Record {
	return []source.Record{
		{ID: "1", Name: "Lion", ScientificName: "Panthera leo", ListNumber: 1},
		{ID: "2", Name: "Tiger", ScientificName: "Panthera tigris", ListNumber: 1},
		{ID: "3", Name: "Wolf", ScientificName: "Canis lupus", ListNumber: 2},
		{ID: "4", Name: "Bear", ScientificName: "Ursus arctos", ListNumber: 3},
	}
}

// ListServer serves a lists payload over HTTP and counts requests. It can be
// switched to fail with a status code.
type ListServer struct {
	*httptest.Server

	mu      sync.Mutex
	records []source.Record
	status  int
	hits    int
}

// NewListServer starts a server for records and closes it when t finishes.
func NewListServer(t *testing.T, records []source.Record) *ListServer {
	t.Helper()
	s := &ListServer{records: source.CloneRecords(records)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *ListServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits++
	status := s.status
	payload := source.Payload{Lists: source.CloneRecords(s.records)}
	s.mu.Unlock()
	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// FailWith makes subsequent requests answer with status. Zero restores the
// normal payload.
func (s *ListServer) FailWith(status int) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// SetRecords replaces the served payload.
func (s *ListServer) SetRecords(records []source.Record) {
	s.mu.Lock()
	s.records = source.CloneRecords(records)
	s.mu.Unlock()
}

// Hits returns the number of requests served so far.
func (s *ListServer) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}
