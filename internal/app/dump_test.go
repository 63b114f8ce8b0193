package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/list-creation/internal/partition"
	"github.com/atomicstack/list-creation/internal/source"
	"github.com/atomicstack/list-creation/internal/testutil"
	"gopkg.in/yaml.v3"
)

func TestDumpTable(t *testing.T) {
	srv := testutil.NewListServer(t, testutil.SampleRecords())
	var out bytes.Buffer
	cfg := Config{Source: srv.URL, Timeout: time.Second}
	if err := Dump(context.Background(), cfg, "table", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	for _, want := range []string{"List 1 (2)", "List 2 (1)", "List 3 (1)", "Lion", "Canis lupus"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, got)
		}
	}
	if strings.Index(got, "Lion") > strings.Index(got, "Tiger") {
		t.Fatalf("expected source order within a list, got:\n%s", got)
	}
}

func TestDumpJSON(t *testing.T) {
	srv := testutil.NewListServer(t, testutil.SampleRecords())
	var out bytes.Buffer
	if err := Dump(context.Background(), Config{Source: srv.URL}, "JSON", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc dumpDoc
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("expected valid json, got %v", err)
	}
	if len(doc.Lists) != 3 || doc.Lists[0].ListNumber != 1 || len(doc.Lists[0].Items) != 2 {
		t.Fatalf("unexpected document: %#v", doc)
	}
}

func TestDumpYAMLFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.yaml")
	fixture := "lists:\n" +
		"  - {id: 7, name: Owl, scientific_name: Strix aluco, list_number: 2}\n" +
		"  - {id: 8, name: Fox, scientific_name: Vulpes vulpes, list_number: 1}\n"
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	var out bytes.Buffer
	if err := Dump(context.Background(), Config{Source: path}, "yaml", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc dumpDoc
	if err := yaml.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("expected valid yaml, got %v", err)
	}
	if len(doc.Lists) != 2 || doc.Lists[0].ListNumber != 1 || doc.Lists[0].Items[0].ID != "8" {
		t.Fatalf("expected lists sorted by number, got %#v", doc)
	}
}

func TestDumpRejectsUnknownFormat(t *testing.T) {
	err := Dump(context.Background(), Config{Source: "unused.json"}, "xml", &bytes.Buffer{})
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestDumpReportsStatusAndDuplicates(t *testing.T) {
	srv := testutil.NewListServer(t, testutil.SampleRecords())
	srv.FailWith(http.StatusBadGateway)
	err := Dump(context.Background(), Config{Source: srv.URL}, "table", &bytes.Buffer{})
	if !errors.Is(err, source.ErrStatus) {
		t.Fatalf("expected status error, got %v", err)
	}

	srv.FailWith(0)
	srv.SetRecords(append(testutil.SampleRecords(), source.Record{ID: "1", Name: "Again", ListNumber: 2}))
	err = Dump(context.Background(), Config{Source: srv.URL}, "table", &bytes.Buffer{})
	if !errors.Is(err, partition.ErrDuplicateItem) {
		t.Fatalf("expected duplicate item error, got %v", err)
	}
}

func TestRunRejectsBadSource(t *testing.T) {
	err := Run(Config{Source: "ftp://example.com/lists"})
	if !errors.Is(err, source.ErrLocation) {
		t.Fatalf("expected location error, got %v", err)
	}
}
