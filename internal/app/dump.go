package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/list-creation/internal/data/dispatcher"
	"github.com/atomicstack/list-creation/internal/format/table"
	"github.com/atomicstack/list-creation/internal/partition"
	"github.com/atomicstack/list-creation/internal/source"
	"gopkg.in/yaml.v3"
)

// ErrFormat is returned for an unsupported dump format.
var ErrFormat = errors.New("unknown format")

// Formats accepted by Dump.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

type dumpList struct {
	ListNumber int             `json:"list_number" yaml:"list_number"`
	Items      []source.Record `json:"items" yaml:"items"`
}

type dumpDoc struct {
	Lists []dumpList `json:"lists" yaml:"lists"`
}

// Dump fetches the lists once and writes the grouping to w.
func Dump(ctx context.Context, cfg Config, format string, w io.Writer) error {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w %q (want table, json or yaml)", ErrFormat, format)
	}
	fetcher, err := source.New(cfg.Source, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("resolve source: %w", err)
	}
	records, err := fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("load lists (%s): %w", source.Classify(err), err)
	}
	manager := partition.New()
	if err := manager.Loaded(dispatcher.Items(records)); err != nil {
		return fmt.Errorf("load lists: %w", err)
	}
	doc := buildDump(manager.Grouping())
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeTable(w, doc)
	}
}

func buildDump(g partition.Grouping) dumpDoc {
	numbers := g.ListNumbersSorted()
	doc := dumpDoc{Lists: make([]dumpList, 0, len(numbers))}
	for _, n := range numbers {
		items := g[n]
		list := dumpList{ListNumber: n, Items: make([]source.Record, len(items))}
		for i, it := range items {
			list.Items[i] = source.Record{
				ID:             source.ID(it.ID),
				Name:           it.Name,
				ScientificName: it.ScientificName,
				ListNumber:     it.ListNumber,
			}
		}
		doc.Lists = append(doc.Lists, list)
	}
	return doc
}

func writeTable(w io.Writer, doc dumpDoc) error {
	var b strings.Builder
	for i, list := range doc.Lists {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "List %d (%d)\n", list.ListNumber, len(list.Items))
		rows := make([][]string, len(list.Items))
		for j, r := range list.Items {
			rows[j] = []string{string(r.ID), r.Name, r.ScientificName}
		}
		for _, line := range table.Format(rows, []table.Alignment{table.AlignRight}) {
			b.WriteString("  " + line + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
