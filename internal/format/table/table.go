package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Options tune Format. MaxWidths caps individual columns (0 means no cap);
// Gap is the separator between columns and defaults to two spaces.
type Options struct {
	Alignments []Alignment
	MaxWidths  []int
	Gap        string
}

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	return FormatWith(rows, Options{Alignments: alignments})
}

// FormatWith pads rows like Format and truncates cells wider than the column
// cap with an ellipsis. Widths are measured in terminal cells.
func FormatWith(rows [][]string, opts Options) []string {
	if len(rows) == 0 {
		return nil
	}
	gap := opts.Gap
	if gap == "" {
		gap = "  "
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	cells := make([][]string, len(rows))
	widths := make([]int, colCount)
	for i, row := range rows {
		cells[i] = make([]string, colCount)
		for c := 0; c < colCount; c++ {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if c < len(opts.MaxWidths) && opts.MaxWidths[c] > 0 && lipgloss.Width(cell) > opts.MaxWidths[c] {
				cell = truncate.StringWithTail(cell, uint(opts.MaxWidths[c]), "…")
			}
			cells[i][c] = cell
			if w := lipgloss.Width(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range cells {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(gap)
			}
			pad := widths[c] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			if c < len(opts.Alignments) && opts.Alignments[c] == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if c < colCount-1 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
		}
		out[i] = b.String()
	}
	return out
}
