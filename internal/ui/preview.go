package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/list-creation/internal/format/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	previewMaxDisplayLines = 8    // inline (vertical) preview only
	previewPanelMinWidth   = 36   // below this no split
	previewPanelFraction   = 0.55 // share of the width given to the panel
)

var (
	previewBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	previewScrollStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// hasSidePreview reports whether the browse view has room for the item panel
// to the right of the lists.
func (m *Model) hasSidePreview() bool {
	return m.previewPanelWidth() > 0 && m.height > bottomBarRows+2
}

// previewPanelWidth returns the width in columns for the right-hand panel,
// or 0 when the terminal is too narrow to split.
func (m *Model) previewPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * previewPanelFraction)
	if w < previewPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) menuColumnWidth() int {
	return m.width - m.previewPanelWidth()
}

// previewList returns the list number under the browse cursor.
func (m *Model) previewList() (int, bool) {
	row, ok := m.lists.Current()
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(row.ID)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (m *Model) previewTitle() string {
	n, ok := m.previewList()
	if !ok {
		return "Items"
	}
	return fmt.Sprintf("%s · %s", listLabel(n), itemCount(len(m.manager.List(n))))
}

// previewLines renders the items of the highlighted list as a table.
func (m *Model) previewLines() []string {
	n, ok := m.previewList()
	if !ok {
		return nil
	}
	items := m.manager.List(n)
	if len(items) == 0 {
		return []string{"(empty list)"}
	}
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{it.Name, it.ScientificName}
	}
	return table.Format(rows, nil)
}

func limitPreview(lines []string) []string {
	if previewMaxDisplayLines > 0 && len(lines) > previewMaxDisplayLines {
		trimmed := append([]string(nil), lines[:previewMaxDisplayLines-1]...)
		return append(trimmed, fmt.Sprintf("… %d more", len(lines)-previewMaxDisplayLines+1))
	}
	return lines
}

// renderPreviewPanel builds the bordered item panel with exactly height rows
// and totalWidth columns.
func (m *Model) renderPreviewPanel(totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	content := m.previewLines()
	scrollInfo := ""
	if len(content) > innerH {
		scrollInfo = fmt.Sprintf(" %d/%d ", innerH, len(content))
		content = content[:innerH]
	}

	titleSeg := " " + m.previewTitle() + " "
	scrollSeg := scrollInfo
	dashes := totalWidth - 4 - lipgloss.Width(titleSeg) - lipgloss.Width(scrollSeg)
	if dashes < 0 {
		scrollSeg = ""
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := previewBorderStyle.Render(tlc+hz) +
		styles.PreviewTitle.Render(titleSeg) +
		previewBorderStyle.Render(strings.Repeat(hz, dashes)) +
		previewScrollStyle.Render(scrollSeg) +
		previewBorderStyle.Render(hz+trc)
	bottomLine := previewBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)

	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var line string
		if i < len(content) {
			line = content[i]
		}
		w := lipgloss.Width(line)
		if w > innerW {
			line = truncate.StringWithTail(line, uint(innerW), "…")
			w = lipgloss.Width(line)
		}
		if w < innerW {
			line += strings.Repeat(" ", innerW-w)
		}
		rows = append(rows, previewBorderStyle.Render(vt)+styles.PreviewBody.Render(line)+previewBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}
