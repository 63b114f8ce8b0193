package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/list-creation/internal/format/table"
	"github.com/atomicstack/list-creation/internal/partition"
	uistate "github.com/atomicstack/list-creation/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	bottomBarRows  = 2 // status line + filter prompt
	columnChrome   = 3 // top border, title, bottom border
	defaultWidth   = 90
	detailMaxWidth = 28
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.manager.Mode() {
	case partition.ModeLoading:
		return m.viewLoading()
	case partition.ModeFailed:
		return m.viewFailed()
	case partition.ModeMerging:
		return m.viewMerging()
	}
	if m.hasSidePreview() {
		return m.viewSideBySide()
	}
	return m.viewVertical()
}

func (m *Model) viewLoading() string {
	lines := []styledLine{
		{text: m.header(), style: styles.Header},
		{text: m.spinner.View() + " Loading lists…", style: styles.Loading},
	}
	return m.finishView(lines)
}

func (m *Model) viewFailed() string {
	err := m.manager.LoadErr()
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	lines := []styledLine{
		{text: m.header(), style: styles.Header},
		{text: "Failed to load lists", style: styles.Error},
		{text: "  " + msg, style: styles.Info},
		{text: "  code: " + failureCode(err), style: styles.Info},
		{},
		{text: "Press enter to retry.", style: styles.Info},
	}
	return m.finishView(lines)
}

// viewVertical renders the lists with the contents of the highlighted list
// inline below them (used when the terminal is too narrow for a side panel).
func (m *Model) viewVertical() string {
	lines := []styledLine{{text: m.header(), style: styles.Header}}
	lines = append(lines, m.listLines(m.width)...)
	if preview := m.previewLines(); len(preview) > 0 {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.previewTitle(), style: styles.PreviewTitle})
		for _, line := range limitPreview(preview) {
			lines = append(lines, styledLine{text: line, style: styles.PreviewBody})
		}
	}
	return m.finishView(lines)
}

// viewSideBySide renders the lists on the left and the highlighted list's
// items in a bordered panel on the right.
func (m *Model) viewSideBySide() string {
	menuW := m.menuColumnWidth()
	prevW := m.previewPanelWidth()

	contentLines := []styledLine{{text: m.header(), style: styles.Header}}
	contentLines = append(contentLines, m.listLines(menuW)...)
	contentLines = append(contentLines, m.infoAndFooter()...)

	panelH := m.height - bottomBarRows
	if panelH < 1 {
		panelH = len(contentLines)
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}
	contentLines = applyWidth(contentLines, menuW)
	leftRows := strings.Split(renderLines(contentLines), "\n")
	for i, row := range leftRows {
		leftRows[i] = fitWidth(row, menuW)
	}
	rightStr := m.renderPreviewPanel(prevW, panelH)
	top := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(leftRows, "\n"), rightStr)
	return top + "\n" + renderLines(applyWidth(m.bottomBar(), m.width))
}

// viewMerging renders the left list, the draft and the right list as three
// bordered columns.
func (m *Model) viewMerging() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	colW := width / int(columnCount)
	innerW := colW - 2
	if innerW < 4 {
		innerW = 4
	}
	capacity := m.paneCapacity()
	origins := m.draftOrigins()
	rendered := make([]string, 0, columnCount)
	for c := columnLeft; c < columnCount; c++ {
		p := m.columns[c]
		if p == nil {
			continue
		}
		var extra func(uistate.Row) string
		if c == columnDraft {
			extra = func(r uistate.Row) string {
				if n, ok := origins[r.ID]; ok {
					return "← " + listLabel(n)
				}
				return ""
			}
		}
		titleStyle, boxStyle := styles.PaneTitle, styles.Pane
		if c == m.focus {
			titleStyle, boxStyle = styles.FocusedPaneTitle, styles.FocusedPane
		}
		lines := []styledLine{{text: p.Title, style: titleStyle}}
		lines = append(lines, m.paneLines(p, innerW, capacity, nil, extra, c == m.focus)...)
		if capacity > 0 {
			for len(lines) < capacity+1 {
				lines = append(lines, styledLine{})
			}
		}
		rows := strings.Split(renderLines(applyWidth(lines, innerW)), "\n")
		for i, row := range rows {
			rows[i] = fitWidth(row, innerW)
		}
		rendered = append(rendered, boxStyle.Copy().Width(innerW).Render(strings.Join(rows, "\n")))
	}
	lines := []string{renderLines(applyWidth([]styledLine{{text: m.header(), style: styles.Header}}, width))}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	if extra := m.infoAndFooter(); len(extra) > 0 {
		lines = append(lines, renderLines(applyWidth(extra, width)))
	}
	lines = append(lines, renderLines(applyWidth(m.bottomBar(), width)))
	return strings.Join(lines, "\n")
}

func (m *Model) finishView(lines []styledLine) string {
	lines = append(lines, m.infoAndFooter()...)
	lines = limitHeight(lines, m.height-bottomBarRows, m.width)
	lines = applyWidth(lines, m.width)
	lines = append(lines, applyWidth(m.bottomBar(), m.width)...)
	return renderLines(lines)
}

func (m *Model) infoAndFooter() []styledLine {
	var lines []styledLine
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: m.keys.helpLine(m.manager.Mode()), style: styles.Footer})
	}
	return lines
}

// bottomBar returns the status line and the filter prompt. Faults take
// precedence over the selection validation message.
func (m *Model) bottomBar() []styledLine {
	var status styledLine
	switch {
	case m.errMsg != "":
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.manager.Validation() != "":
		status = styledLine{text: m.manager.Validation(), style: styles.Validation}
	}
	prompt := m.filterPrompt()
	return []styledLine{status, {text: prompt}}
}

func (m *Model) header() string {
	switch m.manager.Mode() {
	case partition.ModeBrowsing:
		g := m.manager.Grouping()
		return fmt.Sprintf("Lists · %d lists · %d items · %d selected%s",
			len(g), g.Total(), len(m.manager.Selection()), m.fetchedSuffix())
	case partition.ModeMerging:
		left, _ := m.manager.SlotList(partition.SlotLeft)
		right, _ := m.manager.SlotList(partition.SlotRight)
		return fmt.Sprintf("Create a new list from %s and %s", listLabel(left), listLabel(right))
	default:
		return "Lists"
	}
}

func (m *Model) fetchedSuffix() string {
	at := m.catalog.FetchedAt()
	if at.IsZero() || !m.verbose {
		return ""
	}
	return fmt.Sprintf(" · fetched %s (#%d)", at.Format(time.Kitchen), m.catalog.Fetches())
}

func (m *Model) listLines(width int) []styledLine {
	mark := func(r uistate.Row) string {
		if n, err := strconv.Atoi(r.ID); err == nil && m.manager.IsSelected(n) {
			return "[✓] "
		}
		return "[ ] "
	}
	return m.paneLines(m.lists, width, m.paneCapacity(), mark, nil, true)
}

// paneLines renders the visible window of p. mark prefixes each label;
// extra adds a trailing column.
func (m *Model) paneLines(p *pane, width, capacity int, mark, extra func(uistate.Row) string, focused bool) []styledLine {
	if len(p.Rows) == 0 {
		msg := "(empty)"
		if p.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", p.Filter)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	p.EnsureCursorVisible(capacity)
	start, end := 0, len(p.Rows)
	if capacity > 0 && end-start > capacity {
		start = p.ViewportOffset
		if start+capacity > len(p.Rows) {
			start = len(p.Rows) - capacity
		}
		end = start + capacity
	}
	cells := make([][]string, 0, end-start)
	for _, row := range p.Rows[start:end] {
		label := row.Label
		if mark != nil {
			label = mark(row) + label
		}
		cols := []string{label, row.Detail}
		if extra != nil {
			cols = append(cols, extra(row))
		}
		cells = append(cells, cols)
	}
	texts := table.FormatWith(cells, table.Options{MaxWidths: []int{0, detailMaxWidth, 0}})
	lines := make([]styledLine, len(texts))
	for i, text := range texts {
		lines[i] = buildRowLine(text, start+i == p.Cursor && focused, width)
	}
	return lines
}

// buildRowLine constructs a single styledLine for a pane row. When width > 0
// the text is padded so the highlighted row's background spans the column.
func buildRowLine(text string, highlighted bool, width int) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if highlighted {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := "▌ " + text
	if width > 0 {
		if pad := width - lipgloss.Width(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

// paneCapacity returns how many rows of the active pane fit on screen, or -1
// when the height is unconstrained.
func (m *Model) paneCapacity() int {
	if m.height <= 0 {
		return -1
	}
	used := bottomBarRows + 1 // header
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	switch m.manager.Mode() {
	case partition.ModeMerging:
		used += columnChrome
	case partition.ModeBrowsing:
		if !m.hasSidePreview() {
			if preview := m.previewLines(); len(preview) > 0 {
				used += 2 + len(limitPreview(preview))
			}
		}
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText shortens plain text to width cells, ending with an ellipsis.
func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return ansi.Truncate(text, 1, "")
	}
	return ansi.Truncate(text, width, "…")
}

// fitWidth pads or truncates a rendered (possibly styled) row to exactly
// width visible columns so joined columns stay aligned.
func fitWidth(row string, width int) string {
	w := lipgloss.Width(row)
	if w > width {
		return truncate.StringWithTail(row, uint(width), "…")
	}
	if w < width {
		return row + strings.Repeat(" ", width-w)
	}
	return row
}
