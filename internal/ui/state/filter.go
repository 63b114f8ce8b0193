package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the filter query and cursor position.
func (p *Pane) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(p.Filter)
	restore := -1
	p.Filter = query
	runes := []rune(p.Filter)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	p.FilterCursor = cursor
	if trimmed != "" {
		if prevTrimmed == "" {
			p.LastCursor = p.Cursor
		}
		p.Cursor = 0
	} else if prevTrimmed != "" {
		restore = p.LastCursor
	}
	p.applyFilter()
	if trimmed != "" && len(p.Rows) > 0 {
		if idx := BestMatchIndex(p.Rows, trimmed); idx >= 0 {
			p.Cursor = idx
		}
	}
	if trimmed == "" && prevTrimmed != "" {
		if restore >= 0 && restore < len(p.Rows) {
			p.Cursor = restore
		} else if len(p.Rows) > 0 {
			p.Cursor = len(p.Rows) - 1
		}
		p.LastCursor = -1
	}
}

func (p *Pane) applyFilter() {
	p.Rows = FilterRows(p.Full, p.Filter)
	if len(p.Rows) == 0 {
		p.Cursor = 0
		p.ViewportOffset = 0
		return
	}
	if p.Cursor < 0 {
		p.Cursor = len(p.Rows) - 1
		return
	}
	if p.Cursor >= len(p.Rows) {
		p.Cursor = len(p.Rows) - 1
	}
	if p.ViewportOffset > len(p.Rows)-1 {
		p.ViewportOffset = 0
	}
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (p *Pane) FilterCursorPos() int {
	runes := []rune(p.Filter)
	if p.FilterCursor < 0 {
		return 0
	}
	if p.FilterCursor > len(runes) {
		return len(runes)
	}
	return p.FilterCursor
}

// InsertFilterText inserts text into the filter at the cursor position.
func (p *Pane) InsertFilterText(text string) bool {
	if text == "" {
		return false
	}
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	p.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes a rune before the filter cursor.
func (p *Pane) DeleteFilterRuneBackward() bool {
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	p.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the cursor.
func (p *Pane) DeleteFilterWordBackward() bool {
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	p.SetFilter(string(updated), i)
	return true
}

// MoveFilterCursorStart moves the filter cursor to the start.
func (p *Pane) MoveFilterCursorStart() bool {
	if p.FilterCursorPos() == 0 {
		return false
	}
	p.FilterCursor = 0
	return true
}

// MoveFilterCursorEnd moves the filter cursor to the end.
func (p *Pane) MoveFilterCursorEnd() bool {
	end := len([]rune(p.Filter))
	if p.FilterCursorPos() == end {
		return false
	}
	p.FilterCursor = end
	return true
}

// MoveFilterCursorWordBackward moves the filter cursor one word backward.
func (p *Pane) MoveFilterCursorWordBackward() bool {
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	if i == pos {
		return false
	}
	p.FilterCursor = i
	return true
}

// MoveFilterCursorWordForward moves the filter cursor one word forward.
func (p *Pane) MoveFilterCursorWordForward() bool {
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	if pos >= len(runes) {
		return false
	}
	i := wordEnd(runes, pos)
	if i == pos {
		return false
	}
	p.FilterCursor = i
	return true
}

// MoveFilterCursorRuneBackward moves the filter cursor one rune backward.
func (p *Pane) MoveFilterCursorRuneBackward() bool {
	if p.FilterCursorPos() == 0 {
		return false
	}
	p.FilterCursor = p.FilterCursorPos() - 1
	return true
}

// MoveFilterCursorRuneForward moves the filter cursor one rune forward.
func (p *Pane) MoveFilterCursorRuneForward() bool {
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	if pos >= len(runes) {
		return false
	}
	p.FilterCursor = pos + 1
	return true
}

// wordStart returns the start of the word before pos, skipping trailing
// spaces first.
func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

func wordEnd(runes []rune, pos int) int {
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}

// FilterRows returns rows whose label or detail matches the query. Fuzzy
// matches win; a plain substring search over label and id is the fallback.
func FilterRows(rows []Row, query string) []Row {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneRows(rows)
	}
	texts := make([]string, len(rows))
	for i, row := range rows {
		texts[i] = row.text()
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, texts)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Row, 0, len(matches))
		for idx, row := range rows {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, row)
			}
		}
		if len(filtered) > 0 {
			return filtered
		}
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Row, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Label), lower) || strings.Contains(strings.ToLower(row.ID), lower) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// BestMatchIndex returns the best index for the query among rows: exact
// label or id, then label prefix, id prefix, id substring, label substring,
// and finally the closest fuzzy match. It returns 0 when nothing matches and
// -1 for no rows.
func BestMatchIndex(rows []Row, query string) int {
	if len(rows) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	tiers := []func(Row) bool{
		func(r Row) bool { return strings.EqualFold(r.Label, trimmed) || strings.EqualFold(r.ID, trimmed) },
		func(r Row) bool { return strings.HasPrefix(strings.ToLower(r.Label), lower) },
		func(r Row) bool { return strings.HasPrefix(strings.ToLower(r.ID), lower) },
		func(r Row) bool { return strings.Contains(strings.ToLower(r.ID), lower) },
		func(r Row) bool { return strings.Contains(strings.ToLower(r.Label), lower) },
	}
	for _, match := range tiers {
		for i, row := range rows {
			if match(row) {
				return i
			}
		}
	}
	texts := make([]string, len(rows))
	for i, row := range rows {
		texts[i] = row.text()
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, texts)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(rows) {
		return 0
	}
	return best.OriginalIndex
}
