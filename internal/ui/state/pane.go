package state

// Row is a single line of a pane. ID is the partition identity (an item id
// or a list number rendered as text); Detail is secondary text that takes
// part in filtering.
type Row struct {
	ID     string
	Label  string
	Detail string
}

func (r Row) text() string {
	if r.Detail == "" {
		return r.Label
	}
	return r.Label + " " + r.Detail
}

// Pane encapsulates one scrollable, filterable column of rows.
type Pane struct {
	ID             string
	Title          string
	Rows           []Row
	Full           []Row
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewPane constructs a Pane holding rows.
func NewPane(id, title string, rows []Row) *Pane {
	p := &Pane{
		ID:         id,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
	}
	p.UpdateRows(rows)
	p.Cursor = 0
	return p
}

// IndexOf returns the visible index for a row identifier.
func (p *Pane) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, row := range p.Rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the row under the cursor.
func (p *Pane) Current() (Row, bool) {
	if len(p.Rows) == 0 || p.Cursor < 0 || p.Cursor >= len(p.Rows) {
		return Row{}, false
	}
	return p.Rows[p.Cursor], true
}

// UpdateRows replaces the pane contents. The cursor follows the row it was on
// when that row is still visible, otherwise it stays at the same index.
func (p *Pane) UpdateRows(rows []Row) {
	prevOffset := p.ViewportOffset
	prevID := ""
	if row, ok := p.Current(); ok {
		prevID = row.ID
	}
	p.Full = CloneRows(rows)
	p.applyFilter()
	if idx := p.IndexOf(prevID); idx >= 0 {
		p.Cursor = idx
	}
	if len(p.Rows) == 0 {
		p.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(p.Rows)-1 {
		p.ViewportOffset = 0
		return
	}
	p.ViewportOffset = prevOffset
}

// CloneRows produces a copy of the provided rows.
func CloneRows(rows []Row) []Row {
	dup := make([]Row, len(rows))
	copy(dup, rows)
	return dup
}
