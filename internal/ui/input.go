package ui

import (
	"unicode"

	"github.com/atomicstack/list-creation/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const filterPlaceholder = "(type to search)"

// filterOp is one edit of the focused pane's filter. edit reports whether
// anything changed; text is false for caret-only moves.
type filterOp struct {
	edit  func(*pane) bool
	text  bool
	trace func(*pane)
}

func traceCaret(p *pane)     { events.Filter.Cursor(p.ID, p.FilterCursor) }
func traceCaretWord(p *pane) { events.Filter.CursorWord(p.ID, p.FilterCursor) }
func traceBackspace(p *pane) { events.Filter.Backspace(p.ID, p.Filter) }

var filterKeys = map[string]filterOp{
	"ctrl+u": {
		edit: func(p *pane) bool {
			if p.Filter == "" {
				return false
			}
			p.SetFilter("", 0)
			return true
		},
		text:  true,
		trace: func(p *pane) { events.Filter.Cleared(p.ID) },
	},
	"ctrl+w": {
		edit:  (*pane).DeleteFilterWordBackward,
		text:  true,
		trace: func(p *pane) { events.Filter.WordBackspace(p.ID, p.Filter) },
	},
	"backspace": {edit: (*pane).DeleteFilterRuneBackward, text: true, trace: traceBackspace},
	"ctrl+h":    {edit: (*pane).DeleteFilterRuneBackward, text: true, trace: traceBackspace},
	"ctrl+a":    {edit: (*pane).MoveFilterCursorStart, trace: traceCaret},
	"ctrl+e":    {edit: (*pane).MoveFilterCursorEnd, trace: traceCaret},
	"left":      {edit: (*pane).MoveFilterCursorRuneBackward, trace: traceCaret},
	"right":     {edit: (*pane).MoveFilterCursorRuneForward, trace: traceCaret},
	"alt+b":     {edit: (*pane).MoveFilterCursorWordBackward, trace: traceCaretWord},
	"alt+f":     {edit: (*pane).MoveFilterCursorWordForward, trace: traceCaretWord},
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// handleTextInput edits the filter of the focused pane. It reports whether
// the key was consumed; keys that cannot change the filter fall through to
// navigation, so left/right only switch columns once the caret is at an end.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	current := m.currentPane()
	if current == nil {
		return false
	}
	if op, ok := filterKeys[msg.String()]; ok {
		return m.applyFilterOp(current, op)
	}
	text, ok := insertableText(msg)
	if !ok {
		return false
	}
	return m.applyFilterOp(current, filterOp{
		edit:  func(p *pane) bool { return p.InsertFilterText(text) },
		text:  true,
		trace: func(p *pane) { events.Filter.Append(p.ID, p.Filter) },
	})
}

func (m *Model) applyFilterOp(p *pane, op filterOp) bool {
	before := p.FilterCursorPos()
	if !op.edit(p) {
		return false
	}
	if before != p.FilterCursorPos() {
		m.filterCursorDirty = true
	}
	if op.text {
		m.forceClearInfo()
		m.syncViewport(p)
	}
	op.trace(p)
	return true
}

// insertableText returns what a key press adds to the filter. Tab and enter
// never do; they drive selection and moves.
func insertableText(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeySpace:
		return " ", true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return "", false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) || unicode.IsSpace(r) {
				return "", false
			}
		}
		return string(msg.Runes), true
	}
	return "", false
}

func renderWith(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

// filterPrompt renders the filter line of the focused pane with the caret
// drawn over the rune at the cursor position.
func (m *Model) filterPrompt() string {
	current := m.currentPane()
	if current == nil {
		return ">"
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	m.filterCursor.TextStyle = lipgloss.Style{}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	}
	prompt := renderWith(styles.FilterPrompt, "» ")

	if current.Filter == "" {
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		runes := []rune(filterPlaceholder)
		return prompt + m.renderFilterCursor(string(runes[0])) + renderWith(styles.FilterPlaceholder, string(runes[1:]))
	}

	runes := []rune(current.Filter)
	pos := current.FilterCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	caret, after := " ", ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return prompt +
		renderWith(styles.Filter, string(runes[:pos])) +
		m.renderFilterCursor(caret) +
		renderWith(styles.Filter, after)
}

// renderFilterCursor draws char as the caret. While the blink is in its off
// phase the character is drawn plainly.
func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	switch {
	case m.filterCursor.Blink:
		return base.Render(char)
	case styles.Cursor != nil:
		return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	default:
		return base.Reverse(true).Render(char)
	}
}
