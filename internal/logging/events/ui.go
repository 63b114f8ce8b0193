package events

import "github.com/atomicstack/list-creation/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
)

func (UITracer) Cursor(pane string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"pane": pane, "cursor": cursor})
}

func (UITracer) Focus(pane string) {
	logging.Trace("ui.focus", map[string]interface{}{"pane": pane})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (FilterTracer) Cleared(pane string) {
	logging.Trace("filter.clear", map[string]interface{}{"pane": pane})
}

func (FilterTracer) WordBackspace(pane, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"pane": pane, "filter": filter})
}

func (FilterTracer) Cursor(pane string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"pane": pane, "cursor": pos})
}

func (FilterTracer) CursorWord(pane string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"pane": pane, "cursor": pos})
}

func (FilterTracer) Append(pane, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"pane": pane, "filter": filter})
}

func (FilterTracer) Backspace(pane, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"pane": pane, "filter": filter})
}
