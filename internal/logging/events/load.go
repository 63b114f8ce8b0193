package events

import "github.com/atomicstack/list-creation/internal/logging"

type LoadTracer struct{}

var Load = LoadTracer{}

func (LoadTracer) Request(seq int, reason string) {
	logging.Trace("load.request", map[string]interface{}{"seq": seq, "reason": reason})
}

func (LoadTracer) Success(seq, records, lists int) {
	logging.Trace("load.success", map[string]interface{}{"seq": seq, "records": records, "lists": lists})
}

func (LoadTracer) Failure(seq int, code string, err error) {
	payload := map[string]interface{}{"seq": seq, "code": code}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("load.failure", payload)
}

func (LoadTracer) Stale(seq, expected int) {
	logging.Trace("load.stale", map[string]interface{}{"seq": seq, "expected": expected})
}
