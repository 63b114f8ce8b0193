package events

import "github.com/atomicstack/list-creation/internal/logging"

type PartitionTracer struct{}

var Partition = PartitionTracer{}

func (PartitionTracer) Toggle(list int, selected bool, selection []int) {
	logging.Trace("partition.toggle", map[string]interface{}{"list": list, "selected": selected, "selection": selection})
}

func (PartitionTracer) MergeStart(selection []int) {
	logging.Trace("partition.merge-start", map[string]interface{}{"selection": selection})
}

func (PartitionTracer) MergeRefused(selected int) {
	logging.Trace("partition.merge-refused", map[string]interface{}{"selected": selected})
}

func (PartitionTracer) MoveToDraft(id string, list int) {
	logging.Trace("partition.move-to-draft", map[string]interface{}{"item": id, "from": list})
}

func (PartitionTracer) MoveFromDraft(id string, list int) {
	logging.Trace("partition.move-from-draft", map[string]interface{}{"item": id, "to": list})
}

func (PartitionTracer) Commit(list, items int) {
	logging.Trace("partition.commit", map[string]interface{}{"list": list, "items": items})
}

func (PartitionTracer) Cancel(discarded int) {
	logging.Trace("partition.cancel", map[string]interface{}{"discarded": discarded})
}

func (PartitionTracer) Fault(op string, err error) {
	if err == nil {
		return
	}
	logging.Trace("partition.fault", map[string]interface{}{"op": op, "error": err.Error()})
}

func (PartitionTracer) Audit(total int, err error) {
	payload := map[string]interface{}{"total": total, "ok": err == nil}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("partition.audit", payload)
}
