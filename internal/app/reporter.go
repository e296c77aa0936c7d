package app

import "time"

// reporter is a tick target that forwards each task once, on the tick it completes.
type reporter struct {
	tasks []tracked
	sent  []bool
	out   chan<- completion
}

func newReporter(tasks []tracked, out chan<- completion) *reporter {
	return &reporter{
		tasks: tasks,
		sent:  make([]bool, len(tasks)),
		out:   out,
	}
}

// Update sends a snapshot of every newly completed task. The channel holds one slot per task.
func (r *reporter) Update(_ time.Duration) {
	for i, tr := range r.tasks {
		if r.sent[i] || !tr.task.IsCompleted() {
			continue
		}
		r.sent[i] = true
		r.out <- completion{
			info:   tr.task.Info(),
			output: tr.task.Output(),
			vertex: tr.vertex,
		}
	}
}
