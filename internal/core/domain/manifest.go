package domain

import (
	"fmt"
	"time"

	"go.trai.ch/zerr"
)

// ReservedTaskName cannot be used as a task name; it selects every task on the command line.
const ReservedTaskName = "all"

// TaskSpec declares one process task.
type TaskSpec struct {
	Name       string
	Executable string
	Args       string
}

// Manifest is a loaded set of task declarations plus host overrides.
type Manifest struct {
	TickInterval   time.Duration
	MaxCommandLine int
	Tasks          []TaskSpec
}

// Validate checks names and executables.
func (m *Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Tasks))
	for _, spec := range m.Tasks {
		switch {
		case spec.Name == "":
			return zerr.Wrap(ErrManifestInvalid, "task name is empty")
		case spec.Name == ReservedTaskName:
			return zerr.With(zerr.Wrap(ErrManifestInvalid, "task name is reserved"), "task_name", spec.Name)
		case spec.Executable == "":
			return zerr.With(zerr.Wrap(ErrManifestInvalid, "task has no executable"), "task_name", spec.Name)
		}
		if _, ok := seen[spec.Name]; ok {
			return zerr.With(zerr.Wrap(ErrManifestInvalid, "duplicate task name"), "task_name", spec.Name)
		}
		seen[spec.Name] = struct{}{}
	}
	if m.TickInterval < 0 {
		return zerr.With(zerr.Wrap(ErrManifestInvalid, "tick interval is negative"), "tick_interval", m.TickInterval)
	}
	return nil
}

// Select returns the specs named in names, in manifest order.
// An empty names list, or one containing ReservedTaskName, selects every task.
func (m *Manifest) Select(names []string) ([]TaskSpec, error) {
	if len(names) == 0 {
		return m.Tasks, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if n == ReservedTaskName {
			return m.Tasks, nil
		}
		want[n] = true
	}

	selected := make([]TaskSpec, 0, len(names))
	for _, spec := range m.Tasks {
		if want[spec.Name] {
			selected = append(selected, spec)
			delete(want, spec.Name)
		}
	}
	for _, n := range names {
		if want[n] {
			return nil, zerr.With(zerr.Wrap(ErrTaskNotFound, fmt.Sprintf("unknown task %q in selection", n)), "task_name", n)
		}
	}
	return selected, nil
}
