// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package wfsim

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// WorkflowSpec is an immutable description of a workflow: a directed acyclic
// graph of [TaskSpec] entries sharing one arrival event. Edges are implied by
// each task's Predecessors list.
//
// Use [NewWorkflowSpec] to construct a validated spec. A spec built by hand
// is validated again at admission, so a malformed one cannot corrupt a run,
// but early validation gives better errors.
type WorkflowSpec struct {
	ID    uuid.UUID
	Name  string
	Tasks []TaskSpec
}

// NewWorkflowSpec validates the task set and returns it as a spec. It fails
// with an error wrapping [ErrGraph] if a task ID repeats, an edge references
// an unknown task, or the graph contains a cycle.
func NewWorkflowSpec(id uuid.UUID, name string, tasks []TaskSpec) (*WorkflowSpec, error) {
	wf := &WorkflowSpec{ID: id, Name: name, Tasks: slices.Clone(tasks)}
	if err := wf.validate(); err != nil {
		return nil, err
	}
	return wf, nil
}

// validate checks edge integrity and acyclicity. Cycle detection is a Kahn
// topological sort: if the sort cannot consume every task, the remainder
// forms at least one cycle.
func (wf *WorkflowSpec) validate() error {
	byID := make(map[TaskID]int, len(wf.Tasks))
	for i, t := range wf.Tasks {
		if _, dup := byID[t.ID]; dup {
			return fmt.Errorf("%w: workflow %s: duplicate task id %d", ErrGraph, wf.ID, t.ID)
		}
		byID[t.ID] = i
	}

	indegree := make([]int, len(wf.Tasks))
	succ := make([][]int, len(wf.Tasks))
	for i, t := range wf.Tasks {
		for _, p := range t.Predecessors {
			pi, ok := byID[p]
			if !ok {
				return fmt.Errorf("%w: workflow %s: task %d references unknown predecessor %d",
					ErrGraph, wf.ID, t.ID, p)
			}
			indegree[i]++
			succ[pi] = append(succ[pi], i)
		}
	}

	frontier := make([]int, 0, len(wf.Tasks))
	for i, deg := range indegree {
		if deg == 0 {
			frontier = append(frontier, i)
		}
	}
	sorted := 0
	for len(frontier) > 0 {
		i := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		sorted++
		for _, si := range succ[i] {
			indegree[si]--
			if indegree[si] == 0 {
				frontier = append(frontier, si)
			}
		}
	}
	if sorted != len(wf.Tasks) {
		return fmt.Errorf("%w: workflow %s: dependency cycle among %d task(s)",
			ErrGraph, wf.ID, len(wf.Tasks)-sorted)
	}
	return nil
}

// workflowRun is the engine's mutable instance of one admitted workflow.
type workflowRun struct {
	spec *WorkflowSpec

	// admission is the order in which the driver admitted this workflow, used
	// as the primary key of the deterministic ready-set ordering.
	admission int

	arrival Time

	tasks      map[TaskID]*task
	successors map[TaskID][]TaskID
	remaining  int
}

// admitWorkflow validates the spec and builds the run-time graph state:
// per-task unmet-predecessor counters plus the successor adjacency used to
// release dependents incrementally as tasks complete.
func admitWorkflow(spec *WorkflowSpec, admission int, arrival Time) (*workflowRun, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	w := &workflowRun{
		spec:       spec,
		admission:  admission,
		arrival:    arrival,
		tasks:      make(map[TaskID]*task, len(spec.Tasks)),
		successors: make(map[TaskID][]TaskID, len(spec.Tasks)),
		remaining:  len(spec.Tasks),
	}
	for _, ts := range spec.Tasks {
		w.tasks[ts.ID] = &task{
			spec:       ts,
			wf:         spec.ID,
			unmetPreds: len(ts.Predecessors),
		}
	}
	for _, ts := range spec.Tasks {
		for _, p := range ts.Predecessors {
			w.successors[p] = append(w.successors[p], ts.ID)
		}
	}
	return w, nil
}

// sourceTasks returns the IDs of tasks with no predecessors, in spec order.
func (w *workflowRun) sourceTasks() []TaskID {
	var ids []TaskID
	for _, ts := range w.spec.Tasks {
		if len(ts.Predecessors) == 0 {
			ids = append(ids, ts.ID)
		}
	}
	return ids
}

// onTaskCompleted marks the task completed and returns the IDs of successor
// tasks released by this completion, in ascending ID order so release order
// is independent of map iteration.
func (w *workflowRun) onTaskCompleted(id TaskID) []TaskID {
	t := w.tasks[id]
	t.transition(TaskCompleted)
	w.remaining--

	var released []TaskID
	for _, sid := range w.successors[id] {
		s := w.tasks[sid]
		s.unmetPreds--
		if s.unmetPreds == 0 {
			released = append(released, sid)
		}
	}
	slices.Sort(released)
	return released
}

// done reports whether every task of the workflow has completed.
func (w *workflowRun) done() bool {
	return w.remaining == 0
}
