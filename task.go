// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package wfsim

import (
	"fmt"

	"github.com/google/uuid"
)

// TaskID identifies a task within its workflow.
type TaskID int

// TaskRef identifies a task globally, across all workflows in a run.
type TaskRef struct {
	Workflow uuid.UUID
	Task     TaskID
}

func (r TaskRef) String() string {
	return fmt.Sprintf("%s/%d", r.Workflow, r.Task)
}

// Demand is a resource requirement or capacity vector. The same type
// describes what a task demands, what a slot offers, and what a slot has
// committed.
type Demand struct {
	CPU      int
	MemoryMB int
}

// Fits reports whether d fits within the given free capacity.
func (d Demand) Fits(free Demand) bool {
	return d.CPU <= free.CPU && d.MemoryMB <= free.MemoryMB
}

// Add returns the component-wise sum of d and o.
func (d Demand) Add(o Demand) Demand {
	return Demand{CPU: d.CPU + o.CPU, MemoryMB: d.MemoryMB + o.MemoryMB}
}

// Sub returns the component-wise difference of d and o.
func (d Demand) Sub(o Demand) Demand {
	return Demand{CPU: d.CPU - o.CPU, MemoryMB: d.MemoryMB - o.MemoryMB}
}

func (d Demand) String() string {
	return fmt.Sprintf("{cpu:%d mem:%dMB}", d.CPU, d.MemoryMB)
}

// TaskSpec describes one task of a workflow: what it needs, how long it runs,
// and which tasks must complete before it may start. Predecessors reference
// task IDs within the same workflow.
type TaskSpec struct {
	ID           TaskID
	Name         string
	Demand       Demand
	Duration     Time
	Predecessors []TaskID
}

// TaskState is the lifecycle position of a task within a run. Transitions are
// strictly forward: Pending, Ready, Scheduled, Completed. A Ready task that a
// scheduler declines to start simply stays Ready; deferral is not a state.
type TaskState int

const (
	// TaskPending means the task exists but has predecessors that have not
	// completed.
	TaskPending TaskState = iota
	// TaskReady means all predecessors have completed and the task awaits a
	// scheduling decision.
	TaskReady
	// TaskScheduled means resources are committed and the task is executing
	// until its simulated completion.
	TaskScheduled
	// TaskCompleted is terminal.
	TaskCompleted
)

func (s TaskState) String() string {
	switch s {
	case TaskPending:
		return "Pending"
	case TaskReady:
		return "Ready"
	case TaskScheduled:
		return "Scheduled"
	case TaskCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// task is the engine's mutable view of one admitted task. All mutation
// happens on the driver goroutine.
type task struct {
	spec TaskSpec
	wf   uuid.UUID

	state TaskState

	// Count of predecessors not yet completed. The ready set is maintained
	// incrementally by decrementing these counters as predecessors complete,
	// never by rescanning the graph.
	unmetPreds int

	start  Time
	finish Time
	slot   int
}

func (t *task) ref() TaskRef {
	return TaskRef{Workflow: t.wf, Task: t.spec.ID}
}

// transition moves the task forward by exactly one state. Any other move is a
// driver bug, not a runtime condition.
func (t *task) transition(to TaskState) {
	if t.state == TaskCompleted || to != t.state+1 {
		panic(fmt.Sprintf("invalid task state transition %s -> %s for %s", t.state, to, t.ref()))
	}
	t.state = to
}
