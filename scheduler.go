// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package wfsim

// ReadyTask is a scheduler's read-only view of one task awaiting a decision.
type ReadyTask struct {
	Ref      TaskRef
	Name     string
	Demand   Demand
	Duration Time

	// Admission is the order in which the owning workflow was admitted to the
	// run. Together with Ref.Task it defines the order of [Snapshot.Ready]
	// and gives policies a stable key for their own tie-breaks.
	Admission int

	// Arrival is the owning workflow's arrival time.
	Arrival Time
}

// SlotState is a scheduler's read-only view of one pool slot.
type SlotState struct {
	Slot      int
	Capacity  Demand
	Committed Demand
}

// Free returns the slot's remaining capacity.
func (s SlotState) Free() Demand {
	return s.Capacity.Sub(s.Committed)
}

// Snapshot is the immutable observation handed to a [Scheduler] at a decision
// point: the current virtual time, the ready set in deterministic order
// (workflow admission order, then task ID), and the state of every slot.
// Snapshots are freshly copied per invocation; a scheduler may retain one
// without affecting the engine.
type Snapshot struct {
	Now   Time
	Ready []ReadyTask
	Slots []SlotState
}

// Assignment starts one ready task on one slot.
type Assignment struct {
	Task TaskRef
	Slot int
}

// Decision is the output of one scheduler invocation. Assignments are applied
// in order; any ready task without an assignment is deferred until the next
// decision point. Decisions are transient: the driver consumes them
// immediately and nothing retains them.
type Decision struct {
	Assignments []Assignment
}

// Start appends an assignment to the decision.
func (d *Decision) Start(task TaskRef, slot int) {
	d.Assignments = append(d.Assignments, Assignment{Task: task, Slot: slot})
}

// A Scheduler decides which ready tasks start on which slots. It is invoked
// once per decision point, defined as any virtual instant at which the ready
// set or the committed capacity changed.
//
// Schedulers never mutate engine state; they read a [Snapshot] and return a
// [Decision], and all effects flow back through the simulation driver. An
// assignment whose demand does not fit the named slot's free capacity is a
// contract violation: the driver discards that assignment, records it, and
// leaves the task ready. It never corrupts pool state.
//
// Decide must be deterministic: identical snapshots must produce identical
// decisions, so that two runs over the same workload are bit-identical. Each
// implementation documents its own tie-break among equally attractive tasks.
type Scheduler interface {
	// Name identifies the policy in logs and reports.
	Name() string

	// Decide returns the assignments to apply at this decision point.
	Decide(s *Snapshot) Decision
}
