// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package wfsim

import (
	"cmp"

	"github.com/google/uuid"
)

// Time is a point on the virtual timeline. It is a plain counter with no
// wall-clock relation; its unit ("tick") is meaningful only within one run.
type Time int64

type eventKind int

const (
	workflowArrival eventKind = iota
	taskReady
	taskStart
	taskCompletion
)

func (k eventKind) String() string {
	switch k {
	case workflowArrival:
		return "WorkflowArrival"
	case taskReady:
		return "TaskReady"
	case taskStart:
		return "TaskStart"
	case taskCompletion:
		return "TaskCompletion"
	default:
		return "Unknown"
	}
}

// event is a timeline entry. Events are owned by the clock from Push until
// pop; whoever handles a popped event owns its side effects.
type event struct {
	time Time
	seq  uint64
	kind eventKind

	workflow uuid.UUID
	task     TaskID
}

// Cmp orders events by (time, insertion sequence). The sequence component is
// the explicit tie-break that keeps simultaneous events in a stable,
// reproducible order across runs and across scheduler implementations.
func (a *event) Cmp(b *event) int {
	if c := cmp.Compare(a.time, b.time); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}
