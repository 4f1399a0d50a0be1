// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package wfsim

type constError string

func (e constError) Error() string {
	return string(e)
}

// ErrGraph reports a malformed workflow graph: an edge referencing an unknown
// task, or a dependency cycle. A workflow that fails validation is rejected at
// admission; the run itself continues.
const ErrGraph = constError("malformed workflow graph")

// ErrInvalidTime reports an attempt to schedule an event before the current
// virtual time, or to submit workflows with decreasing arrival timestamps.
// Either indicates a driver or generator bug and is fatal to the run.
const ErrInvalidTime = constError("event scheduled before current time")

// ErrRunning reports a [Simulation] method call that is only valid before
// [Simulation.Run] has been invoked.
const ErrRunning = constError("simulation already run")
