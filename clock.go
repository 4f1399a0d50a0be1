// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package wfsim

import (
	"fmt"

	"github.com/addrummond/heap"
)

// clock combines the virtual current time with the pending-event queue. It is
// the single source of ordering for a run: events come back out in (time,
// insertion sequence) order, and popping an event advances the current time to
// that event's timestamp. Time never moves backward.
type clock struct {
	now     Time
	nextSeq uint64
	pending int
	events  heap.Heap[event, heap.Min]
}

func (c *clock) currentTime() Time {
	return c.now
}

// schedule inserts an event into the timeline, stamping it with the next
// insertion sequence number. Scheduling into the past is rejected with
// [ErrInvalidTime].
func (c *clock) schedule(ev event) error {
	if ev.time < c.now {
		return fmt.Errorf("%w: %s at t=%d, current t=%d", ErrInvalidTime, ev.kind, ev.time, c.now)
	}
	ev.seq = c.nextSeq
	c.nextSeq++
	heap.PushOrderable(&c.events, ev)
	c.pending++
	return nil
}

// advance pops the earliest event and moves current time to its timestamp.
// Returns ok=false when the timeline is exhausted, leaving current time at
// the last dispatched event.
func (c *clock) advance() (event, bool) {
	ev, ok := heap.PopOrderable(&c.events)
	if !ok {
		return event{}, false
	}
	c.pending--
	c.now = ev.time
	return ev, true
}

// peekTime reports the timestamp of the next event without dispatching it.
func (c *clock) peekTime() (Time, bool) {
	ev, ok := heap.Peek(&c.events)
	if !ok {
		return 0, false
	}
	return ev.time, true
}

func (c *clock) len() int {
	return c.pending
}
