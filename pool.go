// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package wfsim

import (
	"fmt"
	"slices"
)

// Pool models simulated compute capacity as a fixed set of slots, each with
// its own capacity vector. Slots may be homogeneous or heterogeneous. The
// pool tracks the capacity committed to each executing task; committed
// capacity never exceeds a slot's total capacity.
//
// A Pool is exclusively owned and mutated by the [Simulation] that holds it.
// Schedulers see only [Snapshot] copies.
type Pool struct {
	capacity  []Demand
	committed []Demand

	// reservations records, per running task, the slot and demand it holds so
	// release can return exactly what reserve took.
	reservations map[TaskRef]reservation

	// releases counts release calls. The driver is the single authoritative
	// caller and calls exactly once per completed task; the counter lets a
	// test harness verify that.
	releases int
}

type reservation struct {
	slot   int
	demand Demand
}

// NewPool creates a pool with one slot per capacity vector, in order. Slot
// indices in scheduling decisions refer to positions in this list.
func NewPool(slots ...Demand) *Pool {
	if len(slots) == 0 {
		panic("pool must have at least one slot")
	}
	return &Pool{
		capacity:     slices.Clone(slots),
		committed:    make([]Demand, len(slots)),
		reservations: make(map[TaskRef]reservation),
	}
}

// NumSlots returns the number of slots in the pool.
func (p *Pool) NumSlots() int {
	return len(p.capacity)
}

// tryReserve attempts to commit demand on the given slot for the given task.
// It returns false if the slot's remaining capacity is insufficient; this is
// an ordinary, frequently exercised outcome, not an error. Reserving on
// behalf of a task that already holds a reservation is a driver bug.
func (p *Pool) tryReserve(ref TaskRef, slot int, demand Demand) bool {
	if slot < 0 || slot >= len(p.capacity) {
		return false
	}
	if _, dup := p.reservations[ref]; dup {
		panic(fmt.Sprintf("task %s already holds a reservation", ref))
	}
	free := p.capacity[slot].Sub(p.committed[slot])
	if !demand.Fits(free) {
		return false
	}
	p.committed[slot] = p.committed[slot].Add(demand)
	p.reservations[ref] = reservation{slot: slot, demand: demand}
	return true
}

// release returns the task's committed capacity to its slot and reports which
// slot it held. Exactly one release per reserved task: a second call for the
// same task panics, because the driver is the single call site and a double
// release there is a programming error rather than a condition to tolerate.
func (p *Pool) release(ref TaskRef) int {
	res, ok := p.reservations[ref]
	if !ok {
		panic(fmt.Sprintf("release of task %s with no reservation", ref))
	}
	delete(p.reservations, ref)
	p.committed[res.slot] = p.committed[res.slot].Sub(res.demand)
	p.releases++
	return res.slot
}

// snapshotSlots copies the current per-slot capacity and commitment for a
// scheduler-facing snapshot.
func (p *Pool) snapshotSlots() []SlotState {
	slots := make([]SlotState, len(p.capacity))
	for i := range p.capacity {
		slots[i] = SlotState{
			Slot:      i,
			Capacity:  p.capacity[i],
			Committed: p.committed[i],
		}
	}
	return slots
}
