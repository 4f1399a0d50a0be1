// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package policy

import (
	"github.com/petenewcomb/wfsim"
)

// availability is a mutable working copy of per-slot free capacity, letting a
// policy account for its own earlier assignments while building a decision.
type availability []wfsim.Demand

func newAvailability(slots []wfsim.SlotState) availability {
	free := make(availability, len(slots))
	for i, s := range slots {
		free[i] = s.Free()
	}
	return free
}

// firstFit returns the lowest-indexed slot that can hold demand, or -1.
func (a availability) firstFit(demand wfsim.Demand) int {
	for i, free := range a {
		if demand.Fits(free) {
			return i
		}
	}
	return -1
}

// tightestFit returns the fitting slot with the least leftover capacity after
// placement, comparing leftover CPU then leftover memory, ties to the lowest
// slot index. Returns -1 if no slot fits.
func (a availability) tightestFit(demand wfsim.Demand) int {
	best := -1
	var bestLeft wfsim.Demand
	for i, free := range a {
		if !demand.Fits(free) {
			continue
		}
		left := free.Sub(demand)
		if best < 0 || left.CPU < bestLeft.CPU ||
			(left.CPU == bestLeft.CPU && left.MemoryMB < bestLeft.MemoryMB) {
			best = i
			bestLeft = left
		}
	}
	return best
}

// commit subtracts demand from the slot's free capacity.
func (a availability) commit(slot int, demand wfsim.Demand) {
	a[slot] = a[slot].Sub(demand)
}
