// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package policy

import (
	"github.com/petenewcomb/wfsim"
)

// FIFO starts ready tasks in arrival order: workflow admission order first,
// then lowest task ID within a workflow. Each task goes to the lowest-indexed
// slot with room. A task that fits nowhere is deferred without holding back
// the tasks behind it.
type FIFO struct{}

var _ wfsim.Scheduler = FIFO{}

func (FIFO) Name() string { return "fifo" }

func (FIFO) Decide(s *wfsim.Snapshot) wfsim.Decision {
	var d wfsim.Decision
	free := newAvailability(s.Slots)
	for _, t := range s.Ready {
		if slot := free.firstFit(t.Demand); slot >= 0 {
			free.commit(slot, t.Demand)
			d.Start(t.Ref, slot)
		}
	}
	return d
}
