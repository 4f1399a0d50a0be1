// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package policy

import (
	"github.com/petenewcomb/wfsim"
)

// MinMin is a min-min list-scheduling heuristic: at each step it considers
// only the ready tasks that currently fit somewhere, commits the one with the
// minimum completion time (now + duration), and repeats against the reduced
// capacity until nothing more fits. Since slots have no speed differential,
// the completion-time minimum reduces to the shortest duration among fittable
// tasks; the slot chosen is the tightest fit, keeping larger holes open for
// larger tasks.
//
// Tie-breaks: equal durations resolve by snapshot order (workflow admission,
// then task ID); equal fits resolve to the lowest slot index.
type MinMin struct{}

var _ wfsim.Scheduler = MinMin{}

func (MinMin) Name() string { return "minmin" }

func (MinMin) Decide(s *wfsim.Snapshot) wfsim.Decision {
	var d wfsim.Decision
	free := newAvailability(s.Slots)
	assigned := make([]bool, len(s.Ready))

	for {
		best := -1
		bestSlot := -1
		for i, t := range s.Ready {
			if assigned[i] {
				continue
			}
			slot := free.tightestFit(t.Demand)
			if slot < 0 {
				continue
			}
			if best < 0 || t.Duration < s.Ready[best].Duration {
				best = i
				bestSlot = slot
			}
		}
		if best < 0 {
			return d
		}
		assigned[best] = true
		free.commit(bestSlot, s.Ready[best].Demand)
		d.Start(s.Ready[best].Ref, bestSlot)
	}
}
