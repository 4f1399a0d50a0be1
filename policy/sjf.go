// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package policy

import (
	"cmp"
	"slices"

	"github.com/petenewcomb/wfsim"
)

// SJF starts the shortest ready tasks first. Ties break by workflow admission
// order, then lowest task ID, so decisions stay deterministic when durations
// collide. Slot selection is first fit; tasks that fit nowhere are deferred.
type SJF struct{}

var _ wfsim.Scheduler = SJF{}

func (SJF) Name() string { return "sjf" }

func (SJF) Decide(s *wfsim.Snapshot) wfsim.Decision {
	ready := slices.Clone(s.Ready)
	slices.SortFunc(ready, func(a, b wfsim.ReadyTask) int {
		if c := cmp.Compare(a.Duration, b.Duration); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Admission, b.Admission); c != 0 {
			return c
		}
		return cmp.Compare(a.Ref.Task, b.Ref.Task)
	})

	var d wfsim.Decision
	free := newAvailability(s.Slots)
	for _, t := range ready {
		if slot := free.firstFit(t.Demand); slot >= 0 {
			free.commit(slot, t.Demand)
			d.Start(t.Ref, slot)
		}
	}
	return d
}
