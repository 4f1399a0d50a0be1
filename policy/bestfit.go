// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package policy

import (
	"github.com/petenewcomb/wfsim"
)

// BestFit is a bin-packing variant: tasks are considered in snapshot order
// (workflow admission, then task ID), and each goes to the fitting slot that
// leaves the least capacity behind, ties to the lowest slot index. Compared to
// [FIFO] it concentrates load onto fewer slots, which matters on
// heterogeneous pools where large slots should stay free for large demands.
type BestFit struct{}

var _ wfsim.Scheduler = BestFit{}

func (BestFit) Name() string { return "bestfit" }

func (BestFit) Decide(s *wfsim.Snapshot) wfsim.Decision {
	var d wfsim.Decision
	free := newAvailability(s.Slots)
	for _, t := range s.Ready {
		if slot := free.tightestFit(t.Demand); slot >= 0 {
			free.commit(slot, t.Demand)
			d.Start(t.Ref, slot)
		}
	}
	return d
}
