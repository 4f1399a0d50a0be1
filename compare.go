// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package wfsim

import (
	"context"
	"sync"
)

// Compare evaluates several policies over the same workload, one independent
// run per policy, executed in parallel. Each run owns its own clock, pool,
// and graph state, so no synchronization exists beyond collecting the reports
// at the end. Reports come back in policy order.
//
// Each policy instance is used by exactly one run; a stateful policy
// therefore needs no internal locking. Passing the same instance twice puts
// it in two concurrent runs, which is only safe if the policy is stateless.
//
// The first error aborts the comparison; remaining runs are abandoned via
// context cancellation.
func Compare(ctx context.Context, cfg Config, arrivals []Arrival, policies ...Scheduler) ([]*Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reports := make([]*Report, len(policies))
	errs := make([]error, len(policies))

	var wg sync.WaitGroup
	for i, policy := range policies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sim := NewSimulation(cfg, policy)
			for _, a := range arrivals {
				if err := sim.Submit(a.Workflow, a.At); err != nil {
					errs[i] = err
					cancel()
					return
				}
			}
			reports[i], errs[i] = sim.Run(ctx)
			if errs[i] != nil {
				cancel()
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return reports, nil
}
