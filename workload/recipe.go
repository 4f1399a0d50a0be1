// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package workload

import (
	"math/rand/v2"

	"github.com/petenewcomb/wfsim"
)

// A Recipe produces the task graph of one workflow. Implementations draw any
// randomness exclusively from the provided source so generation stays
// reproducible.
type Recipe interface {
	// Name labels the workflows this recipe produces.
	Name() string

	// Tasks returns the task set of one workflow instance, valid as input to
	// [wfsim.NewWorkflowSpec].
	Tasks(r *rand.Rand) []wfsim.TaskSpec
}

// DurationRange draws task durations uniformly from [Min, Max].
type DurationRange struct {
	Min wfsim.Time
	Max wfsim.Time
}

func (dr DurationRange) draw(r *rand.Rand) wfsim.Time {
	if dr.Max <= dr.Min {
		return dr.Min
	}
	return dr.Min + wfsim.Time(r.Int64N(int64(dr.Max-dr.Min)+1))
}

// Chain produces linear workflows: task i depends on task i-1.
type Chain struct {
	Length   int
	Duration DurationRange
	Demand   wfsim.Demand
}

func (c Chain) Name() string { return "chain" }

func (c Chain) Tasks(r *rand.Rand) []wfsim.TaskSpec {
	tasks := make([]wfsim.TaskSpec, c.Length)
	for i := range tasks {
		tasks[i] = wfsim.TaskSpec{
			ID:       wfsim.TaskID(i),
			Demand:   c.Demand,
			Duration: c.Duration.draw(r),
		}
		if i > 0 {
			tasks[i].Predecessors = []wfsim.TaskID{wfsim.TaskID(i - 1)}
		}
	}
	return tasks
}

// ForkJoin produces a source task fanning out to Width parallel tasks that
// all join into a sink. Width 2 gives the classic diamond.
type ForkJoin struct {
	Width    int
	Duration DurationRange
	Demand   wfsim.Demand
}

func (f ForkJoin) Name() string { return "forkjoin" }

func (f ForkJoin) Tasks(r *rand.Rand) []wfsim.TaskSpec {
	tasks := make([]wfsim.TaskSpec, 0, f.Width+2)
	tasks = append(tasks, wfsim.TaskSpec{
		ID:       0,
		Demand:   f.Demand,
		Duration: f.Duration.draw(r),
	})
	join := make([]wfsim.TaskID, 0, f.Width)
	for i := range f.Width {
		id := wfsim.TaskID(i + 1)
		tasks = append(tasks, wfsim.TaskSpec{
			ID:           id,
			Demand:       f.Demand,
			Duration:     f.Duration.draw(r),
			Predecessors: []wfsim.TaskID{0},
		})
		join = append(join, id)
	}
	tasks = append(tasks, wfsim.TaskSpec{
		ID:           wfsim.TaskID(f.Width + 1),
		Demand:       f.Demand,
		Duration:     f.Duration.draw(r),
		Predecessors: join,
	})
	return tasks
}

// RandomDAG produces layered random graphs: task i may depend on any earlier
// task with probability EdgeProb. Edges always point from lower to higher
// IDs, so the result is acyclic by construction.
type RandomDAG struct {
	Count    int
	EdgeProb float64
	Duration DurationRange
	MaxCPU   int
	MemoryMB int
}

func (g RandomDAG) Name() string { return "random" }

func (g RandomDAG) Tasks(r *rand.Rand) []wfsim.TaskSpec {
	tasks := make([]wfsim.TaskSpec, g.Count)
	for i := range tasks {
		cpu := 1
		if g.MaxCPU > 1 {
			cpu = 1 + r.IntN(g.MaxCPU)
		}
		tasks[i] = wfsim.TaskSpec{
			ID:       wfsim.TaskID(i),
			Demand:   wfsim.Demand{CPU: cpu, MemoryMB: g.MemoryMB},
			Duration: g.Duration.draw(r),
		}
		for j := range i {
			if r.Float64() < g.EdgeProb {
				tasks[i].Predecessors = append(tasks[i].Predecessors, wfsim.TaskID(j))
			}
		}
	}
	return tasks
}
