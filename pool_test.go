// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package wfsim

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func taskRef(wf byte, id TaskID) TaskRef {
	return TaskRef{Workflow: uuid.UUID{wf}, Task: id}
}

func TestPoolReserveAndRelease(t *testing.T) {
	chk := require.New(t)
	p := NewPool(Demand{CPU: 2, MemoryMB: 1024})

	a := taskRef(1, 0)
	b := taskRef(1, 1)
	c := taskRef(1, 2)

	chk.True(p.tryReserve(a, 0, Demand{CPU: 1, MemoryMB: 512}))
	chk.True(p.tryReserve(b, 0, Demand{CPU: 1, MemoryMB: 256}))

	// Slot is full on CPU; refusal is the normal control path, not an error.
	chk.False(p.tryReserve(c, 0, Demand{CPU: 1}))
	// Out-of-range slot is a refusal as well.
	chk.False(p.tryReserve(c, 1, Demand{CPU: 1}))

	chk.Equal(0, p.release(a))
	chk.True(p.tryReserve(c, 0, Demand{CPU: 1}))

	chk.Equal(Demand{CPU: 2, MemoryMB: 256}, p.committed[0])
}

func TestPoolHeterogeneousSlots(t *testing.T) {
	chk := require.New(t)
	p := NewPool(Demand{CPU: 1, MemoryMB: 512}, Demand{CPU: 8, MemoryMB: 32768})

	big := taskRef(2, 0)
	chk.False(p.tryReserve(big, 0, Demand{CPU: 4, MemoryMB: 1024}))
	chk.True(p.tryReserve(big, 1, Demand{CPU: 4, MemoryMB: 1024}))
	chk.Equal(1, p.release(big))
}

func TestPoolDoubleReleasePanics(t *testing.T) {
	chk := require.New(t)
	p := NewPool(Demand{CPU: 1})

	a := taskRef(3, 0)
	chk.True(p.tryReserve(a, 0, Demand{CPU: 1}))
	p.release(a)
	chk.Panics(func() { p.release(a) })
}

func TestPoolDuplicateReservationPanics(t *testing.T) {
	chk := require.New(t)
	p := NewPool(Demand{CPU: 4})

	a := taskRef(4, 0)
	chk.True(p.tryReserve(a, 0, Demand{CPU: 1}))
	chk.Panics(func() { p.tryReserve(a, 0, Demand{CPU: 1}) })
}

// greedyPolicy is a minimal in-package policy: first task to first fitting
// slot, in snapshot order.
type greedyPolicy struct{}

func (greedyPolicy) Name() string { return "greedy" }

func (greedyPolicy) Decide(s *Snapshot) Decision {
	var d Decision
	free := make([]Demand, len(s.Slots))
	for i, slot := range s.Slots {
		free[i] = slot.Free()
	}
	for _, rt := range s.Ready {
		for i := range free {
			if rt.Demand.Fits(free[i]) {
				free[i] = free[i].Sub(rt.Demand)
				d.Start(rt.Ref, i)
				break
			}
		}
	}
	return d
}

// Every completed task releases exactly once: the release counter must match
// the completed-task count after a full run.
func TestPoolReleaseCountMatchesCompletions(t *testing.T) {
	chk := require.New(t)

	sim := NewSimulation(Config{Slots: []Demand{{CPU: 2, MemoryMB: 4096}}}, greedyPolicy{})

	for i := byte(0); i < 3; i++ {
		wf, err := NewWorkflowSpec(uuid.UUID{0xa0 + i}, "w", []TaskSpec{
			{ID: 0, Demand: Demand{CPU: 1, MemoryMB: 128}, Duration: 4},
			{ID: 1, Demand: Demand{CPU: 1, MemoryMB: 128}, Duration: 2, Predecessors: []TaskID{0}},
			{ID: 2, Demand: Demand{CPU: 1, MemoryMB: 128}, Duration: 1, Predecessors: []TaskID{0}},
		})
		chk.NoError(err)
		chk.NoError(sim.Submit(wf, Time(i)))
	}

	report, err := sim.Run(context.Background())
	chk.NoError(err)
	chk.False(report.Unschedulable)

	completed := 0
	for _, ws := range report.Workflows {
		chk.True(ws.Completed)
		completed += len(ws.Tasks)
	}
	chk.Equal(9, completed)
	chk.Equal(completed, sim.pool.releases)
	chk.Empty(sim.pool.reservations)
}
