// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package policy_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/petenewcomb/wfsim"
	"github.com/petenewcomb/wfsim/policy"
)

func ref(wf byte, id wfsim.TaskID) wfsim.TaskRef {
	return wfsim.TaskRef{Workflow: uuid.UUID{wf}, Task: id}
}

func ready(wf byte, id wfsim.TaskID, admission int, cpu int, dur wfsim.Time) wfsim.ReadyTask {
	return wfsim.ReadyTask{
		Ref:       ref(wf, id),
		Demand:    wfsim.Demand{CPU: cpu, MemoryMB: 64},
		Duration:  dur,
		Admission: admission,
	}
}

func slot(i, cpu, committed int) wfsim.SlotState {
	return wfsim.SlotState{
		Slot:      i,
		Capacity:  wfsim.Demand{CPU: cpu, MemoryMB: 4096},
		Committed: wfsim.Demand{CPU: committed},
	}
}

func TestFIFOTakesSnapshotOrder(t *testing.T) {
	chk := require.New(t)

	snap := &wfsim.Snapshot{
		Ready: []wfsim.ReadyTask{
			ready(1, 0, 0, 1, 9),
			ready(1, 3, 0, 1, 1),
			ready(2, 0, 1, 1, 5),
		},
		Slots: []wfsim.SlotState{slot(0, 2, 0)},
	}

	d := policy.FIFO{}.Decide(snap)
	// Two fit; the third is deferred. Order follows the snapshot.
	chk.Equal([]wfsim.Assignment{
		{Task: ref(1, 0), Slot: 0},
		{Task: ref(1, 3), Slot: 0},
	}, d.Assignments)
}

func TestFIFOSkipsOversizedWithoutBlocking(t *testing.T) {
	chk := require.New(t)

	snap := &wfsim.Snapshot{
		Ready: []wfsim.ReadyTask{
			ready(1, 0, 0, 4, 2), // does not fit anywhere
			ready(1, 1, 0, 1, 2),
		},
		Slots: []wfsim.SlotState{slot(0, 2, 0)},
	}

	d := policy.FIFO{}.Decide(snap)
	chk.Equal([]wfsim.Assignment{{Task: ref(1, 1), Slot: 0}}, d.Assignments)
}

func TestSJFOrdersByDuration(t *testing.T) {
	chk := require.New(t)

	snap := &wfsim.Snapshot{
		Ready: []wfsim.ReadyTask{
			ready(1, 0, 0, 1, 9),
			ready(1, 1, 0, 1, 3),
			ready(2, 0, 1, 1, 3), // same duration, later admission
			ready(2, 1, 1, 1, 1),
		},
		Slots: []wfsim.SlotState{slot(0, 3, 0)},
	}

	d := policy.SJF{}.Decide(snap)
	chk.Equal([]wfsim.Assignment{
		{Task: ref(2, 1), Slot: 0},
		{Task: ref(1, 1), Slot: 0},
		{Task: ref(2, 0), Slot: 0},
	}, d.Assignments)
}

func TestMinMinPicksTightestSlot(t *testing.T) {
	chk := require.New(t)

	snap := &wfsim.Snapshot{
		Ready: []wfsim.ReadyTask{
			ready(1, 0, 0, 2, 4),
			ready(1, 1, 0, 1, 2),
		},
		Slots: []wfsim.SlotState{slot(0, 4, 0), slot(1, 1, 0), slot(2, 2, 0)},
	}

	d := policy.MinMin{}.Decide(snap)
	// Shortest task first, each into the slot it fills best: the 1-CPU task
	// takes the 1-CPU slot, the 2-CPU task takes the 2-CPU slot.
	chk.Equal([]wfsim.Assignment{
		{Task: ref(1, 1), Slot: 1},
		{Task: ref(1, 0), Slot: 2},
	}, d.Assignments)
}

func TestMinMinStopsWhenNothingFits(t *testing.T) {
	chk := require.New(t)

	snap := &wfsim.Snapshot{
		Ready: []wfsim.ReadyTask{ready(1, 0, 0, 2, 1)},
		Slots: []wfsim.SlotState{slot(0, 2, 1)},
	}

	d := policy.MinMin{}.Decide(snap)
	chk.Empty(d.Assignments)
}

func TestBestFitPrefersFullestSlot(t *testing.T) {
	chk := require.New(t)

	snap := &wfsim.Snapshot{
		Ready: []wfsim.ReadyTask{ready(1, 0, 0, 1, 5)},
		Slots: []wfsim.SlotState{slot(0, 4, 0), slot(1, 4, 3)},
	}

	d := policy.BestFit{}.Decide(snap)
	// Slot 1 has only one CPU left, the tighter fit.
	chk.Equal([]wfsim.Assignment{{Task: ref(1, 0), Slot: 1}}, d.Assignments)
}

func TestByName(t *testing.T) {
	chk := require.New(t)

	for _, name := range policy.Names() {
		p, err := policy.ByName(name)
		chk.NoError(err)
		chk.Equal(name, p.Name())
	}

	_, err := policy.ByName("nope")
	chk.Error(err)
}
