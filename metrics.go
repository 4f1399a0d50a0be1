// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package wfsim

import (
	"slices"

	"github.com/google/uuid"
)

// TaskStats records when one task ran and where.
type TaskStats struct {
	Task   TaskID
	Name   string
	Start  Time
	Finish Time
	Slot   int
}

// WorkflowStats records one workflow's timeline through the run.
type WorkflowStats struct {
	Workflow uuid.UUID
	Name     string
	Arrival  Time
	Finish   Time
	// Completed is false if the run ended before every task of the workflow
	// finished.
	Completed bool
	Tasks     []TaskStats
}

// Makespan is the span from the workflow's arrival to the completion of its
// last task, or zero if the workflow did not complete.
func (w WorkflowStats) Makespan() Time {
	if !w.Completed {
		return 0
	}
	return w.Finish - w.Arrival
}

// UtilizationSample is a point-in-time snapshot of committed capacity, taken
// whenever any slot's commitment changes.
type UtilizationSample struct {
	Time      Time
	Committed []Demand
}

// Report is the outcome of one simulation run.
type Report struct {
	Policy string

	// End is the virtual time at which the run stopped.
	End Time

	Workflows []WorkflowStats

	// Rejected counts workflows refused at admission due to graph errors.
	Rejected int

	// ContractViolations counts scheduler assignments discarded because their
	// demand did not fit the named slot (or named an unknown task or slot).
	// A persistently violating policy deserves scrutiny, not a crash.
	ContractViolations int

	// Unschedulable is set when the run stopped with tasks still pending or
	// ready: either the horizon was reached or the timeline drained without
	// the backlog ever clearing.
	Unschedulable bool

	// Pending lists unfinished tasks when Unschedulable is set, in workflow
	// admission then task ID order.
	Pending []TaskRef

	// Capacity is the pool's per-slot capacity, for interpreting samples.
	Capacity []Demand

	// Samples is the committed-capacity time series over the run.
	Samples []UtilizationSample
}

// Utilization returns per-slot mean CPU utilization over the run, weighted by
// how long each commitment level was held. Values are in [0, 1].
func (r *Report) Utilization() []float64 {
	util := make([]float64, len(r.Capacity))
	if len(r.Samples) == 0 || r.End <= r.Samples[0].Time {
		return util
	}
	span := float64(r.End - r.Samples[0].Time)
	for slot := range r.Capacity {
		var weighted float64
		for i, s := range r.Samples {
			end := r.End
			if i+1 < len(r.Samples) {
				end = r.Samples[i+1].Time
			}
			weighted += float64(s.Committed[slot].CPU) * float64(end-s.Time)
		}
		if total := r.Capacity[slot].CPU; total > 0 {
			util[slot] = weighted / (float64(total) * span)
		}
	}
	return util
}

// collector accumulates run metrics. It is passed nothing and asked nothing
// until the run ends; the driver pushes observations into it as events are
// handled.
type collector struct {
	workflows []*WorkflowStats
	byID      map[uuid.UUID]*WorkflowStats

	rejected   int
	violations int
	samples    []UtilizationSample
}

func newCollector() *collector {
	return &collector{byID: make(map[uuid.UUID]*WorkflowStats)}
}

func (c *collector) admitted(w *workflowRun) {
	ws := &WorkflowStats{
		Workflow: w.spec.ID,
		Name:     w.spec.Name,
		Arrival:  w.arrival,
	}
	c.workflows = append(c.workflows, ws)
	c.byID[w.spec.ID] = ws
}

func (c *collector) finished(w *workflowRun, at Time) {
	ws := c.byID[w.spec.ID]
	ws.Finish = at
	ws.Completed = true
}

func (c *collector) taskDone(t *task) {
	ws := c.byID[t.wf]
	ws.Tasks = append(ws.Tasks, TaskStats{
		Task:   t.spec.ID,
		Name:   t.spec.Name,
		Start:  t.start,
		Finish: t.finish,
		Slot:   t.slot,
	})
}

// sample records the pool's committed capacity at the given time. Repeated
// samples at one timestamp collapse to the final value, since intermediate
// commitment levels within a single instant are not observable.
func (c *collector) sample(at Time, p *Pool) {
	committed := slices.Clone(p.committed)
	if n := len(c.samples); n > 0 && c.samples[n-1].Time == at {
		c.samples[n-1].Committed = committed
		return
	}
	c.samples = append(c.samples, UtilizationSample{Time: at, Committed: committed})
}

func (c *collector) report(policy string, end Time, p *Pool, pending []TaskRef) *Report {
	r := &Report{
		Policy:             policy,
		End:                end,
		Rejected:           c.rejected,
		ContractViolations: c.violations,
		Unschedulable:      len(pending) > 0,
		Pending:            pending,
		Capacity:           slices.Clone(p.capacity),
		Samples:            c.samples,
	}
	for _, ws := range c.workflows {
		r.Workflows = append(r.Workflows, *ws)
	}
	return r
}
