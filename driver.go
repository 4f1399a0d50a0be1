// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package wfsim

import (
	"context"
	"fmt"
	"slices"

	"github.com/gammazero/deque"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultHorizon is the virtual-time horizon used when [Config.Horizon] is
// zero. A run that would advance past the horizon stops and is reported as
// unschedulable rather than looping forever on a backlog no policy clears.
const DefaultHorizon Time = 1 << 40

// Config carries the immutable parameters of one run. It is read once at
// construction; later changes to the struct have no effect.
type Config struct {
	// Slots defines the resource pool, one capacity vector per slot.
	Slots []Demand

	// Horizon is the maximum virtual time the run may reach. Zero selects
	// [DefaultHorizon].
	Horizon Time

	// Logger receives debug/warn output. Nil selects a no-op logger.
	Logger *zap.Logger
}

// Arrival pairs a workflow with its arrival time, as produced by a workload
// generator.
type Arrival struct {
	Workflow *WorkflowSpec
	At       Time
}

// Simulation drives one run: it owns the clock, the pool, the admitted
// workflow graphs, and the metric collector, and it is the only component
// that reserves or releases pool capacity. A Simulation is single-use:
// submit workflows, call [Simulation.Run] once, read the [Report].
//
// Simulations share nothing, so independent runs may execute concurrently.
// A single Simulation is not safe for concurrent use.
type Simulation struct {
	policy  Scheduler
	clock   clock
	pool    *Pool
	col     *collector
	log     *zap.Logger
	horizon Time

	// submissions buffers Submit calls until Run drains them into the clock.
	submissions deque.Deque[Arrival]
	lastSubmit  Time

	specs     map[uuid.UUID]*WorkflowSpec
	workflows map[uuid.UUID]*workflowRun
	order     []*workflowRun

	// ready holds tasks awaiting a decision, ordered by (workflow admission,
	// task ID). This ordering is part of the scheduler contract.
	ready []*task

	// dirty is set whenever the ready set or committed capacity changes,
	// marking the current instant a decision point.
	dirty bool

	ran bool
}

// NewSimulation creates a run over the given pool configuration and policy.
func NewSimulation(cfg Config, policy Scheduler) *Simulation {
	if policy == nil {
		panic("scheduler must be non-nil")
	}
	horizon := cfg.Horizon
	if horizon == 0 {
		horizon = DefaultHorizon
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulation{
		policy:    policy,
		pool:      NewPool(cfg.Slots...),
		col:       newCollector(),
		log:       log.With(zap.String("policy", policy.Name())),
		horizon:   horizon,
		specs:     make(map[uuid.UUID]*WorkflowSpec),
		workflows: make(map[uuid.UUID]*workflowRun),
	}
}

// Submit queues a workflow arrival. Arrivals must be submitted in
// non-decreasing time order; out-of-order submission fails with
// [ErrInvalidTime], and submission after [Simulation.Run] fails with
// [ErrRunning].
func (s *Simulation) Submit(wf *WorkflowSpec, at Time) error {
	if s.ran {
		return ErrRunning
	}
	if at < 0 || (s.submissions.Len() > 0 && at < s.lastSubmit) {
		return fmt.Errorf("%w: workflow %s arrives at t=%d after t=%d",
			ErrInvalidTime, wf.ID, at, s.lastSubmit)
	}
	if _, dup := s.specs[wf.ID]; dup {
		return fmt.Errorf("%w: workflow %s submitted twice", ErrGraph, wf.ID)
	}
	s.specs[wf.ID] = wf
	s.submissions.PushBack(Arrival{Workflow: wf, At: at})
	s.lastSubmit = at
	return nil
}

// Run executes the simulation to completion: it pops events in timestamp
// order, releases dependents as tasks complete, and invokes the policy at
// every decision point, until the timeline is exhausted or the horizon is
// reached. The context is consulted between events; cancellation aborts the
// run wholesale with the context's error.
func (s *Simulation) Run(ctx context.Context) (*Report, error) {
	if s.ran {
		return nil, ErrRunning
	}
	s.ran = true

	for s.submissions.Len() > 0 {
		a := s.submissions.PopFront()
		if err := s.clock.schedule(event{time: a.At, kind: workflowArrival, workflow: a.Workflow.ID}); err != nil {
			return nil, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, ok := s.clock.peekTime()
		if !ok {
			break
		}
		if next > s.horizon {
			s.log.Warn("horizon reached with events outstanding; workload unschedulable",
				zap.Int64("horizon", int64(s.horizon)),
				zap.Int("outstanding", s.clock.len()))
			break
		}
		ev, _ := s.clock.advance()
		if err := s.handle(ev); err != nil {
			return nil, err
		}
		// A decision point spans all events sharing one timestamp: the policy
		// runs once per instant, after the last of them.
		if next, ok := s.clock.peekTime(); ok && next == s.clock.currentTime() {
			continue
		}
		if s.dirty {
			if err := s.decide(); err != nil {
				return nil, err
			}
		}
	}

	report := s.col.report(s.policy.Name(), s.clock.currentTime(), s.pool, s.pendingCensus())
	s.log.Info("run complete",
		zap.Int64("end", int64(report.End)),
		zap.Int("workflows", len(report.Workflows)),
		zap.Int("rejected", report.Rejected),
		zap.Int("contractViolations", report.ContractViolations),
		zap.Bool("unschedulable", report.Unschedulable))
	return report, nil
}

func (s *Simulation) handle(ev event) error {
	now := s.clock.currentTime()
	switch ev.kind {
	case workflowArrival:
		return s.handleArrival(ev.workflow, now)

	case taskReady:
		t := s.workflows[ev.workflow].tasks[ev.task]
		t.transition(TaskReady)
		s.insertReady(t)
		s.dirty = true
		s.log.Debug("task ready", zap.Stringer("task", t.ref()), zap.Int64("t", int64(now)))

	case taskStart:
		t := s.workflows[ev.workflow].tasks[ev.task]
		s.log.Debug("task start",
			zap.Stringer("task", t.ref()),
			zap.Int("slot", t.slot),
			zap.Int64("t", int64(now)))

	case taskCompletion:
		s.handleCompletion(ev.workflow, ev.task, now)
	}
	return nil
}

func (s *Simulation) handleArrival(id uuid.UUID, now Time) error {
	spec := s.specs[id]
	w, err := admitWorkflow(spec, len(s.order), now)
	if err != nil {
		// Malformed workflows are rejected at admission; the run continues.
		s.col.rejected++
		s.log.Warn("workflow rejected", zap.String("workflow", id.String()), zap.Error(err))
		return nil
	}
	s.workflows[id] = w
	s.order = append(s.order, w)
	s.col.admitted(w)
	s.log.Debug("workflow admitted",
		zap.String("workflow", id.String()),
		zap.Int("tasks", len(spec.Tasks)),
		zap.Int64("t", int64(now)))

	// An empty workflow completes at its arrival instant with no decisions.
	if w.done() {
		s.col.finished(w, now)
		return nil
	}
	for _, tid := range w.sourceTasks() {
		if err := s.clock.schedule(event{time: now, kind: taskReady, workflow: id, task: tid}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) handleCompletion(id uuid.UUID, tid TaskID, now Time) {
	w := s.workflows[id]
	t := w.tasks[tid]

	slot := s.pool.release(t.ref())
	s.col.sample(now, s.pool)
	t.finish = now

	released := w.onTaskCompleted(tid)
	s.col.taskDone(t)
	s.dirty = true
	s.log.Debug("task complete",
		zap.Stringer("task", t.ref()),
		zap.Int("slot", slot),
		zap.Int64("t", int64(now)))

	for _, rid := range released {
		// schedule at the current instant never fails
		_ = s.clock.schedule(event{time: now, kind: taskReady, workflow: id, task: rid})
	}
	if w.done() {
		s.col.finished(w, now)
		s.log.Debug("workflow complete",
			zap.String("workflow", id.String()),
			zap.Int64("makespan", int64(now-w.arrival)))
	}
}

// decide invokes the policy once over the current snapshot and applies its
// decision through the pool.
func (s *Simulation) decide() error {
	s.dirty = false
	now := s.clock.currentTime()
	snap := s.snapshot(now)
	decision := s.policy.Decide(snap)

	for _, a := range decision.Assignments {
		t := s.lookupReady(a.Task)
		if t == nil {
			s.violation(now, a, "assignment names a task that is not ready")
			continue
		}
		if !s.pool.tryReserve(t.ref(), a.Slot, t.spec.Demand) {
			// The offending task stays Ready for the next decision point;
			// pool state is untouched.
			s.violation(now, a, "assignment demand exceeds free slot capacity")
			continue
		}
		s.col.sample(now, s.pool)
		t.transition(TaskScheduled)
		t.start = now
		t.slot = a.Slot
		s.removeReady(t)
		_ = s.clock.schedule(event{time: now, kind: taskStart, workflow: t.wf, task: t.spec.ID})
		if err := s.clock.schedule(event{
			time:     now + t.spec.Duration,
			kind:     taskCompletion,
			workflow: t.wf,
			task:     t.spec.ID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) violation(now Time, a Assignment, msg string) {
	s.col.violations++
	s.log.Warn("scheduler contract violation: "+msg,
		zap.Stringer("task", a.Task),
		zap.Int("slot", a.Slot),
		zap.Int64("t", int64(now)))
}

func (s *Simulation) snapshot(now Time) *Snapshot {
	snap := &Snapshot{
		Now:   now,
		Ready: make([]ReadyTask, len(s.ready)),
		Slots: s.pool.snapshotSlots(),
	}
	for i, t := range s.ready {
		w := s.workflows[t.wf]
		snap.Ready[i] = ReadyTask{
			Ref:       t.ref(),
			Name:      t.spec.Name,
			Demand:    t.spec.Demand,
			Duration:  t.spec.Duration,
			Admission: w.admission,
			Arrival:   w.arrival,
		}
	}
	return snap
}

func (s *Simulation) insertReady(t *task) {
	i, _ := slices.BinarySearchFunc(s.ready, t, func(a, b *task) int {
		if c := s.workflows[a.wf].admission - s.workflows[b.wf].admission; c != 0 {
			return c
		}
		return int(a.spec.ID - b.spec.ID)
	})
	s.ready = slices.Insert(s.ready, i, t)
}

func (s *Simulation) removeReady(t *task) {
	i := slices.Index(s.ready, t)
	if i < 0 {
		panic(fmt.Sprintf("task %s not in ready set", t.ref()))
	}
	s.ready = slices.Delete(s.ready, i, i+1)
}

// lookupReady resolves an assignment's task reference, returning nil unless
// the task exists and is currently ready.
func (s *Simulation) lookupReady(ref TaskRef) *task {
	w, ok := s.workflows[ref.Workflow]
	if !ok {
		return nil
	}
	t, ok := w.tasks[ref.Task]
	if !ok || t.state != TaskReady {
		return nil
	}
	return t
}

// pendingCensus lists every admitted task that has not completed, in
// (admission, task ID) order.
func (s *Simulation) pendingCensus() []TaskRef {
	var pending []TaskRef
	for _, w := range s.order {
		ids := make([]TaskID, 0, len(w.tasks))
		for id, t := range w.tasks {
			if t.state != TaskCompleted {
				ids = append(ids, id)
			}
		}
		slices.Sort(ids)
		for _, id := range ids {
			pending = append(pending, TaskRef{Workflow: w.spec.ID, Task: id})
		}
	}
	return pending
}
