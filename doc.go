// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package wfsim provides a discrete-event simulator for evaluating competing
// workflow-scheduling policies under synthetic, reproducible workloads. A
// workload is a stream of multi-task workflows (directed acyclic task graphs
// with per-task resource demands and durations) arriving at points in virtual
// time. A [Simulation] replays that stream against a [Pool] of compute slots,
// invoking a pluggable [Scheduler] at every decision point and recording when
// each task started, where it ran, and how long each workflow took end to end.
//
// The engine is logically single-threaded: one virtual timeline, one event
// processed at a time, events ordered by (timestamp, insertion sequence) so
// that two runs over the same input produce bit-identical results regardless
// of policy. Schedulers observe read-only [Snapshot] values and return
// [Decision] values; all state mutation flows through the simulation driver.
//
// Independent runs share nothing, so comparing several policies over the same
// workload can proceed in parallel. [Compare] does exactly that, producing one
// [Report] per policy.
//
// Since simulated time has no wall-clock meaning, a whole run typically
// executes in microseconds. This makes the package suitable for property-based
// exploration of scheduler behavior in addition to one-off comparisons.
package wfsim
