// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package policy provides scheduling policies for the wfsim engine. Every
// policy implements [wfsim.Scheduler], holds no reference to engine state,
// and is deterministic: identical snapshots yield identical decisions. Each
// policy documents its own tie-break among equally attractive tasks.
//
// All policies here build decisions greedily against a working copy of the
// free capacity, committing each assignment's demand before considering the
// next task. A well-formed snapshot therefore never produces an assignment
// the pool will refuse.
package policy
