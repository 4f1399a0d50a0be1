// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package workload generates synthetic, reproducible workloads for the wfsim
// engine. A [Generator] combines a [Recipe] (the shape of each workflow's
// task graph) with a [Pattern] (when workflows arrive) under a single seed;
// the same seed always yields byte-for-byte identical workflow specs and
// arrival times, which is what makes cross-policy comparisons meaningful.
package workload
