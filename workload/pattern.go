// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package workload

import (
	"math/rand/v2"

	"github.com/petenewcomb/wfsim"
)

// A Pattern decides when workflows arrive. Times returns n non-decreasing
// arrival timestamps, drawing randomness only from the provided source.
type Pattern interface {
	Name() string
	Times(r *rand.Rand, n int) []wfsim.Time
}

// Constant spaces arrivals a fixed interval apart, starting at Start.
type Constant struct {
	Start    wfsim.Time
	Interval wfsim.Time
}

func (c Constant) Name() string { return "constant" }

func (c Constant) Times(r *rand.Rand, n int) []wfsim.Time {
	times := make([]wfsim.Time, n)
	for i := range times {
		times[i] = c.Start + wfsim.Time(i)*c.Interval
	}
	return times
}

// Poisson models a Poisson arrival process: independent exponentially
// distributed inter-arrival gaps with the given mean, starting at Start.
type Poisson struct {
	Start        wfsim.Time
	MeanInterval wfsim.Time
}

func (p Poisson) Name() string { return "poisson" }

func (p Poisson) Times(r *rand.Rand, n int) []wfsim.Time {
	times := make([]wfsim.Time, n)
	at := p.Start
	for i := range times {
		times[i] = at
		gap := wfsim.Time(r.ExpFloat64() * float64(p.MeanInterval))
		at += gap
	}
	return times
}

// Burst delivers the whole workload at a single instant, the one-time
// high-load shape used to probe how policies clear a standing backlog.
type Burst struct {
	At wfsim.Time
}

func (b Burst) Name() string { return "burst" }

func (b Burst) Times(r *rand.Rand, n int) []wfsim.Time {
	times := make([]wfsim.Time, n)
	for i := range times {
		times[i] = b.At
	}
	return times
}
