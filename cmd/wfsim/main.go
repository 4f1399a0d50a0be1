// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command wfsim runs a set of scheduling policies over one synthetic
// workload and prints a comparison table. The workload, pool, and policy
// list come from an optional config file (first argument) plus WFSIM_*
// environment variables; defaults produce a small random-DAG workload over a
// single 4-CPU slot.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petenewcomb/wfsim"
	"github.com/petenewcomb/wfsim/policy"
	"github.com/petenewcomb/wfsim/workload"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "wfsim: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	recipe, err := cfg.recipe()
	if err != nil {
		return err
	}
	pattern, err := cfg.pattern()
	if err != nil {
		return err
	}
	arrivals, err := workload.New(cfg.Seed, recipe, pattern).Generate(cfg.Workload.Count)
	if err != nil {
		return err
	}

	policies := make([]wfsim.Scheduler, 0, len(cfg.Policies))
	for _, name := range cfg.Policies {
		p, err := policy.ByName(name)
		if err != nil {
			return err
		}
		policies = append(policies, p)
	}

	logger.Info("starting comparison",
		zap.Uint64("seed", cfg.Seed),
		zap.Int("workflows", len(arrivals)),
		zap.Strings("policies", cfg.Policies))

	reports, err := wfsim.Compare(context.Background(), wfsim.Config{
		Slots:   cfg.slots(),
		Horizon: wfsim.Time(cfg.Horizon),
		Logger:  logger,
	}, arrivals, policies...)
	if err != nil {
		return err
	}

	printComparison(os.Stdout, reports)
	return nil
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func printComparison(w *os.File, reports []*wfsim.Report) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POLICY\tCOMPLETED\tMEAN MAKESPAN\tMAX MAKESPAN\tEND\tUTIL\tVIOLATIONS\tSTATUS")
	for _, r := range reports {
		var completed int
		var total, longest wfsim.Time
		for _, ws := range r.Workflows {
			if !ws.Completed {
				continue
			}
			completed++
			total += ws.Makespan()
			longest = max(longest, ws.Makespan())
		}
		mean := 0.0
		if completed > 0 {
			mean = float64(total) / float64(completed)
		}
		status := "ok"
		if r.Unschedulable {
			status = fmt.Sprintf("unschedulable (%d pending)", len(r.Pending))
		}
		fmt.Fprintf(tw, "%s\t%d/%d\t%.1f\t%d\t%d\t%s\t%d\t%s\n",
			r.Policy, completed, len(r.Workflows), mean, longest, r.End,
			formatUtilization(r.Utilization()), r.ContractViolations, status)
	}
	tw.Flush() //nolint:errcheck
}

func formatUtilization(util []float64) string {
	out := ""
	for i, u := range util {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%.0f%%", u*100)
	}
	return out
}
