// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/petenewcomb/wfsim"
	"github.com/petenewcomb/wfsim/workload"
)

type config struct {
	Seed     uint64   `mapstructure:"seed"`
	Horizon  int64    `mapstructure:"horizon"`
	LogLevel string   `mapstructure:"log_level"`
	Policies []string `mapstructure:"policies"`

	Pool struct {
		Slots []slotConfig `mapstructure:"slots"`
	} `mapstructure:"pool"`

	Workload struct {
		Count   int           `mapstructure:"count"`
		Recipe  recipeConfig  `mapstructure:"recipe"`
		Pattern patternConfig `mapstructure:"pattern"`
	} `mapstructure:"workload"`
}

type slotConfig struct {
	CPU      int `mapstructure:"cpu"`
	MemoryMB int `mapstructure:"memory_mb"`
}

type recipeConfig struct {
	Kind        string  `mapstructure:"kind"`
	Tasks       int     `mapstructure:"tasks"`
	Width       int     `mapstructure:"width"`
	EdgeProb    float64 `mapstructure:"edge_prob"`
	MinDuration int64   `mapstructure:"min_duration"`
	MaxDuration int64   `mapstructure:"max_duration"`
	CPU         int     `mapstructure:"cpu"`
	MemoryMB    int     `mapstructure:"memory_mb"`
}

type patternConfig struct {
	Kind     string `mapstructure:"kind"`
	Start    int64  `mapstructure:"start"`
	Interval int64  `mapstructure:"interval"`
}

func loadConfig(path string) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix("WFSIM")
	v.AutomaticEnv()

	v.SetDefault("seed", 1)
	v.SetDefault("log_level", "info")
	v.SetDefault("policies", []string{"fifo", "sjf", "minmin", "bestfit"})
	v.SetDefault("pool.slots", []map[string]any{{"cpu": 4, "memory_mb": 8192}})
	v.SetDefault("workload.count", 20)
	v.SetDefault("workload.recipe.kind", "random")
	v.SetDefault("workload.recipe.tasks", 12)
	v.SetDefault("workload.recipe.edge_prob", 0.25)
	v.SetDefault("workload.recipe.min_duration", 1)
	v.SetDefault("workload.recipe.max_duration", 100)
	v.SetDefault("workload.recipe.cpu", 1)
	v.SetDefault("workload.recipe.memory_mb", 512)
	v.SetDefault("workload.pattern.kind", "poisson")
	v.SetDefault("workload.pattern.interval", 50)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func (c *config) slots() []wfsim.Demand {
	slots := make([]wfsim.Demand, len(c.Pool.Slots))
	for i, s := range c.Pool.Slots {
		slots[i] = wfsim.Demand{CPU: s.CPU, MemoryMB: s.MemoryMB}
	}
	return slots
}

func (c *config) recipe() (workload.Recipe, error) {
	r := c.Workload.Recipe
	dur := workload.DurationRange{Min: wfsim.Time(r.MinDuration), Max: wfsim.Time(r.MaxDuration)}
	demand := wfsim.Demand{CPU: r.CPU, MemoryMB: r.MemoryMB}
	switch r.Kind {
	case "chain":
		return workload.Chain{Length: r.Tasks, Duration: dur, Demand: demand}, nil
	case "forkjoin":
		width := r.Width
		if width == 0 {
			width = r.Tasks
		}
		return workload.ForkJoin{Width: width, Duration: dur, Demand: demand}, nil
	case "random":
		return workload.RandomDAG{
			Count:    r.Tasks,
			EdgeProb: r.EdgeProb,
			Duration: dur,
			MaxCPU:   r.CPU,
			MemoryMB: r.MemoryMB,
		}, nil
	default:
		return nil, fmt.Errorf("unknown workload recipe %q", r.Kind)
	}
}

func (c *config) pattern() (workload.Pattern, error) {
	p := c.Workload.Pattern
	switch p.Kind {
	case "constant":
		return workload.Constant{Start: wfsim.Time(p.Start), Interval: wfsim.Time(p.Interval)}, nil
	case "poisson":
		return workload.Poisson{Start: wfsim.Time(p.Start), MeanInterval: wfsim.Time(p.Interval)}, nil
	case "burst":
		return workload.Burst{At: wfsim.Time(p.Start)}, nil
	default:
		return nil, fmt.Errorf("unknown arrival pattern %q", p.Kind)
	}
}
