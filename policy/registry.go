// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package policy

import (
	"fmt"

	"github.com/petenewcomb/wfsim"
)

// ByName returns a fresh instance of the named policy. Names match the
// values reported by [wfsim.Scheduler.Name].
func ByName(name string) (wfsim.Scheduler, error) {
	switch name {
	case "fifo":
		return FIFO{}, nil
	case "sjf":
		return SJF{}, nil
	case "minmin":
		return MinMin{}, nil
	case "bestfit":
		return BestFit{}, nil
	default:
		return nil, fmt.Errorf("unknown scheduling policy %q", name)
	}
}

// Names lists the available policy names.
func Names() []string {
	return []string{"fifo", "sjf", "minmin", "bestfit"}
}
