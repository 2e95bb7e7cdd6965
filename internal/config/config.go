// Package config holds the CLI-level settings -- worker count clamping,
// serial/parallel engine selection -- that the driver parses. It does not
// build a jobsystem.Config; the driver does that itself. It is deliberately
// thin and separate from jobsystem.Config: this is the external driver's
// concern, not the scheduler's.
package config

import (
	"fmt"
	"runtime"
)

// Driver holds everything the CLI surface parses.
type Driver struct {
	// Threads is the requested worker count; 0 means "use the default".
	Threads int
	// Parallel selects the Pool-driven engine over the serial fallback.
	Parallel bool
	// Frames is how many times to run the workload.
	Frames int
	// LogLevel and LogFormat are forwarded to the telemetry sink.
	LogLevel  string
	LogFormat string
}

// ResolveThreads clamps a positive requested thread count to at most
// max(hardware_threads-1, 1), defaulting to max(hardware_threads, 2) - 1
// when none was requested (0). A negative request returns an error.
func ResolveThreads(requested int) (int, error) {
	hw := runtime.NumCPU()
	maxThreads := hw - 1
	if maxThreads < 1 {
		maxThreads = 1
	}

	if requested == 0 {
		def := hw
		if def < 2 {
			def = 2
		}
		return def - 1, nil
	}

	if requested < 0 {
		return 0, fmt.Errorf("config: thread count must be positive, got %d", requested)
	}
	if requested > maxThreads {
		return maxThreads, nil
	}
	return requested, nil
}
