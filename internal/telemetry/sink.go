// Package telemetry provides the injected logging sink the core scheduler
// consumes. An earlier job system exposed a process-wide ThreadSafeLogger;
// here that becomes an injected interface instead, so the core never
// depends on global mutable state and logging can be entirely omitted in
// non-debug builds by passing a nil Sink.
package telemetry

// Sink is the logging interface jobsystem.Pool and jobsystem.Worker accept.
// A nil Sink disables logging entirely -- every call site in the core
// nil-checks before use.
type Sink interface {
	// Debug logs fine-grained scheduling detail: job claimed, stolen,
	// re-parked, worker going to sleep/waking.
	Debug(workerID int, msg string, fields map[string]any)

	// Warn logs a recoverable but noteworthy condition, e.g. a wake
	// signal with nothing to do.
	Warn(workerID int, msg string, fields map[string]any)

	// Invariant logs an InvariantViolation: never fatal to the pool,
	// always worth surfacing.
	Invariant(workerID int, err error)
}
