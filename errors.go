package jobsystem

import "fmt"

// ConfigurationError indicates a fatal, build/submit-time misconfiguration:
// an illegal worker count or a lock-free deque capacity overflow.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("jobsystem: configuration error: %s", e.Reason)
}

// InvariantViolation is recorded when the scheduler observes a state that
// should be structurally impossible. The worker records one when a job's
// unfinished count is still above zero after Execute; dependant counters
// are not checked against any lower bound. It is logged and surfaced as a
// bug signal, but never aborts other workers.
type InvariantViolation struct {
	JobName string
	Detail  string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("jobsystem: invariant violation in job %q: %s", e.JobName, e.Detail)
}

// ProcedurePanic wraps a recovered panic from a job's procedure. finish()
// still runs for the job so dependants are not stranded; the panic is
// captured here and surfaced on shutdown rather than swallowed or allowed
// to take down the worker goroutine.
type ProcedurePanic struct {
	JobName string
	Value   any
}

func (e *ProcedurePanic) Error() string {
	return fmt.Sprintf("jobsystem: job %q panicked: %v", e.JobName, e.Value)
}
