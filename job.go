// Package jobsystem implements a multi-threaded job scheduler with
// inter-job dependencies and work-stealing. Callers submit parameterless
// jobs that may declare other jobs as dependants; the pool distributes jobs
// across a fixed set of worker goroutines, honors the resulting partial
// order, and balances load by randomly stealing from peer deques.
package jobsystem

import (
	"sync/atomic"
)

// Func is a nullary, side-effectful unit of work.
type Func func()

// Job holds a procedure, a debug-only name, and the atomic dependency
// counter that makes it "executable" once every prerequisite has finished.
//
// A Job is constructed dependants-first: the job that names a set of
// dependants must be built after those dependants already exist, because
// the constructor is the sole place that increments a dependant's counter.
// This ordering, by induction, forbids cycles: a job can never name itself
// as a transitive dependant of something it depends on.
type Job struct {
	name       string
	proc       Func
	dependants []*Job

	// unfinished is 1 while the job itself hasn't run, > 1 while
	// unresolved prerequisites remain, and <= 0 once it is accounted for.
	// It may be transiently observed negative by racing readers; that is
	// expected and must never be treated as fatal.
	unfinished atomic.Int32
}

// New creates a Job with no prerequisites.
func New(name string, proc Func) *Job {
	return NewWithDependants(name, proc, nil)
}

// NewWithDependants creates a Job whose completion notifies dependants.
// Each dependant must already be constructed; their unfinished counters are
// bumped by one here, before this job can possibly run.
func NewWithDependants(name string, proc Func, dependants []*Job) *Job {
	j := &Job{
		name:       name,
		proc:       proc,
		dependants: dependants,
	}
	j.unfinished.Store(1)
	for _, dep := range dependants {
		dep.addDependency()
	}
	return j
}

// Name returns the job's debug-only tag.
func (j *Job) Name() string {
	return j.name
}

// addDependency records one more unresolved prerequisite for j.
func (j *Job) addDependency() {
	j.unfinished.Add(1)
}

// CanExecute reports whether every prerequisite of j has finished.
func (j *Job) CanExecute() bool {
	return j.unfinished.Load() == 1
}

// IsFinished reports whether j has run and been fully accounted for.
// Deliberately `<= 0`, not `== 0`: the decrement-then-notify sequence in
// finish is not one atomic step, so a racing reader may see 0 or a
// transient negative value before notification of this job's own
// dependants has completed.
func (j *Job) IsFinished() bool {
	return j.unfinished.Load() <= 0
}

// UnfinishedCount returns the raw counter value, for diagnostics only.
func (j *Job) UnfinishedCount() int32 {
	return j.unfinished.Load()
}

// Execute runs the job's procedure and then finishes it. The caller must
// have already established CanExecute() at the moment it claimed the job
// (by popping it off a deque); Execute does not re-check.
//
// A panicking procedure is recovered here: finish() still runs (so
// dependants are never stranded waiting on a job that silently vanished),
// and the panic is returned wrapped as a *ProcedurePanic instead of being
// swallowed or crashing the worker's goroutine.
func (j *Job) Execute() (panicErr *ProcedurePanic) {
	defer func() {
		if r := recover(); r != nil {
			panicErr = &ProcedurePanic{JobName: j.name, Value: r}
		}
		j.finish()
	}()
	j.proc()
	return nil
}

// finish performs exactly one atomic decrement of the job's own counter.
// If that decrement brought the counter from 1 to 0, every dependant is
// notified with its own atomic decrement. Notifying a dependant does not
// recursively notify that dependant's own dependants -- each job's
// completion only ever touches its direct dependants; the chain advances
// as those dependants themselves finish.
func (j *Job) finish() {
	previous := j.unfinished.Add(-1) + 1
	if previous == 1 && len(j.dependants) > 0 {
		for _, dep := range j.dependants {
			dep.unfinished.Add(-1)
		}
	}
}
