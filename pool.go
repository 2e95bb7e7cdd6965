package jobsystem

import (
	"sync"

	"github.com/go-foundations/jobsystem/internal/telemetry"
)

// Config holds the knobs the core scheduler itself accepts, independent of
// the CLI-facing flags that internal/config resolves before building one.
type Config struct {
	// NumWorkers is the fixed worker count; must be >= 1.
	NumWorkers int

	// UseLockFreeDeque selects the ring-buffer deque variant over the
	// mutex-guarded one. Both satisfy the same Deque contract, so this
	// only affects internal representation.
	UseLockFreeDeque bool

	// LockFreeCapacity sizes the ring buffer when UseLockFreeDeque is
	// set; ignored otherwise. Zero selects DefaultLockFreeCapacity.
	LockFreeCapacity int

	// RNG selects the victim-selection source. Nil selects a
	// time-seeded math/rand.Rand guarded by a mutex.
	RNG RNG

	// Sink receives debug/warn/invariant log events. Nil disables
	// logging entirely.
	Sink telemetry.Sink

	// Metrics receives prometheus observations. Nil (the default
	// produced by telemetry.NewMetrics(nil)) disables instrumentation.
	Metrics *telemetry.Metrics
}

// DefaultConfig returns a single-worker, mutex-deque, unlogged
// configuration -- the safest possible default for an embedder that
// hasn't thought about tuning yet.
func DefaultConfig() Config {
	return Config{
		NumWorkers:       1,
		UseLockFreeDeque: false,
	}
}

// Pool constructs N workers, dispatches submissions round-robin across
// them, and orchestrates shutdown. The round-robin cursor is touched only
// by the single submitter goroutine and is therefore left unsynchronized.
type Pool struct {
	workers []*Worker
	next    int

	rng     RNG
	sink    telemetry.Sink
	metrics *telemetry.Metrics

	panicsMu sync.Mutex
	panics   []*ProcedurePanic

	invariantsMu sync.Mutex
	invariants   []*InvariantViolation

	shutdownOnce sync.Once
}

// NewPool constructs a Pool with cfg.NumWorkers workers, each with its own
// thread and deque, and starts every worker's goroutine immediately.
func NewPool(cfg Config) (*Pool, error) {
	if cfg.NumWorkers <= 0 {
		return nil, &ConfigurationError{Reason: "NumWorkers must be >= 1"}
	}

	rng := cfg.RNG
	if rng == nil {
		rng = newDefaultRNG()
	}

	p := &Pool{
		workers: make([]*Worker, cfg.NumWorkers),
		rng:     rng,
		sink:    cfg.Sink,
		metrics: cfg.Metrics,
	}

	for i := 0; i < cfg.NumWorkers; i++ {
		var dq Deque
		if cfg.UseLockFreeDeque {
			dq = NewLockFreeDeque(cfg.LockFreeCapacity)
		} else {
			dq = NewMutexDeque()
		}
		p.workers[i] = newWorker(i, dq, p)
	}

	for _, w := range p.workers {
		w.start()
	}

	return p, nil
}

// Submit pushes job onto the current round-robin worker's private end and
// advances the cursor. Submission is assumed single-threaded.
func (p *Pool) Submit(j *Job) {
	w := p.workers[p.next]
	w.addJob(j)
	p.next = (p.next + 1) % len(p.workers)
}

// AllIdle reports whether, for every worker, the deque is empty and no job
// is currently executing. Best-effort; intended to be polled by the
// submitter between frames.
func (p *Pool) AllIdle() bool {
	for _, w := range p.workers {
		if w.deque.Size() > 0 || w.jobRunning.Load() {
			return false
		}
	}
	return true
}

// WakeThreads signals the condvar of every worker whose deque currently
// holds an executable job. This is the conservative fan-out: every
// eligible worker is notified rather than stopping after the first --
// simpler to reason about, at the cost of occasional redundant wakeups.
func (p *Pool) WakeThreads() {
	for _, w := range p.workers {
		if w.deque.HasExecutable() {
			w.wake()
		}
	}
}

// randomVictim returns a random worker id other than selfID: a uniform draw
// over all workers, moved on to the next id when it lands on selfID.
// With fewer than two workers there is no valid victim; callers must check
// len(p.workers) > 1 first.
func (p *Pool) randomVictim(selfID int) int {
	r := p.rng.Intn(len(p.workers))
	if r == selfID {
		r = (r + 1) % len(p.workers)
	}
	return r
}

// recordPanic stashes a recovered ProcedurePanic for retrieval after
// Shutdown: panics are captured, not swallowed.
func (p *Pool) recordPanic(pe *ProcedurePanic) {
	p.panicsMu.Lock()
	p.panics = append(p.panics, pe)
	p.panicsMu.Unlock()
}

// Panics returns every ProcedurePanic captured since construction.
func (p *Pool) Panics() []*ProcedurePanic {
	p.panicsMu.Lock()
	defer p.panicsMu.Unlock()
	out := make([]*ProcedurePanic, len(p.panics))
	copy(out, p.panics)
	return out
}

// recordInvariantViolation stashes a structurally-impossible-state
// observation for retrieval after Shutdown, alongside the sink/metrics
// reporting the worker already did: surfaced, not silently eaten.
func (p *Pool) recordInvariantViolation(iv *InvariantViolation) {
	p.invariantsMu.Lock()
	p.invariants = append(p.invariants, iv)
	p.invariantsMu.Unlock()
}

// InvariantViolations returns every InvariantViolation captured since
// construction.
func (p *Pool) InvariantViolations() []*InvariantViolation {
	p.invariantsMu.Lock()
	defer p.invariantsMu.Unlock()
	out := make([]*InvariantViolation, len(p.invariants))
	copy(out, p.invariants)
	return out
}

// NumWorkers returns the fixed worker count.
func (p *Pool) NumWorkers() int {
	return len(p.workers)
}

// Shutdown idempotently stops every worker: flips running to false, clears
// its deque, signals its condvar, then joins its goroutine. Queued but
// unexecuted jobs are discarded; in-flight jobs are allowed to complete.
func (p *Pool) Shutdown() {
	p.shutdownOnce.Do(func() {
		for _, w := range p.workers {
			w.requestStop()
		}
		for _, w := range p.workers {
			w.join()
		}
	})
}
