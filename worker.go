package jobsystem

import (
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// Worker owns one goroutine, one deque, and the sleep condvar that lets it
// park instead of busy-spinning when it has nothing executable. Workers
// never block on a peer's deque for longer than a single steal attempt;
// job procedures themselves are opaque and may block arbitrarily.
type Worker struct {
	id    int
	deque Deque
	pool  *Pool

	running    atomic.Bool
	jobRunning atomic.Bool

	sleepMu   sync.Mutex
	sleepCond *sync.Cond

	done chan struct{}
}

func newWorker(id int, deque Deque, pool *Pool) *Worker {
	w := &Worker{
		id:    id,
		deque: deque,
		pool:  pool,
		done:  make(chan struct{}),
	}
	w.sleepCond = sync.NewCond(&w.sleepMu)
	w.running.Store(true)
	return w
}

func (w *Worker) start() {
	go func() {
		defer close(w.done)
		w.run()
	}()
}

// addJob pushes job onto the worker's private end, then wakes it: a
// push_private followed by a condvar signal under the worker's sleep
// mutex.
func (w *Worker) addJob(j *Job) {
	w.deque.PushPrivate(j)
	w.pool.metrics.SetQueueDepth(workerLabel(w.id), w.deque.Size())
	w.wake()
}

func (w *Worker) wake() {
	w.sleepMu.Lock()
	w.sleepCond.Signal()
	w.sleepMu.Unlock()
}

// requestStop flips running false, drains the deque, and wakes the
// worker so its loop observes the flag at the next iteration boundary.
func (w *Worker) requestStop() {
	w.running.Store(false)
	w.jobRunning.Store(false)
	w.deque.Clear()
	w.wake()
}

func (w *Worker) join() {
	<-w.done
}

// run is the worker loop:
//
//	loop:
//	  if not has_available_work(): wait_on_condvar
//	  mark job_running = true
//	  j <- get_job()
//	  if j is some: execute, check finished, wake_one_self if j has dependants
//	  else: yield-to-OS
//	  if not running: break
//	clear deque on exit
func (w *Worker) run() {
	w.debug("starting worker", nil)
	for {
		if !w.hasAvailableWork() {
			// Nudge any peer whose deque has become executable before
			// parking: a peer's finish() may have made one of its own
			// jobs executable while we were busy.
			w.pool.WakeThreads()
			w.waitForWork()
		}

		// job_running is set before the deque is consulted so a
		// concurrent AllIdle probe cannot observe "deque empty and no
		// job running" between the pop and the start of execution.
		w.jobRunning.Store(true)

		j := w.getJob()
		if j != nil {
			w.debug("starting work", map[string]any{"job": j.Name()})

			if panicErr := j.Execute(); panicErr != nil {
				w.pool.recordPanic(panicErr)
			}
			if !j.IsFinished() {
				iv := &InvariantViolation{
					JobName: j.Name(),
					Detail:  "unfinished count still above zero after Execute",
				}
				w.invariant(iv)
			}

			w.jobRunning.Store(false)
			w.pool.metrics.ObserveExecuted(workerLabel(w.id))
			w.pool.metrics.SetQueueDepth(workerLabel(w.id), w.deque.Size())

			if len(j.dependants) > 0 {
				// Our own deque may now hold a newly-executable
				// dependant; wake ourselves. Pool.WakeThreads serves
				// the fan-out to other workers when appropriate.
				w.wake()
			}
		} else {
			w.jobRunning.Store(false)
			w.debug("yield", nil)
			runtime.Gosched()
		}

		if !w.running.Load() {
			break
		}
	}
	w.deque.Clear()
	w.debug("worker stopped", nil)
}

// hasAvailableWork is the condvar predicate. Checking has_executable
// instead of a plain non-empty check eliminates the "yield storm" of many
// workers waking on a deque that holds only blocked jobs.
func (w *Worker) hasAvailableWork() bool {
	return w.deque.HasExecutable()
}

// waitForWork blocks on the sleep condvar until hasAvailableWork becomes
// true or the pool is shutting down. Spurious wakeups are tolerated by
// re-checking the predicate in the loop Wait already provides.
func (w *Worker) waitForWork() {
	w.sleepMu.Lock()
	for !w.hasAvailableWork() && w.running.Load() {
		w.sleepCond.Wait()
	}
	w.sleepMu.Unlock()
}

// getJob implements the own-queue-first / steal-on-miss policy.
func (w *Worker) getJob() *Job {
	if j := w.getOwnJob(); j != nil {
		return j
	}
	return w.steal()
}

// getOwnJob pops the private end, allowing a blocked job through only when
// more than one entry is present (so there's a second job worth trying).
// A blocked job is re-parked to the public end exactly once per call --
// never twice -- which is what prevents a single-worker livelock when the
// front job has unresolved prerequisites but a later one is executable.
func (w *Worker) getOwnJob() *Job {
	allowBlocked := w.deque.Size() > 1
	j, ok := w.deque.PopPrivate(allowBlocked)
	if !ok {
		return nil
	}
	if j.CanExecute() {
		return j
	}

	w.deque.PushPublic(j)
	if next, ok := w.deque.PopPrivate(false); ok {
		return next
	}
	return nil
}

// steal tries exactly one random peer's public end. With a single worker
// in the pool there is nothing to steal from.
func (w *Worker) steal() *Job {
	if w.pool.NumWorkers() < 2 {
		return nil
	}

	victim := w.pool.randomVictim(w.id)
	j, ok := w.pool.workers[victim].deque.PopPublic()
	if !ok {
		return nil
	}
	w.debug("stole job", map[string]any{"job": j.Name(), "victim": victim})
	w.pool.metrics.ObserveStolen(workerLabel(w.id))
	return j
}

func (w *Worker) debug(msg string, fields map[string]any) {
	if w.pool.sink != nil {
		w.pool.sink.Debug(w.id, msg, fields)
	}
}

func (w *Worker) invariant(iv *InvariantViolation) {
	if w.pool.sink != nil {
		w.pool.sink.Invariant(w.id, iv)
	}
	w.pool.metrics.ObserveInvariantViolation(workerLabel(w.id))
	w.pool.recordInvariantViolation(iv)
}

func workerLabel(id int) string {
	return strconv.Itoa(id)
}
