package jobsystem

// Deque is the common contract both worker-deque variants satisfy. The
// owning worker is the only caller of the push/pop-private pair and of
// Clear; any thread, including thieves, may call PopPublic, HasExecutable,
// and Size.
//
// Uniqueness is the caller's responsibility: a given *Job must never be
// pushed onto more than one Deque at a time, nor pushed onto the same
// Deque twice concurrently. Submission and the worker's re-park logic are
// the only two places jobs are pushed. The re-park is two separate calls,
// PopPrivate then PushPublic, so between them the job is in neither end of
// the deque.
type Deque interface {
	// PushPrivate inserts a job at the private (owner) end.
	PushPrivate(j *Job)

	// PopPrivate returns the private-end job. If allowBlocked is false,
	// a job whose prerequisites have not finished is left in place and
	// PopPrivate reports ok=false instead of removing it.
	PopPrivate(allowBlocked bool) (j *Job, ok bool)

	// PushPublic inserts a job at the public (thief) end. Used by the
	// owner only, to re-park a private-end job that turned out blocked.
	PushPublic(j *Job)

	// PopPublic returns the public-end job only if it is executable;
	// otherwise it is left in place and ok is false.
	PopPublic() (j *Job, ok bool)

	// HasExecutable reports whether any entry currently satisfies
	// CanExecute.
	HasExecutable() bool

	// Clear drains every entry. Called by the owner at shutdown.
	Clear()

	// Size returns an approximate entry count; safe from any goroutine.
	Size() int
}
