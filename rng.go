package jobsystem

import (
	"math/rand"
	"sync"
	"time"
)

// RNG is the pluggable randomness source the pool uses to choose a steal
// victim. It is the one external collaborator the core package actually
// consumes; CLI parsing, the logger, and the workload generator live
// entirely outside this package.
type RNG interface {
	// Intn returns a pseudo-random number in [0, n).
	Intn(n int) int
}

// defaultRNG wraps a single math/rand.Rand behind a mutex: one
// time-seeded generator shared by every worker's victim selection,
// serialized because math/rand.Rand itself isn't safe for concurrent use.
type defaultRNG struct {
	mu  sync.Mutex
	src *rand.Rand
}

func newDefaultRNG() *defaultRNG {
	return &defaultRNG{src: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (r *defaultRNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}
