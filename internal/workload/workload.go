// Package workload builds the canonical eight-job game-loop DAG used by
// the end-to-end tests and the CLI driver's demo run.
package workload

import (
	"sync"
	"time"

	"github.com/go-foundations/jobsystem"
)

// Stage names and busy-loop durations for one frame of the canonical
// game-loop workload:
//
//	Input(200)                         no dependencies
//	Physics(1000)                      depends on Input
//	Collision(1200)                    depends on Physics
//	Animation(600)                     depends on Collision
//	Particles(800)                     depends on Collision
//	GameElements(2400)                 depends on Physics
//	Rendering(2000)                    depends on Animation, Particles, GameElements
//	Sound(1000)                        no dependencies
const (
	InputDuration        = 200 * time.Microsecond
	PhysicsDuration      = 1000 * time.Microsecond
	CollisionDuration    = 1200 * time.Microsecond
	AnimationDuration    = 600 * time.Microsecond
	ParticlesDuration    = 800 * time.Microsecond
	GameElementsDuration = 2400 * time.Microsecond
	RenderingDuration    = 2000 * time.Microsecond
	SoundDuration        = 1000 * time.Microsecond
)

// Recorder observes stage execution order and counts, for tests and the
// CLI driver's summary output. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	order []string
	count map[string]int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{count: make(map[string]int)}
}

func (r *Recorder) record(stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, stage)
	r.count[stage]++
}

// Order returns the stages in the sequence they completed, under the
// Recorder's own lock -- a copy safe to read after the pool is idle.
func (r *Recorder) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Count returns how many times stage ran -- used by tests that assert
// each job's procedure runs exactly once.
func (r *Recorder) Count(stage string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count[stage]
}

func busyLoop(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}

func stage(name string, d time.Duration, rec *Recorder) func() {
	return func() {
		busyLoop(d)
		if rec != nil {
			rec.record(name)
		}
	}
}

// BuildDAG constructs the eight canonical jobs wired with the dependency
// edges above, building dependants first (Rendering first, Input last), and
// returns them in the order Input, Sound, Physics, Collision, Animation,
// Particles, GameElements, Rendering. Submission order is independent of
// this -- BuildDAGByName and Nodes below let callers re-submit in a
// different order.
func BuildDAG(rec *Recorder) []*jobsystem.Job {
	rendering := jobsystem.New("Rendering", stage("Rendering", RenderingDuration, rec))
	animation := jobsystem.NewWithDependants("Animation", stage("Animation", AnimationDuration, rec), []*jobsystem.Job{rendering})
	particles := jobsystem.NewWithDependants("Particles", stage("Particles", ParticlesDuration, rec), []*jobsystem.Job{rendering})
	gameElements := jobsystem.NewWithDependants("GameElements", stage("GameElements", GameElementsDuration, rec), []*jobsystem.Job{rendering})
	collision := jobsystem.NewWithDependants("Collision", stage("Collision", CollisionDuration, rec), []*jobsystem.Job{animation, particles})
	physics := jobsystem.NewWithDependants("Physics", stage("Physics", PhysicsDuration, rec), []*jobsystem.Job{collision, gameElements})

	input := jobsystem.NewWithDependants("Input", stage("Input", InputDuration, rec), []*jobsystem.Job{physics})
	sound := jobsystem.New("Sound", stage("Sound", SoundDuration, rec))

	return []*jobsystem.Job{input, sound, physics, collision, animation, particles, gameElements, rendering}
}

// BuildDAGByName is BuildDAG, indexed by stage name -- convenient for tests
// that want to submit the canonical jobs in a non-canonical order without
// caring about BuildDAG's own return order.
func BuildDAGByName(rec *Recorder) map[string]*jobsystem.Job {
	jobs := BuildDAG(rec)
	byName := make(map[string]*jobsystem.Job, len(jobs))
	for _, j := range jobs {
		byName[j.Name()] = j
	}
	return byName
}

// Nodes names every job BuildDAG returns, in BuildDAG's own return order --
// exported so callers can re-derive a job's dependants when re-submitting
// in a different order.
//
// The edges themselves are constructed once, inside BuildDAG; this slice is
// purely descriptive bookkeeping for test assertions that want to talk
// about stages by name.
var Nodes = []string{
	"Input", "Sound", "Physics", "Collision", "Animation", "Particles", "GameElements", "Rendering",
}

// RunSerial runs the eight stages straight-line, as the baseline the
// parallel engine's timing is compared against.
func RunSerial(rec *Recorder) {
	stage("Input", InputDuration, rec)()
	stage("Physics", PhysicsDuration, rec)()
	stage("Collision", CollisionDuration, rec)()
	stage("Animation", AnimationDuration, rec)()
	stage("Particles", ParticlesDuration, rec)()
	stage("GameElements", GameElementsDuration, rec)()
	stage("Rendering", RenderingDuration, rec)()
	stage("Sound", SoundDuration, rec)()
}
