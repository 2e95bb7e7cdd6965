package benchmarks

import (
	"testing"

	"github.com/go-foundations/jobsystem"
	"github.com/go-foundations/jobsystem/internal/workload"
)

// BenchmarkSerial times the eight-stage game-loop DAG run straight-line,
// the baseline the parallel engine's timing is compared against.
func BenchmarkSerial(b *testing.B) {
	for i := 0; i < b.N; i++ {
		workload.RunSerial(nil)
	}
}

func BenchmarkParallelMutexDeque(b *testing.B) {
	benchmarkParallel(b, false)
}

func BenchmarkParallelLockFreeDeque(b *testing.B) {
	benchmarkParallel(b, true)
}

func benchmarkParallel(b *testing.B, lockFree bool) {
	for i := 0; i < b.N; i++ {
		pool, err := jobsystem.NewPool(jobsystem.Config{
			NumWorkers:       4,
			UseLockFreeDeque: lockFree,
		})
		if err != nil {
			b.Fatal(err)
		}

		for _, j := range workload.BuildDAG(nil) {
			pool.Submit(j)
		}

		for !pool.AllIdle() {
		}

		pool.Shutdown()
	}
}
