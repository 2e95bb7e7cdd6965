package workload

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type WorkloadTestSuite struct {
	suite.Suite
}

func TestWorkloadTestSuite(t *testing.T) {
	suite.Run(t, new(WorkloadTestSuite))
}

func (ts *WorkloadTestSuite) TestBuildDAGReturnsEightNodesAllExecutableOrBlockedCorrectly() {
	jobs := BuildDAG(nil)
	ts.Len(jobs, 8)

	byName := make(map[string]bool)
	for _, j := range jobs {
		byName[j.Name()] = j.CanExecute()
	}

	ts.True(byName["Input"])
	ts.True(byName["Sound"])
	ts.False(byName["Physics"], "Physics depends on Input")
	ts.False(byName["Rendering"], "Rendering depends on Animation, Particles, GameElements")
}

func (ts *WorkloadTestSuite) TestBuildDAGByNameIndexesTheSameJobs() {
	byName := BuildDAGByName(nil)
	ts.Len(byName, 8)
	for _, name := range Nodes {
		ts.Containsf(byName, name, "missing stage %s", name)
	}
}

func (ts *WorkloadTestSuite) TestRunSerialRecordsAllEightStagesInOrder() {
	rec := NewRecorder()
	RunSerial(rec)

	order := rec.Order()
	ts.Equal([]string{"Input", "Physics", "Collision", "Animation", "Particles", "GameElements", "Rendering", "Sound"}, order)

	for _, name := range Nodes {
		ts.Equal(1, rec.Count(name), "%s must run exactly once", name)
	}
}
