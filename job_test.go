package jobsystem

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"
)

type JobTestSuite struct {
	suite.Suite
}

func TestJobTestSuite(t *testing.T) {
	suite.Run(t, new(JobTestSuite))
}

func (ts *JobTestSuite) TestNewJobNoDependantsIsImmediatelyExecutable() {
	j := New("leaf", func() {})
	ts.True(j.CanExecute())
	ts.False(j.IsFinished())
}

func (ts *JobTestSuite) TestConstructionIncrementsDependantCounters() {
	var ran int32
	dep := New("dependant", func() { atomic.AddInt32(&ran, 1) })
	ts.Equal(int32(1), dep.UnfinishedCount())

	_ = NewWithDependants("prereq", func() {}, []*Job{dep})
	ts.Equal(int32(2), dep.UnfinishedCount())
	ts.False(dep.CanExecute(), "dependant should not be executable until its prerequisite finishes")
}

func (ts *JobTestSuite) TestExecuteRunsProcedureExactlyOnceAndFinishes() {
	var calls int32
	j := New("once", func() { atomic.AddInt32(&calls, 1) })

	ts.Nil(j.Execute())
	ts.Equal(int32(1), calls)
	ts.True(j.IsFinished())
}

func (ts *JobTestSuite) TestFinishNotifiesDependantsOnlyWhenOwnCounterReachesZero() {
	dependant := New("dependant", func() {})
	prereq := NewWithDependants("prereq", func() {}, []*Job{dependant})
	ts.Equal(int32(2), dependant.UnfinishedCount())

	ts.Nil(prereq.Execute())
	ts.Equal(int32(1), dependant.UnfinishedCount())
	ts.True(dependant.CanExecute())
}

func (ts *JobTestSuite) TestFinishDoesNotRecurseIntoDependantsOfDependants() {
	// prereq -> mid -> leaf: finishing prereq must only touch mid's
	// counter, not leaf's.
	leaf := New("leaf", func() {})
	mid := NewWithDependants("mid", func() {}, []*Job{leaf})
	prereq := NewWithDependants("prereq", func() {}, []*Job{mid})

	ts.Equal(int32(2), mid.UnfinishedCount())
	ts.Equal(int32(2), leaf.UnfinishedCount())

	ts.Nil(prereq.Execute())
	ts.Equal(int32(1), mid.UnfinishedCount())
	ts.Equal(int32(2), leaf.UnfinishedCount(), "leaf must be untouched until mid itself finishes")

	ts.Nil(mid.Execute())
	ts.Equal(int32(1), leaf.UnfinishedCount())
}

func (ts *JobTestSuite) TestIsFinishedToleratesTransientNegativeValues() {
	j := New("racy", func() {})
	j.unfinished.Store(-3)
	ts.True(j.IsFinished())
	ts.NotPanics(func() { j.IsFinished() })
}

func (ts *JobTestSuite) TestExecuteRecoversPanicAndStillFinishes() {
	j := New("boom", func() { panic("kaboom") })

	panicErr := j.Execute()
	ts.NotNil(panicErr)
	ts.Equal("boom", panicErr.JobName)
	ts.True(j.IsFinished(), "finish() must still run so dependants are not stranded")
}

func (ts *JobTestSuite) TestFanOutDependants() {
	// One prerequisite, multiple dependants, matching Physics ->
	// {Collision, GameElements}-shaped edges in the canonical DAG.
	a := New("a", func() {})
	b := New("b", func() {})
	prereq := NewWithDependants("prereq", func() {}, []*Job{a, b})

	ts.Nil(prereq.Execute())
	ts.True(a.CanExecute())
	ts.True(b.CanExecute())
}
