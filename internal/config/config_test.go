package config

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (ts *ConfigTestSuite) TestResolveThreadsDefaultsToHardwareMinusOne() {
	got, err := ResolveThreads(0)
	ts.Require().NoError(err)

	hw := runtime.NumCPU()
	if hw < 2 {
		hw = 2
	}
	ts.Equal(hw-1, got)
	ts.GreaterOrEqual(got, 1)
}

func (ts *ConfigTestSuite) TestResolveThreadsClampsToHardwareMinusOne() {
	got, err := ResolveThreads(1 << 20)
	ts.Require().NoError(err)

	maxThreads := runtime.NumCPU() - 1
	if maxThreads < 1 {
		maxThreads = 1
	}
	ts.Equal(maxThreads, got)
}

func (ts *ConfigTestSuite) TestResolveThreadsRejectsNegative() {
	_, err := ResolveThreads(-1)
	ts.Error(err)
}

func (ts *ConfigTestSuite) TestResolveThreadsPassesThroughValidRequest() {
	got, err := ResolveThreads(1)
	ts.Require().NoError(err)
	ts.Equal(1, got)
}
