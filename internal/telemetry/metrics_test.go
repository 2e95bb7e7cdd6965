package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
}

func TestMetricsTestSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (ts *MetricsTestSuite) TestNilRegistryDisablesMetrics() {
	m := NewMetrics(nil)
	ts.Nil(m)

	ts.NotPanics(func() {
		m.ObserveExecuted("0")
		m.ObserveStolen("0")
		m.ObserveInvariantViolation("0")
		m.SetQueueDepth("0", 3)
	})
}

func (ts *MetricsTestSuite) TestRegisteredMetricsRecordObservations() {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	ts.Require().NotNil(m)

	m.ObserveExecuted("0")
	m.SetQueueDepth("0", 5)

	families, err := reg.Gather()
	ts.Require().NoError(err)
	ts.NotEmpty(families)
}
