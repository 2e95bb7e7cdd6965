package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the optional prometheus instrumentation surface for the pool.
// Grounded on therealutkarshpriyadarshi/log's internal/metrics convention
// of wrapping a handful of CounterVec/GaugeVec fields behind a small typed
// struct registered against a caller-supplied registry, rather than the
// package-global prometheus.DefaultRegisterer. A nil *Metrics (the zero
// value returned by NewMetrics(nil)) disables instrumentation entirely;
// every call site nil-checks before touching the vectors, so the core
// scheduler never pays for metrics it wasn't given a registry for.
type Metrics struct {
	jobsExecuted        *prometheus.CounterVec
	jobsStolen          *prometheus.CounterVec
	invariantViolations *prometheus.CounterVec
	queueDepth          *prometheus.GaugeVec
}

// NewMetrics registers the jobsystem metric family against reg. Passing a
// nil registry yields a usable, fully inert *Metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}

	m := &Metrics{
		jobsExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobsystem",
			Name:      "jobs_executed_total",
			Help:      "Jobs executed, labeled by worker.",
		}, []string{"worker"}),
		jobsStolen: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobsystem",
			Name:      "jobs_stolen_total",
			Help:      "Jobs claimed via a steal, labeled by thief worker.",
		}, []string{"worker"}),
		invariantViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobsystem",
			Name:      "invariant_violations_total",
			Help:      "InvariantViolation occurrences, labeled by worker.",
		}, []string{"worker"}),
		queueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "jobsystem",
			Name:      "deque_depth",
			Help:      "Approximate per-worker deque size.",
		}, []string{"worker"}),
	}

	reg.MustRegister(m.jobsExecuted, m.jobsStolen, m.invariantViolations, m.queueDepth)
	return m
}

func (m *Metrics) ObserveExecuted(worker string) {
	if m == nil {
		return
	}
	m.jobsExecuted.WithLabelValues(worker).Inc()
}

func (m *Metrics) ObserveStolen(worker string) {
	if m == nil {
		return
	}
	m.jobsStolen.WithLabelValues(worker).Inc()
}

func (m *Metrics) ObserveInvariantViolation(worker string) {
	if m == nil {
		return
	}
	m.invariantViolations.WithLabelValues(worker).Inc()
}

func (m *Metrics) SetQueueDepth(worker string, depth int) {
	if m == nil {
		return
	}
	m.queueDepth.WithLabelValues(worker).Set(float64(depth))
}
