package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// AcquireCounter tracks the number of lock acquisitions.
	AcquireCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "memlock_acquire_total",
		Help: "Total number of lock acquisitions",
	})
	// ReleaseCounter tracks the number of lock releases.
	ReleaseCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "memlock_release_total",
		Help: "Total number of lock releases",
	})
	// ViolationCounter tracks observed mutual-exclusion violations.
	ViolationCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "memlock_violation_total",
		Help: "Total number of observed mutual exclusion violations",
	})
	// HoldersGauge reports the number of participants currently inside the
	// critical section. Values above 1 indicate a violation.
	HoldersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "memlock_holders",
		Help: "Current number of critical section holders",
	})
)

// NewRegistry creates an empty Prometheus registry for callers that do not
// already run one.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// RegisterCoreMetrics registers the default lock collectors (acquisitions,
// releases, observed violations, current holders) on the provided registry.
// These are the collectors the harness updates unless a run is given its own
// registry via harness.WithMetrics.
func RegisterCoreMetrics(reg prometheus.Registerer) {
	reg.MustRegister(AcquireCounter, ReleaseCounter, ViolationCounter, HoldersGauge)
}
