package harness

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts crossings through a router.
type Metrics struct {
	crossings *prometheus.CounterVec
	failures  *prometheus.CounterVec
	fatal     *prometheus.CounterVec
}

// NewMetrics creates the router counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		crossings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sbf_stubs",
			Name:      "syscall_crossings_total",
			Help:      "number of syscalls forwarded to the registered implementation",
		}, []string{"convention", "syscall"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sbf_stubs",
			Name:      "syscall_failures_total",
			Help:      "number of syscalls that reported a failure status",
		}, []string{"convention", "syscall"}),
		fatal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sbf_stubs",
			Name:      "syscall_fatal_total",
			Help:      "number of syscalls aborted by a fatal error",
		}, []string{"convention", "syscall"}),
	}
	for _, c := range []prometheus.Collector{m.crossings, m.failures, m.fatal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) crossing(convention, syscall string) {
	if m != nil {
		m.crossings.WithLabelValues(convention, syscall).Inc()
	}
}

func (m *Metrics) failure(convention, syscall string) {
	if m != nil {
		m.failures.WithLabelValues(convention, syscall).Inc()
	}
}

func (m *Metrics) aborted(convention, syscall string) {
	if m != nil {
		m.fatal.WithLabelValues(convention, syscall).Inc()
	}
}
