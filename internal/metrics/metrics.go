// Package metrics counts job mutations and table sizes on a private
// Prometheus registry. cronpad is not a long-running server, so the
// registry is written to a node_exporter textfile when the session ends.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements the lifecycle Recorder.
type Metrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	jobs      *prometheus.GaugeVec
}

// New registers the cronpad collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cronpad",
			Name:      "mutations_total",
			Help:      "Job mutations by action and outcome.",
		}, []string{"action", "outcome"}),
		jobs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "cronpad",
			Name:      "jobs",
			Help:      "Jobs in the table by state.",
		}, []string{"state"}),
	}
	m.registry.MustRegister(m.mutations, m.jobs)
	return m
}

// Mutation counts one mutation attempt.
func (m *Metrics) Mutation(action, outcome string) {
	m.mutations.WithLabelValues(action, outcome).Inc()
}

// Table sets the job gauges.
func (m *Metrics) Table(active, inactive int) {
	m.jobs.WithLabelValues("active").Set(float64(active))
	m.jobs.WithLabelValues("inactive").Set(float64(inactive))
}

// WriteTextfile writes the registry in text exposition format to path.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
