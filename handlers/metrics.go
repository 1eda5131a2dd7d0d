package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what the composer and the submitter do.
type Metrics struct {
	// Composed extrinsics, labelled by signed and delegated
	Composed *prometheus.CounterVec
	// Signing payloads longer than 256 bytes that were signed as a digest
	Digested prometheus.Counter
	// Submissions, labelled by result
	Submitted *prometheus.CounterVec
}

func newMetrics(namespace string) *Metrics {
	return &Metrics{
		Composed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "extrinsic",
			Name:      "composed_total",
			Help:      "Number of composed extrinsics.",
		}, []string{"signed", "delegated"}),
		Digested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "extrinsic",
			Name:      "digested_payloads_total",
			Help:      "Number of signing payloads replaced by their blake2b-256 digest.",
		}),
		Submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "extrinsic",
			Name:      "submitted_total",
			Help:      "Number of submitted extrinsics.",
		}, []string{"result"}),
	}
}

// GetPrometheusMetrics returns metrics registered on reg.
func GetPrometheusMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := newMetrics(namespace)
	for _, c := range []prometheus.Collector{m.Composed, m.Digested, m.Submitted} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NilMetrics returns metrics that are counted but never exported.
func NilMetrics() *Metrics {
	return newMetrics("")
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
