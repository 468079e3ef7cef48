package events

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts published events by type and outcome.
type Metrics struct {
	published *prometheus.CounterVec
}

// NewMetrics registers the event counters with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		published: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "incident_events_published_total",
				Help: "Total number of domain events handed to the broker.",
			},
			[]string{"event_type", "outcome"},
		),
	}
	if err := reg.Register(m.published); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(t EventType, outcome string) {
	if m == nil {
		return
	}
	m.published.WithLabelValues(string(t), outcome).Inc()
}
