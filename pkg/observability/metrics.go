package observability

import (
	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the chatgraph collectors.
type Metrics struct {
	Matches     *prometheus.CounterVec
	Relocations prometheus.Counter
	Responses   *prometheus.CounterVec
	Distance    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatgraph_matches_total",
				Help: "Messages routed, by match outcome (exact, fuzzy, none).",
			},
			[]string{"kind"},
		),
		Relocations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatgraph_relocations_total",
			Help: "Agent moves along an edge.",
		}),
		Responses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatgraph_responses_total",
				Help: "Responses emitted, by whether the default response was used.",
			},
			[]string{"fallback"},
		),
		Distance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chatgraph_fuzzy_distance",
			Help:    "Edit distance of accepted fuzzy matches.",
			Buckets: []float64{1, 2, 3, 4, 6, 8},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Matches, m.Relocations, m.Responses, m.Distance)
	}
	return m
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMatch: func(e *domain.MatchEvent) {
			m.Matches.WithLabelValues(string(e.Kind)).Inc()
			if e.Kind == domain.MatchFuzzy {
				m.Distance.Observe(float64(e.Distance))
			}
		},
		OnRelocate: func(e *domain.RelocationEvent) {
			if e.Type == domain.EventAgentRelocated {
				m.Relocations.Inc()
			}
		},
		OnResponse: func(e *domain.ResponseEvent) {
			fallback := "false"
			if e.Fallback {
				fallback = "true"
			}
			m.Responses.WithLabelValues(fallback).Inc()
		},
	}
}
