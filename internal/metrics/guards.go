// Package metrics exposes scope guard activity as Prometheus counters.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/systmms/scope/pkg/scope"
)

// GuardEventsMetric is the name of the guard transition counter.
const GuardEventsMetric = "scope_guard_events_total"

// GuardMetrics records guard transitions. It implements scope.Observer.
type GuardMetrics struct {
	events *prometheus.CounterVec
}

// NewGuardMetrics registers the guard counters on reg.
func NewGuardMetrics(reg prometheus.Registerer) *GuardMetrics {
	return &GuardMetrics{
		events: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: GuardEventsMetric,
				Help: "Total number of scope guard transitions by policy and outcome",
			},
			[]string{"policy", "outcome"},
		),
	}
}

// ObserveGuard records a guard event.
func (m *GuardMetrics) ObserveGuard(e scope.Event) {
	m.events.WithLabelValues(e.Policy.String(), e.Outcome.String()).Inc()
}

// Events returns the underlying counter vector for testing.
func (m *GuardMetrics) Events() *prometheus.CounterVec {
	return m.events
}

// Sample is one counter value read back from a gatherer.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Snapshot gathers every counter from g, sorted by name and labels.
func Snapshot(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var samples []Sample
	for _, family := range families {
		if family.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, metric := range family.GetMetric() {
			samples = append(samples, Sample{
				Name:   family.GetName(),
				Labels: formatLabels(metric.GetLabel()),
				Value:  metric.GetCounter().GetValue(),
			})
		}
	}

	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Name != samples[j].Name {
			return samples[i].Name < samples[j].Name
		}
		return samples[i].Labels < samples[j].Labels
	})
	return samples, nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", p.GetName(), p.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
