// Package metrics defines the Prometheus collectors for count runs and writes
// them to a node-exporter textfile, since a one-shot CLI has nothing to scrape.
//
// Every process runs once and overwrites the textfile, so all collectors are
// gauges describing the last run. Nothing here is a monotonic counter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rcliao/wordfreq/internal/counter"
	"github.com/rcliao/wordfreq/internal/model"
)

// Metrics holds the collectors and the registry they are registered with.
type Metrics struct {
	LastRunSuccess   prometheus.Gauge
	LastRunTimestamp prometheus.Gauge
	PatternMatches   *prometheus.GaugeVec
	ResidualTokens   prometheus.Gauge
	ExcludedTokens   prometheus.Gauge
	Terms            prometheus.Gauge

	registry *prometheus.Registry
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		LastRunSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordfreq_last_run_success",
				Help: "1 if the last count run succeeded, 0 if it failed.",
			},
		),
		LastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordfreq_last_run_timestamp_seconds",
				Help: "Unix time the last count run finished.",
			},
		),
		PatternMatches: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wordfreq_last_run_pattern_matches",
				Help: "Pattern occurrences found in the last run, by pattern kind.",
			},
			[]string{"kind"},
		),
		ResidualTokens: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordfreq_last_run_residual_tokens",
				Help: "Residual word tokens counted in the last run.",
			},
		),
		ExcludedTokens: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordfreq_last_run_excluded_tokens",
				Help: "Tokens dropped by an exclusion filter in the last run.",
			},
		),
		Terms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordfreq_last_run_terms",
				Help: "Rows in the last written frequency table.",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.LastRunSuccess,
		m.LastRunTimestamp,
		m.PatternMatches,
		m.ResidualTokens,
		m.ExcludedTokens,
		m.Terms,
	)
	return m
}

// ObserveResult replaces the result gauges with the counts of res.
func (m *Metrics) ObserveResult(res *counter.Result) {
	m.PatternMatches.Reset()
	m.PatternMatches.WithLabelValues(string(model.Literal)).Set(0)
	m.PatternMatches.WithLabelValues(string(model.Wildcard)).Set(0)
	for _, a := range res.Applied {
		m.PatternMatches.WithLabelValues(string(a.Pattern.Kind)).Add(float64(a.Count))
	}
	m.ResidualTokens.Set(float64(res.Stats.Tokens))
	m.ExcludedTokens.Set(float64(res.Stats.Excluded))
	m.Terms.Set(float64(res.Final.Len()))
}

// ObserveRun records a run outcome and its finish time.
func (m *Metrics) ObserveRun(status string) {
	if status == model.StatusOK {
		m.LastRunSuccess.Set(1)
	} else {
		m.LastRunSuccess.Set(0)
	}
	m.LastRunTimestamp.SetToCurrentTime()
}

// Registry exposes the registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes the current values in the Prometheus text format.
// An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
