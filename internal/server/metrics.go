package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Resolution outcomes. Labels never carry test ids or answer data.
const (
	outcomeMatched       = "matched"
	outcomeFallback      = "fallback"
	outcomeUnknownTest   = "unknown_test"
	outcomeMissingGender = "missing_gender"
	outcomeInvalidGender = "invalid_gender"
	outcomeError         = "error"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	requestDuration *prometheus.HistogramVec
	resolutions     *prometheus.CounterVec
	completions     *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them, together with the Go
// runtime and process collectors, on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "psyquest",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route template and status code.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "psyquest",
				Name:      "resolutions_total",
				Help:      "Result resolutions by outcome.",
			},
			[]string{"outcome"},
		),
		completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "psyquest",
				Name:      "completions_total",
				Help:      "Answer submissions by outcome.",
			},
			[]string{"outcome"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "psyquest",
				Name:      "result_cache_lookups_total",
				Help:      "Result cache lookups by hit or miss.",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		m.requestDuration,
		m.resolutions,
		m.completions,
		m.cacheLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
