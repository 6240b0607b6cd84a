// Package metrics exposes Prometheus instrumentation for the obituary server.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-obituary/pkg/generator"
	"github.com/goliatone/go-obituary/pkg/model"
	"github.com/goliatone/go-obituary/pkg/orchestrator"
)

// Submission outcomes.
const (
	OutcomeRemote   = "remote"
	OutcomeFallback = "fallback"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics holds the collectors registered for one server.
type Metrics struct {
	registry *prometheus.Registry

	submissions       *prometheus.CounterVec
	generatorCalls    *prometheus.CounterVec
	generatorDuration *prometheus.HistogramVec
	downloads         prometheus.Counter
}

// New registers the collectors on a fresh registry, together with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "obituary_submissions_total",
				Help: "Form submissions by outcome",
			},
			[]string{"outcome", "tone"}, // outcome: remote, fallback, invalid, error
		),
		generatorCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "obituary_generator_calls_total",
				Help: "Remote generator calls by result",
			},
			[]string{"result"}, // result: success or a failure kind
		),
		generatorDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "obituary_generator_duration_seconds",
				Help:    "Remote generator round trip duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"result"},
		),
		downloads: factory.NewCounter(prometheus.CounterOpts{
			Name: "obituary_downloads_total",
			Help: "Obituary text downloads served",
		}),
	}
}

// Registry exposes the underlying registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordSubmission counts one submission from its resulting snapshot and
// error.
func (m *Metrics) RecordSubmission(snap orchestrator.Snapshot, err error) {
	if m == nil {
		return
	}
	tone := string(model.DefaultTone)
	if parsed, ok := model.ParseTone(string(snap.Input.Tone)); ok {
		tone = string(parsed)
	}
	m.submissions.WithLabelValues(Outcome(snap, err), tone).Inc()
}

// RecordDownload counts one served download.
func (m *Metrics) RecordDownload() {
	if m == nil {
		return
	}
	m.downloads.Inc()
}

// Outcome classifies a submission result.
func Outcome(snap orchestrator.Snapshot, err error) string {
	var validation *model.ValidationError
	switch {
	case errors.As(err, &validation):
		return OutcomeInvalid
	case err != nil:
		return OutcomeError
	case snap.Preview.Fallback:
		return OutcomeFallback
	default:
		return OutcomeRemote
	}
}

// InstrumentGenerator times each remote call made through gen. A nil gen is
// returned unchanged so the orchestrator still sees "no generator".
func (m *Metrics) InstrumentGenerator(gen orchestrator.Generator) orchestrator.Generator {
	if m == nil || gen == nil {
		return gen
	}
	return &instrumentedGenerator{next: gen, metrics: m}
}

type instrumentedGenerator struct {
	next    orchestrator.Generator
	metrics *Metrics
}

func (g *instrumentedGenerator) Submit(ctx context.Context, in model.FormInput) (model.GeneratedContent, error) {
	start := time.Now()
	content, err := g.next.Submit(ctx, in)

	result := "success"
	if err != nil {
		result = "error"
		var f *generator.Failure
		if errors.As(err, &f) {
			result = string(f.Kind)
		}
	}
	g.metrics.generatorCalls.WithLabelValues(result).Inc()
	g.metrics.generatorDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return content, err
}
