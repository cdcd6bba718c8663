// Package metrics exposes Prometheus collectors for the extraction pipeline.
package metrics

import (
	"context"
	"sync"
	"time"

	"controle-financeiro/internal/extraction"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Extraction counts pipeline outcomes and fallbacks and times model calls.
// It implements extraction.Observer.
type Extraction struct {
	outcomes   *prometheus.CounterVec
	fallbacks  *prometheus.CounterVec
	generation *prometheus.HistogramVec
}

var (
	defaultOnce sync.Once
	defaultSet  *Extraction
)

// Default returns the collectors registered on the default registry.
func Default() *Extraction {
	defaultOnce.Do(func() {
		defaultSet = New(prometheus.DefaultRegisterer)
	})
	return defaultSet
}

// New registers a fresh collector set on reg.
func New(reg prometheus.Registerer) *Extraction {
	factory := promauto.With(reg)
	return &Extraction{
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "extraction_outcomes_total",
			Help: "Extractions by document source and outcome",
		}, []string{"source", "outcome"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "extraction_fallbacks_total",
			Help: "Pipeline stages that fell back to their default answer",
		}, []string{"stage"}),
		generation: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "llm_generation_duration_seconds",
			Help:    "Latency of language model calls",
			Buckets: []float64{.25, .5, 1, 2, 4, 8, 16, 32},
		}, []string{"provider", "status"}),
	}
}

func (m *Extraction) Fallback(stage string) {
	m.fallbacks.WithLabelValues(stage).Inc()
}

func (m *Extraction) Outcome(source, outcome string) {
	m.outcomes.WithLabelValues(source, outcome).Inc()
}

// InstrumentGenerator times every call made through gen.
func (m *Extraction) InstrumentGenerator(provider string, gen extraction.Generator) extraction.Generator {
	return &timedGenerator{next: gen, provider: provider, hist: m.generation}
}

type timedGenerator struct {
	next     extraction.Generator
	provider string
	hist     *prometheus.HistogramVec
}

func (g *timedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := g.next.Generate(ctx, prompt)
	status := "ok"
	if err != nil {
		status = "error"
	}
	g.hist.WithLabelValues(g.provider, status).Observe(time.Since(start).Seconds())
	return out, err
}
