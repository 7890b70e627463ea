// Package metrics holds the service's Prometheus collectors in a private
// registry exposed on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Recorder struct {
	registry *prometheus.Registry

	generations    *prometheus.CounterVec
	generatedWords prometheus.Histogram
	shortfalls     *prometheus.CounterVec
	postsSaved     *prometheus.CounterVec
	ruleExecutions *prometheus.CounterVec
}

func New() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		generations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "content_studio_generations_total",
			Help: "Total number of pieces of copy generated, by content type, tone and length.",
		}, []string{"content_type", "tone", "length"}),
		generatedWords: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "content_studio_generated_words",
			Help:    "Word count of generated copy.",
			Buckets: []float64{25, 50, 80, 110, 150, 200, 250, 300, 350},
		}),
		shortfalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "content_studio_generation_shortfalls_total",
			Help: "Generations that ran out of expansion sentences below the band minimum.",
		}, []string{"length"}),
		postsSaved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "content_studio_posts_saved_total",
			Help: "Posts saved to the library, by platform.",
		}, []string{"platform"}),
		ruleExecutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "content_studio_rule_executions_total",
			Help: "Automation rule executions, by trigger and origin (test or evaluation).",
		}, []string{"trigger", "origin"}),
	}
}

func (r *Recorder) ObserveGeneration(contentType, tone, length string, words int, shortfall bool) {
	r.generations.WithLabelValues(contentType, tone, length).Inc()
	r.generatedWords.Observe(float64(words))
	if shortfall {
		r.shortfalls.WithLabelValues(length).Inc()
	}
}

func (r *Recorder) PostSaved(platform string) {
	r.postsSaved.WithLabelValues(platform).Inc()
}

func (r *Recorder) RuleExecuted(trigger, origin string) {
	r.ruleExecutions.WithLabelValues(trigger, origin).Inc()
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
