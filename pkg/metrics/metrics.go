package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the analysis pipeline
type Metrics struct {
	CompletionsTotal   *prometheus.CounterVec
	CompletionSeconds  *prometheus.HistogramVec
	CompletionCacheHit *prometheus.CounterVec
	DomainResultsTotal *prometheus.CounterVec
	PipelineRunsTotal  *prometheus.CounterVec
	PipelineSeconds    prometheus.Histogram
	RecordsCreated     *prometheus.CounterVec
	BotOperationsTotal *prometheus.CounterVec
}

// Default registers the collectors with the default Prometheus registry
func Default() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

// New registers the collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CompletionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legalmind_completions_total",
				Help: "Model completion calls by outcome",
			},
			[]string{"model", "status"},
		),
		CompletionSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "legalmind_completion_seconds",
				Help:    "Model completion latency",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"model"},
		),
		CompletionCacheHit: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legalmind_completion_cache_total",
				Help: "Completion cache lookups by result",
			},
			[]string{"result"},
		),
		DomainResultsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legalmind_domain_results_total",
				Help: "Per-domain analysis results by shape",
			},
			[]string{"domain", "shape"},
		),
		PipelineRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legalmind_pipeline_runs_total",
				Help: "Transcript analysis runs by outcome",
			},
			[]string{"status"},
		),
		PipelineSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "legalmind_pipeline_seconds",
				Help:    "End-to-end transcript analysis latency",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
			},
		),
		RecordsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legalmind_records_created_total",
				Help: "Records materialized into the task repository",
			},
			[]string{"kind", "domain"},
		),
		BotOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legalmind_bot_operations_total",
				Help: "Meeting bot API calls by operation and outcome",
			},
			[]string{"operation", "status"},
		),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveCompletion records one completion call
func (m *Metrics) ObserveCompletion(model string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.CompletionsTotal.WithLabelValues(model, status(err)).Inc()
	m.CompletionSeconds.WithLabelValues(model).Observe(elapsed.Seconds())
}

// ObserveCacheLookup records a completion cache hit or miss
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CompletionCacheHit.WithLabelValues(result).Inc()
}

// ObserveDomainResult records whether a domain produced structured or opaque output
func (m *Metrics) ObserveDomainResult(domain string, structured bool) {
	if m == nil {
		return
	}
	shape := "opaque"
	if structured {
		shape = "structured"
	}
	m.DomainResultsTotal.WithLabelValues(domain, shape).Inc()
}

// ObservePipeline records one full pipeline run
func (m *Metrics) ObservePipeline(elapsed time.Duration, failed bool) {
	if m == nil {
		return
	}
	s := "success"
	if failed {
		s = "error"
	}
	m.PipelineRunsTotal.WithLabelValues(s).Inc()
	m.PipelineSeconds.Observe(elapsed.Seconds())
}

// AddRecords counts materialized records of kind ("action", "insight", "meeting")
func (m *Metrics) AddRecords(kind, domain string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.RecordsCreated.WithLabelValues(kind, domain).Add(float64(n))
}

// ObserveBotOperation records one meeting bot API call
func (m *Metrics) ObserveBotOperation(operation string, err error) {
	if m == nil {
		return
	}
	m.BotOperationsTotal.WithLabelValues(operation, status(err)).Inc()
}
