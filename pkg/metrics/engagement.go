package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the LLM-backed insight handlers
	InsightLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "insight_request_latency_seconds",
		Help:    "Latency of LLM-backed insight handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// Total number of LLM invocations by provider and outcome
	LLMCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_calls_total",
		Help: "Total LLM gateway calls by provider and outcome",
	}, []string{"provider", "outcome"})

	ReEngagementSweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "re_engagement_sweep_duration_seconds",
		Help:    "Duration of the retention sweep job",
		Buckets: prometheus.DefBuckets,
	})
)

func Init() {
	prometheus.MustRegister(
		InsightLatency,
		LLMCallsTotal,
		ReEngagementSweepDuration,
	)
}
