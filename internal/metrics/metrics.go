package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Planner Metrics
var (
	PlansComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlansComputed,
			Help: HelpTextPlansComputed,
		},
		[]string{LabelItem},
	)

	PlanErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlanErrors,
			Help: HelpTextPlanErrors,
		},
		[]string{LabelReason},
	)

	PlanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePlanDuration,
			Help:    HelpTextPlanDuration,
			Buckets: HTTPLatencyBuckets,
		},
	)

	PlanCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlanCacheHits,
			Help: HelpTextPlanCacheHits,
		},
	)

	PlanCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlanCacheMisses,
			Help: HelpTextPlanCacheMisses,
		},
	)

	PlanSummaryItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePlanSummaryItems,
			Help:    HelpTextPlanSummaryItems,
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		},
	)
)

// Layout Metrics
var (
	LayoutVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLayoutVerifications,
			Help: HelpTextLayoutVerifications,
		},
		[]string{LabelResult},
	)
)
