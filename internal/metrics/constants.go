package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Planner metric names
const (
	MetricNamePlansComputed    = "plans_computed_total"
	MetricNamePlanErrors       = "plan_errors_total"
	MetricNamePlanDuration     = "plan_duration_seconds"
	MetricNamePlanCacheHits    = "plan_cache_hits_total"
	MetricNamePlanCacheMisses  = "plan_cache_misses_total"
	MetricNamePlanSummaryItems = "plan_summary_items"
)

// Layout metric names
const (
	MetricNameLayoutVerifications = "layout_verifications_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Planner metric help text
const (
	HelpTextPlansComputed    = "Total number of production plans computed"
	HelpTextPlanErrors       = "Total number of failed plan requests"
	HelpTextPlanDuration     = "Production plan resolution latency in seconds"
	HelpTextPlanCacheHits    = "Total number of plan cache hits"
	HelpTextPlanCacheMisses  = "Total number of plan cache misses"
	HelpTextPlanSummaryItems = "Number of distinct items in a computed plan summary"
)

// Layout metric help text
const (
	HelpTextLayoutVerifications = "Total number of factory layout verifications"
)

// Metric label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelItem   = "item"
	LabelReason = "reason"
	LabelResult = "result"
)

// Plan error reasons
const (
	ReasonBadSpec = "bad_spec"
	ReasonResolve = "resolve"
)

// Layout verification results
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
)

// HTTPLatencyBuckets covers sub-millisecond static responses up to slow plans.
var HTTPLatencyBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
