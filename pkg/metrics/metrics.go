package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "plancompare_"

// Results for FilesProcessed.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	filesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "files_processed_total",
			Help: "Readings files processed by result",
		},
		[]string{"result"},
	)
	parseFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "parse_failures_total",
			Help: "Readings files rejected by reason",
		},
		[]string{"reason"},
	)
	compareLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    metricPrefix + "compare_latency_seconds",
			Help:    "Time to load and cost one readings file",
			Buckets: prometheus.DefBuckets,
		},
	)
	planCost = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: metricPrefix + "plan_cost",
			Help: "Rounded cost of the most recently compared period by plan",
		},
		[]string{"plan"},
	)
)

// Init registers the collectors with the default registry. It is safe to
// call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(filesProcessed, parseFailures, compareLatency, planCost)
	})
}

// ObserveFile records a processed file and how long it took.
func ObserveFile(result string, elapsed time.Duration) {
	filesProcessed.WithLabelValues(result).Inc()
	compareLatency.Observe(elapsed.Seconds())
}

// ObserveParseFailure records a file that could not be parsed.
func ObserveParseFailure(reason string) {
	parseFailures.WithLabelValues(reason).Inc()
}

// ObservePlanCost records the latest rounded cost for a plan.
func ObservePlanCost(planID string, rounded int64) {
	planCost.WithLabelValues(planID).Set(float64(rounded))
}
