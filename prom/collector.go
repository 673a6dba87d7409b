package prom

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/catsim"
)

var _ catsim.MetricsCollector = (*Collector)(nil)

// Collector implements catsim.MetricsCollector with Prometheus metrics.
type Collector struct {
	levelCategories *prometheus.GaugeVec
	levelPairs      *prometheus.GaugeVec
	levelDuration   *prometheus.HistogramVec
	normalizeNNZ    prometheus.Gauge
	normalizeTime   prometheus.Histogram
	runsTotal       *prometheus.CounterVec
	runDuration     prometheus.Histogram
	runItems        prometheus.Gauge
	runExcluded     prometheus.Gauge
}

// NewCollector registers the catsim metrics with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		levelCategories: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "catsim_level_categories",
			Help: "Number of surviving categories of the last run, per level",
		}, []string{"level"}),
		levelPairs: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "catsim_level_pairs",
			Help: "Number of co-occurring item pairs of the last run, per level",
		}, []string{"level"}),
		levelDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catsim_level_duration_seconds",
			Help:    "Co-occurrence aggregation latency per level in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"level"}),
		normalizeNNZ: f.NewGauge(prometheus.GaugeOpts{
			Name: "catsim_similarity_nnz",
			Help: "Stored entries of the last similarity matrix",
		}),
		normalizeTime: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "catsim_normalize_duration_seconds",
			Help:    "Jaccard normalization latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		runsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catsim_runs_total",
			Help: "Total number of similarity runs by status",
		}, []string{"status"}),
		runDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "catsim_run_duration_seconds",
			Help:    "Similarity run latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
		runItems: f.NewGauge(prometheus.GaugeOpts{
			Name: "catsim_run_items",
			Help: "Items in the result of the last successful run",
		}),
		runExcluded: f.NewGauge(prometheus.GaugeOpts{
			Name: "catsim_run_excluded_items",
			Help: "Disambiguation items dropped by the last successful run",
		}),
	}
}

// RecordLevel implements catsim.MetricsCollector.
func (c *Collector) RecordLevel(level, categories, pairs int, duration time.Duration) {
	l := strconv.Itoa(level)
	c.levelCategories.WithLabelValues(l).Set(float64(categories))
	c.levelPairs.WithLabelValues(l).Set(float64(pairs))
	c.levelDuration.WithLabelValues(l).Observe(duration.Seconds())
}

// RecordNormalize implements catsim.MetricsCollector.
func (c *Collector) RecordNormalize(nnz int, duration time.Duration) {
	c.normalizeNNZ.Set(float64(nnz))
	c.normalizeTime.Observe(duration.Seconds())
}

// RecordRun implements catsim.MetricsCollector.
func (c *Collector) RecordRun(items, excluded int, duration time.Duration, err error) {
	c.runDuration.Observe(duration.Seconds())
	if err != nil {
		c.runsTotal.WithLabelValues("error").Inc()
		return
	}
	c.runsTotal.WithLabelValues("success").Inc()
	c.runItems.Set(float64(items))
	c.runExcluded.Set(float64(excluded))
}
