package catsim

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting pipeline metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus (see package prom).
type MetricsCollector interface {
	// RecordLevel is called after each aggregated level.
	// categories is the number of surviving categories, pairs the number of
	// distinct co-occurring item pairs at that level.
	RecordLevel(level, categories, pairs int, duration time.Duration)

	// RecordNormalize is called after the Jaccard normalization.
	// nnz is the number of stored similarity entries.
	RecordNormalize(nnz int, duration time.Duration)

	// RecordRun is called once per pipeline run, err is nil if successful.
	RecordRun(items, excluded int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLevel(int, int, int, time.Duration) {}
func (NoopMetricsCollector) RecordNormalize(int, time.Duration)       {}
func (NoopMetricsCollector) RecordRun(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LevelCount      atomic.Int64
	LevelCategories atomic.Int64
	LevelPairs      atomic.Int64
	LevelTotalNanos atomic.Int64
	NormalizeCount  atomic.Int64
	NormalizeNNZ    atomic.Int64
	RunCount        atomic.Int64
	RunErrors       atomic.Int64
	RunItems        atomic.Int64
	RunExcluded     atomic.Int64
	RunTotalNanos   atomic.Int64
}

// RecordLevel implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLevel(level, categories, pairs int, duration time.Duration) {
	b.LevelCount.Add(1)
	b.LevelCategories.Add(int64(categories))
	b.LevelPairs.Add(int64(pairs))
	b.LevelTotalNanos.Add(duration.Nanoseconds())
}

// RecordNormalize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNormalize(nnz int, duration time.Duration) {
	b.NormalizeCount.Add(1)
	b.NormalizeNNZ.Add(int64(nnz))
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(items, excluded int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	b.RunItems.Add(int64(items))
	b.RunExcluded.Add(int64(excluded))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LevelCount:      b.LevelCount.Load(),
		LevelCategories: b.LevelCategories.Load(),
		LevelPairs:      b.LevelPairs.Load(),
		LevelAvgNanos:   avg(b.LevelTotalNanos.Load(), b.LevelCount.Load()),
		NormalizeCount:  b.NormalizeCount.Load(),
		NormalizeNNZ:    b.NormalizeNNZ.Load(),
		RunCount:        b.RunCount.Load(),
		RunErrors:       b.RunErrors.Load(),
		RunItems:        b.RunItems.Load(),
		RunExcluded:     b.RunExcluded.Load(),
		RunAvgNanos:     avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LevelCount      int64
	LevelCategories int64
	LevelPairs      int64
	LevelAvgNanos   int64
	NormalizeCount  int64
	NormalizeNNZ    int64
	RunCount        int64
	RunErrors       int64
	RunItems        int64
	RunExcluded     int64
	RunAvgNanos     int64
}
