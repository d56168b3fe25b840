package lshdedup

import (
	"sync/atomic"
	"time"
)

// QueryKind identifies a duplicate query operation.
type QueryKind string

const (
	QueryAllDuplicates QueryKind = "all_duplicates"
	QueryDuplicatesOf  QueryKind = "duplicates_of"
	QueryIsDuplicate   QueryKind = "is_duplicate"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    updateCounter  prometheus.Counter
//	    queryHistogram *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordQuery(kind lshdedup.QueryKind, results int, d time.Duration, err error) {
//	    p.queryHistogram.WithLabelValues(string(kind)).Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordUpdate is called after each document registration.
	// duplicate reports whether the id was already registered.
	RecordUpdate(duration time.Duration, duplicate bool, err error)

	// RecordQuery is called after each duplicate query with the number of results.
	RecordQuery(kind QueryKind, results int, duration time.Duration, err error)

	// RecordPersist is called after each save (write=true) or load.
	RecordPersist(write bool, bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordUpdate(time.Duration, bool, error) {}
func (NoopMetricsCollector) RecordQuery(QueryKind, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordPersist(bool, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	UpdateCount      atomic.Int64
	UpdateErrors     atomic.Int64
	UpdateDuplicates atomic.Int64
	UpdateTotalNanos atomic.Int64
	QueryCount       atomic.Int64
	QueryErrors      atomic.Int64
	QueryResults     atomic.Int64
	QueryTotalNanos  atomic.Int64
	SaveCount        atomic.Int64
	SaveBytes        atomic.Int64
	LoadCount        atomic.Int64
	LoadBytes        atomic.Int64
	PersistErrors    atomic.Int64
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, duplicate bool, err error) {
	b.UpdateCount.Add(1)
	b.UpdateTotalNanos.Add(duration.Nanoseconds())
	if duplicate {
		b.UpdateDuplicates.Add(1)
	}
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(_ QueryKind, results int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	b.QueryResults.Add(int64(results))
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordPersist implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPersist(write bool, bytes int, _ time.Duration, err error) {
	if err != nil {
		b.PersistErrors.Add(1)
		return
	}
	if write {
		b.SaveCount.Add(1)
		b.SaveBytes.Add(int64(bytes))
	} else {
		b.LoadCount.Add(1)
		b.LoadBytes.Add(int64(bytes))
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		UpdateCount:      b.UpdateCount.Load(),
		UpdateErrors:     b.UpdateErrors.Load(),
		UpdateDuplicates: b.UpdateDuplicates.Load(),
		UpdateAvgNanos:   avg(b.UpdateTotalNanos.Load(), b.UpdateCount.Load()),
		QueryCount:       b.QueryCount.Load(),
		QueryErrors:      b.QueryErrors.Load(),
		QueryResults:     b.QueryResults.Load(),
		QueryAvgNanos:    avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		SaveCount:        b.SaveCount.Load(),
		SaveBytes:        b.SaveBytes.Load(),
		LoadCount:        b.LoadCount.Load(),
		LoadBytes:        b.LoadBytes.Load(),
		PersistErrors:    b.PersistErrors.Load(),
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
	UpdateCount      int64
	UpdateErrors     int64
	UpdateDuplicates int64
	UpdateAvgNanos   int64
	QueryCount       int64
	QueryErrors      int64
	QueryResults     int64
	QueryAvgNanos    int64
	SaveCount        int64
	SaveBytes        int64
	LoadCount        int64
	LoadBytes        int64
	PersistErrors    int64
}
