package terminology

import "sync/atomic"

// Metrics tracks terminology operation counts using lock-free atomics.
// All methods are safe for concurrent use and safe on a nil receiver, so
// instrumentation can be left unconfigured.
type Metrics struct {
	locatesTotal atomic.Uint64
	locatesValid atomic.Uint64

	displays atomic.Uint64

	filtersMaterialized atomic.Uint64

	canonicalHits   atomic.Uint64
	canonicalMisses atomic.Uint64

	batchJobs atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordLocate records a completed locate and whether the code was valid.
func (m *Metrics) RecordLocate(valid bool) {
	if m == nil {
		return
	}
	m.locatesTotal.Add(1)
	if valid {
		m.locatesValid.Add(1)
	}
}

// RecordDisplay records a display resolution.
func (m *Metrics) RecordDisplay() {
	if m == nil {
		return
	}
	m.displays.Add(1)
}

// RecordFilterMaterialized records an eager filter materialization.
func (m *Metrics) RecordFilterMaterialized() {
	if m == nil {
		return
	}
	m.filtersMaterialized.Add(1)
}

// RecordCanonicalLookup records a canonical-form memoization hit or miss.
func (m *Metrics) RecordCanonicalLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.canonicalHits.Add(1)
	} else {
		m.canonicalMisses.Add(1)
	}
}

// RecordBatchJob records one completed batch check job.
func (m *Metrics) RecordBatchJob() {
	if m == nil {
		return
	}
	m.batchJobs.Add(1)
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	LocatesTotal        uint64
	LocatesValid        uint64
	Displays            uint64
	FiltersMaterialized uint64
	CanonicalHits       uint64
	CanonicalMisses     uint64
	BatchJobs           uint64
}

// Snapshot returns a consistent-enough copy of the counters for reporting.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		LocatesTotal:        m.locatesTotal.Load(),
		LocatesValid:        m.locatesValid.Load(),
		Displays:            m.displays.Load(),
		FiltersMaterialized: m.filtersMaterialized.Load(),
		CanonicalHits:       m.canonicalHits.Load(),
		CanonicalMisses:     m.canonicalMisses.Load(),
		BatchJobs:           m.batchJobs.Load(),
	}
}
