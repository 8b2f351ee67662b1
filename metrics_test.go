package terminology

import "testing"

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordLocate(true)
	m.RecordLocate(true)
	m.RecordLocate(false)
	m.RecordDisplay()
	m.RecordFilterMaterialized()
	m.RecordCanonicalLookup(true)
	m.RecordCanonicalLookup(false)
	m.RecordBatchJob()

	s := m.Snapshot()
	if s.LocatesTotal != 3 || s.LocatesValid != 2 {
		t.Errorf("locates = %d/%d; want 3/2", s.LocatesTotal, s.LocatesValid)
	}
	if s.Displays != 1 {
		t.Errorf("Displays = %d; want 1", s.Displays)
	}
	if s.FiltersMaterialized != 1 {
		t.Errorf("FiltersMaterialized = %d; want 1", s.FiltersMaterialized)
	}
	if s.CanonicalHits != 1 || s.CanonicalMisses != 1 {
		t.Errorf("canonical = %d/%d; want 1/1", s.CanonicalHits, s.CanonicalMisses)
	}
	if s.BatchJobs != 1 {
		t.Errorf("BatchJobs = %d; want 1", s.BatchJobs)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	// Instrumentation is optional; nil must be safe everywhere.
	m.RecordLocate(true)
	m.RecordDisplay()
	m.RecordFilterMaterialized()
	m.RecordCanonicalLookup(false)
	m.RecordBatchJob()

	if s := m.Snapshot(); s != (MetricsSnapshot{}) {
		t.Errorf("nil Snapshot() = %+v; want zero", s)
	}
}
