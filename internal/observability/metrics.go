// ABOUTME: Attack metrics collected across engine invocations
// ABOUTME: Atomic counters per outcome kind with point-in-time snapshots

package observability

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// MetricsSnapshot contains a point-in-time snapshot of attack metrics.
type MetricsSnapshot struct {
	AttacksTotal     int64
	Found            int64
	NotFound         int64
	Cancelled        int64
	InvalidInput     int64
	SourceErrors     int64
	CandidatesTested int64
	ActiveAttacks    int64

	// Cumulative scan time across finished attacks.
	ScanTime time.Duration

	// Attempts per second across all finished attacks.
	AverageRate float64

	Timestamp time.Time
}

// String returns a human-readable representation.
func (s *MetricsSnapshot) String() string {
	return fmt.Sprintf(
		"attacks=%d (found=%d not_found=%d cancelled=%d invalid=%d source_errors=%d) candidates=%d rate=%.0f/s active=%d",
		s.AttacksTotal, s.Found, s.NotFound, s.Cancelled, s.InvalidInput, s.SourceErrors,
		s.CandidatesTested, s.AverageRate, s.ActiveAttacks,
	)
}

// AttackMetrics collects counters for attack invocations.
type AttackMetrics struct {
	attacksTotal     atomic.Int64
	found            atomic.Int64
	notFound         atomic.Int64
	cancelled        atomic.Int64
	invalidInput     atomic.Int64
	sourceErrors     atomic.Int64
	candidatesTested atomic.Int64
	activeAttacks    atomic.Int64

	mu       sync.Mutex
	scanTime time.Duration
}

// NewAttackMetrics creates a new metrics collector.
func NewAttackMetrics() *AttackMetrics {
	return &AttackMetrics{}
}

// AttackStarted marks an attack as running.
func (m *AttackMetrics) AttackStarted() {
	m.activeAttacks.Add(1)
}

// RecordAttack records a finished attack by outcome kind name
// ("found", "not_found", "cancelled", "invalid_input", "source_error").
// A matching AttackStarted call is required for kinds that began scanning.
func (m *AttackMetrics) RecordAttack(kind string, attempts int64, elapsed time.Duration, started bool) {
	if started {
		m.activeAttacks.Add(-1)
	}
	m.attacksTotal.Add(1)
	m.candidatesTested.Add(attempts)

	switch kind {
	case "found":
		m.found.Add(1)
	case "not_found":
		m.notFound.Add(1)
	case "cancelled":
		m.cancelled.Add(1)
	case "invalid_input":
		m.invalidInput.Add(1)
	case "source_error":
		m.sourceErrors.Add(1)
	}

	m.mu.Lock()
	m.scanTime += elapsed
	m.mu.Unlock()
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (m *AttackMetrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	scanTime := m.scanTime
	m.mu.Unlock()

	candidates := m.candidatesTested.Load()
	var rate float64
	if scanTime > 0 {
		rate = float64(candidates) / scanTime.Seconds()
	}

	return &MetricsSnapshot{
		AttacksTotal:     m.attacksTotal.Load(),
		Found:            m.found.Load(),
		NotFound:         m.notFound.Load(),
		Cancelled:        m.cancelled.Load(),
		InvalidInput:     m.invalidInput.Load(),
		SourceErrors:     m.sourceErrors.Load(),
		CandidatesTested: candidates,
		ActiveAttacks:    m.activeAttacks.Load(),
		ScanTime:         scanTime,
		AverageRate:      rate,
		Timestamp:        time.Now(),
	}
}

// Reset resets all metrics to zero.
func (m *AttackMetrics) Reset() {
	m.attacksTotal.Store(0)
	m.found.Store(0)
	m.notFound.Store(0)
	m.cancelled.Store(0)
	m.invalidInput.Store(0)
	m.sourceErrors.Store(0)
	m.candidatesTested.Store(0)
	m.activeAttacks.Store(0)

	m.mu.Lock()
	m.scanTime = 0
	m.mu.Unlock()
}
