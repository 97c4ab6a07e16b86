package portfind

import (
	"time"

	"go.uber.org/atomic"
)

// Metrics tracks resolver health statistics
type Metrics struct {
	// Enumeration Statistics
	Enumerations        atomic.Int64 // Total enumeration attempts
	EnumerationFailures atomic.Int64 // Enumerations the OS facility failed

	// Lookup Operations
	Lookups          atomic.Int64 // Total FindPort/FindPorts calls
	ResolvedLookups  atomic.Int64 // Lookups resolved to exactly one port
	NotFoundLookups  atomic.Int64 // Lookups with zero matches
	AmbiguousLookups atomic.Int64 // Lookups with two or more matches
	CriteriaErrors   atomic.Int64 // Lookups rejected for unknown attributes

	// Info Operations
	InfoLookups  atomic.Int64 // Total PortInfo/DescribePort calls
	InfoNotFound atomic.Int64 // Info calls for an unattached path

	// Last Observation
	LastMatchCount atomic.Int64 // Match count of the last lookup
	LastLookupTime atomic.Int64 // Unix timestamp of last lookup
}

// MetricsSnapshot is a point-in-time copy of the resolver metrics with
// derived rates, suitable for external consumption.
type MetricsSnapshot struct {
	Timestamp time.Time

	Enumerations        int64
	EnumerationFailures int64

	Lookups          int64
	ResolvedLookups  int64
	NotFoundLookups  int64
	AmbiguousLookups int64
	CriteriaErrors   int64

	InfoLookups  int64
	InfoNotFound int64

	LastMatchCount int64
	LastLookupTime time.Time

	// LookupSuccessRate is the share of lookups resolved to exactly one
	// port, in percent. 100 when no lookups have happened yet.
	LookupSuccessRate float64

	// EnumerationSuccessRate is the share of enumerations the OS facility
	// completed, in percent. 100 when none have happened yet.
	EnumerationSuccessRate float64
}

func (m *Metrics) snapshot() *MetricsSnapshot {
	s := &MetricsSnapshot{
		Timestamp:           time.Now(),
		Enumerations:        m.Enumerations.Load(),
		EnumerationFailures: m.EnumerationFailures.Load(),
		Lookups:             m.Lookups.Load(),
		ResolvedLookups:     m.ResolvedLookups.Load(),
		NotFoundLookups:     m.NotFoundLookups.Load(),
		AmbiguousLookups:    m.AmbiguousLookups.Load(),
		CriteriaErrors:      m.CriteriaErrors.Load(),
		InfoLookups:         m.InfoLookups.Load(),
		InfoNotFound:        m.InfoNotFound.Load(),
		LastMatchCount:      m.LastMatchCount.Load(),
	}
	if ts := m.LastLookupTime.Load(); ts > 0 {
		s.LastLookupTime = time.Unix(ts, 0)
	}
	s.LookupSuccessRate = successRate(s.ResolvedLookups, s.Lookups)
	s.EnumerationSuccessRate = successRate(s.Enumerations-s.EnumerationFailures, s.Enumerations)
	return s
}

func successRate(successes, total int64) float64 {
	if total <= 0 {
		return 100.0
	}
	return float64(successes) / float64(total) * 100.0
}

// GetMetrics returns the current metrics instance
func (s *Service) GetMetrics() *Metrics {
	if s.metrics == nil {
		return &Metrics{} // Return empty metrics if not initialized
	}
	return s.metrics
}

// GetMetricsSnapshot creates a snapshot of the resolver metrics
func (s *Service) GetMetricsSnapshot() *MetricsSnapshot {
	if s.metrics == nil {
		return &MetricsSnapshot{
			Timestamp:              time.Now(),
			LookupSuccessRate:      100.0,
			EnumerationSuccessRate: 100.0,
		}
	}
	return s.metrics.snapshot()
}

// EnableMetrics turns on metrics collection
func (s *Service) EnableMetrics() {
	s.metricsEnabled.Store(true)
}

// DisableMetrics turns off metrics collection
func (s *Service) DisableMetrics() {
	s.metricsEnabled.Store(false)
}

// IsMetricsEnabled returns whether metrics collection is enabled
func (s *Service) IsMetricsEnabled() bool {
	return s.metricsEnabled.Load()
}

// ResetMetrics clears all metrics (useful for testing)
func (s *Service) ResetMetrics() {
	if s.metrics != nil {
		s.metrics = &Metrics{}
	}
}
