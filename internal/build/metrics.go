package build

import (
	"sync"
	"time"
)

// Metrics tracks render performance across pool runs.
type Metrics struct {
	TotalRenders      int64
	SuccessfulRenders int64
	FailedRenders     int64
	CacheHits         int64
	AverageDuration   time.Duration
	TotalDuration     time.Duration
	mutex             sync.RWMutex
}

// Snapshot is a point-in-time copy of Metrics.
type Snapshot struct {
	TotalRenders      int64         `json:"total_renders" yaml:"total_renders"`
	SuccessfulRenders int64         `json:"successful_renders" yaml:"successful_renders"`
	FailedRenders     int64         `json:"failed_renders" yaml:"failed_renders"`
	CacheHits         int64         `json:"cache_hits" yaml:"cache_hits"`
	AverageDuration   time.Duration `json:"average_duration" yaml:"average_duration"`
	TotalDuration     time.Duration `json:"total_duration" yaml:"total_duration"`
}

// NewMetrics creates an empty metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record adds one render result to the metrics.
func (m *Metrics) Record(result Result) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.TotalRenders++
	m.TotalDuration += result.Duration

	if result.CacheHit {
		m.CacheHits++
	}

	if result.Err != nil {
		m.FailedRenders++
	} else {
		m.SuccessfulRenders++
	}

	m.AverageDuration = m.TotalDuration / time.Duration(m.TotalRenders)
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return Snapshot{
		TotalRenders:      m.TotalRenders,
		SuccessfulRenders: m.SuccessfulRenders,
		FailedRenders:     m.FailedRenders,
		CacheHits:         m.CacheHits,
		AverageDuration:   m.AverageDuration,
		TotalDuration:     m.TotalDuration,
	}
}

// Reset zeroes every counter.
func (m *Metrics) Reset() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.TotalRenders = 0
	m.SuccessfulRenders = 0
	m.FailedRenders = 0
	m.CacheHits = 0
	m.AverageDuration = 0
	m.TotalDuration = 0
}

// CacheHitRate returns the cache hit rate as a percentage.
func (m *Metrics) CacheHitRate() float64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.TotalRenders == 0 {
		return 0.0
	}

	return float64(m.CacheHits) / float64(m.TotalRenders) * 100.0
}

// SuccessRate returns the success rate as a percentage.
func (m *Metrics) SuccessRate() float64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.TotalRenders == 0 {
		return 0.0
	}

	return float64(m.SuccessfulRenders) / float64(m.TotalRenders) * 100.0
}
