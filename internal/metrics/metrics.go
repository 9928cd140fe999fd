package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	TotalArticlesProcessed int64
	DuplicatesFiltered     int64
	DateRejects            int64
	ExclusionsApplied      int64
	SourceFailures         int64
	TaskTimeouts           int64

	// Timings
	LastCollectionTime    time.Duration
	AverageCollectionTime time.Duration
	TotalCollectionTime   time.Duration
	CollectionCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementArticlesProcessed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TotalArticlesProcessed += int64(n)
}

func (m *Metrics) IncrementDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) IncrementDateRejects() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DateRejects++
}

func (m *Metrics) IncrementExclusionsApplied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExclusionsApplied++
}

func (m *Metrics) IncrementSourceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFailures++
}

func (m *Metrics) IncrementTaskTimeouts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TaskTimeouts++
}

func (m *Metrics) RecordCollectionTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastCollectionTime = duration
	m.TotalCollectionTime += duration
	m.CollectionCount++

	if m.CollectionCount > 0 {
		m.AverageCollectionTime = m.TotalCollectionTime / time.Duration(m.CollectionCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"total_articles_processed":   m.TotalArticlesProcessed,
		"duplicates_filtered":        m.DuplicatesFiltered,
		"date_rejects":               m.DateRejects,
		"exclusions_applied":         m.ExclusionsApplied,
		"source_failures":            m.SourceFailures,
		"task_timeouts":              m.TaskTimeouts,
		"last_collection_time_ms":    m.LastCollectionTime.Milliseconds(),
		"average_collection_time_ms": m.AverageCollectionTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}
