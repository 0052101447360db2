package monitoring

import (
	"sync"

	"sysmon/internal/sysmon/monitoring/domain"
)

// MetricStore holds the most recent samples for each metric category in a
// fixed-capacity, per-category series. Appends evict the oldest entry
// first; reads return samples in chronological order. Safe for concurrent
// use: the scheduler goroutine appends while caller goroutines read.
type MetricStore struct {
	mu       sync.RWMutex
	capacity int
	series   map[domain.Category][]domain.Sample
}

// NewMetricStore creates a store retaining up to capacity samples per
// category.
func NewMetricStore(capacity int) *MetricStore {
	if capacity < 1 {
		capacity = 1
	}
	return &MetricStore{
		capacity: capacity,
		series:   make(map[domain.Category][]domain.Sample),
	}
}

// Capacity returns the per-category sample capacity.
func (s *MetricStore) Capacity() int {
	return s.capacity
}

// Append adds a sample under its category, evicting the oldest entry if
// the series is at capacity.
func (s *MetricStore) Append(sample domain.Sample) {
	if sample == nil {
		return
	}

	category := sample.Category()

	s.mu.Lock()
	defer s.mu.Unlock()

	series := s.series[category]
	if len(series) >= s.capacity {
		// Shift in place so the backing array does not grow without bound.
		copy(series, series[len(series)-s.capacity+1:])
		series = series[:s.capacity-1]
	}
	s.series[category] = append(series, sample)
}

// Read returns the most recent count samples for the category in
// chronological order (oldest of the selected window first). A missing
// category or empty series yields nil; count <= 0 yields nil.
func (s *MetricStore) Read(category domain.Category, count int) []domain.Sample {
	if count <= 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	series := s.series[category]
	if len(series) == 0 {
		return nil
	}

	if count > len(series) {
		count = len(series)
	}

	out := make([]domain.Sample, count)
	copy(out, series[len(series)-count:])
	return out
}

// Latest returns the most recent sample for the category, or nil.
func (s *MetricStore) Latest(category domain.Category) domain.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series := s.series[category]
	if len(series) == 0 {
		return nil
	}
	return series[len(series)-1]
}

// Len returns the number of retained samples for the category.
func (s *MetricStore) Len(category domain.Category) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.series[category])
}

// Depths returns the retained sample count for every known category.
func (s *MetricStore) Depths() map[domain.Category]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	depths := make(map[domain.Category]int, len(s.series))
	for _, category := range domain.Categories() {
		depths[category] = len(s.series[category])
	}
	return depths
}

// Clear drops all retained samples for the category. Housekeeping for
// teardown and tests; not used during normal scheduler operation.
func (s *MetricStore) Clear(category domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.series, category)
}
