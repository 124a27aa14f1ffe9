package testdoubles

import (
	"context"
	"maps"
	"sync"
	"time"
)

// MetricsCollectorSpy implements producer.ContextualMetricsCollector and captures every call.
type MetricsCollectorSpy struct {
	mu              sync.Mutex
	durationRecords []SpyDurationRecord
	counterRecords  []SpyCounterRecord
	valueRecords    []SpyValueRecord
}

// SpyDurationRecord represents a recorded duration metric call.
type SpyDurationRecord struct {
	Metric   string
	Duration time.Duration
	Labels   map[string]string
}

// SpyCounterRecord represents a recorded counter increment call.
type SpyCounterRecord struct {
	Metric string
	Labels map[string]string
}

// SpyValueRecord represents a recorded value metric call.
type SpyValueRecord struct {
	Metric string
	Value  float64
	Labels map[string]string
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy.
func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durationRecords = append(s.durationRecords, SpyDurationRecord{Metric: metric, Duration: duration, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counterRecords = append(s.counterRecords, SpyCounterRecord{Metric: metric, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.valueRecords = append(s.valueRecords, SpyValueRecord{Metric: metric, Value: value, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.RecordDuration(metric, duration, labels)
}

func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.IncrementCounter(metric, labels)
}

func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.RecordValue(metric, value, labels)
}

// GetDurationRecords returns a copy of all captured duration records.
func (s *MetricsCollectorSpy) GetDurationRecords() []SpyDurationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpyDurationRecord, len(s.durationRecords))
	copy(records, s.durationRecords)

	return records
}

// GetCounterRecords returns a copy of all captured counter records.
func (s *MetricsCollectorSpy) GetCounterRecords() []SpyCounterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpyCounterRecord, len(s.counterRecords))
	copy(records, s.counterRecords)

	return records
}

// CountCounter returns how often metric was incremented with labels containing all of match.
func (s *MetricsCollectorSpy) CountCounter(metric string, match map[string]string) int {
	count := 0

	for _, record := range s.GetCounterRecords() {
		if record.Metric == metric && containsLabels(record.Labels, match) {
			count++
		}
	}

	return count
}

// HasDurationRecord checks if there's a duration record with the metric name and labels containing all of match.
func (s *MetricsCollectorSpy) HasDurationRecord(metric string, match map[string]string) bool {
	for _, record := range s.GetDurationRecords() {
		if record.Metric == metric && containsLabels(record.Labels, match) {
			return true
		}
	}

	return false
}

// GetValueRecords returns a copy of all captured gauge records.
func (s *MetricsCollectorSpy) GetValueRecords() []SpyValueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpyValueRecord, len(s.valueRecords))
	copy(records, s.valueRecords)

	return records
}

// ValuesOf returns the recorded values of a gauge in recording order.
func (s *MetricsCollectorSpy) ValuesOf(metric string) []float64 {
	var values []float64

	for _, record := range s.GetValueRecords() {
		if record.Metric == metric {
			values = append(values, record.Value)
		}
	}

	return values
}

func containsLabels(labels, match map[string]string) bool {
	for key, value := range match {
		if labels[key] != value {
			return false
		}
	}

	return true
}
