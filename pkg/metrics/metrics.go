package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
)

// Embedded time-series store for operational metrics. Gauges and counters are
// written as data points keyed by metric name; a nil store (tests, or init
// failure) turns every write into a no-op.

var (
	mu       sync.Mutex
	store    tstorage.Storage
	counters = map[string]int64{}
)

// InitMetrics opens the metrics storage under the working directory.
func InitMetrics(workdir string) error {
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithPartitionDuration(24*time.Hour),
	)
	if err != nil {
		return err
	}
	mu.Lock()
	store = s
	mu.Unlock()
	return nil
}

// SetGauge records the current value of a gauge metric.
func SetGauge(name string, value int64) {
	insert(name, float64(value))
}

// IncrCounter adds delta to a named counter and records the running total.
func IncrCounter(name string, delta int64) {
	mu.Lock()
	counters[name] += delta
	total := counters[name]
	mu.Unlock()
	insert(name, float64(total))
}

// CounterValue returns the in-process running total of a counter.
func CounterValue(name string) int64 {
	mu.Lock()
	defer mu.Unlock()
	return counters[name]
}

func insert(name string, value float64) {
	mu.Lock()
	s := store
	mu.Unlock()
	if s == nil {
		return
	}
	_ = s.InsertRows([]tstorage.Row{
		{
			Metric:    name,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value},
		},
	})
}

// Close flushes and closes the metrics storage.
func Close() error {
	mu.Lock()
	s := store
	store = nil
	mu.Unlock()
	if s == nil {
		return nil
	}
	return s.Close()
}
