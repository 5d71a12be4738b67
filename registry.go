package podkit

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Counter names the registry always carries.
const (
	MetricRequests = "requests_total"
	MetricErrors   = "errors_total"
)

// Registry holds the process-wide set of named monotonic counters plus the
// process stats source. It implements [prometheus.Collector], so the same
// counters that back Snapshot are served verbatim by promhttp in text
// exposition format.
type Registry struct {
	start time.Time
	stats StatsSource

	mu       sync.RWMutex
	counters map[string]*counter
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithStatsSource overrides process introspection. Used to inject failures in
// tests; the default samples the current process.
func WithStatsSource(src StatsSource) RegistryOption {
	return func(r *Registry) {
		r.stats = src
	}
}

// NewRegistry returns a Registry with the request and error counters created
// at zero.
func NewRegistry(options ...RegistryOption) *Registry {
	r := &Registry{
		start:    time.Now(),
		stats:    processStats(),
		counters: map[string]*counter{},
	}
	for _, o := range options {
		o(r)
	}
	r.Counter(MetricRequests, "total number of requests served")
	r.Counter(MetricErrors, "total number of handler failures")
	return r
}

// Counter returns the named counter handle, creating it at zero if absent.
// Handles are stable: the same name always yields the same counter.
func (r *Registry) Counter(name, help string) metrics.Counter {
	r.mu.RLock()
	c, ok := r.counters[name]
	r.mu.RUnlock()
	if ok {
		return c
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.counters[name]; ok {
		return c
	}
	c = &counter{
		desc: prometheus.NewDesc(name, help, nil, nil),
	}
	r.counters[name] = c
	return c
}

// Inc atomically adds 1 to the named counter, creating it if needed. It
// cannot fail.
func (r *Registry) Inc(name string) {
	r.Counter(name, "total count of "+name).Add(1)
}

// Uptime is the time since the registry was created, which for both services
// is process start.
func (r *Registry) Uptime() time.Duration {
	return time.Since(r.start)
}

// Snapshot returns a consistent point-in-time copy of all counters plus
// derived process stats. The lock is held only while counter values are
// copied; introspection happens outside it. A non-nil error means the stats
// sample failed, and the counter values in the returned snapshot are still
// valid.
func (r *Registry) Snapshot() (Snapshot, error) {
	snap := Snapshot{
		UptimeSeconds: r.Uptime().Seconds(),
		Counters:      map[string]uint64{},
	}
	r.mu.RLock()
	for name, c := range r.counters {
		snap.Counters[name] = c.value()
	}
	r.mu.RUnlock()
	snap.TotalRequests = snap.Counters[MetricRequests]
	snap.TotalErrors = snap.Counters[MetricErrors]

	stats, err := r.stats()
	if err != nil {
		return snap, err
	}
	snap.MemoryBytes = stats.MemoryBytes
	snap.CPUPercent = stats.CPUPercent
	return snap, nil
}

// Describe implements prometheus.Collector.
func (r *Registry) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(r, ch)
}

// Collect implements prometheus.Collector.
func (r *Registry) Collect(ch chan<- prometheus.Metric) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.counters {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.CounterValue, float64(c.value()))
	}
}

// Snapshot is an immutable point-in-time view of the registry and process.
type Snapshot struct {
	UptimeSeconds float64           `json:"uptime_seconds"`
	TotalRequests uint64            `json:"total_requests"`
	TotalErrors   uint64            `json:"total_errors"`
	MemoryBytes   uint64            `json:"memory_bytes"`
	CPUPercent    float64           `json:"cpu_percent"`
	Counters      map[string]uint64 `json:"counters"`
}

// counter is a monotonic 64-bit counter satisfying the go-kit
// [metrics.Counter] interface. Increments are atomic, so no reader ever sees
// a torn value.
type counter struct {
	desc *prometheus.Desc
	v    atomic.Uint64
}

// With implements metrics.Counter. Counters here are unlabelled, so the
// receiver is returned as-is.
func (c *counter) With(labelValues ...string) metrics.Counter { return c }

// Add implements metrics.Counter. Negative deltas are ignored: counters never
// decrease.
func (c *counter) Add(delta float64) {
	if delta < 0 {
		return
	}
	c.v.Add(uint64(delta))
}

func (c *counter) value() uint64 {
	return c.v.Load()
}
