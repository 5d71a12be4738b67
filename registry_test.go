package podkit_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podkit/podkit"
)

func staticStats(mem uint64, cpu float64) podkit.StatsSource {
	return func() (podkit.ProcStats, error) {
		return podkit.ProcStats{MemoryBytes: mem, CPUPercent: cpu}, nil
	}
}

func TestRegistryConcurrentIncrements(t *testing.T) {
	reg := podkit.NewRegistry(podkit.WithStatsSource(staticStats(1, 0)))

	const workers = 50
	const perWorker = 200
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				reg.Inc(podkit.MetricRequests)
			}
		}()
	}
	wg.Wait()

	snap, err := reg.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, uint64(workers*perWorker), snap.TotalRequests)
}

func TestRegistrySnapshotMonotonic(t *testing.T) {
	reg := podkit.NewRegistry(podkit.WithStatsSource(staticStats(1, 0)))

	var last uint64
	for i := 0; i < 10; i++ {
		reg.Inc(podkit.MetricRequests)
		snap, err := reg.Snapshot()
		require.NoError(t, err)
		require.GreaterOrEqual(t, snap.TotalRequests, last)
		last = snap.TotalRequests
	}
	assert.Equal(t, uint64(10), last)
}

func TestRegistryCountersStartAtZero(t *testing.T) {
	reg := podkit.NewRegistry(podkit.WithStatsSource(staticStats(1, 0)))

	snap, err := reg.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), snap.TotalRequests)
	assert.Equal(t, uint64(0), snap.TotalErrors)

	reg.Inc("widgets_processed_total")
	snap, err = reg.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Counters["widgets_processed_total"])
}

func TestRegistrySnapshotCarriesProcessStats(t *testing.T) {
	reg := podkit.NewRegistry(podkit.WithStatsSource(staticStats(2048, 12.5)))

	snap, err := reg.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, uint64(2048), snap.MemoryBytes)
	assert.Equal(t, 12.5, snap.CPUPercent)
}

func TestRegistrySnapshotStatsFailure(t *testing.T) {
	boom := errors.New("proc sample failed")
	reg := podkit.NewRegistry(podkit.WithStatsSource(func() (podkit.ProcStats, error) {
		return podkit.ProcStats{}, boom
	}))
	reg.Inc(podkit.MetricRequests)

	snap, err := reg.Snapshot()
	require.ErrorIs(t, err, boom)
	// counter values stay valid even when introspection fails
	assert.Equal(t, uint64(1), snap.TotalRequests)
}

func TestRegistryPrometheusExposition(t *testing.T) {
	reg := podkit.NewRegistry(podkit.WithStatsSource(staticStats(1, 0)))
	for i := 0; i < 3; i++ {
		reg.Inc(podkit.MetricRequests)
	}

	expected := `
# HELP requests_total total number of requests served
# TYPE requests_total counter
requests_total 3
`
	require.NoError(t, testutil.CollectAndCompare(reg, strings.NewReader(expected), "requests_total"))
}

func TestRegistryCounterIgnoresNegativeAdd(t *testing.T) {
	reg := podkit.NewRegistry(podkit.WithStatsSource(staticStats(1, 0)))
	c := reg.Counter("jobs_total", "total jobs")
	c.Add(5)
	c.Add(-3)

	snap, err := reg.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), snap.Counters["jobs_total"])
}
