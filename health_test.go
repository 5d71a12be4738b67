package podkit_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podkit/podkit"
	"github.com/podkit/podkit/podkittest"
)

func TestLivenessHealthy(t *testing.T) {
	logger, _ := podkittest.NewLogger(t)
	reg := podkit.NewRegistry(podkit.WithStatsSource(staticStats(1, 0)))
	rep := podkit.NewReporter(reg, logger, "1.2.3")

	status, code := rep.Liveness()
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.Empty(t, status.Error)
}

func TestLivenessUnhealthyOnStatsFailure(t *testing.T) {
	logger, rec := podkittest.NewLogger(t)
	reg := podkit.NewRegistry(podkit.WithStatsSource(func() (podkit.ProcStats, error) {
		return podkit.ProcStats{}, errors.New("proc sample failed")
	}))
	rep := podkit.NewReporter(reg, logger, "1.2.3")

	status, code := rep.Liveness()
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", status.Status)
	assert.Contains(t, status.Error, "proc sample failed")

	_, logged := rec.Find("health check failed")
	assert.True(t, logged, "introspection failures should be logged")
}

func TestReadinessDefaultChecksPass(t *testing.T) {
	logger, _ := podkittest.NewLogger(t)
	reg := podkit.NewRegistry(podkit.WithStatsSource(staticStats(1, 0)))
	rep := podkit.NewReporter(reg, logger, "")

	status, code := rep.Readiness()
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", status.Status)
	assert.Equal(t, "ok", status.Checks["application"])
	assert.Equal(t, "ok", status.Checks["dependencies"])
}

func TestReadinessFailingCheck(t *testing.T) {
	logger, _ := podkittest.NewLogger(t)
	reg := podkit.NewRegistry(podkit.WithStatsSource(staticStats(1, 0)))
	rep := podkit.NewReporter(reg, logger, "")
	require.NoError(t, rep.AddCheck("database", func() error {
		return errors.New("connection refused")
	}))

	status, code := rep.Readiness()
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not_ready", status.Status)
	assert.Equal(t, "connection refused", status.Checks["database"])
	// passing checks still report individually
	assert.Equal(t, "ok", status.Checks["application"])
}

func TestAddCheckValidation(t *testing.T) {
	logger, _ := podkittest.NewLogger(t)
	reg := podkit.NewRegistry(podkit.WithStatsSource(staticStats(1, 0)))
	rep := podkit.NewReporter(reg, logger, "")

	assert.Error(t, rep.AddCheck("bad name", func() error { return nil }))
	require.NoError(t, rep.AddCheck("cache", func() error { return nil }))
	assert.Error(t, rep.AddCheck("cache", func() error { return nil }), "duplicate names are rejected")
}
