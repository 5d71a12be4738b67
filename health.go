package podkit

import (
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"sync"
	"time"
)

var validCheck = regexp.MustCompile(`^[a-zA-Z0-9_./-]+$`)

// CheckFn is a readiness sub-check. Returning a non-nil error marks the
// service not ready. Checks run synchronously on each /ready request, so keep
// them cheap.
type CheckFn func() error

// HealthStatus is the liveness payload. Status is "healthy" or "unhealthy";
// Error carries the reason only in the unhealthy case.
type HealthStatus struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version,omitempty"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	Error         string    `json:"error,omitempty"`
}

// ReadyStatus is the readiness payload: one entry per named sub-check, "ok"
// or the failure text.
type ReadyStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Reporter computes liveness and readiness from process state and the
// registry. Introspection failures are caught, logged and turned into a 503
// payload; they never propagate to the caller.
type Reporter struct {
	reg     *Registry
	logger  *slog.Logger
	version string

	mu     sync.RWMutex
	checks map[string]CheckFn
}

// NewReporter returns a Reporter with the built-in "application" check, which
// always passes. Real dependency probes can be layered on with [AddCheck]
// without changing the /ready contract.
func NewReporter(reg *Registry, logger *slog.Logger, version string) *Reporter {
	r := &Reporter{
		reg:     reg,
		logger:  logger,
		version: version,
		checks:  map[string]CheckFn{},
	}
	r.checks["application"] = func() error { return nil }
	r.checks["dependencies"] = func() error { return nil }
	return r
}

// AddCheck registers a named readiness sub-check. Names must be unique and
// match [a-zA-Z0-9_./-]+.
func (r *Reporter) AddCheck(name string, fn CheckFn) error {
	if !validCheck.MatchString(name) {
		return fmt.Errorf("invalid check name %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.checks[name]; found {
		return fmt.Errorf("duplicate check name %q", name)
	}
	r.checks[name] = fn
	return nil
}

// Liveness reports whether the process is able to collect its own stats. The
// returned status code is 200 for healthy, 503 otherwise.
func (r *Reporter) Liveness() (HealthStatus, int) {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   r.version,
	}
	snap, err := r.reg.Snapshot()
	status.UptimeSeconds = snap.UptimeSeconds
	if err != nil {
		r.logger.Error("health check failed", "err", err)
		status.Status = "unhealthy"
		status.Error = err.Error()
		return status, http.StatusServiceUnavailable
	}
	return status, http.StatusOK
}

// Readiness runs every registered sub-check and reports the results. Any
// failing check makes the whole service not ready (503).
func (r *Reporter) Readiness() (ReadyStatus, int) {
	status := ReadyStatus{
		Status:    "ready",
		Timestamp: time.Now().UTC(),
		Checks:    map[string]string{},
	}
	code := http.StatusOK
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, fn := range r.checks {
		if err := fn(); err != nil {
			r.logger.Warn("readiness check failed", "check", name, "err", err)
			status.Checks[name] = err.Error()
			status.Status = "not_ready"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[name] = "ok"
	}
	return status, code
}
