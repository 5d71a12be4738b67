package podkit

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/podkit/podkit/httperr"
)

// statusRecorder wraps http.ResponseWriter to capture the status code and
// whether a header has already gone out.
type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.wrote {
		sr.status = code
		sr.wrote = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	sr.wrote = true
	return sr.ResponseWriter.Write(b)
}

// Instrument wraps a handler so that every request is counted, timed and
// logged. The request counter is bumped before the handler body runs; the log
// line goes out after it completes, success or panic.
//
// A panicking handler is converted at this boundary into the generic 500
// envelope and one increment of the error counter. The panic value is logged,
// never sent to the client.
func Instrument(reg *Registry, logger *slog.Logger) func(http.Handler) http.Handler {
	requests := reg.Counter(MetricRequests, "total number of requests served")
	errs := reg.Counter(MetricErrors, "total number of handler failures")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			requests.Add(1)

			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				if v := recover(); v != nil {
					errs.Add(1)
					logger.Error("handler panicked",
						"err", v,
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", requestID,
					)
					sr.status = http.StatusInternalServerError
					if !sr.wrote {
						httperr.Write(w, http.StatusInternalServerError,
							"Internal server error", "something went wrong on our end")
					}
				}
				logger.Info("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", sr.status,
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", requestID,
				)
			}()
			next.ServeHTTP(sr, r)
		})
	}
}
