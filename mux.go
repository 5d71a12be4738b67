package podkit

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/podkit/podkit/httperr"
)

type routeKey struct {
	method string
	path   string
}

// Route is one entry in the dispatch table, kept so the status page can list
// the available endpoints.
type Route struct {
	Method      string
	Path        string
	Description string
}

// Mux is a flat (method, path) dispatch table. Unknown paths get the standard
// 404 envelope; a known path hit with the wrong method gets a 405 one.
type Mux struct {
	routes     map[routeKey]http.Handler
	table      []Route
	wrap       func(http.Handler) http.Handler
	notFound   http.Handler
	notAllowed http.Handler
}

// NewMux returns an empty Mux. If wrap is non-nil, every registered handler
// (including the 404/405 fallbacks) is passed through it, so instrumentation
// covers unmatched requests too.
func NewMux(wrap func(http.Handler) http.Handler) *Mux {
	if wrap == nil {
		wrap = func(h http.Handler) http.Handler { return h }
	}
	m := &Mux{
		routes: map[routeKey]http.Handler{},
		wrap:   wrap,
	}
	m.notFound = wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httperr.Write(w, http.StatusNotFound,
			"Not found", "the requested resource was not found")
	}))
	m.notAllowed = wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httperr.Write(w, http.StatusMethodNotAllowed,
			"Method not allowed", "the requested method is not allowed for this resource")
	}))
	return m
}

// Handle registers a handler for an exact method and path.
func (m *Mux) Handle(method, path string, handler http.Handler, description string) {
	m.routes[routeKey{method, path}] = m.wrap(handler)
	m.table = append(m.table, Route{Method: method, Path: path, Description: description})
}

// HandleFunc registers a handler func for an exact method and path.
func (m *Mux) HandleFunc(method, path string, handler http.HandlerFunc, description string) {
	m.Handle(method, path, handler, description)
}

// Routes returns the dispatch table in registration order.
func (m *Mux) Routes() []Route {
	return m.table
}

func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m.routes[routeKey{r.Method, r.URL.Path}]; ok {
		h.ServeHTTP(w, r)
		return
	}
	for key := range m.routes {
		if key.path == r.URL.Path {
			m.notAllowed.ServeHTTP(w, r)
			return
		}
	}
	m.notFound.ServeHTTP(w, r)
}

// writeJSON emits v with the given status. Encoding failures after the header
// has gone out can only be logged.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "err", err)
	}
}
