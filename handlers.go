package podkit

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/podkit/podkit/httperr"
)

// maxEchoBody bounds /echo request bodies.
const maxEchoBody = 1 << 20

// StatusPage is the view data consumed by the home route. The HTML rendering
// in cmd/webapp is a presentation concern layered on top of this struct; the
// core serves it as JSON.
type StatusPage struct {
	Identity Identity `json:"identity"`
	Snapshot Snapshot `json:"snapshot"`
	Routes   []Route  `json:"-"`
}

// HomeRenderer lets an application replace the home route's default JSON
// rendering.
type HomeRenderer func(w http.ResponseWriter, r *http.Request, page StatusPage)

// Service ties the registry, health reporter and dispatch table together
// behind a single http.Handler.
type Service struct {
	cfg    *Config
	reg    *Registry
	health *Reporter
	logger *slog.Logger
	home   HomeRenderer
	mux    *Mux
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithHome sets a custom renderer for the home route.
func WithHome(render HomeRenderer) ServiceOption {
	return func(s *Service) {
		s.home = render
	}
}

// NewService builds the full route table, with every handler wrapped in
// [Instrument]:
//
//	GET  /               status page
//	GET  /health         liveness probe
//	GET  /ready          readiness probe
//	GET  /metrics        metrics snapshot (JSON)
//	GET  /info           pod identity
//	POST /echo           request echo
//	GET  /simulate-error failure injection (debug only)
func NewService(cfg *Config, reg *Registry, health *Reporter, logger *slog.Logger, options ...ServiceOption) *Service {
	s := &Service{
		cfg:    cfg,
		reg:    reg,
		health: health,
		logger: logger,
	}
	for _, o := range options {
		o(s)
	}
	m := NewMux(Instrument(reg, logger))
	m.HandleFunc(http.MethodGet, "/", s.handleHome, "status page")
	m.HandleFunc(http.MethodGet, "/health", s.handleHealth, "liveness probe")
	m.HandleFunc(http.MethodGet, "/ready", s.handleReady, "readiness probe")
	m.HandleFunc(http.MethodGet, "/metrics", s.handleMetrics, "metrics snapshot")
	m.HandleFunc(http.MethodGet, "/info", s.handleInfo, "pod identity")
	m.HandleFunc(http.MethodPost, "/echo", s.handleEcho, "request echo")
	m.HandleFunc(http.MethodGet, "/simulate-error", s.handleSimulateError, "failure injection")
	s.mux = m
	return s
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Routes returns the dispatch table for presentation purposes.
func (s *Service) Routes() []Route {
	return s.mux.Routes()
}

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	snap, err := s.reg.Snapshot()
	if err != nil {
		s.logger.Error("failed to build status page", "err", err)
		httperr.WriteError(w, httperr.Wrap(httperr.KindDegraded, "failed to collect process stats", err))
		return
	}
	page := StatusPage{
		Identity: s.cfg.Identity,
		Snapshot: snap,
		Routes:   s.mux.Routes(),
	}
	if s.home != nil {
		s.home(w, r, page)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, page)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status, code := s.health.Liveness()
	writeJSON(w, s.logger, code, status)
}

func (s *Service) handleReady(w http.ResponseWriter, _ *http.Request) {
	status, code := s.health.Readiness()
	writeJSON(w, s.logger, code, status)
}

type metricsResponse struct {
	Application struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Environment string `json:"environment"`
	} `json:"application"`
	Runtime Snapshot `json:"runtime"`
	System  struct {
		Hostname  string `json:"hostname"`
		Platform  string `json:"platform"`
		GoVersion string `json:"go_version"`
	} `json:"system"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Service) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.reg.Snapshot()
	if err != nil {
		s.logger.Error("failed to collect metrics", "err", err)
		httperr.WriteError(w, httperr.Wrap(httperr.KindDegraded, "failed to collect process stats", err))
		return
	}
	var resp metricsResponse
	resp.Application.Name = s.cfg.Name
	resp.Application.Version = s.cfg.Version
	resp.Application.Environment = s.cfg.Environment
	resp.Runtime = snap
	resp.System.Hostname = s.cfg.PodName
	resp.System.Platform = runtime.GOOS
	resp.System.GoVersion = runtime.Version()
	resp.Timestamp = time.Now().UTC()
	writeJSON(w, s.logger, http.StatusOK, resp)
}

func (s *Service) handleInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, s.cfg.Identity)
}

type echoResponse struct {
	Echo      any               `json:"echo"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	Timestamp time.Time         `json:"timestamp"`
	ClientIP  string            `json:"client_ip"`
}

func (s *Service) handleEcho(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEchoBody))
	if err != nil {
		httperr.WriteError(w, httperr.Wrap(httperr.KindClient, "failed to read request body", err))
		return
	}
	var echo any = map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &echo); err != nil {
			httperr.WriteError(w, httperr.Wrap(httperr.KindClient, "request body is not valid JSON", err))
			return
		}
	}
	headers := make(map[string]string, len(r.Header))
	for name := range r.Header {
		headers[name] = r.Header.Get(name)
	}
	writeJSON(w, s.logger, http.StatusOK, echoResponse{
		Echo:      echo,
		Method:    r.Method,
		Headers:   headers,
		Timestamp: time.Now().UTC(),
		ClientIP:  r.RemoteAddr,
	})
}

func (s *Service) handleSimulateError(w http.ResponseWriter, _ *http.Request) {
	if !s.cfg.Debug {
		httperr.Write(w, http.StatusForbidden,
			"Forbidden", "error simulation is disabled outside debug mode")
		return
	}
	panic("simulated error for testing")
}
