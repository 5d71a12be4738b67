package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newHandler builds the whole app: three routes and one counter. Only the
// root route counts as a visit; scraping /metrics does not.
func newHandler(podName string) http.Handler {
	reg := prometheus.NewRegistry()
	visits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "visits_total",
		Help: "number of visits to the root route",
	})
	reg.MustRegister(visits)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		visits.Inc()
		fmt.Fprintf(w, "Hello from %s\n", podName)
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	return mux
}
