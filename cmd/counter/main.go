// The counter command is the second, deliberately trivial demo service: a
// visit counter bumped on the root route and exposed at /metrics in the
// Prometheus text exposition format.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "github.com/KimMachineGun/automemlimit"

	"github.com/podkit/podkit"
)

func main() {
	cfg, err := podkit.LoadConfig("podkit-counter", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := podkit.NewLogger(cfg.LogFormat, cfg.LogLevel, os.Stdout)

	logger.Info("starting counter",
		"addr", cfg.ListenAddr,
		"pod", cfg.PodName,
	)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           newHandler(cfg.PodName),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := podkit.Serve(context.Background(), srv, logger); err != nil {
		logger.Error("server terminated abnormally", "err", err)
		os.Exit(1)
	}
}
