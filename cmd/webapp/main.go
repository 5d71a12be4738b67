// The webapp command is the full demo service: status page, health and
// readiness probes, metrics snapshot, pod identity and echo routes. It is
// intended to be deployed behind Kubernetes liveness/readiness probes.
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
	cfg, err := podkit.LoadConfig("podkit-webapp", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := podkit.NewLogger(cfg.LogFormat, cfg.LogLevel, os.Stdout)

	reg := podkit.NewRegistry()
	health := podkit.NewReporter(reg, logger, cfg.Version)
	svc := podkit.NewService(cfg, reg, health, logger, podkit.WithHome(renderHome))

	logger.Info("starting webapp",
		"addr", cfg.ListenAddr,
		"debug", cfg.Debug,
		"environment", cfg.Environment,
		"version", cfg.Version,
	)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           svc,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := podkit.Serve(context.Background(), srv, logger); err != nil {
		logger.Error("server terminated abnormally", "err", err)
		os.Exit(1)
	}
}
