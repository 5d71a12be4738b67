package podkit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// shutdownGrace bounds how long in-flight handlers get to finish once a
// termination signal arrives.
const shutdownGrace = 10 * time.Second

// Serve runs srv until ctx is cancelled or the process receives an interrupt
// or terminate signal, then stops accepting connections and drains in-flight
// handlers. A second signal forces immediate exit.
func Serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		select {
		case sig := <-sigs:
			logger.Info("received shutdown signal", "signal", sig.String())
			// they are really serious
			go func() {
				<-sigs
				logger.Info("forced immediate shutdown")
				os.Exit(130) // manual ctrl-c exitcode
			}()
		case <-gctx.Done():
			// caller cancelled, or the listener already failed (in which
			// case Shutdown below is a no-op)
		}
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return err
		}
		logger.Info("shutdown complete")
		return nil
	})
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
