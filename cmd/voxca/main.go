// Command voxca runs the simulation queue headless. Jobs arrive through the
// HTTP form endpoint or a YAML jobs file; with -listen "" the process drains
// the jobs file and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"voxca/internal/api"
	"voxca/internal/app"
	"voxca/internal/infra"
)

func main() {
	settings, err := infra.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := infra.NewLogger(settings.AppEnv)

	if err := run(settings, logger); err != nil {
		logger.Error().Err(err).Msg("voxca stopped")
		os.Exit(1)
	}
}

func run(settings *infra.Settings, logger infra.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := app.NewCore(settings, logger)
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	defer c.Close()

	n, err := c.EnqueueJobsFile()
	if err != nil {
		return fmt.Errorf("jobs file %s: %w", settings.JobsFile, err)
	}
	if n > 0 {
		logger.Info().Int("jobs", n).Msg("jobs file enqueued")
	}

	if settings.Listen == "" {
		if err := c.Runner.Wait(ctx); err != nil {
			logger.Warn().Err(err).Msg("interrupted before the queue drained")
		}
		snap := c.Runner.Snapshot()
		logger.Info().Int("results", snap.Results).Int("failures", len(snap.Failures)).Msg("queue drained")
		return nil
	}

	server := infra.NewHTTPServer(settings.Listen, api.NewRouter(&api.Server{
		Queue:   c.Runner,
		Gallery: c.Gallery,
		Log:     logger.With().Str("component", "api").Logger(),
	}))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Msgf("API listening on %s", settings.Listen)
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
