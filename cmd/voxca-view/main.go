//go:build ebiten

// Command voxca-view is the desktop front end: it runs the same queue as the
// daemon and renders finished boards as cubes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voxca/internal/api"
	"voxca/internal/app"
	"voxca/internal/infra"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	settings, err := infra.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := infra.NewLogger(settings.AppEnv)

	if err := run(settings, logger); err != nil {
		logger.Error().Err(err).Msg("voxca-view stopped")
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

	if settings.Listen != "" {
		server := infra.NewHTTPServer(settings.Listen, api.NewRouter(&api.Server{
			Queue:   c.Runner,
			Gallery: c.Gallery,
			Log:     logger.With().Str("component", "api").Logger(),
		}))
		go func() {
			logger.Info().Msgf("API listening on %s", settings.Listen)
			if err := server.Start(); err != nil {
				logger.Error().Err(err).Msg("http server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	game := app.New(c)
	w, h := game.Size()
	ebiten.SetWindowTitle("voxca")
	ebiten.SetWindowSize(w*settings.Scale, h*settings.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	go func() {
		<-ctx.Done()
		game.Quit()
	}()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
