package app

import (
	"fmt"
	"os"
	"path/filepath"

	"voxca/internal/gallery"
	"voxca/internal/infra"
	"voxca/internal/jobconf"
	"voxca/internal/palette"
	"voxca/internal/runner"
)

// Core bundles the components shared by the daemon and the viewer.
type Core struct {
	Settings *infra.Settings
	Log      infra.Logger
	Palette  *palette.Palette
	Gallery  *gallery.Gallery
	Runner   *runner.Controller
}

// NewCore builds the palette, restores the gallery and starts an idle run
// loop.
func NewCore(s *infra.Settings, log infra.Logger) (*Core, error) {
	if err := os.MkdirAll(s.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("app: ensure work dir: %w", err)
	}
	exe := s.Executable
	if filepath.Base(exe) != exe || filepath.IsAbs(exe) {
		// The simulator runs inside the work dir; resolve relative paths
		// against the current directory first.
		abs, err := filepath.Abs(exe)
		if err != nil {
			return nil, fmt.Errorf("app: resolve executable: %w", err)
		}
		exe = abs
	}

	p := palette.New(s.PaletteSeed, s.PaletteSize)
	g := gallery.New(s.OutputDir, p)
	if err := g.Load(); err != nil {
		return nil, err
	}
	next, _ := g.NextDir()
	log.Info().Int("results", g.Len()).Int("next_dir", next).Str("output", g.Root()).Msg("gallery restored")

	r := runner.New(runner.Options{
		WorkDir:  s.WorkDir,
		Executor: runner.Command{Path: exe, Args: s.Args},
		Gallery:  g,
		Logger:   log,
	})
	return &Core{Settings: s, Log: log, Palette: p, Gallery: g, Runner: r}, nil
}

// EnqueueJobsFile enqueues every job in the settings' jobs file, if any.
func (c *Core) EnqueueJobsFile() (int, error) {
	if c.Settings.JobsFile == "" {
		return 0, nil
	}
	jobs, err := jobconf.LoadBatchFile(c.Settings.JobsFile)
	if err != nil {
		return 0, err
	}
	for _, j := range jobs {
		if _, err := c.Runner.Enqueue(j); err != nil {
			return 0, err
		}
	}
	return len(jobs), nil
}

// Close stops the run loop.
func (c *Core) Close() error { return c.Runner.Close() }
