// Package infra holds process-level plumbing: settings and logging.
package infra

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings configures the daemon and the viewer.
type Settings struct {
	AppEnv      string   `yaml:"app_env"`
	Executable  string   `yaml:"executable"`
	Args        []string `yaml:"args"`
	WorkDir     string   `yaml:"work_dir"`
	OutputDir   string   `yaml:"output_dir"`
	Listen      string   `yaml:"listen"`
	PaletteSeed int64    `yaml:"palette_seed"`
	PaletteSize int      `yaml:"palette_size"`
	Scale       int      `yaml:"scale"`
	JobsFile    string   `yaml:"jobs_file"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		AppEnv:      "production",
		Executable:  "./CellularAutomaton",
		WorkDir:     ".",
		OutputDir:   "output",
		Listen:      ":8080",
		PaletteSeed: 42,
		PaletteSize: 1000,
		Scale:       1,
	}
}

// LoadFile overlays the YAML file at path. A missing file is not an error.
func (s *Settings) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("settings: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("settings: parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv loads .env files when present and overlays VOXCA_* variables.
func (s *Settings) ApplyEnv() error {
	_ = godotenv.Load(".env", ".env.local")

	s.AppEnv = getEnv("VOXCA_APP_ENV", s.AppEnv)
	s.Executable = getEnv("VOXCA_EXECUTABLE", s.Executable)
	if v := getEnv("VOXCA_ARGS", ""); v != "" {
		s.Args = strings.Fields(v)
	}
	s.WorkDir = getEnv("VOXCA_WORK_DIR", s.WorkDir)
	s.OutputDir = getEnv("VOXCA_OUTPUT_DIR", s.OutputDir)
	s.Listen = getEnv("VOXCA_LISTEN", s.Listen)
	s.JobsFile = getEnv("VOXCA_JOBS_FILE", s.JobsFile)

	var err error
	if s.PaletteSeed, err = getEnvInt64("VOXCA_PALETTE_SEED", s.PaletteSeed); err != nil {
		return err
	}
	size, err := getEnvInt64("VOXCA_PALETTE_SIZE", int64(s.PaletteSize))
	if err != nil {
		return err
	}
	s.PaletteSize = int(size)
	return nil
}

// Bind attaches the settings to the provided FlagSet.
func (s *Settings) Bind(fs *flag.FlagSet) {
	fs.StringVar(&s.AppEnv, "env", s.AppEnv, "application environment (development enables console logs)")
	fs.StringVar(&s.Executable, "exe", s.Executable, "simulation executable")
	fs.StringVar(&s.WorkDir, "work", s.WorkDir, "working directory for the simulator")
	fs.StringVar(&s.OutputDir, "out", s.OutputDir, "directory holding result_<n> folders")
	fs.StringVar(&s.Listen, "listen", s.Listen, "HTTP listen address (empty disables the API)")
	fs.Int64Var(&s.PaletteSeed, "palette-seed", s.PaletteSeed, "seed for the state color palette")
	fs.IntVar(&s.PaletteSize, "palette-size", s.PaletteSize, "number of palette colors")
	fs.IntVar(&s.Scale, "scale", s.Scale, "viewer window scale multiplier")
	fs.StringVar(&s.JobsFile, "jobs", s.JobsFile, "YAML file of jobs to enqueue at startup")
}

// Validate checks the settings for values no component can work with.
func (s *Settings) Validate() error {
	if s.Executable == "" {
		return errors.New("settings: executable is required")
	}
	if s.OutputDir == "" {
		return errors.New("settings: output dir is required")
	}
	if s.PaletteSize <= 0 {
		return fmt.Errorf("settings: palette size must be positive, got %d", s.PaletteSize)
	}
	if s.Scale <= 0 {
		s.Scale = 1
	}
	return nil
}

// Load builds settings from defaults, the YAML file named by -config (or
// VOXCA_CONFIG), the environment and finally the remaining flags.
func Load(flags *flag.FlagSet, args []string) (*Settings, error) {
	s := DefaultSettings()
	configPath := flags.String("config", getEnv("VOXCA_CONFIG", "voxca.yaml"), "YAML settings file")
	s.Bind(flags)

	// First pass only finds -config; flags are re-applied after the file
	// and the environment so they win.
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if err := s.LoadFile(*configPath); err != nil {
		return nil, err
	}
	if err := s.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("settings: %s: %w", key, err)
	}
	return n, nil
}
