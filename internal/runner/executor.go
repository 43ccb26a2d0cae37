package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Executor runs the simulation in dir and returns what it printed to stdout.
type Executor interface {
	Run(ctx context.Context, dir string) ([]byte, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, dir string) ([]byte, error)

// Run calls f.
func (f ExecutorFunc) Run(ctx context.Context, dir string) ([]byte, error) { return f(ctx, dir) }

// Command launches an external program. The reference simulator takes no
// arguments; Args exists for wrappers such as mpiexec.
type Command struct {
	Path string
	Args []string
}

// Run starts the program with dir as its working directory and waits for it.
func (c Command) Run(ctx context.Context, dir string) ([]byte, error) {
	if c.Path == "" {
		return nil, errors.New("runner: no executable configured")
	}
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("runner: %s: %w: %s", c.Path, err, msg)
		}
		return out, fmt.Errorf("runner: %s: %w", c.Path, err)
	}
	return out, nil
}
