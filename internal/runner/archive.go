package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"voxca/internal/board"
	"voxca/internal/jobconf"
	"voxca/internal/timelog"
)

// Artifacts are the files a run leaves in the work directory, in the order
// they are archived.
var Artifacts = []string{jobconf.FileName, timelog.FileName, board.FileName}

// errDirTaken reports that the result directory already exists.
var errDirTaken = errors.New("runner: result dir already exists")

// moveExclusive renames src to dst, failing if dst exists or src is missing.
func moveExclusive(src, dst string) error {
	if _, err := os.Lstat(src); err != nil {
		return fmt.Errorf("runner: move %s: %w", src, err)
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("runner: move to %s: %w", dst, fs.ErrExist)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("runner: move to %s: %w", dst, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("runner: move %s: %w", src, err)
	}
	return nil
}

// archiveArtifacts creates resultDir and moves every artifact from workDir
// into it. On failure the artifacts already moved are put back and
// resultDir is removed.
func archiveArtifacts(workDir, resultDir string) error {
	if err := os.MkdirAll(filepath.Dir(resultDir), 0o755); err != nil {
		return fmt.Errorf("runner: ensure output dir: %w", err)
	}
	if err := os.Mkdir(resultDir, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %w", errDirTaken, err)
		}
		return fmt.Errorf("runner: create result dir: %w", err)
	}

	var moved []string
	for _, name := range Artifacts {
		err := moveExclusive(filepath.Join(workDir, name), filepath.Join(resultDir, name))
		if err == nil {
			moved = append(moved, name)
			continue
		}
		var rollbackErrs []error
		for _, m := range moved {
			if rerr := os.Rename(filepath.Join(resultDir, m), filepath.Join(workDir, m)); rerr != nil {
				rollbackErrs = append(rollbackErrs, rerr)
			}
		}
		if rerr := os.Remove(resultDir); rerr != nil {
			rollbackErrs = append(rollbackErrs, rerr)
		}
		if len(rollbackErrs) > 0 {
			return fmt.Errorf("%w (rollback: %w)", err, errors.Join(rollbackErrs...))
		}
		return err
	}
	return nil
}

// clearStale removes artifacts a previous failed run may have left behind so
// they cannot be archived under the wrong job.
func clearStale(workDir string) error {
	for _, name := range []string{timelog.FileName, board.FileName} {
		err := os.Remove(filepath.Join(workDir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("runner: clear stale %s: %w", name, err)
		}
	}
	return nil
}
