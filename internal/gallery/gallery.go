// Package gallery keeps the list of archived runs and re-renders their boards
// on demand.
package gallery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"voxca/internal/board"
	"voxca/internal/core"
	"voxca/internal/jobconf"
	"voxca/internal/palette"
	"voxca/internal/scene"
	"voxca/internal/timelog"
)

// DirPrefix prefixes every result directory name.
const DirPrefix = "result_"

// ErrNoSuchResult is returned for indices outside the gallery.
var ErrNoSuchResult = errors.New("gallery: no such result")

// Gallery is the ordered list of completed runs rooted at one output
// directory. It is safe for concurrent use.
type Gallery struct {
	root    string
	palette *palette.Palette

	mu      sync.RWMutex
	records []core.ResultRecord
	next    int // lowest result_<n> number not known to be taken
}

// New returns an empty gallery for results under root.
func New(root string, p *palette.Palette) *Gallery {
	return &Gallery{root: root, palette: p}
}

// Root returns the output directory.
func (g *Gallery) Root() string { return g.root }

// Dir returns the directory that result i lives in.
func (g *Gallery) Dir(i int) string {
	return filepath.Join(g.root, DirPrefix+strconv.Itoa(i))
}

// Load restores records from result directories left by earlier sessions.
// Directories are read from result_0 upwards and loading stops at the first
// gap. Numbered directories past the gap are not restored but are never
// handed out by NextDir. It must be called before any Append.
func (g *Gallery) Load() error {
	if err := os.MkdirAll(g.root, 0o755); err != nil {
		return fmt.Errorf("gallery: ensure output dir: %w", err)
	}
	var records []core.ResultRecord
	for i := 0; ; i++ {
		dir := g.Dir(i)
		info, err := os.Stat(dir)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return fmt.Errorf("gallery: stat %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("gallery: %s is not a directory", dir)
		}
		job, err := loadJob(filepath.Join(dir, jobconf.FileName))
		if err != nil {
			return err
		}
		records = append(records, core.ResultRecord{
			Index:     i,
			Dir:       dir,
			Job:       job,
			Completed: info.ModTime().UTC(),
		})
	}

	highest, err := g.highestDir()
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.records) > 0 {
		return errors.New("gallery: load after results were appended")
	}
	g.records = records
	g.next = max(len(records), highest+1)
	return nil
}

// highestDir returns the largest n for which result_<n> exists, or -1.
func (g *Gallery) highestDir() (int, error) {
	entries, err := os.ReadDir(g.root)
	if err != nil {
		return -1, fmt.Errorf("gallery: list %s: %w", g.root, err)
	}
	highest := -1
	for _, e := range entries {
		n, ok := dirNumber(e.Name())
		if ok && n > highest {
			highest = n
		}
	}
	return highest, nil
}

func dirNumber(name string) (int, bool) {
	digits, ok := strings.CutPrefix(name, DirPrefix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || strconv.Itoa(n) != digits {
		return 0, false
	}
	return n, true
}

func loadJob(path string) (core.ConfigJob, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return core.NewConfigJob(nil), nil
	}
	if err != nil {
		return core.ConfigJob{}, fmt.Errorf("gallery: open %s: %w", path, err)
	}
	defer f.Close()
	fields, err := jobconf.Parse(f)
	if err != nil {
		return core.ConfigJob{}, fmt.Errorf("gallery: %s: %w", path, err)
	}
	return core.NewConfigJob(fields), nil
}

// Len returns the number of records.
func (g *Gallery) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.records)
}

// NextDir returns the number and path of the directory the next run should
// be archived into. It matches Len unless result directories were found out
// of sequence.
func (g *Gallery) NextDir() (int, string) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.next, g.Dir(g.next)
}

// Skip marks result_<n> as taken so NextDir moves past it.
func (g *Gallery) Skip(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next = max(g.next, n+1)
}

// Append records a run archived into result_<n> and returns it. The record's
// Index is its position in the list.
func (g *Gallery) Append(job core.ConfigJob, n int) core.ResultRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	rec := core.ResultRecord{
		Index:     len(g.records),
		Dir:       g.Dir(n),
		Job:       job,
		Completed: time.Now().UTC(),
	}
	g.records = append(g.records, rec)
	g.next = max(g.next, n+1)
	return rec
}

// Records returns a copy of all records in index order.
func (g *Gallery) Records() []core.ResultRecord {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]core.ResultRecord(nil), g.records...)
}

// Get returns record i.
func (g *Gallery) Get(i int) (core.ResultRecord, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if i < 0 || i >= len(g.records) {
		return core.ResultRecord{}, fmt.Errorf("%w: %d", ErrNoSuchResult, i)
	}
	return g.records[i], nil
}

// Board reads and decodes the board of result i from disk.
func (g *Gallery) Board(i int) (*board.Board, error) {
	rec, err := g.Get(i)
	if err != nil {
		return nil, err
	}
	return board.ReadFile(filepath.Join(rec.Dir, board.FileName))
}

// Select renders result i into s. The artifact is re-read on every call.
// On error s is left as it was.
func (g *Gallery) Select(i int, s scene.Scene) error {
	b, err := g.Board(i)
	if err != nil {
		return err
	}
	return scene.Build(s, b, g.palette)
}

// Timings parses the time log of result i.
func (g *Gallery) Timings(i int) (timelog.Log, error) {
	rec, err := g.Get(i)
	if err != nil {
		return timelog.Log{}, err
	}
	data, err := os.ReadFile(filepath.Join(rec.Dir, timelog.FileName))
	if err != nil {
		return timelog.Log{}, fmt.Errorf("gallery: read time log: %w", err)
	}
	return timelog.Parse(data), nil
}
