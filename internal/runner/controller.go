// Package runner drives the simulator one queued job at a time and archives
// each run's artifacts into the result gallery.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"voxca/internal/core"
	"voxca/internal/gallery"
	"voxca/internal/infra"
	"voxca/internal/jobconf"
	"voxca/internal/metrics"
	"voxca/internal/timelog"
)

// ErrClosed is returned by Enqueue after Close.
var ErrClosed = errors.New("runner: controller closed")

// Options configures a Controller.
type Options struct {
	// WorkDir is where config.txt is written and the simulator runs.
	WorkDir  string
	Executor Executor
	Gallery  *gallery.Gallery
	Logger   infra.Logger
}

// Snapshot is a consistent copy of the controller's state.
type Snapshot struct {
	State    State            `json:"state"`
	Queue    []core.ConfigJob `json:"queue"`
	Failures []core.FailedRun `json:"failures"`
	Results  int              `json:"results"`
}

// Controller owns the job queue. At most one run is active at any time;
// Enqueue never waits for it.
type Controller struct {
	work    string
	exec    Executor
	gallery *gallery.Gallery
	log     infra.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	state    State
	queue    []core.ConfigJob
	failures []core.FailedRun
	idle     chan struct{} // closed while state == Idle
	closed   bool
}

// New returns an idle controller.
func New(opts Options) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	idle := make(chan struct{})
	close(idle)
	c := &Controller{
		work:    opts.WorkDir,
		exec:    opts.Executor,
		gallery: opts.Gallery,
		log:     opts.Logger.With().Str("component", "runner").Logger(),
		ctx:     ctx,
		cancel:  cancel,
		idle:    idle,
	}
	c.setState(Idle)
	return c
}

// Enqueue appends job to the queue and starts the loop if it is idle. It
// returns the job's zero-based queue position.
func (c *Controller) Enqueue(job core.ConfigJob) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrClosed
	}
	c.queue = append(c.queue, job)
	pos := len(c.queue) - 1
	metrics.JobsSubmittedTotal.Inc()
	metrics.QueueLength.Set(float64(len(c.queue)))
	c.log.Info().Str("job", job.ID).Int("position", pos).Msg("job enqueued")

	if c.state == Idle {
		c.setState(Launching)
		c.idle = make(chan struct{})
		c.wg.Add(1)
		go c.loop()
	}
	return pos, nil
}

// State returns the current loop state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns copies of the queue and failure list.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:    c.state,
		Queue:    append([]core.ConfigJob(nil), c.queue...),
		Failures: append([]core.FailedRun(nil), c.failures...),
		Results:  c.gallery.Len(),
	}
}

// Wait blocks until the loop is idle or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting jobs, kills a running simulator and waits for the
// loop to exit. Jobs still queued are dropped.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	c.wg.Wait()
	return nil
}

func (c *Controller) setState(s State) {
	c.state = s
	for _, st := range []State{Idle, Launching, Archiving} {
		v := 0.0
		if st == s {
			v = 1
		}
		metrics.LoopState.WithLabelValues(st.String()).Set(v)
	}
}

func (c *Controller) loop() {
	defer c.wg.Done()
	for {
		c.mu.Lock()
		if len(c.queue) == 0 || c.closed {
			c.setState(Idle)
			close(c.idle)
			c.mu.Unlock()
			return
		}
		job := c.queue[0]
		c.setState(Launching)
		c.mu.Unlock()

		c.runOne(job)
	}
}

// runOne executes and archives the head job, then removes it from the queue
// whatever the outcome.
func (c *Controller) runOne(job core.ConfigJob) {
	log := c.log.With().Str("job", job.ID).Logger()

	if err := c.launch(job); err != nil {
		log.Error().Err(err).Msg("run failed")
		c.finish(job, core.StageLaunch, err)
		return
	}

	c.mu.Lock()
	c.setState(Archiving)
	c.mu.Unlock()

	n, dir := c.gallery.NextDir()
	err := archiveArtifacts(c.work, dir)
	for errors.Is(err, errDirTaken) {
		log.Warn().Str("dir", dir).Msg("result dir already exists, skipping")
		c.gallery.Skip(n)
		n, dir = c.gallery.NextDir()
		err = archiveArtifacts(c.work, dir)
	}
	if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("archive failed")
		c.finish(job, core.StageArchive, err)
		return
	}
	rec := c.gallery.Append(job, n)
	log.Info().Int("index", rec.Index).Str("dir", rec.Dir).Msg("run archived")
	c.finish(job, "", nil)
}

func (c *Controller) launch(job core.ConfigJob) error {
	if err := clearStale(c.work); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(c.work, jobconf.FileName), jobconf.Serialize(job), 0o644); err != nil {
		return fmt.Errorf("runner: write config: %w", err)
	}
	if c.exec == nil {
		return errors.New("runner: no executor configured")
	}

	start := time.Now()
	out, err := c.exec.Run(c.ctx, c.work)
	metrics.RunDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(c.work, timelog.FileName), out, 0o644); err != nil {
		return fmt.Errorf("runner: write time log: %w", err)
	}
	return nil
}

// finish removes the head job and records a failure when err is set.
func (c *Controller) finish(job core.ConfigJob, stage core.FailureStage, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) > 0 && c.queue[0].ID == job.ID {
		c.queue = c.queue[1:]
	}
	metrics.QueueLength.Set(float64(len(c.queue)))

	if err == nil {
		metrics.RunsTotal.WithLabelValues(metrics.OutcomeCompleted).Inc()
		return
	}
	outcome := metrics.OutcomeLaunchFailed
	if stage == core.StageArchive {
		outcome = metrics.OutcomeArchiveFailed
	}
	metrics.RunsTotal.WithLabelValues(outcome).Inc()
	c.failures = append(c.failures, core.FailedRun{
		Job:   job,
		Stage: stage,
		Error: err.Error(),
		At:    time.Now().UTC(),
	})
}
