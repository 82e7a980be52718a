package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/localnerve/gatesim/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrRunCanceled finishes a run that was canceled before or while executing
	ErrRunCanceled = errors.New("run canceled")

	// ErrLauncherClosed is returned by Submit after Shutdown
	ErrLauncherClosed = errors.New("launcher is shut down")
)

// Hooks receive run status transitions. Either may be nil.
type Hooks struct {
	Started  func(runID string)
	Finished func(runID string, err error)
}

// Launcher executes runs in the background with bounded concurrency
type Launcher struct {
	runner  Runner
	sem     *semaphore.Weighted
	hooks   Hooks
	timeout time.Duration
	log     *zap.SugaredLogger

	base context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	closed  bool
}

// NewLauncher returns a launcher running at most maxConcurrent jobs at once.
// A positive timeout bounds each run.
func NewLauncher(runner Runner, maxConcurrent int64, timeout time.Duration, hooks Hooks, log *zap.SugaredLogger) *Launcher {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	base, stop := context.WithCancel(context.Background())
	return &Launcher{
		runner:  runner,
		sem:     semaphore.NewWeighted(maxConcurrent),
		hooks:   hooks,
		timeout: timeout,
		log:     log,
		base:    base,
		stop:    stop,
		cancels: make(map[string]context.CancelFunc),
	}
}

// Runner returns the runner jobs execute on
func (l *Launcher) Runner() Runner {
	return l.runner
}

// Submit queues req. It returns immediately.
func (l *Launcher) Submit(req RunRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLauncherClosed
	}
	if _, dup := l.cancels[req.RunID]; dup {
		return fmt.Errorf("run %s already submitted", req.RunID)
	}

	ctx, cancel := context.WithCancel(l.base)
	l.cancels[req.RunID] = cancel
	l.wg.Add(1)
	go l.execute(ctx, req)
	return nil
}

// Cancel stops a queued or running job. It reports whether the job was known.
func (l *Launcher) Cancel(runID string) bool {
	l.mu.Lock()
	cancel, ok := l.cancels[runID]
	l.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// Active returns the number of submitted jobs that have not finished
func (l *Launcher) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cancels)
}

// Shutdown stops accepting jobs and waits for running ones. When ctx ends
// first, the remaining jobs are canceled and Shutdown returns ctx.Err().
func (l *Launcher) Shutdown(ctx context.Context) error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		l.stop()
		return nil
	case <-ctx.Done():
		l.stop()
		<-done
		return ctx.Err()
	}
}

func (l *Launcher) execute(ctx context.Context, req RunRequest) {
	defer l.wg.Done()
	defer l.forget(req.RunID)

	if err := l.sem.Acquire(ctx, 1); err != nil {
		l.finish(req, ErrRunCanceled, 0)
		return
	}
	defer l.sem.Release(1)

	if l.hooks.Started != nil {
		l.hooks.Started(req.RunID)
	}
	l.log.Infow("Engine run started", "run", req.RunID, "mode", req.Mode(), "archive", req.ArchivePath)

	runCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	metrics.RunsInFlight.Inc()
	start := time.Now()
	err := l.runner.Run(runCtx, req)
	elapsed := time.Since(start)
	metrics.RunsInFlight.Dec()

	switch {
	case err == nil:
	case ctx.Err() != nil:
		err = ErrRunCanceled
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		err = fmt.Errorf("run timed out after %s", l.timeout)
	}
	l.finish(req, err, elapsed)
}

func (l *Launcher) finish(req RunRequest, err error, elapsed time.Duration) {
	outcome := "succeeded"
	switch {
	case errors.Is(err, ErrRunCanceled):
		outcome = "canceled"
	case err != nil:
		outcome = "failed"
	}
	metrics.RunsTotal.WithLabelValues(req.Mode(), outcome).Inc()
	if elapsed > 0 {
		metrics.RunDuration.WithLabelValues(req.Mode()).Observe(elapsed.Seconds())
	}

	if err != nil {
		l.log.Warnw("Engine run ended", "run", req.RunID, "outcome", outcome, "error", err)
	} else {
		l.log.Infow("Engine run ended", "run", req.RunID, "outcome", outcome, "elapsed", elapsed)
	}

	if l.hooks.Finished != nil {
		l.hooks.Finished(req.RunID, err)
	}
}

func (l *Launcher) forget(runID string) {
	l.mu.Lock()
	cancel, ok := l.cancels[runID]
	delete(l.cancels, runID)
	l.mu.Unlock()
	if ok {
		cancel()
	}
}
