// Package workerpool runs per-game scoring jobs on a fixed set of
// goroutines shared by every generation run.
package workerpool

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/okian/poolpick/internal/domain/scoring"
	"github.com/okian/poolpick/pkg/logger"
)

const defaultQueueSize = 1024

// Pool is a long-lived set of scoring workers.
type Pool struct {
	size      int
	queueSize int
	tasks     chan task
	workers   []*worker

	started  atomic.Bool
	stopOnce sync.Once
	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a pool. Call Start before Score.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		size:      runtime.NumCPU(),
		queueSize: defaultQueueSize,
		shutdown:  make(chan struct{}),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.tasks = make(chan task, p.queueSize)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Start launches the workers. They stop when ctx is cancelled or Shutdown
// is called. Start is a no-op after the first call.
func (p *Pool) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	p.workers = make([]*worker, p.size)
	for i := range p.workers {
		name := "worker-" + strconv.Itoa(i)
		w := &worker{
			name:     name,
			tasks:    p.tasks,
			shutdown: p.shutdown,
			stop:     p.stop,
			done:     make(chan struct{}),
			logger:   p.logger.Named(name),
		}
		p.workers[i] = w
		go w.run(ctx)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", p.size))
}

// Score runs every job and returns the results in job order. It blocks
// until all jobs finish, ctx is cancelled or the pool shuts down. Jobs
// released unscored by a stopping pool fail the batch with ErrStopped.
func (p *Pool) Score(ctx context.Context, runner Runner, jobs []scoring.Job) ([]scoring.Result, error) {
	if !p.started.Load() {
		return nil, ErrNotStarted
	}
	if p.Stopped() {
		return nil, ErrStopped
	}
	out := make([]scoring.Result, len(jobs))
	var (
		wg     sync.WaitGroup
		missed atomic.Int32
	)
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("enqueue scoring job: %w", err)
		}
		wg.Add(1)
		t := task{ctx: ctx, runner: runner, job: j, pos: i, out: out, wg: &wg, missed: &missed}
		select {
		case p.tasks <- t:
		case <-ctx.Done():
			wg.Done()
			return nil, fmt.Errorf("enqueue scoring job: %w", ctx.Err())
		case <-p.shutdown:
			wg.Done()
			return nil, ErrStopped
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("await scoring jobs: %w", err)
		}
		if n := missed.Load(); n > 0 {
			return nil, fmt.Errorf("%w: %d jobs unscored", ErrStopped, n)
		}
		return out, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("await scoring jobs: %w", ctx.Err())
	case <-p.shutdown:
		p.releaseQueued()
		return nil, ErrStopped
	}
}

// releaseQueued frees tasks that reached the queue after every worker left.
func (p *Pool) releaseQueued() {
	for {
		select {
		case t := <-p.tasks:
			t.release()
		default:
			return
		}
	}
}

// Stopped reports whether the pool has shut down, either through Shutdown
// or because the context given to Start ended.
func (p *Pool) Stopped() bool {
	select {
	case <-p.shutdown:
		return true
	default:
		return false
	}
}

func (p *Pool) stop() {
	p.stopOnce.Do(func() { close(p.shutdown) })
}

// Shutdown stops the workers and waits for them to exit.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.stop()
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("shutdown timed out: %w", ctx.Err())
		}
	}
	return nil
}
