package workerpool

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/poolpick/internal/domain/model"
	"github.com/okian/poolpick/internal/domain/scoring"
	"github.com/okian/poolpick/pkg/logger"
	"github.com/okian/poolpick/pkg/metrics"
)

// Runner scores a single job. *scoring.Scorer implements it.
type Runner interface {
	Run(j scoring.Job) (model.Candidate, bool)
}

// task is one job of a batch. The worker writes into out[pos]; a task
// released without a result bumps missed.
type task struct {
	ctx    context.Context //nolint:containedctx // per-batch cancellation travels with the task
	runner Runner
	job    scoring.Job
	pos    int
	out    []scoring.Result
	wg     *sync.WaitGroup
	missed *atomic.Int32
}

func (t task) release() {
	t.missed.Add(1)
	t.wg.Done()
}

type worker struct {
	name     string
	tasks    <-chan task
	shutdown <-chan struct{}
	stop     func()
	done     chan struct{}
	logger   logger.Logger
}

// run processes tasks until shutdown. Tasks still queued at shutdown are
// released without being scored. A cancelled ctx shuts the whole pool
// down so no batch waits on workers that are gone.
func (w *worker) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.stop()
			w.drain()
			return
		case <-w.shutdown:
			w.drain()
			return
		case t := <-w.tasks:
			w.process(t)
		}
	}
}

func (w *worker) process(t task) {
	if t.ctx.Err() != nil {
		t.release()
		return
	}
	defer t.wg.Done()
	metrics.UpdateWorkerActive(1)
	defer metrics.UpdateWorkerActive(-1)

	c, ok := t.runner.Run(t.job)
	t.out[t.pos] = scoring.Result{Index: t.job.Index, Candidate: c, OK: ok}
	metrics.RecordWorkerJob()
	w.logger.Debug(t.ctx, "game scored",
		logger.String("game", t.job.Game.String()),
		logger.Bool("picked", ok),
	)
}

func (w *worker) drain() {
	for {
		select {
		case t := <-w.tasks:
			t.release()
		default:
			return
		}
	}
}
