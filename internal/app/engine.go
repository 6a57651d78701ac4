// Package service runs pick generation for callers of the HTTP API and the
// command line.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/poolpick/internal/domain/combine"
	"github.com/okian/poolpick/internal/domain/model"
	"github.com/okian/poolpick/internal/domain/rating"
	"github.com/okian/poolpick/internal/workerpool"
	"github.com/okian/poolpick/pkg/logger"
)

const (
	defaultSeed         = 42
	poolShutdownTimeout = 5 * time.Second
)

// Engine generates confidence picks. It holds no per-run state; concurrent
// Generate calls are independent.
type Engine struct {
	mu sync.RWMutex

	// Configuration
	workerCount   int
	ratings       map[string]float64
	homeBonus     float64
	defaultRating float64
	maxPicks      int
	seed          int64
	combineMode   combine.Mode
	mergeMode     combine.MergeMode
	strict        bool
	reallocate    bool
	sourceWeights map[string]float64

	// State
	pool    *workerpool.Pool
	started bool
	runs    atomic.Int64
	lastRun atomic.Int64

	logger logger.Logger
}

// New constructs an Engine with default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		ratings:       rating.Reference(),
		homeBonus:     rating.DefaultHomeBonus,
		defaultRating: rating.DefaultRating,
		maxPicks:      model.MaxPicks,
		seed:          defaultSeed,
		combineMode:   combine.Consensus,
		mergeMode:     combine.Average,
		reallocate:    true,
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start launches the scoring workers. Without Start, or with a worker
// count of zero, games are scored sequentially.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return nil
	}
	if e.workerCount > 0 {
		e.pool = workerpool.NewPool(
			workerpool.WithSize(e.workerCount),
			workerpool.WithLogger(e.logger.Named("workers")),
		)
		e.pool.Start(ctx)
	}
	e.started = true
	e.logger.Info(ctx, "engine started",
		logger.Int("workers", e.workerCount),
		logger.String("combineMode", string(e.combineMode)),
		logger.String("mergeMode", string(e.mergeMode)),
		logger.Bool("reallocate", e.reallocate),
	)
	return nil
}

// Stop shuts down the scoring workers.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return
	}
	if e.pool != nil {
		ctx, cancel := context.WithTimeout(context.Background(), poolShutdownTimeout)
		if err := e.pool.Shutdown(ctx); err != nil {
			e.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
		}
		cancel()
		e.pool = nil
	}
	e.started = false
	e.logger.Info(context.Background(), "engine stopped")
}

func (e *Engine) workers() *workerpool.Pool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pool
}

// GetStats returns engine statistics for monitoring.
func (e *Engine) GetStats() map[string]any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	stats := map[string]any{
		"started":      e.started,
		"workerCount":  e.workerCount,
		"ratedTeams":   e.table(nil).Len(),
		"combineMode":  string(e.combineMode),
		"mergeMode":    string(e.mergeMode),
		"reallocate":   e.reallocate,
		"strict":       e.strict,
		"runs":         e.runs.Load(),
		"lastRunMicro": e.lastRun.Load(),
	}
	return stats
}
