package scoring

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/okian/poolpick/internal/domain/game"
	"github.com/okian/poolpick/internal/domain/model"
	"github.com/okian/poolpick/internal/domain/rating"
)

// Stats summarizes one scoring pass.
type Stats struct {
	Scored  int
	Skipped int
	Flipped int
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithCap sets the advisory candidate cap. Non-positive values disable it.
func WithCap(n int) Option {
	return func(s *Scorer) {
		s.limit = n
	}
}

// WithRand sets the master random source. Each game receives its own
// source seeded from the master in schedule order.
func WithRand(rng *rand.Rand) Option {
	return func(s *Scorer) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithSeed seeds the master random source.
func WithSeed(seed int64) Option {
	return func(s *Scorer) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible heuristic noise
	}
}

// Scorer applies one Strategy across a schedule.
type Scorer struct {
	strategy Strategy
	table    *rating.Table
	rng      *rand.Rand
	limit    int
}

// New creates a scorer for strat over table.
func New(strat Strategy, table *rating.Table, opts ...Option) *Scorer {
	s := &Scorer{
		strategy: strat,
		table:    table,
		rng:      rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // reproducible heuristic noise
		limit:    model.MaxPicks,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Strategy returns the scorer's strategy.
func (s *Scorer) Strategy() Strategy { return s.strategy }

// Job is one unit of per-game scoring work. Jobs are independent and may be
// run in any order or in parallel.
type Job struct {
	Index int
	Game  game.Game
	rng   *rand.Rand
}

// Jobs prepares one job per game, drawing each game's seed from the master
// source sequentially so results do not depend on execution order.
func (s *Scorer) Jobs(games []game.Game) []Job {
	jobs := make([]Job, len(games))
	for i, g := range games {
		jobs[i] = Job{
			Index: i,
			Game:  g,
			rng:   rand.New(rand.NewSource(s.rng.Int63())), //nolint:gosec // reproducible heuristic noise
		}
	}
	return jobs
}

// Run scores a single job.
func (s *Scorer) Run(j Job) (model.Candidate, bool) {
	return s.strategy.ScoreGame(j.Game, s.table.ForGame(j.Game), j.rng)
}

// Result pairs a job index with its outcome.
type Result struct {
	Index     int
	Candidate model.Candidate
	OK        bool
}

// Collect orders results by job index, drops skipped games and applies the
// cap.
func (s *Scorer) Collect(results []Result) ([]model.Candidate, Stats) {
	ordered := make([]*Result, len(results))
	for i := range results {
		r := &results[i]
		if r.Index >= 0 && r.Index < len(ordered) {
			ordered[r.Index] = r
		}
	}
	var st Stats
	out := make([]model.Candidate, 0, len(results))
	for _, r := range ordered {
		if r == nil || !r.OK {
			st.Skipped++
			continue
		}
		if r.Candidate.Flipped {
			st.Flipped++
		}
		out = append(out, r.Candidate)
	}
	st.Scored = len(out)
	if s.limit > 0 && len(out) > s.limit {
		out = out[:s.limit]
	}
	return out, st
}

// ScoreAll scores games sequentially in schedule order.
func (s *Scorer) ScoreAll(ctx context.Context, games []game.Game) ([]model.Candidate, Stats, error) {
	jobs := s.Jobs(games)
	results := make([]Result, 0, len(jobs))
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, Stats{}, fmt.Errorf("scoring cancelled: %w", err)
		}
		c, ok := s.Run(j)
		results = append(results, Result{Index: j.Index, Candidate: c, OK: ok})
	}
	out, st := s.Collect(results)
	return out, st, nil
}
