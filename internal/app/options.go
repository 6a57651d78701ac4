package service

import (
	"github.com/okian/poolpick/internal/domain/combine"
	"github.com/okian/poolpick/internal/domain/rating"
	"github.com/okian/poolpick/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithWorkerCount sets the number of scoring workers. Zero scores games on
// the calling goroutine.
func WithWorkerCount(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.workerCount = n
		}
	}
}

// WithRatings sets the default power ratings used when a request carries
// none.
func WithRatings(ratings map[string]float64) Option {
	return func(e *Engine) {
		if len(ratings) > 0 {
			e.ratings = ratings
		}
	}
}

// WithHomeBonus sets the home-field bonus.
func WithHomeBonus(b float64) Option {
	return func(e *Engine) {
		e.homeBonus = b
	}
}

// WithDefaultRating sets the rating of unlisted teams.
func WithDefaultRating(r float64) Option {
	return func(e *Engine) {
		e.defaultRating = r
	}
}

// WithMaxPicks sets the advisory scorer cap.
func WithMaxPicks(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPicks = n
		}
	}
}

// WithSeed sets the seed used when a request does not supply one.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithCombineMode sets the default signal combination mode.
func WithCombineMode(m combine.Mode) Option {
	return func(e *Engine) {
		if m != "" {
			e.combineMode = m
		}
	}
}

// WithMergeMode sets the default numeric merge mode.
func WithMergeMode(m combine.MergeMode) Option {
	return func(e *Engine) {
		if m != "" {
			e.mergeMode = m
		}
	}
}

// WithStrictSources rejects analyses that rate one game twice with
// different confidence.
func WithStrictSources(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithReallocation toggles the value-driven reallocation pass.
func WithReallocation(enabled bool) Option {
	return func(e *Engine) {
		e.reallocate = enabled
	}
}

// WithSourceWeights sets weights for sources that arrive without one.
func WithSourceWeights(weights map[string]float64) Option {
	return func(e *Engine) {
		e.sourceWeights = weights
	}
}

func (e *Engine) table(ratings map[string]float64) *rating.Table {
	if len(ratings) == 0 {
		ratings = e.ratings
	}
	return rating.New(ratings, rating.WithHomeBonus(e.homeBonus), rating.WithDefaultRating(e.defaultRating))
}
