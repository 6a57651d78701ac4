// Package scoring turns games and power ratings into scored pick candidates.
// Each strategy tag has exactly one scorer; the set is closed to this package.
package scoring

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/okian/poolpick/internal/domain/game"
	"github.com/okian/poolpick/internal/domain/model"
	"github.com/okian/poolpick/internal/domain/rating"
	"github.com/okian/poolpick/internal/domain/strategy"
)

// Scoring constants per strategy.
const (
	baseConfidence = 50.0

	protectiveMinGap   = 5.0
	protectiveSlope    = 2.0
	protectiveCeiling  = 85.0
	balancedSlope      = 1.5
	balancedMaxBonus   = 35.0
	highVarNoise       = 10.0
	highVarFlipProb    = 0.3
	highVarSlope       = 1.2
	highVarMaxBonus    = 40.0
	maxVarNoise        = 20.0
	maxVarFlipProb     = 0.6
	maxVarConfidenceLo = 60.0
	maxVarConfidenceHi = 90.0
)

// Strategy scores one game. Implementations are the four variants below.
type Strategy interface {
	Tag() strategy.Tag
	// ScoreGame returns the candidate for g, or false when the strategy
	// skips the game. rng is only read by randomized variants.
	ScoreGame(g game.Game, p rating.Pair, rng *rand.Rand) (model.Candidate, bool)
	sealed()
}

// Protective only picks clear favorites.
type Protective struct{}

// Balanced always picks the favorite with spread-scaled confidence.
type Balanced struct{}

// HighVariance adds rating noise and sometimes takes the underdog.
type HighVariance struct{}

// MaximumVariance adds heavy noise, usually takes the underdog and draws
// confidence at random.
type MaximumVariance struct{}

// For returns the scorer for tag.
func For(tag strategy.Tag) (Strategy, error) {
	switch tag {
	case strategy.Protective:
		return Protective{}, nil
	case strategy.Balanced:
		return Balanced{}, nil
	case strategy.HighVariance:
		return HighVariance{}, nil
	case strategy.MaximumVariance:
		return MaximumVariance{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, tag)
	}
}

func (Protective) Tag() strategy.Tag      { return strategy.Protective }
func (Balanced) Tag() strategy.Tag        { return strategy.Balanced }
func (HighVariance) Tag() strategy.Tag    { return strategy.HighVariance }
func (MaximumVariance) Tag() strategy.Tag { return strategy.MaximumVariance }

func (Protective) sealed()      {}
func (Balanced) sealed()        {}
func (HighVariance) sealed()    {}
func (MaximumVariance) sealed() {}

// ScoreGame skips games within five rating points.
func (s Protective) ScoreGame(g game.Game, p rating.Pair, _ *rand.Rand) (model.Candidate, bool) {
	gap := math.Abs(p.Diff())
	if gap <= protectiveMinGap {
		return model.Candidate{}, false
	}
	conf := math.Min(protectiveCeiling, baseConfidence+protectiveSlope*gap)
	return candidate(s, g, p, p.Favorite(g), conf, false), true
}

// ScoreGame never skips.
func (s Balanced) ScoreGame(g game.Game, p rating.Pair, _ *rand.Rand) (model.Candidate, bool) {
	gap := math.Abs(p.Diff())
	conf := baseConfidence + math.Min(balancedMaxBonus, balancedSlope*gap)
	return candidate(s, g, p, p.Favorite(g), conf, false), true
}

// ScoreGame draws noise then the flip, in that order.
func (s HighVariance) ScoreGame(g game.Game, p rating.Pair, rng *rand.Rand) (model.Candidate, bool) {
	rng = orDefault(rng)
	p = p.Shift(uniform(rng, -highVarNoise, highVarNoise))
	conf := baseConfidence + math.Min(highVarMaxBonus, highVarSlope*math.Abs(p.Diff()))
	if rng.Float64() < highVarFlipProb {
		return candidate(s, g, p, p.Underdog(g), conf, true), true
	}
	return candidate(s, g, p, p.Favorite(g), conf, false), true
}

// ScoreGame draws noise, confidence, then the flip, in that order.
func (s MaximumVariance) ScoreGame(g game.Game, p rating.Pair, rng *rand.Rand) (model.Candidate, bool) {
	rng = orDefault(rng)
	p = p.Shift(uniform(rng, -maxVarNoise, maxVarNoise))
	conf := uniform(rng, maxVarConfidenceLo, maxVarConfidenceHi)
	if rng.Float64() < maxVarFlipProb {
		return candidate(s, g, p, p.Underdog(g), conf, true), true
	}
	return candidate(s, g, p, p.Favorite(g), conf, false), true
}

func candidate(s Strategy, g game.Game, p rating.Pair, winner string, conf float64, flipped bool) model.Candidate {
	return model.Candidate{
		Game:      g,
		Winner:    winner,
		Score:     conf,
		Spread:    p.Diff(),
		PublicPct: model.DefaultPublicPct,
		Strategy:  s.Tag(),
		Flipped:   flipped,
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// defaultRandomSeed keeps unseeded runs reproducible.
const defaultRandomSeed = 42

func orDefault(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(defaultRandomSeed)) //nolint:gosec // deterministic heuristic noise
}
