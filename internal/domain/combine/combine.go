// Package combine merges analyses from several sources. Signal modes decide
// which games the sources agree on; merge modes fold per-game entries into a
// single entry.
package combine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/poolpick/internal/domain/model"
)

// Mode selects a signal combination.
type Mode string

// Signal combination modes.
const (
	Consensus Mode = "consensus"
	Weighted  Mode = "weighted"
	Best      Mode = "best"
)

// Modes lists every signal mode.
func Modes() []Mode { return []Mode{Consensus, Weighted, Best} }

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Result is the outcome of a signal combination. Scores is only populated
// by the weighted mode.
type Result struct {
	Mode    Mode               `json:"mode"`
	Games   []string           `json:"games"`
	Scores  map[string]float64 `json:"scores,omitempty"`
	Sources []string           `json:"sources"`
}

// Combiner is one signal combination mode.
type Combiner interface {
	Mode() Mode
	// Combine never modifies analyses.
	Combine(analyses []model.Analysis) Result
}

// For returns the combiner for mode.
func For(mode Mode) (Combiner, error) {
	switch mode {
	case Consensus:
		return consensus{}, nil
	case Weighted:
		return weighted{}, nil
	case Best:
		return best{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// Combine runs mode over analyses.
func Combine(mode Mode, analyses []model.Analysis) (Result, error) {
	c, err := For(mode)
	if err != nil {
		return Result{}, err
	}
	if len(analyses) == 0 {
		return Result{}, ErrNoSources
	}
	return c.Combine(analyses), nil
}

type consensus struct{}

func (consensus) Mode() Mode { return Consensus }

// Combine keeps games mentioned by more than one distinct source name.
func (consensus) Combine(analyses []model.Analysis) Result {
	r := newResult(Consensus, analyses)
	if len(analyses) == 1 {
		r.Games = analyses[0].MentionedGames()
		return r
	}
	var order []string
	names := make(map[string]map[string]struct{})
	for _, a := range analyses {
		for _, g := range a.MentionedGames() {
			if _, ok := names[g]; !ok {
				names[g] = make(map[string]struct{})
				order = append(order, g)
			}
			names[g][a.Source.Name] = struct{}{}
		}
	}
	for _, g := range order {
		if len(names[g]) > 1 {
			r.Games = append(r.Games, g)
		}
	}
	return r
}

type weighted struct{}

func (weighted) Mode() Mode { return Weighted }

// Combine sums source weight per game, normalized so the top game is 1.0.
// When no game carries positive weight every score is 0.
func (weighted) Combine(analyses []model.Analysis) Result {
	r := newResult(Weighted, analyses)
	var order []string
	sums := make(map[string]float64)
	for _, a := range analyses {
		for _, g := range a.MentionedGames() {
			if _, ok := sums[g]; !ok {
				order = append(order, g)
			}
			sums[g] += a.Source.Weight
		}
	}
	r.Scores = make(map[string]float64, len(order))
	if len(analyses) == 1 {
		for _, g := range order {
			r.Scores[g] = 1.0
		}
		r.Games = order
		return r
	}
	var top float64
	for _, s := range sums {
		if s > top {
			top = s
		}
	}
	for _, g := range order {
		if top > 0 {
			r.Scores[g] = sums[g] / top
		} else {
			r.Scores[g] = 0
		}
	}
	r.Games = append([]string(nil), order...)
	sort.SliceStable(r.Games, func(i, j int) bool {
		return r.Scores[r.Games[i]] > r.Scores[r.Games[j]]
	})
	return r
}

type best struct{}

func (best) Mode() Mode { return Best }

// Combine concatenates each source's contrarian opportunities in source
// order, keeping the first occurrence of each game.
func (best) Combine(analyses []model.Analysis) Result {
	r := newResult(Best, analyses)
	if len(analyses) == 1 {
		r.Games = analyses[0].ContrarianGames()
		return r
	}
	seen := make(map[string]struct{})
	for _, a := range analyses {
		for _, g := range a.ContrarianGames() {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			r.Games = append(r.Games, g)
		}
	}
	return r
}

func newResult(mode Mode, analyses []model.Analysis) Result {
	r := Result{Mode: mode, Sources: make([]string, 0, len(analyses))}
	for _, a := range analyses {
		r.Sources = append(r.Sources, a.Source.Name)
	}
	return r
}

// Picks turns a combined game list into ordered entries: the away team of
// each game, confidence counting down from 20.
func Picks(r Result) []model.Entry {
	out := make([]model.Entry, 0, min(len(r.Games), model.MaxPicks))
	for i, id := range r.Games {
		if i >= model.MaxPicks {
			break
		}
		away, _, _ := strings.Cut(id, "@")
		out = append(out, model.Entry{
			Game:       id,
			Team:       away,
			Confidence: model.MaxConfidence - i,
			Reasoning:  fmt.Sprintf("%s selection across %d sources", r.Mode, len(r.Sources)),
		})
	}
	return out
}
