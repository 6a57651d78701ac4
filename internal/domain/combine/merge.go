package combine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/okian/poolpick/internal/domain/game"
	"github.com/okian/poolpick/internal/domain/model"
)

// MergeMode selects how numeric fields of entries for the same game are
// folded together.
type MergeMode string

// Merge modes.
const (
	Average       MergeMode = "average"
	WeightedMerge MergeMode = "weighted"
	BestMerge     MergeMode = "best"
)

// ParseMergeMode parses a merge mode name, case-insensitively.
func ParseMergeMode(s string) (MergeMode, error) {
	m := MergeMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case Average, WeightedMerge, BestMerge:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

const (
	textSeparator  = " | "
	fieldPrecision = 1
)

type sourced struct {
	entry  model.Entry
	weight float64
}

// Merge folds every source's entries into one entry per game, in first-seen
// order. Within one source only the first entry for a game counts. A single
// source is returned as a copy of those entries.
func Merge(mode MergeMode, analyses []model.Analysis) ([]model.Entry, error) {
	switch mode {
	case Average, WeightedMerge, BestMerge:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if len(analyses) == 0 {
		return nil, ErrNoSources
	}
	if len(analyses) == 1 {
		return firstPerGame(analyses[0].Entries), nil
	}

	var order []string
	groups := make(map[string][]sourced)
	for _, a := range analyses {
		for _, e := range firstPerGame(a.Entries) {
			key := model.CanonicalGame(e.Game)
			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}
			groups[key] = append(groups[key], sourced{entry: e, weight: a.Source.Weight})
		}
	}

	out := make([]model.Entry, 0, len(order))
	for _, key := range order {
		out = append(out, mergeGame(mode, key, groups[key]))
	}
	return out, nil
}

// firstPerGame copies entries, dropping repeats of a game already seen.
func firstPerGame(entries []model.Entry) []model.Entry {
	out := make([]model.Entry, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		key := model.CanonicalGame(e.Game)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

func mergeGame(mode MergeMode, key string, group []sourced) model.Entry {
	if len(group) == 1 {
		return group[0].entry
	}
	if mode == BestMerge {
		top := group[0].entry
		for _, s := range group[1:] {
			if s.entry.Confidence > top.Confidence {
				top = s.entry
			}
		}
		top.Game = key
		return top
	}

	e := model.Entry{
		Game:           key,
		Team:           pickTeam(group),
		Reasoning:      joinUnique(group, func(e model.Entry) string { return e.Reasoning }),
		ContrarianEdge: joinUnique(group, func(e model.Entry) string { return e.ContrarianEdge }),
		ValuePlay:      joinUnique(group, func(e model.Entry) string { return e.ValuePlay }),
		RiskAssessment: joinUnique(group, func(e model.Entry) string { return e.RiskAssessment }),
	}
	conf := func(s sourced) decimal.Decimal { return decimal.NewFromInt(int64(s.entry.Confidence)) }
	one := func(sourced) decimal.Decimal { return decimal.NewFromInt(1) }
	weightOf := one
	if mode == WeightedMerge {
		weightOf = conf
	}
	e.Confidence = clampConfidence(mean(group, weightOf, func(s sourced) *decimal.Decimal {
		c := conf(s)
		return &c
	}).Round(0).IntPart())
	e.Spread = field(group, weightOf, func(en model.Entry) *float64 { return en.Spread })
	e.PublicPct = field(group, weightOf, func(en model.Entry) *float64 { return en.PublicPct })
	return e
}

// mean is the weighted mean of the values present in group. Zero total
// weight falls back to the plain mean.
func mean(group []sourced, weightOf func(sourced) decimal.Decimal, value func(sourced) *decimal.Decimal) decimal.Decimal {
	var sum, total, plain decimal.Decimal
	n := 0
	for _, s := range group {
		v := value(s)
		if v == nil {
			continue
		}
		w := weightOf(s)
		sum = sum.Add(v.Mul(w))
		total = total.Add(w)
		plain = plain.Add(*v)
		n++
	}
	if n == 0 {
		return decimal.Zero
	}
	if total.IsZero() {
		return plain.Div(decimal.NewFromInt(int64(n)))
	}
	return sum.Div(total)
}

func field(group []sourced, weightOf func(sourced) decimal.Decimal, get func(model.Entry) *float64) *float64 {
	present := false
	m := mean(group, weightOf, func(s sourced) *decimal.Decimal {
		f := get(s.entry)
		if f == nil {
			return nil
		}
		present = true
		d := decimal.NewFromFloat(*f)
		return &d
	})
	if !present {
		return nil
	}
	v := m.Round(fieldPrecision).InexactFloat64()
	return &v
}

// pickTeam returns the team backed by the most source weight. Ties go to
// the team seen first.
func pickTeam(group []sourced) string {
	var order []string
	votes := make(map[string]decimal.Decimal)
	display := make(map[string]string)
	for _, s := range group {
		team := game.NormalizeTeam(s.entry.Team)
		if _, ok := votes[team]; !ok {
			order = append(order, team)
			display[team] = s.entry.Team
		}
		votes[team] = votes[team].Add(decimal.NewFromFloat(s.weight))
	}
	winner := order[0]
	for _, t := range order[1:] {
		if votes[t].GreaterThan(votes[winner]) {
			winner = t
		}
	}
	return display[winner]
}

func joinUnique(group []sourced, get func(model.Entry) string) string {
	var parts []string
	seen := make(map[string]struct{})
	for _, s := range group {
		v := strings.TrimSpace(get(s.entry))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		parts = append(parts, v)
	}
	return strings.Join(parts, textSeparator)
}

func clampConfidence(c int64) int {
	switch {
	case c < model.MinConfidence:
		return model.MinConfidence
	case c > model.MaxConfidence:
		return model.MaxConfidence
	}
	return int(c)
}
