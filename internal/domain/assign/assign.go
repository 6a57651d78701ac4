// Package assign hands out confidence points so that K picks use each of
// 1..K exactly once.
package assign

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/poolpick/internal/domain/fusion"
	"github.com/okian/poolpick/internal/domain/game"
	"github.com/okian/poolpick/internal/domain/model"
)

const riskWeight = 0.5

// Rank sorts candidates by score, highest first, keeps the top
// min(20, len) and labels them K down to 1. Equal scores keep pool order.
func Rank(pool []model.Candidate) []model.Pick {
	sorted := append([]model.Candidate(nil), pool...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	k := min(len(sorted), model.MaxPicks)
	picks := make([]model.Pick, k)
	for i := 0; i < k; i++ {
		c := sorted[i]
		picks[i] = model.Pick{
			Game:             c.Game.String(),
			Team:             c.Winner,
			ConfidencePoints: k - i,
			Strategy:         c.Strategy,
		}
	}
	return picks
}

// Reallocation reports what Reallocate did.
type Reallocation struct {
	Picks []model.Pick
	// Raw holds the value-driven points per pick before the re-rank.
	Raw []int
	// Collisions counts raw points that were shared with another pick.
	Collisions int
}

// Reallocate redistributes the points of ranked picks by value. Each pick is
// matched to its play by game and team. Picks without a play keep a value
// and risk of zero. The raw points can collide, so the result is re-ranked by
// raw points and then by original rank, and relabeled K down to 1.
func Reallocate(ranked []model.Pick, plays []fusion.ValuePlay) Reallocation {
	k := len(ranked)
	if k == 0 {
		return Reallocation{}
	}
	byKey := make(map[string]fusion.ValuePlay, len(plays))
	for _, p := range plays {
		key := pickKey(p.Game, p.Team)
		if _, ok := byKey[key]; !ok {
			byKey[key] = p
		}
	}

	type slot struct {
		rank  int
		pick  model.Pick
		play  fusion.ValuePlay
		value int
	}
	slots := make([]slot, k)
	for i, p := range ranked {
		slots[i] = slot{rank: i, pick: p, play: byKey[pickKey(p.Game, p.Team)]}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].play.ValueScore > slots[j].play.ValueScore
	})
	counts := make(map[int]int, k)
	for i := range slots {
		base := float64(k - i)
		raw := math.Floor(base * slots[i].play.ValueScore * (1 - slots[i].play.RiskScore*riskWeight))
		slots[i].value = clamp(1, k, int(raw))
		counts[slots[i].value]++
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].value != slots[j].value {
			return slots[i].value > slots[j].value
		}
		return slots[i].rank < slots[j].rank
	})
	out := Reallocation{Picks: make([]model.Pick, k), Raw: make([]int, k)}
	for i, s := range slots {
		s.pick.ConfidencePoints = k - i
		out.Picks[i] = s.pick
		out.Raw[i] = s.value
	}
	for _, n := range counts {
		if n > 1 {
			out.Collisions += n
		}
	}
	return out
}

// Verify checks that picks carry exactly the points 1..len(picks).
func Verify(picks []model.Pick) error {
	k := len(picks)
	seen := make([]bool, k+1)
	for _, p := range picks {
		c := p.ConfidencePoints
		if c < 1 || c > k {
			return fmt.Errorf("%w: %s has %d of %d", ErrBijection, p.Game, c, k)
		}
		if seen[c] {
			return fmt.Errorf("%w: %d used twice", ErrBijection, c)
		}
		seen[c] = true
	}
	return nil
}

func pickKey(gameID, team string) string {
	return model.CanonicalGame(gameID) + "/" + game.NormalizeTeam(team)
}

func clamp(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
