// Package rating holds the static power-rating table and derives the
// home-field adjusted pair used by every scoring strategy.
package rating

import (
	"math"

	"github.com/okian/poolpick/internal/domain/game"
)

// Default rating model constants.
const (
	DefaultRating    = 50.0
	DefaultHomeBonus = 3.0
)

// Option applies a configuration option to the Table.
type Option func(*Table)

// WithDefaultRating sets the rating used for teams missing from the table.
func WithDefaultRating(r float64) Option {
	return func(t *Table) {
		if !math.IsNaN(r) && !math.IsInf(r, 0) {
			t.fallback = r
		}
	}
}

// WithHomeBonus sets the home-field bonus added to the home rating.
func WithHomeBonus(b float64) Option {
	return func(t *Table) {
		if !math.IsNaN(b) && !math.IsInf(b, 0) {
			t.homeBonus = b
		}
	}
}

// Table maps team tokens to power ratings. It is read-only after New.
type Table struct {
	ratings   map[string]float64
	fallback  float64
	homeBonus float64
}

// New copies ratings into a read-only table. Team keys are normalized the
// same way game identifiers are.
func New(ratings map[string]float64, opts ...Option) *Table {
	t := &Table{
		ratings:   make(map[string]float64, len(ratings)),
		fallback:  DefaultRating,
		homeBonus: DefaultHomeBonus,
	}
	for team, r := range ratings {
		t.ratings[game.NormalizeTeam(team)] = r
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Rating returns the team's rating and whether it was present.
func (t *Table) Rating(team string) (float64, bool) {
	if t == nil {
		return DefaultRating, false
	}
	r, ok := t.ratings[game.NormalizeTeam(team)]
	if !ok {
		return t.fallback, false
	}
	return r, true
}

// HomeBonus returns the configured home-field bonus.
func (t *Table) HomeBonus() float64 {
	if t == nil {
		return DefaultHomeBonus
	}
	return t.homeBonus
}

// Len returns the number of rated teams.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ratings)
}

// Pair is the rating comparison for one game, home bonus already applied.
type Pair struct {
	Away float64
	Home float64
}

// Diff is home minus away.
func (p Pair) Diff() float64 { return p.Home - p.Away }

// Shift adds the same noise to both sides.
func (p Pair) Shift(noise float64) Pair {
	return Pair{Away: p.Away + noise, Home: p.Home + noise}
}

// Favorite returns the higher rated side. Ties go to the away team.
func (p Pair) Favorite(g game.Game) string {
	if p.Home > p.Away {
		return g.Home
	}
	return g.Away
}

// Underdog returns the side Favorite did not pick.
func (p Pair) Underdog(g game.Game) string {
	return g.Opponent(p.Favorite(g))
}

// ForGame looks up both teams and applies the home bonus.
func (t *Table) ForGame(g game.Game) Pair {
	awayTeam, homeTeam := g.Teams()
	away, _ := t.Rating(awayTeam)
	home, _ := t.Rating(homeTeam)
	return Pair{Away: away, Home: home + t.HomeBonus()}
}

// Reference returns the power ratings shipped with the original pool tool.
// Collaborators normally supply their own table; this keeps the engine
// usable out of the box.
func Reference() map[string]float64 {
	return map[string]float64{
		"KC": 95, "BALT": 92, "SF": 91, "BUF": 90, "DAL": 89, "PHIL": 88,
		"MIA": 87, "DET": 86, "CLEV": 85, "HOU": 84, "GB": 83, "LAR": 82,
		"SEA": 81, "TB": 80, "IND": 79, "CINC": 78, "PITT": 77, "LV": 76,
		"NO": 75, "ATL": 74, "CHI": 73, "NYG": 72, "WASH": 71, "CAR": 70,
		"DEN": 69, "NYJ": 68, "TENN": 67, "JAC": 66, "LAC": 65, "MINN": 64,
		"ARIZ": 63, "NE": 62,
	}
}
