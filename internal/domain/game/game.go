// Package game parses schedule entries of the form AWAY@HOME.
package game

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator splits the away and home team tokens.
const Separator = "@"

// Bye marks a schedule slot without a game.
const Bye = "BYE"

// Game is an immutable matchup read from a schedule.
type Game struct {
	Away string
	Home string
}

// String renders the canonical AWAY@HOME identifier.
func (g Game) String() string {
	return g.Away + Separator + g.Home
}

// Teams returns away then home.
func (g Game) Teams() (string, string) {
	return g.Away, g.Home
}

// Involves reports whether team plays in g.
func (g Game) Involves(team string) bool {
	t := NormalizeTeam(team)
	return t == g.Away || t == g.Home
}

// Opponent returns the other side of the matchup, or "" when team does not play.
func (g Game) Opponent(team string) string {
	switch NormalizeTeam(team) {
	case g.Away:
		return g.Home
	case g.Home:
		return g.Away
	default:
		return ""
	}
}

// Parse validates id and returns the matchup. The identifier must contain
// exactly one separator with non-empty tokens on both sides.
func Parse(id string) (Game, error) {
	if strings.Count(id, Separator) != 1 {
		return Game{}, fmt.Errorf("%w: %q", ErrMalformedGameIdentifier, id)
	}
	away, home, _ := strings.Cut(id, Separator)
	away, home = NormalizeTeam(away), NormalizeTeam(home)
	if away == "" || home == "" {
		return Game{}, fmt.Errorf("%w: %q", ErrMalformedGameIdentifier, id)
	}
	return Game{Away: away, Home: home}, nil
}

// ParseAll parses every identifier, failing on the first malformed one.
func ParseAll(ids []string) ([]Game, error) {
	out := make([]Game, 0, len(ids))
	for i, id := range ids {
		g, err := Parse(id)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// FilterBye drops BYE slots and blank entries from a raw schedule.
func FilterBye(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" || strings.EqualFold(trimmed, Bye) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// NormalizeTeam trims, strips accents and upper-cases a team token so
// ratings and schedules written by different collaborators line up.
func NormalizeTeam(team string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(team))
	if err != nil {
		out = strings.TrimSpace(team)
	}
	return cases.Upper(language.Und).String(out)
}
