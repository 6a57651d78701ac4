package model

import (
	"fmt"
	"strings"

	"github.com/okian/poolpick/internal/domain/game"
)

// Validate checks an entry's game identifier, that its team plays in that
// game and its confidence range.
func (e Entry) Validate() error {
	g, err := game.Parse(e.Game)
	if err != nil {
		return err
	}
	if !g.Involves(e.Team) {
		return fmt.Errorf("%w: %q in %s", ErrTeamNotInGame, e.Team, g)
	}
	if e.Confidence < MinConfidence || e.Confidence > MaxConfidence {
		return fmt.Errorf("%w: game %s has %d", ErrInvalidConfidenceRange, e.Game, e.Confidence)
	}
	return nil
}

// Validate checks the source and every entry. In strict mode two entries for
// the same game with different confidence are rejected.
func (a Analysis) Validate(strict bool) error {
	if strings.TrimSpace(a.Source.Name) == "" {
		return ErrMissingSourceName
	}
	if !(a.Source.Weight > 0 && a.Source.Weight <= 1) {
		return fmt.Errorf("%w: %s has %v", ErrInvalidSourceWeight, a.Source.Name, a.Source.Weight)
	}
	seen := make(map[string]int, len(a.Entries))
	for _, e := range a.Entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("source %s: %w", a.Source.Name, err)
		}
		if !strict {
			continue
		}
		key := CanonicalGame(e.Game)
		if prev, ok := seen[key]; ok && prev != e.Confidence {
			return fmt.Errorf("%w: source %s game %s has %d and %d",
				ErrDuplicateConfidenceInSource, a.Source.Name, key, prev, e.Confidence)
		}
		seen[key] = e.Confidence
	}
	for _, s := range a.Signals {
		for _, id := range s.Games {
			if _, err := game.Parse(id); err != nil {
				return fmt.Errorf("source %s signal %s/%s: %w", a.Source.Name, s.Category, s.Key, err)
			}
		}
	}
	return nil
}

// CanonicalGame normalizes an identifier so sources that spell teams
// differently still match. Malformed identifiers are returned trimmed.
func CanonicalGame(id string) string {
	g, err := game.Parse(id)
	if err != nil {
		return strings.TrimSpace(id)
	}
	return g.String()
}

// MentionedGames returns every game the analysis flags in any scanned
// category, in first-seen order.
func (a Analysis) MentionedGames() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, s := range a.Signals {
		if !scanned(s.Category) {
			continue
		}
		for _, id := range s.Games {
			key := CanonicalGame(id)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}

// ContrarianGames returns the games listed under public betting contrarian
// opportunities, in listed order.
func (a Analysis) ContrarianGames() []string {
	var out []string
	for _, s := range a.Signals {
		if s.Category == PublicBetting && s.Key == ContrarianOpportunities {
			for _, id := range s.Games {
				out = append(out, CanonicalGame(id))
			}
		}
	}
	return out
}

func scanned(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
