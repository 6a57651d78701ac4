// Package strategy maps a pool position to the strategy tag that governs a
// generation run.
package strategy

import (
	"fmt"
	"math"
	"strings"
)

// Tag identifies one of the four pick strategies.
type Tag string

// Strategy tags, from most conservative to most aggressive.
const (
	Protective      Tag = "protective"
	Balanced        Tag = "balanced"
	HighVariance    Tag = "high_variance"
	MaximumVariance Tag = "maximum_variance"
)

// Deficit thresholds in pool points behind the leader.
const (
	protectiveBelow   = -30.0
	balancedBelow     = 0.0
	highVarianceBelow = 50.0
)

// Tags lists every tag in escalation order.
func Tags() []Tag {
	return []Tag{Protective, Balanced, HighVariance, MaximumVariance}
}

// Select returns the tag for a deficit (points behind the leader; negative
// means ahead). Every value maps to exactly one tag; NaN is treated as an
// even pool and maps to Balanced.
func Select(deficit float64) Tag {
	switch {
	case math.IsNaN(deficit):
		return Balanced
	case deficit < protectiveBelow:
		return Protective
	case deficit < balancedBelow:
		return Balanced
	case deficit < highVarianceBelow:
		return HighVariance
	default:
		return MaximumVariance
	}
}

// Parse reads a tag name, accepting hyphens and any case.
func Parse(s string) (Tag, error) {
	t := Tag(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Valid reports whether t is one of the four tags.
func (t Tag) Valid() bool {
	for _, known := range Tags() {
		if t == known {
			return true
		}
	}
	return false
}

func (t Tag) String() string { return string(t) }
