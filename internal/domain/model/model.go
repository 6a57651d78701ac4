// Package model contains the value objects passed between engine stages.
package model

import (
	"github.com/okian/poolpick/internal/domain/game"
	"github.com/okian/poolpick/internal/domain/strategy"
)

// Pool limits shared by every stage.
const (
	MaxPicks         = 20
	MinConfidence    = 1
	MaxConfidence    = 20
	DefaultPublicPct = 50.0
)

// Candidate is one scored pick before confidence points are assigned.
type Candidate struct {
	Game      game.Game
	Winner    string
	Score     float64 // heuristic 0-100
	Spread    float64 // home minus away rating
	PublicPct float64
	Strategy  strategy.Tag
	// Flipped marks a deliberate pick of the lower rated side.
	Flipped bool
	// Source names the analysis that supplied the candidate, empty for the
	// rating model.
	Source string
}

// Pick is the final output handed to collaborators.
type Pick struct {
	Game             string       `json:"game"`
	Team             string       `json:"team"`
	ConfidencePoints int          `json:"confidence_points"`
	Strategy         strategy.Tag `json:"strategy"`
}

// Source identifies an analysis producer and its configured weight.
type Source struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Entry is one externally supplied free-text analysis of a game.
type Entry struct {
	Game           string   `json:"game"`
	Team           string   `json:"team"`
	Confidence     int      `json:"confidence"`
	Reasoning      string   `json:"reasoning,omitempty"`
	ContrarianEdge string   `json:"contrarian_edge,omitempty"`
	ValuePlay      string   `json:"value_play,omitempty"`
	RiskAssessment string   `json:"risk_assessment,omitempty"`
	Spread         *float64 `json:"spread,omitempty"`
	PublicPct      *float64 `json:"public_percentage,omitempty"`
}

// Category groups signals the way analysis sources report them.
type Category string

// Signal categories scanned by the combiner.
const (
	PublicBetting  Category = "public_betting_analysis"
	WeatherImpact  Category = "weather_impact"
	InjuryAnalysis Category = "injury_analysis"
)

// ContrarianOpportunities is the public-betting key that flags games a
// source considers contrarian plays.
const ContrarianOpportunities = "contrarian_opportunities"

// Categories lists the scanned categories in report order.
func Categories() []Category {
	return []Category{PublicBetting, WeatherImpact, InjuryAnalysis}
}

// Signal is a list of games a source flagged under Category/Key.
type Signal struct {
	Category Category `json:"category"`
	Key      string   `json:"key"`
	Games    []string `json:"games"`
}

// Analysis is everything one source produced for a week.
type Analysis struct {
	Source  Source   `json:"source"`
	Entries []Entry  `json:"entries,omitempty"`
	Signals []Signal `json:"signals,omitempty"`
}
