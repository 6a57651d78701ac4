package fusion

import (
	"math"

	"github.com/okian/poolpick/internal/domain/model"
)

// Spread bands used to describe heuristic candidates in analysis terms.
const (
	closeSpread  = 3.0
	mediumSpread = 7.0
	edgeSpread   = 10.0
)

// FromCandidate describes a rating model candidate as an analysis entry so
// it can be scored by Analyze alongside external sources.
func FromCandidate(c model.Candidate) model.Entry {
	gap := math.Abs(c.Spread)
	e := model.Entry{
		Game:       c.Game.String(),
		Team:       c.Winner,
		Confidence: ConfidenceFromScore(c.Score),
		Reasoning:  "rating model " + c.Strategy.String(),
	}
	switch {
	case c.Flipped:
		e.ContrarianEdge = "contrarian pick against the favorite"
	case gap < closeSpread:
		e.ContrarianEdge = "public split"
	default:
		e.ContrarianEdge = "public favor"
	}
	switch {
	case gap < closeSpread:
		e.RiskAssessment = "high"
	case gap < mediumSpread:
		e.RiskAssessment = "medium"
	default:
		e.RiskAssessment = "low"
	}
	if gap >= edgeSpread {
		e.ValuePlay = "exploit rating edge"
	}
	spread, pct := c.Spread, c.PublicPct
	e.Spread, e.PublicPct = &spread, &pct
	return e
}

// ConfidenceFromScore maps a 0-100 score onto the 1-20 confidence scale.
func ConfidenceFromScore(score float64) int {
	conf := int(math.Round(score / 5))
	if conf < model.MinConfidence {
		return model.MinConfidence
	}
	if conf > model.MaxConfidence {
		return model.MaxConfidence
	}
	return conf
}
