// Package fusion converts analysis entries into normalized value and risk
// scores and derives a confidence recommendation from them.
//
// Every function here is a pure function of its input. Missing or empty text
// falls through to the default branch of each rule.
package fusion

import (
	"math"

	"github.com/okian/poolpick/internal/domain/model"
)

// Recommendation is the action suggested for a play's confidence.
type Recommendation string

// Recommendations in evaluation order.
const (
	Maximize Recommendation = "MAXIMIZE"
	Increase Recommendation = "INCREASE"
	Consider Recommendation = "CONSIDER"
	Moderate Recommendation = "MODERATE"
	Minimize Recommendation = "MINIMIZE"
)

// Rationale returns the short explanation shown next to a recommendation.
func (r Recommendation) Rationale() string {
	switch r {
	case Maximize:
		return "High value, low risk"
	case Increase:
		return "Strong contrarian play"
	case Consider:
		return "Sharp money alignment"
	case Moderate:
		return "Balanced play"
	default:
		return "High risk, low value"
	}
}

// Thresholds and weights used by Analyze.
const (
	contrarianBonus      = 0.2
	publicSplitBonus     = 0.1
	exploitBonus         = 0.15
	advantageBonus       = 0.10
	highRiskPenalty      = 0.3
	mediumRiskPenalty    = 0.15
	lowRiskCredit        = 0.1
	superiorUpside       = 0.2
	advantageUpside      = 0.15
	talentUpside         = 0.1
	sharpMoneyConfidence = 15
)

// ValuePlay is the fused view of one pick. Values are never mutated after
// Analyze returns them.
type ValuePlay struct {
	Game            string         `json:"game"`
	Team            string         `json:"team"`
	Confidence      int            `json:"confidence"`
	ValueScore      float64        `json:"value_score"`
	RiskScore       float64        `json:"risk_score"`
	UpsidePotential float64        `json:"upside_potential"`
	DownsideRisk    float64        `json:"downside_risk"`
	ContrarianEdge  float64        `json:"contrarian_edge"`
	PublicSentiment float64        `json:"public_sentiment"`
	SharpMoney      bool           `json:"sharp_money"`
	Recommendation  Recommendation `json:"recommendation"`
}

// Analyze scores a single entry.
func Analyze(e model.Entry) ValuePlay {
	base := float64(e.Confidence) / float64(model.MaxConfidence)
	edge := fold(e.ContrarianEdge)
	value := fold(e.ValuePlay)
	risk := fold(e.RiskAssessment)
	reason := fold(e.Reasoning)

	vp := ValuePlay{
		Game:            e.Game,
		Team:            e.Team,
		Confidence:      e.Confidence,
		ValueScore:      clamp01(base + edgeBonus(edge) + valueBonus(value)),
		RiskScore:       clamp01(1 - base + riskPenalty(risk)),
		UpsidePotential: clamp01(base + upsideBonus(reason)),
		DownsideRisk:    clamp01(1 - base + downsidePenalty(risk)),
		ContrarianEdge:  contrarianEdge(edge),
		PublicSentiment: publicSentiment(edge),
		SharpMoney:      e.Confidence >= sharpMoneyConfidence && (edge.has("sharp") || edge.has("contrarian")),
	}
	vp.Recommendation = Recommend(vp.ValueScore, vp.RiskScore, vp.ContrarianEdge, vp.SharpMoney)
	return vp
}

// AnalyzeAll scores entries in order.
func AnalyzeAll(entries []model.Entry) []ValuePlay {
	out := make([]ValuePlay, 0, len(entries))
	for _, e := range entries {
		out = append(out, Analyze(e))
	}
	return out
}

// Recommend applies the recommendation ladder. The first matching rung wins.
func Recommend(value, risk, edge float64, sharp bool) Recommendation {
	switch {
	case value >= 0.8 && risk <= 0.3:
		return Maximize
	case value >= 0.7 && edge >= 0.6:
		return Increase
	case sharp && value >= 0.6:
		return Consider
	case value >= 0.6 && risk <= 0.5:
		return Moderate
	default:
		return Minimize
	}
}

func edgeBonus(t text) float64 {
	switch {
	case t.has("contrarian"):
		return contrarianBonus
	case t.hasAll("public", "split"):
		return publicSplitBonus
	}
	return 0
}

func valueBonus(t text) float64 {
	switch {
	case t.has("exploit"):
		return exploitBonus
	case t.has("advantage"):
		return advantageBonus
	}
	return 0
}

func riskPenalty(t text) float64 {
	switch {
	case t.has("high"):
		return highRiskPenalty
	case t.has("medium"):
		return mediumRiskPenalty
	case t.has("low"):
		return -lowRiskCredit
	}
	return 0
}

// downsidePenalty credits any assessment that is not high or medium.
func downsidePenalty(t text) float64 {
	switch {
	case t.has("high"):
		return highRiskPenalty
	case t.has("medium"):
		return mediumRiskPenalty
	}
	return -lowRiskCredit
}

func upsideBonus(t text) float64 {
	switch {
	case t.has("superior"):
		return superiorUpside
	case t.has("advantage"):
		return advantageUpside
	case t.has("talent"):
		return talentUpside
	}
	return 0
}

func contrarianEdge(t text) float64 {
	switch {
	case t.has("contrarian"):
		return 0.8
	case t.hasAll("public", "split"):
		return 0.6
	case t.has("public"):
		return 0.4
	}
	return 0.2
}

func publicSentiment(t text) float64 {
	switch {
	case t.has("favor"):
		return 0.8
	case t.has("split"):
		return 0.5
	}
	return 0.3
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
