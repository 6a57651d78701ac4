package fusion

import (
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

const (
	topValueCount     = 5
	highRiskThreshold = 0.7
	reportPrecision   = 3
)

// Summary holds aggregate scores for a set of plays.
type Summary struct {
	TotalPlays            int     `json:"total_plays"`
	AverageValueScore     float64 `json:"average_value_score"`
	AverageRiskScore      float64 `json:"average_risk_score"`
	AverageContrarianEdge float64 `json:"average_contrarian_edge"`
}

// Report is the value analysis handed to collaborators for rendering.
type Report struct {
	Summary         Summary                `json:"summary"`
	Recommendations map[Recommendation]int `json:"recommendations"`
	TopValue        []ValuePlay            `json:"top_value_plays"`
	HighRisk        []ValuePlay            `json:"high_risk_plays"`
	SharpMoney      []ValuePlay            `json:"sharp_money_plays"`
}

// NewReport aggregates plays. Averages are rounded to three places.
func NewReport(plays []ValuePlay) (Report, error) {
	if len(plays) == 0 {
		return Report{}, ErrNoValuePlays
	}
	values := make([]float64, len(plays))
	risks := make([]float64, len(plays))
	edges := make([]float64, len(plays))
	r := Report{Recommendations: make(map[Recommendation]int)}
	for i, p := range plays {
		values[i], risks[i], edges[i] = p.ValueScore, p.RiskScore, p.ContrarianEdge
		r.Recommendations[p.Recommendation]++
		if p.RiskScore >= highRiskThreshold {
			r.HighRisk = append(r.HighRisk, p)
		}
		if p.SharpMoney {
			r.SharpMoney = append(r.SharpMoney, p)
		}
	}
	r.Summary = Summary{
		TotalPlays:            len(plays),
		AverageValueScore:     round(stat.Mean(values, nil)),
		AverageRiskScore:      round(stat.Mean(risks, nil)),
		AverageContrarianEdge: round(stat.Mean(edges, nil)),
	}
	r.TopValue = ByValue(plays)
	if len(r.TopValue) > topValueCount {
		r.TopValue = r.TopValue[:topValueCount]
	}
	return r, nil
}

// ByValue returns a copy of plays sorted by value score, highest first.
// Equal scores keep their input order.
func ByValue(plays []ValuePlay) []ValuePlay {
	out := append([]ValuePlay(nil), plays...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ValueScore > out[j].ValueScore
	})
	return out
}

func round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(reportPrecision).InexactFloat64()
}
