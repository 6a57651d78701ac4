package fusion_test

import (
	"errors"
	"testing"

	"github.com/okian/poolpick/internal/domain/fusion"
	"github.com/okian/poolpick/internal/domain/game"
	"github.com/okian/poolpick/internal/domain/model"
	"github.com/okian/poolpick/internal/domain/strategy"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAnalyze(t *testing.T) {
	Convey("Given a confident contrarian entry", t, func() {
		e := model.Entry{
			Game:           "KC@NYG",
			Team:           "KC",
			Confidence:     18,
			ContrarianEdge: "Contrarian spot, public wrong",
			ValuePlay:      "exploit the line",
		}
		vp := fusion.Analyze(e)

		Convey("Then the value score saturates at 1.0", func() {
			So(vp.ValueScore, ShouldEqual, 1.0)
			So(vp.RiskScore, ShouldAlmostEqual, 0.1, 1e-9)
			So(vp.ContrarianEdge, ShouldEqual, 0.8)
			So(vp.SharpMoney, ShouldBeTrue)
			So(vp.Recommendation, ShouldEqual, fusion.Maximize)
		})
	})

	Convey("Given an empty entry", t, func() {
		vp := fusion.Analyze(model.Entry{Game: "A@B", Team: "A"})

		Convey("Then every rule falls to its default branch", func() {
			So(vp.ValueScore, ShouldEqual, 0)
			So(vp.RiskScore, ShouldEqual, 1)
			So(vp.UpsidePotential, ShouldEqual, 0)
			So(vp.DownsideRisk, ShouldAlmostEqual, 0.9, 1e-9)
			So(vp.ContrarianEdge, ShouldEqual, 0.2)
			So(vp.PublicSentiment, ShouldEqual, 0.3)
			So(vp.SharpMoney, ShouldBeFalse)
			So(vp.Recommendation, ShouldEqual, fusion.Minimize)
		})
	})

	Convey("Given risk labels and reasoning keywords", t, func() {
		high := fusion.Analyze(model.Entry{Confidence: 10, RiskAssessment: "HIGH risk", Reasoning: "superior roster"})
		medium := fusion.Analyze(model.Entry{Confidence: 10, RiskAssessment: "medium"})
		low := fusion.Analyze(model.Entry{Confidence: 10, RiskAssessment: "low", Reasoning: "talent edge"})

		Convey("Then penalties and bonuses apply case-insensitively", func() {
			So(high.RiskScore, ShouldAlmostEqual, 0.8, 1e-9)
			So(high.DownsideRisk, ShouldAlmostEqual, 0.8, 1e-9)
			So(high.UpsidePotential, ShouldAlmostEqual, 0.7, 1e-9)
			So(medium.RiskScore, ShouldAlmostEqual, 0.65, 1e-9)
			So(low.RiskScore, ShouldAlmostEqual, 0.4, 1e-9)
			So(low.UpsidePotential, ShouldAlmostEqual, 0.6, 1e-9)
		})
	})

	Convey("Given accented keywords", t, func() {
		vp := fusion.Analyze(model.Entry{Confidence: 10, ContrarianEdge: "CONTRARIÁN"})

		Convey("Then they still match", func() {
			So(vp.ContrarianEdge, ShouldEqual, 0.8)
		})
	})
}

func TestRecommend(t *testing.T) {
	Convey("Given the recommendation ladder", t, func() {
		So(fusion.Recommend(0.8, 0.3, 0, false), ShouldEqual, fusion.Maximize)
		So(fusion.Recommend(0.75, 0.4, 0.6, false), ShouldEqual, fusion.Increase)
		So(fusion.Recommend(0.65, 0.6, 0.4, true), ShouldEqual, fusion.Consider)
		So(fusion.Recommend(0.65, 0.5, 0.4, false), ShouldEqual, fusion.Moderate)
		So(fusion.Recommend(0.5, 0.1, 0.8, true), ShouldEqual, fusion.Minimize)
		So(fusion.Minimize.Rationale(), ShouldEqual, "High risk, low value")
	})
}

func TestFromCandidate(t *testing.T) {
	Convey("Given rating model candidates", t, func() {
		g := game.Game{Away: "KC", Home: "NYG"}

		Convey("When the favorite is clear", func() {
			e := fusion.FromCandidate(model.Candidate{Game: g, Winner: "KC", Score: 85, Spread: -42, PublicPct: 50, Strategy: strategy.Balanced})

			Convey("Then it reads as a low risk edge", func() {
				So(e.Game, ShouldEqual, "KC@NYG")
				So(e.Confidence, ShouldEqual, 17)
				So(e.RiskAssessment, ShouldEqual, "low")
				So(e.ValuePlay, ShouldEqual, "exploit rating edge")
				So(e.ContrarianEdge, ShouldEqual, "public favor")
				So(*e.Spread, ShouldEqual, -42)
				So(e.Validate(), ShouldBeNil)
			})
		})

		Convey("When the pick was flipped in a close game", func() {
			e := fusion.FromCandidate(model.Candidate{Game: g, Winner: "NYG", Score: 2, Spread: 1, Flipped: true})

			Convey("Then it reads as a high risk contrarian play", func() {
				So(e.Confidence, ShouldEqual, 1)
				So(e.RiskAssessment, ShouldEqual, "high")
				So(e.ContrarianEdge, ShouldContainSubstring, "contrarian")
				So(e.ValuePlay, ShouldBeEmpty)
			})
		})
	})
}

func TestNewReport(t *testing.T) {
	Convey("Given no plays", t, func() {
		_, err := fusion.NewReport(nil)
		So(errors.Is(err, fusion.ErrNoValuePlays), ShouldBeTrue)
	})

	Convey("Given several plays", t, func() {
		plays := []fusion.ValuePlay{
			{Game: "A@B", ValueScore: 0.2, RiskScore: 0.9, ContrarianEdge: 0.2, Recommendation: fusion.Minimize},
			{Game: "C@D", ValueScore: 1.0, RiskScore: 0.1, ContrarianEdge: 0.8, SharpMoney: true, Recommendation: fusion.Maximize},
			{Game: "E@F", ValueScore: 0.6, RiskScore: 0.5, ContrarianEdge: 0.4, Recommendation: fusion.Moderate},
		}
		r, err := fusion.NewReport(plays)

		Convey("Then aggregates and lists are populated", func() {
			So(err, ShouldBeNil)
			So(r.Summary.TotalPlays, ShouldEqual, 3)
			So(r.Summary.AverageValueScore, ShouldEqual, 0.6)
			So(r.Summary.AverageRiskScore, ShouldEqual, 0.5)
			So(r.Summary.AverageContrarianEdge, ShouldEqual, 0.467)
			So(r.Recommendations[fusion.Minimize], ShouldEqual, 1)
			So(r.TopValue[0].Game, ShouldEqual, "C@D")
			So(len(r.HighRisk), ShouldEqual, 1)
			So(len(r.SharpMoney), ShouldEqual, 1)
			So(plays[0].Game, ShouldEqual, "A@B")
		})
	})
}
