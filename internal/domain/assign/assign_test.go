package assign_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/okian/poolpick/internal/domain/assign"
	"github.com/okian/poolpick/internal/domain/fusion"
	"github.com/okian/poolpick/internal/domain/game"
	"github.com/okian/poolpick/internal/domain/model"
	"github.com/okian/poolpick/internal/domain/strategy"
	. "github.com/smartystreets/goconvey/convey"
)

func pool(scores ...float64) []model.Candidate {
	out := make([]model.Candidate, len(scores))
	for i, s := range scores {
		g := game.Game{Away: fmt.Sprintf("A%d", i), Home: fmt.Sprintf("H%d", i)}
		out[i] = model.Candidate{Game: g, Winner: g.Away, Score: s, Strategy: strategy.Balanced}
	}
	return out
}

func TestRank(t *testing.T) {
	Convey("Given the balanced worked example", t, func() {
		cands := []model.Candidate{
			{Game: game.Game{Away: "KC", Home: "NYG"}, Winner: "KC", Score: 85},
			{Game: game.Game{Away: "DAL", Home: "CHI"}, Winner: "DAL", Score: 69.5},
		}
		picks := assign.Rank(cands)

		Convey("Then KC gets 2 and DAL gets 1", func() {
			So(picks[0].Team, ShouldEqual, "KC")
			So(picks[0].ConfidencePoints, ShouldEqual, 2)
			So(picks[1].Team, ShouldEqual, "DAL")
			So(picks[1].ConfidencePoints, ShouldEqual, 1)
		})
	})

	Convey("Given pools of every size up to 30", t, func() {
		rng := rand.New(rand.NewSource(1))
		for n := 1; n <= 30; n++ {
			scores := make([]float64, n)
			for i := range scores {
				scores[i] = float64(rng.Intn(5)) * 10
			}
			picks := assign.Rank(pool(scores...))

			So(len(picks), ShouldEqual, min(n, 20))
			So(assign.Verify(picks), ShouldBeNil)
		}
	})

	Convey("Given tied scores", t, func() {
		picks := assign.Rank(pool(50, 50, 50))

		Convey("Then pool order is kept", func() {
			So(picks[0].Game, ShouldEqual, "A0@H0")
			So(picks[2].Game, ShouldEqual, "A2@H2")
		})
	})

	Convey("Given an empty pool", t, func() {
		So(assign.Rank(nil), ShouldBeEmpty)
		So(assign.Reallocate(nil, nil).Picks, ShouldBeEmpty)
	})
}

func TestReallocate(t *testing.T) {
	Convey("Given ranked picks and value plays", t, func() {
		ranked := assign.Rank(pool(90, 80, 70, 60))
		plays := []fusion.ValuePlay{
			{Game: "A0@H0", Team: "A0", ValueScore: 0.3, RiskScore: 0.9},
			{Game: "A1@H1", Team: "A1", ValueScore: 1.0, RiskScore: 0.0},
			{Game: "A2@H2", Team: "A2", ValueScore: 0.9, RiskScore: 0.2},
			{Game: "A3@H3", Team: "A3", ValueScore: 0.2, RiskScore: 1.0},
		}
		r := assign.Reallocate(ranked, plays)

		Convey("Then high value picks move up", func() {
			So(r.Picks[0].Team, ShouldEqual, "A1")
			So(r.Picks[0].ConfidencePoints, ShouldEqual, 4)
			So(r.Picks[1].Team, ShouldEqual, "A2")
			So(assign.Verify(r.Picks), ShouldBeNil)
		})

		Convey("Then colliding raw points are re-ranked by original rank", func() {
			So(r.Raw, ShouldResemble, []int{4, 2, 1, 1})
			So(r.Collisions, ShouldEqual, 2)
			So(r.Picks[2].Team, ShouldEqual, "A0")
			So(r.Picks[3].Team, ShouldEqual, "A3")
		})

		Convey("Then the ranked input is untouched", func() {
			So(ranked[0].Team, ShouldEqual, "A0")
			So(ranked[0].ConfidencePoints, ShouldEqual, 4)
		})
	})

	Convey("Given random plays of every size", t, func() {
		rng := rand.New(rand.NewSource(5))
		for n := 1; n <= 30; n++ {
			scores := make([]float64, n)
			for i := range scores {
				scores[i] = rng.Float64() * 100
			}
			ranked := assign.Rank(pool(scores...))
			plays := make([]fusion.ValuePlay, 0, len(ranked))
			for _, p := range ranked {
				plays = append(plays, fusion.ValuePlay{Game: p.Game, Team: p.Team, ValueScore: rng.Float64(), RiskScore: rng.Float64()})
			}
			r := assign.Reallocate(ranked, plays)

			k := min(n, model.MaxPicks)
			So(len(ranked), ShouldEqual, k)
			So(len(r.Picks), ShouldEqual, k)
			So(len(r.Raw), ShouldEqual, k)
			So(assign.Verify(r.Picks), ShouldBeNil)
			for _, raw := range r.Raw {
				So(raw >= 1 && raw <= k, ShouldBeTrue)
			}
		}
	})
}

func TestVerify(t *testing.T) {
	Convey("Given broken assignments", t, func() {
		dup := []model.Pick{{Game: "A@B", ConfidencePoints: 2}, {Game: "C@D", ConfidencePoints: 2}}
		out := []model.Pick{{Game: "A@B", ConfidencePoints: 3}}

		So(errors.Is(assign.Verify(dup), assign.ErrBijection), ShouldBeTrue)
		So(errors.Is(assign.Verify(out), assign.ErrBijection), ShouldBeTrue)
		So(assign.Verify(nil), ShouldBeNil)
	})
}
