package rating_test

import (
	"testing"

	"github.com/okian/poolpick/internal/domain/game"
	"github.com/okian/poolpick/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	Convey("Given a rating table", t, func() {
		table := rating.New(map[string]float64{"KC": 95, "dal": 89, "CHI": 73})

		Convey("When looking up known and unknown teams", func() {
			kc, okKC := table.Rating("KC")
			dal, okDAL := table.Rating("DAL")
			nyg, okNYG := table.Rating("NYG")

			Convey("Then unknown teams default to a neutral 50", func() {
				So(kc, ShouldEqual, 95)
				So(okKC, ShouldBeTrue)
				So(dal, ShouldEqual, 89)
				So(okDAL, ShouldBeTrue)
				So(nyg, ShouldEqual, 50)
				So(okNYG, ShouldBeFalse)
				So(table.Len(), ShouldEqual, 3)
			})
		})

		Convey("When building a game pair", func() {
			p := table.ForGame(game.Game{Away: "KC", Home: "NYG"})

			Convey("Then the home side gets the +3 bonus", func() {
				So(p.Away, ShouldEqual, 95)
				So(p.Home, ShouldEqual, 53)
				So(p.Diff(), ShouldEqual, -42)
				So(p.Favorite(game.Game{Away: "KC", Home: "NYG"}), ShouldEqual, "KC")
				So(p.Underdog(game.Game{Away: "KC", Home: "NYG"}), ShouldEqual, "NYG")
			})
		})

		Convey("When the pair is level", func() {
			g := game.Game{Away: "SEA", Home: "LAR"}
			p := rating.Pair{Away: 80, Home: 80}

			Convey("Then the away side is the favorite and home the underdog", func() {
				So(p.Favorite(g), ShouldEqual, "SEA")
				So(p.Underdog(g), ShouldEqual, "LAR")
			})
		})

		Convey("When shifting a pair", func() {
			p := rating.Pair{Away: 70, Home: 76}.Shift(-4)

			Convey("Then the differential is unchanged", func() {
				So(p.Away, ShouldEqual, 66)
				So(p.Home, ShouldEqual, 72)
				So(p.Diff(), ShouldEqual, 6)
			})
		})
	})

	Convey("Given a table with custom options", t, func() {
		table := rating.New(nil, rating.WithDefaultRating(60), rating.WithHomeBonus(2.5))
		p := table.ForGame(game.Game{Away: "A", Home: "B"})

		So(p.Away, ShouldEqual, 60)
		So(p.Home, ShouldEqual, 62.5)
		So(table.HomeBonus(), ShouldEqual, 2.5)
	})

	Convey("Given a nil table", t, func() {
		var table *rating.Table
		r, ok := table.Rating("KC")

		So(r, ShouldEqual, rating.DefaultRating)
		So(ok, ShouldBeFalse)
		So(table.Len(), ShouldEqual, 0)
	})

	Convey("Given the reference ratings", t, func() {
		ref := rating.Reference()

		So(ref["KC"], ShouldEqual, 95)
		So(ref["CHI"], ShouldEqual, 73)
	})
}
