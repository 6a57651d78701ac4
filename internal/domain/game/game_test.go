package game_test

import (
	"errors"
	"testing"

	"github.com/okian/poolpick/internal/domain/game"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given game identifiers", t, func() {
		Convey("When the identifier is well formed", func() {
			g, err := game.Parse("KC@NYG")

			Convey("Then away and home are split", func() {
				So(err, ShouldBeNil)
				So(g.Away, ShouldEqual, "KC")
				So(g.Home, ShouldEqual, "NYG")
				So(g.String(), ShouldEqual, "KC@NYG")
			})
		})

		Convey("When tokens carry whitespace, lower case or accents", func() {
			g, err := game.Parse(" kc @ Montréal ")

			Convey("Then they are normalized", func() {
				So(err, ShouldBeNil)
				So(g.Away, ShouldEqual, "KC")
				So(g.Home, ShouldEqual, "MONTREAL")
			})
		})

		Convey("When the identifier is malformed", func() {
			for _, id := range []string{"", "KC", "@NYG", "KC@", "KC@@NYG", "A@B@C", " @ "} {
				_, err := game.Parse(id)
				So(errors.Is(err, game.ErrMalformedGameIdentifier), ShouldBeTrue)
			}
		})
	})
}

func TestParseAll(t *testing.T) {
	Convey("Given a schedule", t, func() {
		Convey("When every entry is valid", func() {
			games, err := game.ParseAll([]string{"KC@NYG", "DAL@CHI"})

			Convey("Then order is preserved", func() {
				So(err, ShouldBeNil)
				So(len(games), ShouldEqual, 2)
				So(games[1].String(), ShouldEqual, "DAL@CHI")
			})
		})

		Convey("When one entry is malformed", func() {
			games, err := game.ParseAll([]string{"KC@NYG", "DALCHI"})

			Convey("Then it fails fast without partial output", func() {
				So(games, ShouldBeNil)
				So(errors.Is(err, game.ErrMalformedGameIdentifier), ShouldBeTrue)
			})
		})
	})
}

func TestFilterBye(t *testing.T) {
	Convey("Given a raw schedule with bye slots", t, func() {
		out := game.FilterBye([]string{"BYE", "KC@NYG", " ", "bye", "DAL@CHI"})

		Convey("Then only real games remain", func() {
			So(out, ShouldResemble, []string{"KC@NYG", "DAL@CHI"})
		})
	})
}

func TestOpponent(t *testing.T) {
	Convey("Given a game", t, func() {
		g := game.Game{Away: "KC", Home: "NYG"}

		So(g.Involves("kc"), ShouldBeTrue)
		So(g.Involves("DAL"), ShouldBeFalse)
		So(g.Opponent("NYG"), ShouldEqual, "KC")
		So(g.Opponent("KC"), ShouldEqual, "NYG")
		So(g.Opponent("DAL"), ShouldEqual, "")
		away, home := g.Teams()
		So(away, ShouldEqual, "KC")
		So(home, ShouldEqual, "NYG")
	})
}

func TestNormalizeTeam(t *testing.T) {
	Convey("Given team tokens from different collaborators", t, func() {
		So(game.NormalizeTeam(" chi "), ShouldEqual, "CHI")
		So(game.NormalizeTeam("Québec"), ShouldEqual, "QUEBEC")
		So(game.NormalizeTeam("GB"), ShouldEqual, "GB")
		So(game.NormalizeTeam(""), ShouldEqual, "")
	})
}
