package model_test

import (
	"errors"
	"testing"

	"github.com/okian/poolpick/internal/domain/game"
	"github.com/okian/poolpick/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func analysis(entries ...model.Entry) model.Analysis {
	return model.Analysis{Source: model.Source{Name: "grok", Weight: 0.4}, Entries: entries}
}

func TestEntryValidate(t *testing.T) {
	Convey("Given analysis entries", t, func() {
		Convey("When confidence is inside 1..20", func() {
			So(model.Entry{Game: "KC@NYG", Team: "KC", Confidence: 1}.Validate(), ShouldBeNil)
			So(model.Entry{Game: "KC@NYG", Team: "KC", Confidence: 20}.Validate(), ShouldBeNil)
		})

		Convey("When confidence is outside 1..20", func() {
			for _, c := range []int{0, -1, 21} {
				err := model.Entry{Game: "KC@NYG", Team: "KC", Confidence: c}.Validate()
				So(errors.Is(err, model.ErrInvalidConfidenceRange), ShouldBeTrue)
			}
		})

		Convey("When the game is malformed", func() {
			err := model.Entry{Game: "KCNYG", Confidence: 5}.Validate()
			So(errors.Is(err, game.ErrMalformedGameIdentifier), ShouldBeTrue)
		})

		Convey("When the team plays in the game under another spelling", func() {
			So(model.Entry{Game: "KC@NYG", Team: " nyg", Confidence: 5}.Validate(), ShouldBeNil)
		})

		Convey("When the team does not play in the game", func() {
			for _, team := range []string{"PATRIOTS", ""} {
				err := model.Entry{Game: "KC@NYG", Team: team, Confidence: 5}.Validate()
				So(errors.Is(err, model.ErrTeamNotInGame), ShouldBeTrue)
			}
		})
	})
}

func TestAnalysisValidate(t *testing.T) {
	Convey("Given a source with duplicate game entries", t, func() {
		a := analysis(
			model.Entry{Game: "KC@NYG", Team: "KC", Confidence: 18},
			model.Entry{Game: "kc@nyg", Team: "KC", Confidence: 12},
		)

		Convey("When validating leniently", func() {
			So(a.Validate(false), ShouldBeNil)
		})

		Convey("When validating strictly", func() {
			err := a.Validate(true)
			So(errors.Is(err, model.ErrDuplicateConfidenceInSource), ShouldBeTrue)
		})

		Convey("When the duplicates agree", func() {
			a.Entries[1].Confidence = 18
			So(a.Validate(true), ShouldBeNil)
		})
	})

	Convey("Given source metadata problems", t, func() {
		a := analysis()
		a.Source.Weight = 0
		So(errors.Is(a.Validate(false), model.ErrInvalidSourceWeight), ShouldBeTrue)

		a.Source.Weight = 1.2
		So(errors.Is(a.Validate(false), model.ErrInvalidSourceWeight), ShouldBeTrue)

		a.Source = model.Source{Name: " ", Weight: 1}
		So(errors.Is(a.Validate(false), model.ErrMissingSourceName), ShouldBeTrue)
	})

	Convey("Given a malformed signal game", t, func() {
		a := analysis()
		a.Signals = []model.Signal{{Category: model.WeatherImpact, Key: "weather_plays", Games: []string{"BUF"}}}
		So(errors.Is(a.Validate(false), game.ErrMalformedGameIdentifier), ShouldBeTrue)
	})
}

func TestMentionedGames(t *testing.T) {
	Convey("Given signals across categories", t, func() {
		a := analysis()
		a.Signals = []model.Signal{
			{Category: model.PublicBetting, Key: model.ContrarianOpportunities, Games: []string{"KC@NYG", "DAL@CHI"}},
			{Category: model.WeatherImpact, Key: "weather_plays", Games: []string{"buf@mia", "KC@NYG"}},
			{Category: "line_movement", Key: "steam", Games: []string{"SF@SEA"}},
		}

		Convey("Then mentioned games are deduplicated in first-seen order", func() {
			So(a.MentionedGames(), ShouldResemble, []string{"KC@NYG", "DAL@CHI", "BUF@MIA"})
		})

		Convey("Then contrarian games keep listed order", func() {
			So(a.ContrarianGames(), ShouldResemble, []string{"KC@NYG", "DAL@CHI"})
		})
	})
}
