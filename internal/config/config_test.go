package config_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/okian/poolpick/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.MaxPicks, convey.ShouldEqual, 20)
			convey.So(cfg.HomeBonus, convey.ShouldEqual, 3)
			convey.So(cfg.DefaultRating, convey.ShouldEqual, 50)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.CombineMode, convey.ShouldEqual, "consensus")
			convey.So(cfg.MergeMode, convey.ShouldEqual, "average")
			convey.So(cfg.Reallocate, convey.ShouldBeTrue)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
