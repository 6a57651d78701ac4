package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/okian/poolpick/internal/config"
	"github.com/okian/poolpick/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewEngine(t *testing.T) {
	convey.Convey("Given a default configuration", t, func() {
		cfg := config.New(context.Background())
		cfg.WorkerCount = 2

		convey.Convey("When building the engine", func() {
			engine, err := newEngine(cfg, logger.Nop())

			convey.Convey("Then it carries the configured values", func() {
				convey.So(err, convey.ShouldBeNil)
				stats := engine.GetStats()
				convey.So(stats["workerCount"], convey.ShouldEqual, 2)
				convey.So(stats["combineMode"], convey.ShouldEqual, "consensus")
				convey.So(stats["mergeMode"], convey.ShouldEqual, "average")
				convey.So(stats["reallocate"], convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the combine mode is unknown", func() {
			cfg.CombineMode = "majority"
			_, err := newEngine(cfg, logger.Nop())

			convey.Convey("Then building fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given a mux built from configuration", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		cfg.WorkerCount = 0
		engine, err := newEngine(cfg, logger.Nop())
		convey.So(err, convey.ShouldBeNil)
		convey.So(engine.Start(ctx), convey.ShouldBeNil)
		defer engine.Stop()
		mux := newMux(ctx, cfg, engine, logger.Nop())

		convey.Convey("Then the picks endpoint answers", func() {
			body := `{"games":["KC@NYG","DAL@PHI"]}`
			req := httptest.NewRequest(http.MethodPost, "/picks", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"KC@NYG"`)
		})

		convey.Convey("Then the docs are served", func() {
			req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		})
	})
}

func TestConfigFromEnvironment(t *testing.T) {
	convey.Convey("Given environment overrides", t, func() {
		_ = os.Setenv("POOLPICK_ADDR", ":8181")
		_ = os.Setenv("POOLPICK_WORKER_COUNT", "3")
		defer func() {
			_ = os.Unsetenv("POOLPICK_ADDR")
			_ = os.Unsetenv("POOLPICK_WORKER_COUNT")
		}()

		convey.Convey("Then the loaded configuration reflects them", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8181")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 3)
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then a single update does not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("Then the loop returns once the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})
	})
}
