package config_test

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/okian/expertlens/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.ProfileSource, convey.ShouldEqual, "mock")
			convey.So(cfg.SessionTTL, convey.ShouldEqual, time.Hour)
			convey.So(cfg.SessionIDLength, convey.ShouldEqual, 8)
			convey.So(cfg.DefaultPageLimit, convey.ShouldEqual, 50)
			convey.So(cfg.GenerationConcurrency, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.HighTaskThreshold, convey.ShouldEqual, 10)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
