package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGlobalLogger(t *testing.T) {
	Convey("Given the global logger", t, func() {
		So(Init(), ShouldBeNil)
		defer func() { So(Sync(), ShouldBeNil) }()

		Convey("Then Get and Named return usable loggers", func() {
			ctx := context.Background()
			So(Get(), ShouldNotBeNil)
			So(func() { Get().Info(ctx, "plain", String("k", "v"), Bool("ok", true)) }, ShouldNotPanic)
			So(func() { Named("store").Warn(ctx, "named", Duration("ttl", time.Minute)) }, ShouldNotPanic)
		})

		Convey("Then levels parse case-insensitively", func() {
			for _, lvl := range []string{"DEBUG", "info", " warn ", "warning", "Error", ""} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
			So(SetLevelString("verbose"), ShouldNotBeNil)
			So(SetLevelString("info"), ShouldBeNil)
		})
	})
}

func TestLoggerOptions(t *testing.T) {
	Convey("Given logger options", t, func() {
		var buf bytes.Buffer

		Convey("When JSON output is requested", func() {
			So(InitWithOptions(Options{Level: "debug", Format: FormatJSON, Output: &buf}), ShouldBeNil)
			Named("upload").Debug(context.Background(), "stored", Int("talents", 3))

			Convey("Then records are JSON with the logger name and caller", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "stored")
				So(rec["logger"], ShouldEqual, "upload")
				So(rec["talents"], ShouldEqual, 3.0)
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level filters a record", func() {
			So(InitWithOptions(Options{Level: "warn", Output: &buf}), ShouldBeNil)
			Get().Info(context.Background(), "hidden")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the format is unknown", func() {
			Convey("Then initialization fails", func() {
				So(InitWithOptions(Options{Format: "xml"}), ShouldNotBeNil)
				So(InitWithOptions(Options{Level: "loud"}), ShouldNotBeNil)
			})
		})

		Reset(func() {
			_ = Init()
		})
	})
}
