package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given an initialized global logger", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			l := Get()
			So(l, ShouldNotBeNil)
			So(func() {
				l.Info(ctx, "hello", String("owner", "alice"), Int("count", 3))
				l.Warn(ctx, "watch out", Float64("score", 72.5))
				l.Error(ctx, "boom", Error(errors.New("kaput")))
				l.Debug(ctx, "details", Bool("ok", true), Duration("took", time.Millisecond))
			}, ShouldNotPanic)
		})

		Convey("Then named loggers chain", func() {
			l := Named("worker").Named("worker-1")
			So(l, ShouldNotBeNil)
			So(func() { l.Info(ctx, "started") }, ShouldNotPanic)
		})

		Convey("Then Sync is a no-op", func() {
			So(Sync(), ShouldBeNil)
		})
	})
}

func TestLevelParsing(t *testing.T) {
	Convey("Given the level parser", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then known names parse", func() {
			So(SetLevelString("debug"), ShouldBeNil)
			So(SetLevelString("INFO"), ShouldBeNil)
			So(SetLevelString("warning"), ShouldBeNil)
			So(SetLevelString("error"), ShouldBeNil)
			So(SetLevelString(""), ShouldBeNil)
		})

		Convey("Then unknown names are rejected", func() {
			So(SetLevelString("loud"), ShouldNotBeNil)
		})

		Convey("Then SetLevel adjusts the handler level", func() {
			SetLevel(slog.LevelError)
			So(levelVar.Level(), ShouldEqual, slog.LevelError)
			SetLevel(slog.LevelInfo)
		})
	})
}
