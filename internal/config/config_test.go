package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := New()

		So(cfg.Addr, ShouldEqual, ":9080")
		So(cfg.LogLevel, ShouldEqual, "info")
		So(cfg.MaxComparisons, ShouldEqual, 10)
		So(cfg.MinRankedForPredict, ShouldEqual, 5)
		So(cfg.MinTasteMatch, ShouldEqual, 30.0)
		So(cfg.MaxListLimit, ShouldEqual, 500)
		So(cfg.QueueSize, ShouldEqual, 10_000)
	})
}

func TestLoadLayering(t *testing.T) {
	ctx := context.Background()

	Convey("Given no file and no env overrides", t, func() {
		t.Setenv("GAMERANK_CONFIG", "")

		cfg, err := Load(ctx)
		So(err, ShouldBeNil)
		So(cfg.Addr, ShouldEqual, ":9080")
	})

	Convey("Given env overrides", t, func() {
		t.Setenv("GAMERANK_ADDR", ":7070")
		t.Setenv("GAMERANK_MAX_COMPARISONS", "12")
		t.Setenv("GAMERANK_LOG_LEVEL", "debug")

		cfg, err := Load(ctx)
		So(err, ShouldBeNil)
		So(cfg.Addr, ShouldEqual, ":7070")
		So(cfg.MaxComparisons, ShouldEqual, 12)
		So(cfg.LogLevel, ShouldEqual, "debug")
	})

	Convey("Given a YAML file and an env override on top", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		yaml := "addr: \":6060\"\nworker_count: 3\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)

		t.Setenv("GAMERANK_CONFIG", path)
		t.Setenv("GAMERANK_ADDR", ":5050")

		cfg, err := Load(ctx)
		So(err, ShouldBeNil)
		So(cfg.WorkerCount, ShouldEqual, 3)
		// Env wins over file.
		So(cfg.Addr, ShouldEqual, ":5050")
	})

	Convey("Given a missing config file", t, func() {
		t.Setenv("GAMERANK_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := Load(ctx)
		So(err, ShouldWrap, ErrLoadConfig)
	})

	Convey("Given an invalid override", t, func() {
		t.Setenv("GAMERANK_CONFIG", "")
		t.Setenv("GAMERANK_MAX_COMPARISONS", "0")

		_, err := Load(ctx)
		So(err, ShouldWrap, ErrInvalidConfig)
	})
}
