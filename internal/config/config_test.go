package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/mentorboard/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no config file or env overrides", t, func() {
		os.Unsetenv("MENTORBOARD_CONFIG")
		os.Unsetenv("MENTORBOARD_ADDR")
		os.Unsetenv("MENTORBOARD_LOG_LEVEL")

		Convey("When the configuration is loaded", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.StoreTimeoutMS, ShouldEqual, 15_000)
				So(cfg.DraftDebounceMS, ShouldEqual, 1_000)
				So(cfg.DraftTTLHours, ShouldEqual, 24)
			})

			Convey("Then the default rubric is the built-in one", func() {
				rb, rerr := cfg.Rubric()
				So(rerr, ShouldBeNil)
				So(rb.Len(), ShouldEqual, 6)
			})
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given env overrides", t, func() {
		os.Unsetenv("MENTORBOARD_CONFIG")
		So(os.Setenv("MENTORBOARD_ADDR", ":8123"), ShouldBeNil)
		So(os.Setenv("MENTORBOARD_LOG_LEVEL", "debug"), ShouldBeNil)
		defer os.Unsetenv("MENTORBOARD_ADDR")
		defer os.Unsetenv("MENTORBOARD_LOG_LEVEL")

		Convey("When the configuration is loaded", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env wins over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8123")
				So(cfg.LogLevel, ShouldEqual, "debug")
			})
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := []byte(`
addr: ":7001"
draft_ttl_hours: 48
criteria:
  - id: q1
    name: Quality
    weight: 0.5
  - id: q2
    name: Impact
    weight: 0.5
`)
		So(os.WriteFile(path, content, 0o600), ShouldBeNil)
		So(os.Setenv("MENTORBOARD_CONFIG", path), ShouldBeNil)
		defer os.Unsetenv("MENTORBOARD_CONFIG")

		Convey("When the configuration is loaded", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values layer over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7001")
				So(cfg.DraftTTLHours, ShouldEqual, 48)
				So(cfg.StoreTimeoutMS, ShouldEqual, 15_000)
			})

			Convey("Then the configured rubric replaces the default", func() {
				rb, rerr := cfg.Rubric()
				So(rerr, ShouldBeNil)
				So(rb.Len(), ShouldEqual, 2)
				So(rb.Contains("q1"), ShouldBeTrue)
			})
		})

		Convey("When the file points nowhere", func() {
			So(os.Setenv("MENTORBOARD_CONFIG", filepath.Join(dir, "missing.yaml")), ShouldBeNil)
			_, err := config.Load(context.Background())

			Convey("Then loading fails with the load sentinel", func() {
				So(err, ShouldWrap, config.ErrLoadConfig)
			})
		})
	})
}

func TestValidation(t *testing.T) {
	Convey("Given a config file with a bad rubric", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := []byte(`
criteria:
  - id: q1
    name: Quality
    weight: -1
`)
		So(os.WriteFile(path, content, 0o600), ShouldBeNil)
		So(os.Setenv("MENTORBOARD_CONFIG", path), ShouldBeNil)
		defer os.Unsetenv("MENTORBOARD_CONFIG")

		Convey("When the configuration is loaded", func() {
			_, err := config.Load(context.Background())

			Convey("Then validation rejects it", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}
