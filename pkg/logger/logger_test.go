package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the default initializer", t, func() {
		So(Init(), ShouldBeNil)
		defer func() { _ = Sync() }()

		Convey("Then the global logger is available", func() {
			So(Get(), ShouldNotBeNil)
			So(Named("test"), ShouldNotBeNil)
		})
	})

	Convey("Given a nil writer", t, func() {
		Convey("Then initialization fails", func() {
			So(InitWithWriter(nil, FormatText), ShouldNotBeNil)
		})
	})

	Convey("Given an unknown format", t, func() {
		Convey("Then initialization fails", func() {
			So(InitWithWriter(&bytes.Buffer{}, Format("xml")), ShouldNotBeNil)
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	ctx := context.Background()

	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf, FormatJSON), ShouldBeNil)

		Convey("When a record with typed fields is written", func() {
			Get().Info(ctx, "team ranked",
				String("team", "Oregon"),
				Int("rank", 1),
				Float64("score", 412.5),
				Bool("cached", true),
				Duration("took", 3*time.Millisecond),
				Error(errors.New("boom")),
			)

			var rec map[string]any
			So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)

			Convey("Then every field is present", func() {
				So(rec["msg"], ShouldEqual, "team ranked")
				So(rec["team"], ShouldEqual, "Oregon")
				So(rec["rank"], ShouldEqual, 1)
				So(rec["score"], ShouldEqual, 412.5)
				So(rec["cached"], ShouldBeTrue)
				So(rec["error"], ShouldEqual, "boom")
			})

			Convey("Then the source points at the caller", func() {
				So(rec["source"], ShouldContainSubstring, "logger_test.go:")
			})
		})

		Convey("When a named logger with fixed fields is used", func() {
			Named("worker").With(Int("worker_id", 3)).Warn(ctx, "slow")

			Convey("Then fields are grouped under the name", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				group, ok := rec["worker"].(map[string]any)
				So(ok, ShouldBeTrue)
				So(group["worker_id"], ShouldEqual, 3)
			})
		})
	})

	Convey("Given a text logger at warn level", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf, FormatText), ShouldBeNil)
		So(SetLevelString("warn"), ShouldBeNil)

		Get().Info(ctx, "hidden")
		Get().Debug(ctx, "hidden")
		Get().Error(ctx, "shown")

		Convey("Then only records at or above warn are written", func() {
			out := buf.String()
			So(out, ShouldNotContainSubstring, "hidden")
			So(out, ShouldContainSubstring, "shown")
			So(strings.Count(out, "\n"), ShouldEqual, 1)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		for _, lvl := range []string{"debug", "INFO", " warn ", "warning", "error", ""} {
			So(SetLevelString(lvl), ShouldBeNil)
		}

		Convey("Then an unknown level is rejected", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
