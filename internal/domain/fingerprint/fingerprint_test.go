package fingerprint_test

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/expertlens/internal/domain/catalog"
	"github.com/okian/expertlens/internal/domain/fingerprint"
	"github.com/okian/expertlens/internal/domain/model"
)

func tasksOf(texts ...string) []model.TaskRecord {
	out := make([]model.TaskRecord, len(texts))
	for i, t := range texts {
		out[i] = model.TaskRecord{Text: t}
	}
	return out
}

func TestOf(t *testing.T) {
	m := fingerprint.FromCatalog(catalog.Default())

	Convey("Given the catalog marker sets", t, func() {
		Convey("When fingerprinting a rendered instruction task", func() {
			fp := m.Of("[软件开发] 请帮我{action}一下{object} - 代码任务")

			Convey("Then every feature is detected", func() {
				So(fp, ShouldResemble, fingerprint.Fingerprint{
					LengthBucket:   0,
					HasQuestion:    false,
					HasInstruction: true,
					HasListMarker:  true,
					Prefix:         "[软件开发",
				})
			})
		})

		Convey("When the text holds a full-width question mark", func() {
			So(m.Of("这是什么？").HasQuestion, ShouldBeTrue)
		})

		Convey("When the text holds an ASCII question mark", func() {
			So(m.Of("what?").HasQuestion, ShouldBeTrue)
		})

		Convey("When the text is shorter than the prefix", func() {
			fp := m.Of("abc")

			Convey("Then the whole text is the prefix", func() {
				So(fp.Prefix, ShouldEqual, "abc")
				So(fp.HasListMarker, ShouldBeFalse)
			})
		})

		Convey("When the text is long", func() {
			fp := m.Of(strings.Repeat("字", 120))

			Convey("Then the length bucket counts runes, not bytes", func() {
				So(fp.LengthBucket, ShouldEqual, 2)
				So(fp.Prefix, ShouldEqual, "字字字字字")
			})
		})
	})
}

func TestSummarize(t *testing.T) {
	m := fingerprint.FromCatalog(catalog.Default())

	Convey("Given task sets with known structure", t, func() {
		Convey("When the set is empty", func() {
			Convey("Then every metric is zero", func() {
				So(m.Summarize(nil), ShouldResemble, fingerprint.Summary{})
			})
		})

		Convey("When every task has empty text", func() {
			So(m.Summarize(tasksOf("", "")), ShouldResemble, fingerprint.Summary{})
		})

		Convey("When one structure covers half of four tasks", func() {
			s := m.Summarize(tasksOf("alpha", "alpha", "beta?", "gamma"))

			Convey("Then ratio, diversity and score follow the formulas", func() {
				So(s.UniquePatterns, ShouldEqual, 3)
				So(s.TemplateRatio, ShouldEqual, 0.5)
				So(s.PatternDiversity, ShouldEqual, 0.75)
				So(s.StructureScore, ShouldEqual, 60)
			})
		})

		Convey("When every task is identical", func() {
			s := m.Summarize(tasksOf(strings.Split(strings.Repeat("same,", 10), ",")[:10]...))

			Convey("Then the score is clamped at zero", func() {
				So(s.UniquePatterns, ShouldEqual, 1)
				So(s.TemplateRatio, ShouldEqual, 1.0)
				So(s.StructureScore, ShouldEqual, 0)
			})
		})

		Convey("When the raw score lands on a half", func() {
			// 3 patterns over 8 tasks, top count 4: 37.5 - 15 = 22.5
			s := m.Summarize(tasksOf("aaaaa", "aaaaa", "aaaaa", "aaaaa", "bbbbb", "bbbbb", "ccccc", "ccccc"))

			Convey("Then it rounds half to even", func() {
				So(s.StructureScore, ShouldEqual, 22)
			})
		})

		Convey("When ratios are not exact decimals", func() {
			s := m.Summarize(tasksOf("one", "two", "three"))

			Convey("Then they are rounded to three places", func() {
				So(s.TemplateRatio, ShouldEqual, 0.333)
				So(s.PatternDiversity, ShouldEqual, 1.0)
				So(s.StructureScore, ShouldEqual, 90)
			})
		})

		Convey("When two fingerprints tie for most common", func() {
			s := m.Summarize(tasksOf("first", "second", "second", "first"))

			Convey("Then the earlier one is dominant", func() {
				So(s.Dominant.Prefix, ShouldEqual, "first")
				So(s.TemplateRatio, ShouldEqual, 0.5)
			})
		})

		Convey("Then unique patterns never exceed the task count", func() {
			tasks := tasksOf("a", "b", "c", "d", "e")
			So(m.Summarize(tasks).UniquePatterns, ShouldBeLessThanOrEqualTo, len(tasks))
		})
	})
}
