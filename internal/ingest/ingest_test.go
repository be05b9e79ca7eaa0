package ingest_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/okian/expertlens/internal/ingest"
)

func TestDecode(t *testing.T) {
	Convey("Given uploaded bytes", t, func() {
		Convey("When they are UTF-8", func() {
			text, err := ingest.Decode([]byte("专家-001\nabc"))

			Convey("Then they are returned unchanged", func() {
				So(err, ShouldBeNil)
				So(text, ShouldEqual, "专家-001\nabc")
			})
		})

		Convey("When they carry a UTF-8 byte order mark", func() {
			text, err := ingest.Decode(append([]byte{0xEF, 0xBB, 0xBF}, "abc"...))

			Convey("Then the mark is stripped", func() {
				So(err, ShouldBeNil)
				So(text, ShouldEqual, "abc")
			})
		})

		Convey("When they are GBK", func() {
			raw, err := simplifiedchinese.GBK.NewEncoder().String("专家-001\n专家-002")
			So(err, ShouldBeNil)
			text, err := ingest.Decode([]byte(raw))

			Convey("Then they are transcoded", func() {
				So(err, ShouldBeNil)
				So(text, ShouldEqual, "专家-001\n专家-002")
			})
		})

		Convey("When they are neither", func() {
			_, err := ingest.Decode([]byte{0xff, 0xff, 0xff})

			Convey("Then the encoding is rejected", func() {
				So(errors.Is(err, ingest.ErrUnsupportedEncoding), ShouldBeTrue)
			})
		})
	})
}

func TestParseIDs(t *testing.T) {
	Convey("Given an identifier file", t, func() {
		text := "# header\n  a1 \n\nb2\r\na1\n#c3\n c3\n"

		Convey("Then blanks, comments and duplicates are dropped in order", func() {
			So(ingest.ParseIDs(text), ShouldResemble, []string{"a1", "b2", "c3"})
		})

		Convey("Then empty input yields no identifiers", func() {
			So(ingest.ParseIDs(""), ShouldBeEmpty)
			So(ingest.ParseIDs("\n\n  \n# only comments"), ShouldBeEmpty)
		})
	})
}
