package model

import (
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCategories(t *testing.T) {
	Convey("Given the categorical types", t, func() {
		Convey("Then codes and display labels differ where localized", func() {
			So(DegreeMaster.String(), ShouldEqual, "master")
			So(DegreeMaster.Label(), ShouldEqual, "硕士")
			So(TierOverseas.Label(), ShouldEqual, "海外名校")
			So(QualityHigh.String(), ShouldEqual, "high_quality")
			So(RiskHigh.Label(), ShouldEqual, "高")
		})

		Convey("Then the elite and advanced-degree predicates match the KPIs", func() {
			So(DegreePhD.AtLeastMaster(), ShouldBeTrue)
			So(DegreeBachelor.AtLeastMaster(), ShouldBeFalse)
			So(Tier211.Elite(), ShouldBeTrue)
			So(TierNormal.Elite(), ShouldBeFalse)
		})

		Convey("Then JSON uses the codes", func() {
			b, err := json.Marshal(struct {
				T SchoolTier   `json:"t"`
				Q QualityLabel `json:"q"`
			}{Tier985, QualityRisk})
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, `{"t":"985","q":"risk"}`)

			var lvl RiskLevel
			So(json.Unmarshal([]byte(`"medium"`), &lvl), ShouldBeNil)
			So(lvl, ShouldEqual, RiskMedium)
		})

		Convey("Then unknown codes are rejected", func() {
			var d Degree
			err := json.Unmarshal([]byte(`"diploma"`), &d)
			So(errors.Is(err, ErrUnknownCategory), ShouldBeTrue)
			So(json.Unmarshal([]byte(`3`), &d), ShouldNotBeNil)
		})

		Convey("Then out-of-range values print as unknown", func() {
			So(Degree(42).String(), ShouldEqual, "unknown(42)")
		})
	})
}
