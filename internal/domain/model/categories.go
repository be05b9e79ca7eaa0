package model

import (
	"encoding/json"
	"fmt"
)

// Degree is the highest education level of an expert.
type Degree int

// Degree values.
const (
	DegreeOther Degree = iota
	DegreeBachelor
	DegreeMaster
	DegreePhD
	DegreeCollege
)

var degreeCodes = map[Degree]string{
	DegreeOther:    "other",
	DegreeBachelor: "bachelor",
	DegreeMaster:   "master",
	DegreePhD:      "phd",
	DegreeCollege:  "college",
}

var degreeLabels = map[Degree]string{
	DegreeOther:    "其他",
	DegreeBachelor: "本科",
	DegreeMaster:   "硕士",
	DegreePhD:      "博士",
	DegreeCollege:  "大专",
}

// String returns the stable code of the degree.
func (d Degree) String() string { return lookup(degreeCodes, d) }

// Label returns the display text of the degree.
func (d Degree) Label() string { return lookup(degreeLabels, d) }

// AtLeastMaster reports whether the degree is a master's or a doctorate.
func (d Degree) AtLeastMaster() bool { return d == DegreeMaster || d == DegreePhD }

// MarshalJSON encodes the degree as its code.
func (d Degree) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON decodes a degree code.
func (d *Degree) UnmarshalJSON(b []byte) error { return unmarshalCode(b, degreeCodes, d) }

// SchoolTier classifies the school an expert graduated from.
type SchoolTier int

// SchoolTier values.
const (
	TierOther SchoolTier = iota
	Tier985
	Tier211
	TierOverseas
	TierNormal
)

var tierCodes = map[SchoolTier]string{
	TierOther:    "other",
	Tier985:      "985",
	Tier211:      "211",
	TierOverseas: "overseas",
	TierNormal:   "normal",
}

var tierLabels = map[SchoolTier]string{
	TierOther:    "其他",
	Tier985:      "985",
	Tier211:      "211",
	TierOverseas: "海外名校",
	TierNormal:   "普通本科",
}

// String returns the stable code of the tier.
func (t SchoolTier) String() string { return lookup(tierCodes, t) }

// Label returns the display text of the tier.
func (t SchoolTier) Label() string { return lookup(tierLabels, t) }

// Elite reports whether the tier counts as an elite school.
func (t SchoolTier) Elite() bool { return t == Tier985 || t == Tier211 || t == TierOverseas }

// MarshalJSON encodes the tier as its code.
func (t SchoolTier) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

// UnmarshalJSON decodes a tier code.
func (t *SchoolTier) UnmarshalJSON(b []byte) error { return unmarshalCode(b, tierCodes, t) }

// RiskLevel is the template-reuse risk of an expert's task set.
type RiskLevel int

// RiskLevel values.
const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

var riskCodes = map[RiskLevel]string{
	RiskLow:    "low",
	RiskMedium: "medium",
	RiskHigh:   "high",
}

var riskLabels = map[RiskLevel]string{
	RiskLow:    "低",
	RiskMedium: "中",
	RiskHigh:   "高",
}

// String returns the stable code of the risk level.
func (r RiskLevel) String() string { return lookup(riskCodes, r) }

// Label returns the display text of the risk level.
func (r RiskLevel) Label() string { return lookup(riskLabels, r) }

// MarshalJSON encodes the level as its code.
func (r RiskLevel) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }

// UnmarshalJSON decodes a risk level code.
func (r *RiskLevel) UnmarshalJSON(b []byte) error { return unmarshalCode(b, riskCodes, r) }

// QualityLabel is the final verdict on an expert.
type QualityLabel int

// QualityLabel values.
const (
	QualityNormal QualityLabel = iota
	QualityHigh
	QualityRisk
)

var qualityCodes = map[QualityLabel]string{
	QualityNormal: "normal",
	QualityHigh:   "high_quality",
	QualityRisk:   "risk",
}

var qualityLabels = map[QualityLabel]string{
	QualityNormal: "正常",
	QualityHigh:   "高质量",
	QualityRisk:   "风险",
}

// String returns the stable code of the label.
func (q QualityLabel) String() string { return lookup(qualityCodes, q) }

// Label returns the display text of the label.
func (q QualityLabel) Label() string { return lookup(qualityLabels, q) }

// MarshalJSON encodes the label as its code.
func (q QualityLabel) MarshalJSON() ([]byte, error) { return json.Marshal(q.String()) }

// UnmarshalJSON decodes a quality label code.
func (q *QualityLabel) UnmarshalJSON(b []byte) error { return unmarshalCode(b, qualityCodes, q) }

func lookup[K ~int](m map[K]string, k K) string {
	if s, ok := m[k]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

func unmarshalCode[K ~int](b []byte, codes map[K]string, dst *K) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode category: %w", err)
	}
	for k, code := range codes {
		if code == s {
			*dst = k
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
