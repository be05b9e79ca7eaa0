package scoring

import (
	"fmt"

	"github.com/okian/expertlens/internal/domain/model"
)

// Classification thresholds.
const (
	highRiskRatio       = 0.3
	highRiskDiversity   = 0.4
	mediumRiskRatio     = 0.15
	mediumRiskDiversity = 0.7

	highQualityDiversity = 70
	highQualityMinTasks  = 5
	highQualityDimension = 60
	narrowDimension      = 30
)

// Risk is a template-risk level with its justification.
type Risk struct {
	Level       model.RiskLevel
	Description string
}

// Quality is a quality label with its justification.
type Quality struct {
	Label  model.QualityLabel
	Reason string
}

// ClassifyRisk grades template reuse. Guards are evaluated in order and the
// first match wins.
func ClassifyRisk(templateRatio, patternDiversity float64) Risk {
	switch {
	case templateRatio >= highRiskRatio || patternDiversity <= highRiskDiversity:
		return Risk{
			Level:       model.RiskHigh,
			Description: fmt.Sprintf("over %s of tasks share a near-identical structure; likely template reuse", pct(templateRatio)),
		}
	case templateRatio >= mediumRiskRatio || patternDiversity <= mediumRiskDiversity:
		return Risk{
			Level:       model.RiskMedium,
			Description: fmt.Sprintf("about %s of tasks share a structure; some signs of template reuse", pct(templateRatio)),
		}
	default:
		return Risk{
			Level:       model.RiskLow,
			Description: fmt.Sprintf("structure diversity %s; prompt design is varied", pct(patternDiversity)),
		}
	}
}

// ClassifyQuality assigns the final label. Guards are evaluated in strict
// priority order; a high risk level can never produce high_quality.
func ClassifyQuality(s Scores, taskCount int, risk model.RiskLevel) Quality {
	switch {
	case s.Diversity >= highQualityDiversity &&
		risk == model.RiskLow &&
		taskCount >= highQualityMinTasks &&
		s.Type >= highQualityDimension &&
		s.Domain >= highQualityDimension:
		return Quality{
			Label:  model.QualityHigh,
			Reason: fmt.Sprintf("diversity score %d; task types and domains are balanced and template risk is low", s.Diversity),
		}
	case risk == model.RiskHigh:
		return Quality{
			Label:  model.QualityRisk,
			Reason: "high template risk; task structures are highly similar, suggesting batch production",
		}
	case s.Domain < narrowDimension && s.Type < narrowDimension:
		return Quality{
			Label:  model.QualityRisk,
			Reason: fmt.Sprintf("task types (score %d) and domains (score %d) are overly concentrated; generalisation is doubtful", s.Type, s.Domain),
		}
	default:
		return Quality{
			Label:  model.QualityNormal,
			Reason: fmt.Sprintf("diversity score %d; every dimension is moderate", s.Diversity),
		}
	}
}

// pct renders a ratio as a whole percentage, e.g. 0.256 -> "26%".
func pct(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}
