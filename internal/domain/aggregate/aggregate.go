// Package aggregate rolls a batch of profiles up into dashboard statistics.
package aggregate

import (
	"math"

	"github.com/okian/expertlens/internal/domain/model"
)

const (
	// DefaultHighTaskThreshold is the task count at which an expert counts
	// as high volume.
	DefaultHighTaskThreshold = 10
	techStackTop             = 10
)

// Diversity histogram bucket labels, in display order.
const (
	BucketLow     = "0-30"
	BucketMid     = "31-50"
	BucketHigh    = "51-70"
	BucketTopTier = "71-100"
)

// TaskStats summarises task volume.
type TaskStats struct {
	TotalTasks          int     `json:"total_tasks"`
	AvgTasksPerExpert   float64 `json:"avg_tasks_per_expert"`
	HighTaskExpertCount int     `json:"high_task_expert_count"`
	HighTaskExpertPct   float64 `json:"high_task_expert_pct"`
}

// KPI holds the headline background shares.
type KPI struct {
	MastersAndAboveCount int     `json:"masters_and_above_count"`
	MastersAndAbovePct   float64 `json:"masters_and_above_pct"`
	EliteSchoolCount     int     `json:"elite_school_count"`
	EliteSchoolPct       float64 `json:"elite_school_pct"`
	BigCompanyCount      int     `json:"big_company_count"`
	BigCompanyPct        float64 `json:"big_company_pct"`
}

// RiskStats breaks the batch down by template-risk level.
type RiskStats struct {
	HighRiskCount     int     `json:"high_risk_count"`
	HighRiskPct       float64 `json:"high_risk_pct"`
	MediumRiskCount   int     `json:"medium_risk_count"`
	MediumRiskPct     float64 `json:"medium_risk_pct"`
	LowRiskCount      int     `json:"low_risk_count"`
	LowRiskPct        float64 `json:"low_risk_pct"`
	AvgTemplateRatio  float64 `json:"avg_template_ratio"`
	AvgUniquePatterns float64 `json:"avg_unique_patterns"`
}

// QualityStats breaks the batch down by quality label.
type QualityStats struct {
	HighQualityCount int     `json:"high_quality_count"`
	HighQualityPct   float64 `json:"high_quality_pct"`
	NormalCount      int     `json:"normal_count"`
	NormalPct        float64 `json:"normal_pct"`
	RiskCount        int     `json:"risk_count"`
	RiskPct          float64 `json:"risk_pct"`
}

// AvgScores holds the population mean of each score.
type AvgScores struct {
	TypeScore      float64 `json:"type_score"`
	DomainScore    float64 `json:"domain_score"`
	StructureScore float64 `json:"structure_score"`
	DiversityScore float64 `json:"diversity_score"`
}

// Stats is the dashboard view of a batch.
type Stats struct {
	TotalExperts               int          `json:"total_experts"`
	DegreeDistribution         Distribution `json:"degree_distribution"`
	SchoolTierDistribution     Distribution `json:"school_tier_distribution"`
	TechStackDistribution      Distribution `json:"tech_stack_distribution"`
	TaskStats                  TaskStats    `json:"task_stats"`
	TaskTypeDistribution       Distribution `json:"task_type_distribution"`
	KPI                        KPI          `json:"kpi"`
	TemplateRiskStats          RiskStats    `json:"template_risk_stats"`
	QualityLabelStats          QualityStats `json:"quality_label_stats"`
	DiversityScoreDistribution Distribution `json:"diversity_score_distribution"`
	AvgScores                  AvgScores    `json:"avg_scores"`
}

type counters struct {
	masters, elite, bigCompany, highTask    int
	riskHigh, riskMedium, riskLow           int
	qualityHigh, qualityNormal, qualityRisk int
	sumPatterns, sumType, sumDomain         int
	sumStruct, sumDiversity                 int
	sumRatio                                float64
}

// Option configures Compute.
type Option func(*options)

type options struct {
	highTaskThreshold int
}

// WithHighTaskThreshold overrides the high-volume task threshold.
func WithHighTaskThreshold(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.highTaskThreshold = n
		}
	}
}

// Compute reduces the batch to statistics. The input is not modified; an
// empty batch yields zero counts and empty distributions.
func Compute(profiles []model.Profile, opts ...Option) Stats {
	o := options{highTaskThreshold: DefaultHighTaskThreshold}
	for _, opt := range opts {
		opt(&o)
	}

	var st Stats
	for _, b := range []string{BucketLow, BucketMid, BucketHigh, BucketTopTier} {
		st.DiversityScoreDistribution.Add(b, 0)
	}
	total := len(profiles)
	st.TotalExperts = total
	if total == 0 {
		return st
	}

	var (
		techStacks Distribution
		c          counters
	)

	for i := range profiles {
		p := &profiles[i]

		st.DegreeDistribution.Add(p.Degree.Label(), 1)
		st.SchoolTierDistribution.Add(p.SchoolTier.Label(), 1)
		for _, t := range p.TechStacks {
			techStacks.Add(t, 1)
		}
		for _, t := range p.TaskTypes {
			st.TaskTypeDistribution.Add(t, 1)
		}

		st.TaskStats.TotalTasks += p.TaskCount
		if p.TaskCount >= o.highTaskThreshold {
			c.highTask++
		}
		if p.Degree.AtLeastMaster() {
			c.masters++
		}
		if p.SchoolTier.Elite() {
			c.elite++
		}
		if p.HasBigCompanyExp {
			c.bigCompany++
		}

		switch p.TemplateRiskLevel {
		case model.RiskHigh:
			c.riskHigh++
		case model.RiskMedium:
			c.riskMedium++
		case model.RiskLow:
			c.riskLow++
		}
		switch p.QualityLabel {
		case model.QualityHigh:
			c.qualityHigh++
		case model.QualityNormal:
			c.qualityNormal++
		case model.QualityRisk:
			c.qualityRisk++
		}

		c.sumRatio += p.TemplateRatio
		c.sumPatterns += p.UniquePatterns
		c.sumType += p.TypeScore
		c.sumDomain += p.DomainScore
		c.sumStruct += p.StructureScore
		c.sumDiversity += p.DiversityScore
		st.DiversityScoreDistribution.Add(bucket(p.DiversityScore), 1)
	}

	st.TechStackDistribution = techStacks.Top(techStackTop)

	st.TaskStats.AvgTasksPerExpert = round(float64(st.TaskStats.TotalTasks)/float64(total), 2)
	st.TaskStats.HighTaskExpertCount = c.highTask
	st.TaskStats.HighTaskExpertPct = pct(c.highTask, total)

	st.KPI = KPI{
		MastersAndAboveCount: c.masters,
		MastersAndAbovePct:   pct(c.masters, total),
		EliteSchoolCount:     c.elite,
		EliteSchoolPct:       pct(c.elite, total),
		BigCompanyCount:      c.bigCompany,
		BigCompanyPct:        pct(c.bigCompany, total),
	}

	st.TemplateRiskStats = RiskStats{
		HighRiskCount:     c.riskHigh,
		HighRiskPct:       pct(c.riskHigh, total),
		MediumRiskCount:   c.riskMedium,
		MediumRiskPct:     pct(c.riskMedium, total),
		LowRiskCount:      c.riskLow,
		LowRiskPct:        pct(c.riskLow, total),
		AvgTemplateRatio:  round(c.sumRatio/float64(total), 3),
		AvgUniquePatterns: mean(c.sumPatterns, total),
	}

	st.QualityLabelStats = QualityStats{
		HighQualityCount: c.qualityHigh,
		HighQualityPct:   pct(c.qualityHigh, total),
		NormalCount:      c.qualityNormal,
		NormalPct:        pct(c.qualityNormal, total),
		RiskCount:        c.qualityRisk,
		RiskPct:          pct(c.qualityRisk, total),
	}

	st.AvgScores = AvgScores{
		TypeScore:      mean(c.sumType, total),
		DomainScore:    mean(c.sumDomain, total),
		StructureScore: mean(c.sumStruct, total),
		DiversityScore: mean(c.sumDiversity, total),
	}
	return st
}

func bucket(score int) string {
	switch {
	case score <= 30:
		return BucketLow
	case score <= 50:
		return BucketMid
	case score <= 70:
		return BucketHigh
	default:
		return BucketTopTier
	}
}

// pct is part/total as a percentage with one decimal place; total > 0.
func pct(part, total int) float64 {
	return round(float64(part)/float64(total)*100, 1)
}

func mean(sum, total int) float64 {
	return round(float64(sum)/float64(total), 1)
}

func round(x float64, places int) float64 {
	scale := math.Pow10(places)
	return math.RoundToEven(x*scale) / scale
}
