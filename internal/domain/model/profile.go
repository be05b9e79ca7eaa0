// Package model contains domain models passed between layers.
package model

// TaskRecord is one synthetic task attributed to an expert.
// Records live only for the duration of a single profile computation.
type TaskRecord struct {
	Text          string // rendered task text
	Category      string // task category, e.g. "改写"
	Domain        string // domain label, e.g. "软件开发"
	TemplateIndex int    // index of the prompt template in the catalog, -1 when unknown
}

// Profile is the full derived record for one identifier.
// Fields mirror the /api/dashboard/{session_id}/experts response.
type Profile struct {
	TalentID string `json:"talent_id"`
	Name     string `json:"name,omitempty"`

	// Education
	Degree     Degree     `json:"degree"`
	SchoolTier SchoolTier `json:"school_tier"`
	SchoolName string     `json:"school_name,omitempty"`

	// Capability
	TechStacks        []string `json:"tech_stacks"`
	Skills            []string `json:"skills"`
	YearsOfExperience int      `json:"years_of_experience"`

	// Task volume, labels kept in first-seen order
	TaskCount int      `json:"task_count"`
	TaskTypes []string `json:"task_types"`
	Domains   []string `json:"domains"`

	// Diversity scores in [0,100]
	TypeScore      int `json:"type_score"`
	DomainScore    int `json:"domain_score"`
	StructureScore int `json:"structure_score"`
	DiversityScore int `json:"diversity_score"`

	// Template reuse
	TemplateRatio           float64   `json:"template_ratio"`
	UniquePatterns          int       `json:"unique_patterns"`
	TemplateRiskLevel       RiskLevel `json:"template_risk_level"`
	TemplateRiskDescription string    `json:"template_risk_description"`

	// Verdict
	QualityLabel       QualityLabel `json:"quality_label"`
	QualityLabelReason string       `json:"quality_label_reason"`

	// Employer background
	HasBigCompanyExp bool     `json:"has_big_company_exp"`
	Companies        []string `json:"companies"`
}
