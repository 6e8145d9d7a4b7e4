package domain

// ScoreBreakdown is the auditable output of scoring one
// (JobRecord, profile) pair. Never mutated after construction; a
// rescore produces a fresh breakdown.
type ScoreBreakdown struct {
	Seniority    int `json:"seniority"`
	Domain       int `json:"domain"`
	RoleType     int `json:"role_type"`
	Location     int `json:"location"`
	CompanyStage int `json:"company_stage"`
	Technical    int `json:"technical"`

	// CompanyAdjustment is the signed hardware boost / software
	// penalty applied after the category sum, before clamping.
	CompanyAdjustment int `json:"company_adjustment"`

	Total int    `json:"total"` // clamped to [0,115]
	Grade string `json:"grade"`

	// RoleCategory is the winning role-type category, used by the
	// context filter's leadership checks.
	RoleCategory string `json:"role_category,omitempty"`

	// FilterReason is set only when a filter stage vetoed the job.
	FilterReason string `json:"filter_reason,omitempty"`

	Classification CompanyClassification `json:"classification"`
}
