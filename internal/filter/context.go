package filter

import (
	"jobagent-engine/internal/config"
	"jobagent-engine/internal/domain"
	"jobagent-engine/internal/match"
	"jobagent-engine/internal/rank"
)

// Context-filter reject reasons.
const (
	ReasonSoftwareEngAtSoftwareCo = "software_engineering_at_software_company"
	ReasonContractBelowMinLevel   = "contract_below_min_seniority"
)

// vetoFunc decides whether an engineering-leadership role at a
// software company should be vetoed. One function exists per
// aggression level; the profile selects exactly one at load time.
type vetoFunc func(f *ContextFilter, title string, cl domain.CompanyClassification) bool

func vetoConservative(f *ContextFilter, title string, _ domain.CompanyClassification) bool {
	// only the exact phrase counts
	return f.softwareEngPhrase.HasAny(title)
}

func vetoModerate(_ *ContextFilter, _ string, cl domain.CompanyClassification) bool {
	return cl.Confidence >= 0.6
}

func vetoAggressive(f *ContextFilter, title string, _ domain.CompanyClassification) bool {
	// any engineering title without explicit hardware keywords
	return f.engineering.HasAny(title) && !f.hardwareCues.HasAny(title)
}

var vetoByAggression = map[string]vetoFunc{
	"conservative": vetoConservative,
	"moderate":     vetoModerate,
	"aggressive":   vetoAggressive,
}

// ContextFilter runs after scoring and may veto a job based on the
// combination of its score, role classification, and company
// classification.
type ContextFilter struct {
	veto              vetoFunc
	exceptions        *match.Matcher
	contract          *match.Matcher
	softwareEngPhrase *match.Matcher
	engineering       *match.Matcher
	hardwareCues      *match.Matcher
	contractMinScore  int
}

func NewContextFilter(cf config.ContextFilters, aggression string) *ContextFilter {
	veto, ok := vetoByAggression[aggression]
	if !ok {
		veto = vetoModerate
	}
	return &ContextFilter{
		veto:              veto,
		exceptions:        match.New(cf.SoftwareEngineeringExceptions),
		contract:          match.New([]string{"contract", "contractor", "temporary", "temp", "interim", "fixed term", "fixed-term"}),
		softwareEngPhrase: match.New([]string{"software engineering"}),
		engineering:       match.New([]string{"engineering", "engineer"}),
		hardwareCues:      match.New([]string{"hardware", "embedded", "firmware", "mechanical", "electrical"}),
		contractMinScore:  cf.ContractMinSeniorityScore,
	}
}

// Check returns (true, "") when the scored job stays digest-eligible.
func (f *ContextFilter) Check(job domain.JobRecord, b domain.ScoreBreakdown) (keep bool, reason string) {
	// Product leadership is domain-transferable and never vetoed here,
	// whatever the company builds.
	if b.RoleCategory == rank.RoleEngineeringLeadership &&
		b.Classification.Type == domain.CompanySoftware &&
		!f.exceptions.HasAny(job.Title+" "+job.Description) &&
		f.veto(f, job.Title, b.Classification) {
		return false, ReasonSoftwareEngAtSoftwareCo
	}

	// Short-term engagements are only worth surfacing at senior
	// levels: the relative seniority sub-score must clear the floor.
	if f.contract.HasAny(job.Title) && b.Seniority < f.contractMinScore {
		return false, ReasonContractBelowMinLevel
	}

	return true, ""
}
