package filter

import (
	"strings"

	"jobagent-engine/internal/config"
	"jobagent-engine/internal/domain"
	"jobagent-engine/internal/match"
)

// Hard-filter reject reasons.
const (
	ReasonMissingTitle      = "missing_title"
	ReasonMissingCompany    = "missing_company"
	ReasonBlockedSeniority  = "blocked_seniority"
	ReasonBlockedDepartment = "blocked_department"
	ReasonBlockedAssociate  = "blocked_associate"
	ReasonAvoidKeyword      = "avoid_keyword"
)

// HardFilter rejects jobs before any points are computed. Checks run
// in order and the first hit wins. Pure and total: every (job,
// profile) pair terminates with exactly one of pass or reject+reason.
type HardFilter struct {
	seniorityBlocks     *match.Matcher
	seniorityExceptions *match.Matcher
	departmentBlocks    *match.Matcher
	cLevelOverrides     *match.Matcher
	associate           *match.Matcher
	associateExceptions *match.Matcher
	avoid               *match.Matcher
}

func NewHardFilter(hf config.HardFilters, avoidKeywords []string) *HardFilter {
	return &HardFilter{
		seniorityBlocks:     match.New(hf.SeniorityBlocks),
		seniorityExceptions: match.New(hf.SeniorityExceptions),
		departmentBlocks:    match.New(hf.DepartmentBlocks),
		cLevelOverrides:     match.New(hf.CLevelOverrides),
		associate:           match.New([]string{"associate"}),
		associateExceptions: match.New(hf.AssociateExceptions),
		avoid:               match.New(avoidKeywords),
	}
}

// Check returns (true, "") for a pass or (false, reason) for a reject.
func (f *HardFilter) Check(job domain.JobRecord) (keep bool, reason string) {
	// Malformed records are a filter outcome, not an error: one bad
	// scraped row must not abort its batch.
	if strings.TrimSpace(job.Title) == "" {
		return false, ReasonMissingTitle
	}
	if strings.TrimSpace(job.Company) == "" {
		return false, ReasonMissingCompany
	}

	if f.seniorityBlocks.HasAny(job.Title) && !f.seniorityExceptions.HasAny(job.Title) {
		return false, ReasonBlockedSeniority
	}

	if f.departmentBlocks.HasAny(job.Title) && !f.cLevelOverrides.HasAny(job.Title) {
		return false, ReasonBlockedDepartment
	}

	if f.associate.HasAny(job.Title) && !f.associateExceptions.HasAny(job.Title) {
		return false, ReasonBlockedAssociate
	}

	if f.avoid.HasAny(job.Title + " " + job.Description) {
		return false, ReasonAvoidKeyword
	}

	return true, ""
}
