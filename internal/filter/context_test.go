package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobagent-engine/internal/config"
	"jobagent-engine/internal/domain"
	"jobagent-engine/internal/rank"
)

func softwareBreakdown(roleCat string, confidence float64) domain.ScoreBreakdown {
	return domain.ScoreBreakdown{
		Seniority:    30,
		RoleCategory: roleCat,
		Classification: domain.CompanyClassification{
			Type:       domain.CompanySoftware,
			Confidence: confidence,
		},
	}
}

func TestContextFilterModerateUsesConfidence(t *testing.T) {
	f := NewContextFilter(config.ContextFilters{ContractMinSeniorityScore: 25}, "moderate")

	job := domain.JobRecord{Title: "Director of Engineering", Company: "Stripe"}

	keep, reason := f.Check(job, softwareBreakdown(rank.RoleEngineeringLeadership, 0.9))
	assert.False(t, keep)
	assert.Equal(t, ReasonSoftwareEngAtSoftwareCo, reason)

	// below the confidence bar the verdict is too uncertain to veto
	keep, _ = f.Check(job, softwareBreakdown(rank.RoleEngineeringLeadership, 0.4))
	assert.True(t, keep)
}

func TestContextFilterConservativeNeedsExactPhrase(t *testing.T) {
	f := NewContextFilter(config.ContextFilters{ContractMinSeniorityScore: 25}, "conservative")

	b := softwareBreakdown(rank.RoleEngineeringLeadership, 0.9)

	keep, _ := f.Check(domain.JobRecord{Title: "Director of Engineering"}, b)
	assert.True(t, keep)

	keep, reason := f.Check(domain.JobRecord{Title: "Director of Software Engineering"}, b)
	assert.False(t, keep)
	assert.Equal(t, ReasonSoftwareEngAtSoftwareCo, reason)
}

func TestContextFilterAggressiveSparesHardwareTitles(t *testing.T) {
	f := NewContextFilter(config.ContextFilters{ContractMinSeniorityScore: 25}, "aggressive")

	b := softwareBreakdown(rank.RoleEngineeringLeadership, 0.3)

	keep, reason := f.Check(domain.JobRecord{Title: "Director of Engineering"}, b)
	assert.False(t, keep)
	assert.Equal(t, ReasonSoftwareEngAtSoftwareCo, reason)

	keep, _ = f.Check(domain.JobRecord{Title: "Director of Hardware Engineering"}, b)
	assert.True(t, keep)
}

func TestContextFilterProductLeadershipImmune(t *testing.T) {
	f := NewContextFilter(config.ContextFilters{ContractMinSeniorityScore: 25}, "aggressive")

	keep, _ := f.Check(
		domain.JobRecord{Title: "Director of Product"},
		softwareBreakdown(rank.RoleProductLeadership, 1),
	)
	assert.True(t, keep)
}

func TestContextFilterHardwareCompanyNeverVetoed(t *testing.T) {
	f := NewContextFilter(config.ContextFilters{ContractMinSeniorityScore: 25}, "moderate")

	b := domain.ScoreBreakdown{
		Seniority:    30,
		RoleCategory: rank.RoleEngineeringLeadership,
		Classification: domain.CompanyClassification{
			Type:       domain.CompanyHardware,
			Confidence: 1,
		},
	}
	keep, _ := f.Check(domain.JobRecord{Title: "Director of Engineering"}, b)
	assert.True(t, keep)
}

func TestContextFilterExceptionsBypassVeto(t *testing.T) {
	f := NewContextFilter(config.ContextFilters{
		SoftwareEngineeringExceptions: []string{"embedded"},
		ContractMinSeniorityScore:     25,
	}, "moderate")

	keep, _ := f.Check(
		domain.JobRecord{
			Title:       "Director of Engineering",
			Description: "Own our embedded platform roadmap.",
		},
		softwareBreakdown(rank.RoleEngineeringLeadership, 0.9),
	)
	assert.True(t, keep)
}

func TestContextFilterContractFloor(t *testing.T) {
	f := NewContextFilter(config.ContextFilters{ContractMinSeniorityScore: 25}, "moderate")

	below := domain.ScoreBreakdown{Seniority: 15}
	keep, reason := f.Check(domain.JobRecord{Title: "Contract Product Manager"}, below)
	assert.False(t, keep)
	assert.Equal(t, ReasonContractBelowMinLevel, reason)

	at := domain.ScoreBreakdown{Seniority: 25}
	keep, _ = f.Check(domain.JobRecord{Title: "Interim Director of Engineering"}, at)
	assert.True(t, keep)

	// permanent roles never hit the contract floor
	keep, _ = f.Check(domain.JobRecord{Title: "Product Manager"}, below)
	assert.True(t, keep)
}

func TestContextFilterUnknownAggressionFallsBackToModerate(t *testing.T) {
	f := NewContextFilter(config.ContextFilters{ContractMinSeniorityScore: 25}, "bogus")

	keep, _ := f.Check(
		domain.JobRecord{Title: "Director of Engineering"},
		softwareBreakdown(rank.RoleEngineeringLeadership, 0.9),
	)
	assert.False(t, keep)
}
