package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobagent-engine/internal/config"
	"jobagent-engine/internal/domain"
)

func testHardFilters() config.HardFilters {
	return config.HardFilters{
		SeniorityBlocks:     []string{"intern", "junior", "entry level"},
		SeniorityExceptions: []string{"senior"},
		DepartmentBlocks:    []string{"sales", "marketing", "recruiting"},
		CLevelOverrides:     []string{"vp", "chief", "director"},
		AssociateExceptions: []string{"associate director"},
	}
}

func TestHardFilterPasses(t *testing.T) {
	f := NewHardFilter(testHardFilters(), nil)

	keep, reason := f.Check(domain.JobRecord{
		Title:   "Director of Engineering",
		Company: "Acme",
	})
	assert.True(t, keep)
	assert.Empty(t, reason)
}

func TestHardFilterMalformedRecords(t *testing.T) {
	f := NewHardFilter(testHardFilters(), nil)

	keep, reason := f.Check(domain.JobRecord{Title: "   ", Company: "Acme"})
	assert.False(t, keep)
	assert.Equal(t, ReasonMissingTitle, reason)

	keep, reason = f.Check(domain.JobRecord{Title: "Engineer", Company: ""})
	assert.False(t, keep)
	assert.Equal(t, ReasonMissingCompany, reason)
}

func TestHardFilterSeniorityBlocks(t *testing.T) {
	f := NewHardFilter(testHardFilters(), nil)

	keep, reason := f.Check(domain.JobRecord{Title: "Engineering Intern", Company: "Acme"})
	assert.False(t, keep)
	assert.Equal(t, ReasonBlockedSeniority, reason)

	// exception keyword rescues the title
	keep, _ = f.Check(domain.JobRecord{Title: "Senior Intern Program Lead", Company: "Acme"})
	assert.True(t, keep)
}

func TestHardFilterDepartmentBlocks(t *testing.T) {
	f := NewHardFilter(testHardFilters(), nil)

	keep, reason := f.Check(domain.JobRecord{Title: "Sales Engineer", Company: "Acme"})
	assert.False(t, keep)
	assert.Equal(t, ReasonBlockedDepartment, reason)

	// C-level override beats the department block
	keep, _ = f.Check(domain.JobRecord{Title: "VP of Sales Engineering", Company: "Acme"})
	assert.True(t, keep)
}

func TestHardFilterAssociate(t *testing.T) {
	f := NewHardFilter(testHardFilters(), nil)

	keep, reason := f.Check(domain.JobRecord{Title: "Associate Product Manager", Company: "Acme"})
	assert.False(t, keep)
	assert.Equal(t, ReasonBlockedAssociate, reason)

	keep, _ = f.Check(domain.JobRecord{Title: "Associate Director of Product", Company: "Acme"})
	assert.True(t, keep)
}

func TestHardFilterAvoidKeywords(t *testing.T) {
	f := NewHardFilter(testHardFilters(), []string{"clearance required", "crypto"})

	keep, reason := f.Check(domain.JobRecord{
		Title:       "Director of Engineering",
		Company:     "Acme",
		Description: "Active security clearance required.",
	})
	assert.False(t, keep)
	assert.Equal(t, ReasonAvoidKeyword, reason)

	keep, _ = f.Check(domain.JobRecord{
		Title:       "Director of Engineering",
		Company:     "Acme",
		Description: "Cryptography experience welcome.",
	})
	assert.True(t, keep)
}

func TestHardFilterFirstHitWins(t *testing.T) {
	f := NewHardFilter(testHardFilters(), []string{"intern"})

	// both seniority block and avoid keyword apply; order says seniority
	_, reason := f.Check(domain.JobRecord{Title: "Marketing Intern", Company: "Acme"})
	assert.Equal(t, ReasonBlockedSeniority, reason)
}

func TestHardFilterEmptyConfigKeepsEverything(t *testing.T) {
	f := NewHardFilter(config.HardFilters{}, nil)

	keep, _ := f.Check(domain.JobRecord{Title: "Junior Sales Intern", Company: "Acme"})
	assert.True(t, keep)
}
