package rank

import (
	"sort"

	"jobagent-engine/internal/company"
	"jobagent-engine/internal/config"
	"jobagent-engine/internal/domain"
	"jobagent-engine/internal/match"
	"jobagent-engine/internal/seniority"
)

// Category caps. Total never exceeds MaxTotal even with the hardware
// boost applied.
const (
	capSeniority = 30
	capDomain    = 25
	capRoleType  = 20
	capLocation  = 15
	capStage     = 15
	capTechnical = 10

	MaxTotal = 115
)

// Role categories with special meaning to the context filter.
const (
	RoleEngineeringLeadership = "engineering_leadership"
	RoleProductLeadership     = "product_leadership"
)

// Scorer turns a job record into a full breakdown.
type Scorer interface {
	Score(job domain.JobRecord) domain.ScoreBreakdown
}

// RelativeScorer awards seniority points relative to the candidate's
// stated target rather than absolutely, so a Senior-targeting profile
// and a Director-targeting profile can both reach a perfect seniority
// score on the roles they actually want. All matchers are built once
// at construction; Score is pure and safe to call concurrently.
type RelativeScorer struct {
	levels    *seniority.Classifier
	companies *company.Classifier

	targetLevels []seniority.Level
	domainKeys   []string

	domain    *weightedMatcher
	stage     *weightedMatcher
	technical *weightedMatcher

	roleTypes []roleType

	remote   *match.Matcher
	hybrid   *match.Matcher
	places   *match.Matcher
	remoteW  int
	hybridW  int

	hardwareBoost   int
	hardwareConfMin float64
	softwarePenalty int
}

type roleType struct {
	name   string
	points int
	m      *match.Matcher
}

func NewRelativeScorer(p config.Profile, levels *seniority.Classifier, companies *company.Classifier) *RelativeScorer {
	s := &RelativeScorer{
		levels:          levels,
		companies:       companies,
		targetLevels:    levels.DetectTargetLevels(p.TargetSeniority),
		hardwareBoost:   p.HardwareBoostValue(),
		hardwareConfMin: p.HardwareConfidenceMinValue(),
		softwarePenalty: p.SoftwarePenaltyValue(),
	}

	for kw := range p.DomainKeywords {
		s.domainKeys = append(s.domainKeys, kw)
	}
	sort.Strings(s.domainKeys)

	// Fuzzy mode, when the profile opts in, applies to domain keywords
	// only. Hard filters and role types stay exact.
	s.domain = newWeighted(p.DomainKeywords, p.Fuzzy.Enabled, p.FuzzyMinSimilarity())
	s.stage = newWeighted(p.CompanyStageKeywords, false, 0)
	s.technical = newWeighted(p.TechnicalKeywords, false, 0)

	for name, rule := range p.RoleTypeKeywords {
		s.roleTypes = append(s.roleTypes, roleType{
			name:   name,
			points: minInt(rule.Points, capRoleType),
			m:      match.New(rule.Keywords),
		})
	}
	// points desc, then name, so the winning category is deterministic
	sort.Slice(s.roleTypes, func(i, j int) bool {
		if s.roleTypes[i].points != s.roleTypes[j].points {
			return s.roleTypes[i].points > s.roleTypes[j].points
		}
		return s.roleTypes[i].name < s.roleTypes[j].name
	})

	if lp := p.LocationPreferences; lp != nil {
		s.remote = match.New(lp.RemoteKeywords)
		s.hybrid = match.New(lp.HybridKeywords)
		s.places = match.New(append(append([]string{}, lp.Cities...), lp.Regions...))
		s.remoteW = minInt(lp.RemoteWeight, capLocation)
		s.hybridW = minInt(lp.HybridWeight, capLocation)
	} else {
		s.remote = match.New(nil)
		s.hybrid = match.New(nil)
		s.places = match.New(nil)
	}

	return s
}

func (s *RelativeScorer) Score(job domain.JobRecord) domain.ScoreBreakdown {
	text := job.Title + " " + job.Description

	jobLevel := s.levels.DetectLevel(job.Title)
	rolePts, roleCat := s.roleTypeScore(job.Title)
	cl := s.companies.Classify(job.Company, job.Title, job.Description, s.domainKeys)

	b := domain.ScoreBreakdown{
		Seniority:      seniorityPoints(jobLevel, s.targetLevels),
		Domain:         s.domain.Sum(text, capDomain),
		RoleType:       rolePts,
		Location:       s.locationScore(job),
		CompanyStage:   s.stage.Sum(job.Company+" "+text, capStage),
		Technical:      s.technical.Sum(text, capTechnical),
		RoleCategory:   roleCat,
		Classification: cl,
	}
	b.CompanyAdjustment = s.companyAdjustment(cl, roleCat)

	sum := b.Seniority + b.Domain + b.RoleType + b.Location +
		b.CompanyStage + b.Technical + b.CompanyAdjustment
	b.Total = clamp(sum, 0, MaxTotal)
	b.Grade = GradeFor(b.Total)
	return b
}

// seniorityPoints is the relative formulation: a job matching any
// listed target level is a perfect match, and points fall off
// symmetrically with distance to the nearest target in either
// direction. Without targets it falls back to the legacy absolute
// table.
func seniorityPoints(jobLevel seniority.Level, targets []seniority.Level) int {
	if jobLevel == seniority.LevelNone {
		return 0
	}
	if len(targets) == 0 {
		return absoluteSeniorityPoints(jobLevel)
	}
	diff := -1
	for _, t := range targets {
		d := int(jobLevel) - int(t)
		if d < 0 {
			d = -d
		}
		if diff < 0 || d < diff {
			diff = d
		}
	}
	switch diff {
	case 0:
		return 30
	case 1:
		return 25
	case 2:
		return 15
	case 3:
		return 10
	default:
		return 5
	}
}

// absoluteSeniorityPoints is the legacy table for profiles without
// target_seniority preferences.
func absoluteSeniorityPoints(jobLevel seniority.Level) int {
	switch jobLevel {
	case seniority.LevelExecutive:
		return 30
	case seniority.LevelDirector, seniority.LevelSeniorDirector:
		return 25
	case seniority.LevelSenior:
		return 15
	case seniority.LevelLead, seniority.LevelManager, seniority.LevelSeniorManager:
		return 10
	default:
		return 0
	}
}

// roleTypeScore returns the points and name of the highest-scoring
// matched category. Categories are mutually exclusive for scoring,
// never additive.
func (s *RelativeScorer) roleTypeScore(title string) (int, string) {
	for _, rt := range s.roleTypes {
		if rt.m.HasAny(title) {
			return rt.points, rt.name
		}
	}
	return 0, ""
}

// locationScore evaluates the remote and hybrid paths independently
// and takes the maximum, so a remote+hybrid posting is not
// double-counted.
func (s *RelativeScorer) locationScore(job domain.JobRecord) int {
	text := job.Location + " " + job.Title + " " + job.Description

	best := 0
	if s.remote.HasAny(text) {
		best = s.remoteW
	}
	if s.hybrid.HasAny(text) && s.places.HasAny(text) {
		if s.hybridW > best {
			best = s.hybridW
		}
	}
	return best
}

// companyAdjustment applies the hardware boost or the
// engineering-leadership-at-software-company penalty. A "both" verdict
// gets neither; the context filter's description check decides those.
func (s *RelativeScorer) companyAdjustment(cl domain.CompanyClassification, roleCat string) int {
	switch cl.Type {
	case domain.CompanyHardware:
		if cl.Confidence >= s.hardwareConfMin {
			return s.hardwareBoost
		}
	case domain.CompanySoftware:
		if roleCat == RoleEngineeringLeadership {
			return s.softwarePenalty
		}
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
