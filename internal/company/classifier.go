package company

import (
	"jobagent-engine/internal/domain"
	"jobagent-engine/internal/match"
)

// Signal weights for the classification vote. Curated list membership
// carries the most weight because curation is the highest-precision
// signal; title/description cues carry the least.
const (
	weightNamePattern  = 0.3
	weightCuratedList  = 0.4
	weightVocabOverlap = 0.2
	weightTextCues     = 0.1
)

// Lists lets a profile extend the built-in curated company lists.
type Lists struct {
	Hardware []string `yaml:"hardware"`
	Software []string `yaml:"software"`
	Both     []string `yaml:"both"`
}

// Classifier decides whether a company builds software, hardware, or
// both, from four independent weighted signals. Verdicts are cached
// per run; a manual override short-circuits everything.
type Classifier struct {
	overrides OverrideStore
	cache     *Cache

	nameHardware *match.Matcher
	nameSoftware *match.Matcher
	vocabHW      *match.Matcher
	vocabSW      *match.Matcher

	curated map[string]domain.CompanyType
}

func New(overrides OverrideStore, cache *Cache, extra Lists) *Classifier {
	c := &Classifier{
		overrides:    overrides,
		cache:        cache,
		nameHardware: match.New(hardwareNameKeywords),
		nameSoftware: match.New(softwareNameKeywords),
		vocabHW:      match.New(hardwareVocab),
		vocabSW:      match.New(softwareVocab),
		curated:      make(map[string]domain.CompanyType),
	}
	add := func(names []string, t domain.CompanyType) {
		for _, n := range names {
			c.curated[NormalizeKey(n)] = t
		}
	}
	add(curatedHardware, domain.CompanyHardware)
	add(curatedSoftware, domain.CompanySoftware)
	add(curatedBoth, domain.CompanyBoth)
	// profile entries win over built-ins
	add(extra.Hardware, domain.CompanyHardware)
	add(extra.Software, domain.CompanySoftware)
	add(extra.Both, domain.CompanyBoth)
	return c
}

// Classify returns the verdict for one company. domainKeywords are the
// profile's domain keywords, checked for overlap with the known
// hardware/software vocabularies.
func (c *Classifier) Classify(companyName, jobTitle, jobDescription string, domainKeywords []string) domain.CompanyClassification {
	key := NormalizeKey(companyName)
	if key == "" {
		return domain.CompanyClassification{
			CompanyName: companyName,
			Type:        domain.CompanyUnknown,
			Source:      domain.ClassifiedAuto,
		}
	}

	// Overrides first, before any automatic signal. This ordering is
	// what keeps override writes serialized relative to automatic
	// reads for the same company.
	if t, ok := c.overrides.Lookup(companyName); ok {
		return domain.CompanyClassification{
			CompanyName: companyName,
			Type:        t,
			Confidence:  1,
			Source:      domain.ClassifiedManual,
		}
	}

	if cached, ok := c.cache.Get(companyName); ok {
		return cached
	}

	cl := c.compute(companyName, jobTitle, jobDescription, domainKeywords)
	c.cache.Put(cl)
	return cl
}

type vote struct {
	totals  map[domain.CompanyType]float64
	signals map[string]float64
	used    float64
}

func (v *vote) add(name string, t domain.CompanyType, weight, strength float64) {
	v.used += weight
	if t == domain.CompanyUnknown || strength <= 0 {
		return
	}
	contribution := weight * strength
	v.totals[t] += contribution
	v.signals[name] = contribution
}

func (c *Classifier) compute(companyName, jobTitle, jobDescription string, domainKeywords []string) domain.CompanyClassification {
	v := &vote{
		totals:  make(map[domain.CompanyType]float64),
		signals: make(map[string]float64),
	}

	if t, s := c.namePatternSignal(companyName); t != domain.CompanyUnknown {
		v.add("name_pattern", t, weightNamePattern, s)
	}
	if t, ok := c.curated[NormalizeKey(companyName)]; ok {
		v.add("curated_list", t, weightCuratedList, 1)
	}
	if t, s := c.vocabOverlapSignal(domainKeywords); t != domain.CompanyUnknown {
		v.add("vocab_overlap", t, weightVocabOverlap, s)
	}
	if t, s := c.textCueSignal(jobTitle, jobDescription); t != domain.CompanyUnknown {
		v.add("text_cues", t, weightTextCues, s)
	}

	winner := domain.CompanyUnknown
	var best float64
	for t, total := range v.totals {
		if total > best {
			winner, best = t, total
		}
	}
	if winner == domain.CompanyUnknown || v.used == 0 {
		return domain.CompanyClassification{
			CompanyName: companyName,
			Type:        domain.CompanyUnknown,
			Source:      domain.ClassifiedAuto,
		}
	}

	return domain.CompanyClassification{
		CompanyName: companyName,
		Type:        winner,
		Confidence:  best / v.used,
		Signals:     v.signals,
		Source:      domain.ClassifiedAuto,
	}
}

// namePatternSignal scans the company name itself for type cues.
func (c *Classifier) namePatternSignal(name string) (domain.CompanyType, float64) {
	hw := c.nameHardware.CountMatches(name)
	sw := c.nameSoftware.CountMatches(name)
	switch {
	case hw == 0 && sw == 0:
		return domain.CompanyUnknown, 0
	case hw > 0 && sw > 0:
		return domain.CompanyBoth, 1
	case hw > 0:
		return domain.CompanyHardware, 1
	default:
		return domain.CompanySoftware, 1
	}
}

// vocabOverlapSignal measures how much of the profile's domain
// vocabulary leans hardware vs software.
func (c *Classifier) vocabOverlapSignal(domainKeywords []string) (domain.CompanyType, float64) {
	if len(domainKeywords) == 0 {
		return domain.CompanyUnknown, 0
	}
	var hw, sw int
	for _, kw := range domainKeywords {
		if c.vocabHW.HasAny(kw) {
			hw++
		}
		if c.vocabSW.HasAny(kw) {
			sw++
		}
	}
	total := hw + sw
	if total == 0 {
		return domain.CompanyUnknown, 0
	}
	if hw > sw {
		return domain.CompanyHardware, float64(hw) / float64(len(domainKeywords))
	}
	if sw > hw {
		return domain.CompanySoftware, float64(sw) / float64(len(domainKeywords))
	}
	return domain.CompanyBoth, float64(total) / float64(2*len(domainKeywords))
}

// textCueSignal scans job title and description for hardware vs
// software cues.
func (c *Classifier) textCueSignal(title, description string) (domain.CompanyType, float64) {
	text := title + " " + description
	hw := c.vocabHW.CountMatches(text)
	sw := c.vocabSW.CountMatches(text)
	switch {
	case hw == 0 && sw == 0:
		return domain.CompanyUnknown, 0
	case hw > sw:
		return domain.CompanyHardware, strengthRatio(hw, sw)
	case sw > hw:
		return domain.CompanySoftware, strengthRatio(sw, hw)
	default:
		return domain.CompanyBoth, 0.5
	}
}

func strengthRatio(winner, loser int) float64 {
	return float64(winner) / float64(winner+loser)
}
