package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

func (v Validation) Error() string {
	return "config validation failed:\n- " + strings.Join(v.Errors, "\n- ")
}

var aggressionLevels = map[string]bool{
	"conservative": true,
	"moderate":     true,
	"aggressive":   true,
}

// NormalizeAndValidate returns a normalized copy plus every problem
// found. Missing required profile keys are all reported in one pass so
// the operator fixes them together; the scorer never sees a config
// that passed with silent defaults for required keys.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	// ---- App / engine sanity ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.Rescore.IntervalSeconds <= 0 {
		res.addErr("rescore.interval_seconds must be > 0")
	}
	if out.Rescore.Parallelism <= 0 {
		out.Rescore.Parallelism = 4
	}
	if out.Staleness.Enabled {
		if out.Staleness.TimeoutSeconds <= 0 {
			out.Staleness.TimeoutSeconds = 5
		}
		if out.Staleness.CacheHours <= 0 {
			out.Staleness.CacheHours = 24
		}
		if out.Staleness.Workers <= 0 {
			out.Staleness.Workers = 8
		} else if out.Staleness.Workers > 10 {
			res.addWarn("staleness.workers is high (%d); external hosts may rate-limit you.", out.Staleness.Workers)
		}
		if out.Staleness.HostReqPerSec <= 0 {
			out.Staleness.HostReqPerSec = 1
		}
	}

	// ---- Required profile keys (fail fast, name every missing key) ----

	p := &out.Profile

	if p.TargetSeniority == nil {
		res.addErr("profile.target_seniority is required (an empty list selects the absolute seniority table)")
	}
	if p.DomainKeywords == nil {
		res.addErr("profile.domain_keywords is required")
	}
	if p.RoleTypeKeywords == nil {
		res.addErr("profile.role_type_keywords is required")
	}
	if p.LocationPreferences == nil {
		res.addErr("profile.location_preferences is required")
	}
	if p.HardFilterKeywords == nil {
		res.addErr("profile.hard_filter_keywords is required")
	}
	if p.ContextFilters == nil {
		res.addErr("profile.context_filters is required")
	}
	if strings.TrimSpace(p.FilteringAggression) == "" {
		res.addErr("profile.filtering_aggression is required (conservative|moderate|aggressive)")
	} else {
		p.FilteringAggression = strings.ToLower(strings.TrimSpace(p.FilteringAggression))
		if !aggressionLevels[p.FilteringAggression] {
			res.addErr("profile.filtering_aggression must be one of conservative|moderate|aggressive, got %q", p.FilteringAggression)
		}
	}

	// ---- Profile field invariants ----

	if p.TargetSeniority != nil {
		trimmed := trimList(p.TargetSeniority)
		if trimmed == nil {
			trimmed = []string{} // keep the key "present": empty means absolute fallback
		}
		p.TargetSeniority = trimmed
	}

	for kw, w := range p.DomainKeywords {
		if w < 0 {
			res.addErr("profile.domain_keywords[%q] must be >= 0", kw)
		}
	}
	for cat, rule := range p.RoleTypeKeywords {
		if rule.Points < 0 {
			res.addErr("profile.role_type_keywords[%q].points must be >= 0", cat)
		}
		if len(rule.Keywords) == 0 {
			res.addErr("profile.role_type_keywords[%q].keywords must have at least 1 term", cat)
		}
	}
	for kw, w := range p.CompanyStageKeywords {
		if w < 0 {
			res.addErr("profile.company_stage_keywords[%q] must be >= 0", kw)
		}
	}
	for kw, w := range p.TechnicalKeywords {
		if w < 0 {
			res.addErr("profile.technical_keywords[%q] must be >= 0", kw)
		}
	}

	if p.LocationPreferences != nil {
		lp := p.LocationPreferences
		lp.RemoteKeywords = trimList(lp.RemoteKeywords)
		lp.HybridKeywords = trimList(lp.HybridKeywords)
		lp.Cities = trimList(lp.Cities)
		lp.Regions = trimList(lp.Regions)
		if lp.RemoteWeight < 0 {
			res.addErr("profile.location_preferences.remote_weight must be >= 0")
		}
		if lp.HybridWeight < 0 {
			res.addErr("profile.location_preferences.hybrid_weight must be >= 0")
		}
	}

	if p.HardFilterKeywords != nil {
		hf := p.HardFilterKeywords
		hf.SeniorityBlocks = trimList(hf.SeniorityBlocks)
		hf.SeniorityExceptions = trimList(hf.SeniorityExceptions)
		hf.DepartmentBlocks = trimList(hf.DepartmentBlocks)
		hf.CLevelOverrides = trimList(hf.CLevelOverrides)
		hf.AssociateExceptions = trimList(hf.AssociateExceptions)
		if len(hf.SeniorityBlocks) == 0 && len(hf.DepartmentBlocks) == 0 {
			res.addWarn("profile.hard_filter_keywords has no blocks; every record will reach the scorer.")
		}
	}

	if p.ContextFilters != nil {
		if p.ContextFilters.ContractMinSeniorityScore < 0 {
			res.addErr("profile.context_filters.contract_min_seniority_score must be >= 0")
		}
		if p.ContextFilters.ContractMinSeniorityScore == 0 {
			p.ContextFilters.ContractMinSeniorityScore = DefaultContractMinSeniority
			res.addWarn("profile.context_filters.contract_min_seniority_score missing; defaulting to %d.", DefaultContractMinSeniority)
		}
	}

	// ---- Optional keys: default with a warning ----

	if p.SoftwarePenalty != nil && *p.SoftwarePenalty > 0 {
		res.addErr("profile.software_penalty must be <= 0, got %d", *p.SoftwarePenalty)
	}
	if p.HardwareBoost == nil {
		res.addWarn("profile.hardware_boost missing; defaulting to %d.", DefaultHardwareBoost)
	} else if *p.HardwareBoost < 0 {
		res.addErr("profile.hardware_boost must be >= 0, got %d", *p.HardwareBoost)
	}
	if p.HardwareConfidenceMin != nil && (*p.HardwareConfidenceMin < 0 || *p.HardwareConfidenceMin > 1) {
		res.addErr("profile.hardware_confidence_min must be in [0,1]")
	}
	if p.Fuzzy.Enabled {
		if p.Fuzzy.MinSimilarity == 0 {
			res.addWarn("profile.fuzzy_matching.min_similarity missing; defaulting to %.2f.", DefaultFuzzyMinSimilarity)
		} else if p.Fuzzy.MinSimilarity < 0 || p.Fuzzy.MinSimilarity > 1 {
			res.addErr("profile.fuzzy_matching.min_similarity must be in (0,1]")
		}
	}

	for name, t := range p.CompanyOverrides {
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "software", "hardware", "both", "unknown":
		default:
			res.addErr("profile.company_overrides[%q] must be software|hardware|both|unknown, got %q", name, t)
		}
	}

	p.AvoidKeywords = trimList(p.AvoidKeywords)

	return out, res
}
