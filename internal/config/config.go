// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"jobagent-engine/internal/company"
)

// RoleTypeRule scores one role category. Categories are mutually
// exclusive for scoring: the highest-scoring matched category wins.
type RoleTypeRule struct {
	Keywords []string `yaml:"keywords" json:"keywords"`
	Points   int      `yaml:"points" json:"points"`
}

type LocationPrefs struct {
	RemoteKeywords []string `yaml:"remote_keywords" json:"remote_keywords"`
	HybridKeywords []string `yaml:"hybrid_keywords" json:"hybrid_keywords"`
	Cities         []string `yaml:"cities" json:"cities"`
	Regions        []string `yaml:"regions" json:"regions"`
	RemoteWeight   int      `yaml:"remote_weight" json:"remote_weight"`
	HybridWeight   int      `yaml:"hybrid_weight" json:"hybrid_weight"`
}

type HardFilters struct {
	SeniorityBlocks     []string `yaml:"seniority_blocks" json:"seniority_blocks"`
	SeniorityExceptions []string `yaml:"seniority_exceptions" json:"seniority_exceptions"`
	DepartmentBlocks    []string `yaml:"department_blocks" json:"department_blocks"`
	CLevelOverrides     []string `yaml:"c_level_overrides" json:"c_level_overrides"`
	AssociateExceptions []string `yaml:"associate_exceptions" json:"associate_exceptions"`
}

type ContextFilters struct {
	SoftwareEngineeringExceptions []string `yaml:"software_engineering_exceptions" json:"software_engineering_exceptions"`
	ContractMinSeniorityScore     int      `yaml:"contract_min_seniority_score" json:"contract_min_seniority_score"`
}

type FuzzyMatching struct {
	Enabled       bool    `yaml:"enabled" json:"enabled"`
	MinSimilarity float64 `yaml:"min_similarity" json:"min_similarity"`
}

// Profile is one user's matching preferences. Loaded once per run and
// read-only for the duration of a batch. Required fields are pointers
// or nil-able maps so a missing key is distinguishable from an empty
// value at validation time.
type Profile struct {
	TargetSeniority     []string                `yaml:"target_seniority" json:"target_seniority"`
	DomainKeywords      map[string]int          `yaml:"domain_keywords" json:"domain_keywords"`
	RoleTypeKeywords    map[string]RoleTypeRule `yaml:"role_type_keywords" json:"role_type_keywords"`
	LocationPreferences *LocationPrefs          `yaml:"location_preferences" json:"location_preferences"`
	HardFilterKeywords  *HardFilters            `yaml:"hard_filter_keywords" json:"hard_filter_keywords"`
	ContextFilters      *ContextFilters         `yaml:"context_filters" json:"context_filters"`
	FilteringAggression string                  `yaml:"filtering_aggression" json:"filtering_aggression"` // conservative|moderate|aggressive

	// Optional; defaults applied with a logged warning.
	CompanyStageKeywords  map[string]int    `yaml:"company_stage_keywords" json:"company_stage_keywords"`
	TechnicalKeywords     map[string]int    `yaml:"technical_keywords" json:"technical_keywords"`
	AvoidKeywords         []string          `yaml:"avoid_keywords" json:"avoid_keywords"`
	HardwareBoost         *int              `yaml:"hardware_boost" json:"hardware_boost"`
	HardwareConfidenceMin *float64          `yaml:"hardware_confidence_min" json:"hardware_confidence_min"`
	SoftwarePenalty       *int              `yaml:"software_penalty" json:"software_penalty"` // <= 0
	CompanyLists          company.Lists     `yaml:"company_lists" json:"company_lists"`
	CompanyOverrides      map[string]string `yaml:"company_overrides" json:"company_overrides"`
	Fuzzy                 FuzzyMatching     `yaml:"fuzzy_matching" json:"fuzzy_matching"`
}

// Config is the whole engine configuration file.
type Config struct {
	App struct {
		Port     int    `yaml:"port" json:"port"`
		DataDir  string `yaml:"data_dir" json:"data_dir"`
		LogLevel string `yaml:"log_level" json:"log_level"`
	} `yaml:"app" json:"app"`

	Rescore struct {
		IntervalSeconds int `yaml:"interval_seconds" json:"interval_seconds"`
		Parallelism     int `yaml:"parallelism" json:"parallelism"`
	} `yaml:"rescore" json:"rescore"`

	Staleness struct {
		Enabled        bool    `yaml:"enabled" json:"enabled"`
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		CacheHours     int     `yaml:"cache_hours" json:"cache_hours"`
		Workers        int     `yaml:"workers" json:"workers"`
		HostReqPerSec  float64 `yaml:"host_req_per_sec" json:"host_req_per_sec"`
	} `yaml:"staleness" json:"staleness"`

	Profile Profile `yaml:"profile" json:"profile"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Defaults for optional profile fields.
const (
	DefaultHardwareBoost         = 10
	DefaultHardwareConfidenceMin = 0.5
	DefaultSoftwarePenalty       = -20
	DefaultContractMinSeniority  = 25
	DefaultFuzzyMinSimilarity    = 0.85
)

// HardwareBoostValue returns the configured boost or its default.
func (p Profile) HardwareBoostValue() int {
	if p.HardwareBoost != nil {
		return *p.HardwareBoost
	}
	return DefaultHardwareBoost
}

func (p Profile) HardwareConfidenceMinValue() float64 {
	if p.HardwareConfidenceMin != nil {
		return *p.HardwareConfidenceMin
	}
	return DefaultHardwareConfidenceMin
}

func (p Profile) SoftwarePenaltyValue() int {
	if p.SoftwarePenalty != nil {
		return *p.SoftwarePenalty
	}
	return DefaultSoftwarePenalty
}

func (p Profile) FuzzyMinSimilarity() float64 {
	if p.Fuzzy.MinSimilarity > 0 {
		return p.Fuzzy.MinSimilarity
	}
	return DefaultFuzzyMinSimilarity
}
