package seniority

import "jobagent-engine/internal/match"

// Level is a discrete career level. LevelNone means no seniority
// signal was found (unleveled IC).
type Level int

const (
	LevelNone           Level = -1
	LevelEntry          Level = 0
	LevelMid            Level = 1
	LevelSenior         Level = 2
	LevelLead           Level = 3
	LevelManager        Level = 4
	LevelSeniorManager  Level = 5
	LevelDirector       Level = 6
	LevelSeniorDirector Level = 7
	LevelExecutive      Level = 8
)

func (l Level) String() string {
	switch l {
	case LevelEntry:
		return "entry"
	case LevelMid:
		return "mid"
	case LevelSenior:
		return "senior"
	case LevelLead:
		return "lead"
	case LevelManager:
		return "manager"
	case LevelSeniorManager:
		return "senior_manager"
	case LevelDirector:
		return "director"
	case LevelSeniorDirector:
		return "senior_director"
	case LevelExecutive:
		return "executive"
	default:
		return "none"
	}
}

type row struct {
	level Level
	m     *match.Matcher
}

// Classifier maps free-text titles onto the level hierarchy via an
// ordered keyword table, scanned highest level first. The ordering is
// the tie-break policy: compound role-scope phrases ("senior manager",
// "senior director") sit above their bare forms, and every role-scope
// word sits above the bare "senior" modifier, so "Senior Manager"
// resolves to senior-manager rather than senior.
type Classifier struct {
	table []row
}

func NewClassifier() *Classifier {
	return &Classifier{table: []row{
		{LevelExecutive, match.New([]string{
			"vp", "vice president", "svp", "evp",
			"chief", "cto", "ceo", "coo", "cpo", "cio", "ciso",
			"president", "founder", "co-founder", "c-level",
		})},
		{LevelSeniorDirector, match.New([]string{
			"senior director", "sr director", "sr. director",
		})},
		{LevelDirector, match.New([]string{
			"director", "head of",
		})},
		{LevelSeniorManager, match.New([]string{
			"senior manager", "sr manager", "sr. manager",
			"group manager", "senior engineering manager",
		})},
		{LevelManager, match.New([]string{
			"manager",
		})},
		{LevelLead, match.New([]string{
			"lead", "team lead", "tech lead",
		})},
		{LevelSenior, match.New([]string{
			"senior", "sr", "sr.", "staff", "principal",
		})},
		{LevelMid, match.New([]string{
			"mid-level", "mid level", "intermediate", "engineer ii", "level 2",
		})},
		{LevelEntry, match.New([]string{
			"intern", "internship", "junior", "jr", "jr.",
			"entry level", "entry-level", "graduate", "new grad",
		})},
	}}
}

// DetectLevel returns the highest level whose keywords appear in the
// title, or LevelNone when nothing matches.
func (c *Classifier) DetectLevel(title string) Level {
	for _, r := range c.table {
		if r.m.HasAny(title) {
			return r.level
		}
	}
	return LevelNone
}

// DetectTargetLevels returns the distinct levels referenced anywhere
// in the profile's target list, in first-seen order. A job matching
// any of them is a perfect seniority fit; an empty or signal-free list
// selects the absolute fallback table in the scorer.
func (c *Classifier) DetectTargetLevels(targets []string) []Level {
	seen := make(map[Level]bool)
	var out []Level
	for _, t := range targets {
		lvl := c.DetectLevel(t)
		if lvl == LevelNone || seen[lvl] {
			continue
		}
		seen[lvl] = true
		out = append(out, lvl)
	}
	return out
}
