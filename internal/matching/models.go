// internal/matching/models.go
package matching

import "time"

// SponsorProfile is the requester side of a match: identity plus the stated
// preferences and hard requirements stored with the account.
type SponsorProfile struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Location     string            `json:"location"`
	Preferences  MatchPreferences  `json:"preferences"`
	Requirements MatchRequirements `json:"requirements"`
}

// MatchPreferences are soft criteria. A partial override of the same shape can
// be passed per call and wins key by key over the stored preferences.
type MatchPreferences struct {
	Skills        []string  `json:"skills,omitempty"`
	Languages     []string  `json:"languages,omitempty"`
	Experience    int       `json:"experience,omitempty"`
	AgeRange      *AgeRange `json:"ageRange,omitempty"`
	Religion      string    `json:"religion,omitempty"`
	MaritalStatus string    `json:"maritalStatus,omitempty"`
}

type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// MatchRequirements are the hard criteria of the search.
type MatchRequirements struct {
	Skills       []string          `json:"skills,omitempty"`
	Experience   int               `json:"experience,omitempty"` // years, 0 = not stated
	Availability *AvailabilityNeed `json:"availability,omitempty"`
}

type AvailabilityNeed struct {
	StartDate      time.Time `json:"startDate"`
	DurationMonths int       `json:"durationMonths"`
}

// MaidProfile is a read-only candidate snapshot supplied by the pool.
type MaidProfile struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Skills             []Skill           `json:"skills"`
	ExperienceYears    int               `json:"experienceYears"`
	Languages          []LanguageSkill   `json:"languages"`
	PreferredLocations []string          `json:"preferredLocations"`
	Availability       *MaidAvailability `json:"availability,omitempty"`
	Profile            PersonalProfile   `json:"profile"`
	Ratings            Ratings           `json:"ratings"`
}

type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

type LanguageSkill struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type MaidAvailability struct {
	AvailableFrom   time.Time `json:"availableFrom"`
	PreferredMonths int       `json:"preferredMonths"`
}

type PersonalProfile struct {
	Age           int    `json:"age"`
	Religion      string `json:"religion,omitempty"`
	MaritalStatus string `json:"maritalStatus,omitempty"`
}

type Ratings struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// MatchCriteria is the effective search criteria of one call: the sponsor's
// stored preferences with per-call overrides applied, plus the requirements.
type MatchCriteria struct {
	Location     string            `json:"location"`
	Preferences  MatchPreferences  `json:"preferences"`
	Requirements MatchRequirements `json:"requirements"`
}

// MatchResult is one scored candidate. Created fresh per call, never persisted.
type MatchResult struct {
	CandidateID   string             `json:"candidateId"`
	Candidate     *MaidProfile       `json:"candidate"`
	Score         float64            `json:"score"`         // base, convex combination of factors
	AdjustedScore float64            `json:"adjustedScore"` // after learned adjustments, ranking key
	Breakdown     map[string]float64 `json:"breakdown"`
	Confidence    float64            `json:"confidence"`
	Reasons       []string           `json:"reasons"`
}

// Match outcomes recorded by the placement flow (written outside this engine).
const OutcomeSuccessful = "successful"

// MatchOutcome is one historical placement outcome with lightweight profile
// snapshots of both sides, enough to judge similarity to a current pair.
type MatchOutcome struct {
	Sponsor ProfileSnapshot `json:"sponsor"`
	Maid    ProfileSnapshot `json:"maid"`
	Outcome string          `json:"outcome"`
}

// ProfileSnapshot carries the comparable slice of a profile: a location string
// and flat preference key/values.
type ProfileSnapshot struct {
	Location    string            `json:"location,omitempty"`
	Preferences map[string]string `json:"preferences,omitempty"`
}

// SkillDemand tracks searched-for (demand) vs offered (supply) counts per skill.
type SkillDemand struct {
	Demand int `json:"demand"`
	Supply int `json:"supply"`
}

// LearningData is the aggregate cross-call state biasing future rankings.
// Advisory only: it never gates a candidate, it nudges adjusted scores.
type LearningData struct {
	TrendingSkills []string               `json:"trendingSkills"`
	SkillDemand    map[string]SkillDemand `json:"skillDemand"`
	SeasonalTrends map[string]float64     `json:"seasonalTrends,omitempty"`
}

// NewLearningData returns an empty learning state.
func NewLearningData() *LearningData {
	return &LearningData{
		SkillDemand: make(map[string]SkillDemand),
	}
}

// Clone returns a deep copy safe to read while the original keeps mutating.
func (d *LearningData) Clone() *LearningData {
	if d == nil {
		return NewLearningData()
	}
	out := &LearningData{
		TrendingSkills: append([]string(nil), d.TrendingSkills...),
		SkillDemand:    make(map[string]SkillDemand, len(d.SkillDemand)),
	}
	for k, v := range d.SkillDemand {
		out.SkillDemand[k] = v
	}
	if d.SeasonalTrends != nil {
		out.SeasonalTrends = make(map[string]float64, len(d.SeasonalTrends))
		for k, v := range d.SeasonalTrends {
			out.SeasonalTrends[k] = v
		}
	}
	return out
}
