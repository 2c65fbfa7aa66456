// internal/matching/factors.go
package matching

import (
	"math"
	"strings"
)

// Factor names used in MatchResult.Breakdown.
const (
	FactorSkills       = "skills"
	FactorExperience   = "experience"
	FactorLanguage     = "language"
	FactorLocation     = "location"
	FactorAvailability = "availability"
	FactorPreferences  = "preferences"
	FactorRatings      = "ratings"
)

// factorOrder fixes iteration order for breakdown assembly and reasons.
var factorOrder = []string{
	FactorSkills,
	FactorExperience,
	FactorLanguage,
	FactorLocation,
	FactorAvailability,
	FactorPreferences,
	FactorRatings,
}

// factorWeights sum to 1.0, so the base score is a convex combination and
// stays inside [0, 1] as long as every factor does.
var factorWeights = map[string]float64{
	FactorSkills:       0.25,
	FactorExperience:   0.20,
	FactorLanguage:     0.15,
	FactorLocation:     0.15,
	FactorAvailability: 0.10,
	FactorPreferences:  0.10,
	FactorRatings:      0.05,
}

var factorReasons = map[string]string{
	FactorSkills:       "Excellent skills match",
	FactorExperience:   "Strong experience fit",
	FactorLanguage:     "Strong language compatibility",
	FactorLocation:     "Preferred location match",
	FactorAvailability: "Availability lines up well",
	FactorPreferences:  "Personal preferences align",
	FactorRatings:      "Highly rated by previous employers",
}

var proficiencyScores = map[string]float64{
	"native":       1.0,
	"fluent":       0.9,
	"intermediate": 0.7,
	"basic":        0.4,
	"beginner":     0.2,
}

// containsFold reports whether haystack contains needle, case-insensitively.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// skillsMatch treats a requirement as met when either string contains the
// other, so "cooking" matches "arabic cooking" and vice versa.
func skillsMatch(skillName, required string) bool {
	return containsFold(skillName, required) || containsFold(required, skillName)
}

// scoreSkills rates required-skill coverage with a small bonus for skills the
// sponsor did not ask for.
func scoreSkills(required []string, maid *MaidProfile) float64 {
	if len(required) == 0 {
		return 0.8
	}

	matchedReqs := 0
	matchedSkills := make(map[int]bool)
	for _, req := range required {
		found := false
		for i, s := range maid.Skills {
			if skillsMatch(s.Name, req) {
				matchedSkills[i] = true
				found = true
			}
		}
		if found {
			matchedReqs++
		}
	}

	score := float64(matchedReqs) / float64(len(required))

	// 0.1 per skill beyond the requirements, capped at +0.2
	extras := len(maid.Skills) - len(matchedSkills)
	if extras > 0 {
		score += math.Min(0.1*float64(extras), 0.2)
	}

	return math.Min(score, 1.0)
}

// scoreExperience rewards meeting the requirement and penalizes shortfall by
// 0.1 per missing year off a 0.5 baseline.
func scoreExperience(requiredYears, actualYears int) float64 {
	if requiredYears <= 0 {
		return 0.8
	}
	if actualYears >= requiredYears {
		score := 1.0 + math.Min(0.05*float64(actualYears-requiredYears), 0.2)
		return math.Min(score, 1.0)
	}
	shortfall := float64(requiredYears - actualYears)
	return math.Max(0.5-0.1*shortfall, 0)
}

// scoreLanguages averages the proficiency score over each preferred language;
// a language the candidate lacks contributes 0.
func scoreLanguages(preferred []string, languages []LanguageSkill) float64 {
	if len(preferred) == 0 {
		return 0.8
	}

	total := 0.0
	for _, pref := range preferred {
		for _, l := range languages {
			if !strings.EqualFold(l.Language, pref) {
				continue
			}
			if s, ok := proficiencyScores[strings.ToLower(l.Proficiency)]; ok {
				total += s
			} else {
				// held language, unrecognized proficiency label
				total += 0.5
			}
			break
		}
	}

	return total / float64(len(preferred))
}

// extractCountry takes the last comma-separated segment of a free-text
// location ("Dubai, UAE" -> "UAE"). A single token is its own country.
func extractCountry(location string) string {
	parts := strings.Split(location, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}

func scoreLocation(sponsorLocation string, preferredLocations []string) float64 {
	if sponsorLocation == "" || len(preferredLocations) == 0 {
		return 0.6
	}

	for _, loc := range preferredLocations {
		if containsFold(loc, sponsorLocation) || containsFold(sponsorLocation, loc) {
			return 1.0
		}
	}

	country := extractCountry(sponsorLocation)
	if country != "" {
		for _, loc := range preferredLocations {
			if strings.EqualFold(extractCountry(loc), country) {
				return 0.8
			}
		}
	}

	return 0.3
}

// scoreAvailability averages a start-date score with a duration-compatibility
// ratio. A zero duration on either side scores that half neutrally.
func scoreAvailability(need *AvailabilityNeed, avail *MaidAvailability) float64 {
	if need == nil || avail == nil || need.StartDate.IsZero() || avail.AvailableFrom.IsZero() {
		return 0.7
	}

	dateScore := 0.5
	if !avail.AvailableFrom.After(need.StartDate) {
		dateScore = 1.0
	}

	durationScore := 0.7
	if need.DurationMonths > 0 && avail.PreferredMonths > 0 {
		ratio := float64(avail.PreferredMonths) / float64(need.DurationMonths)
		durationScore = math.Max(math.Min(ratio, 1.0), 0.3)
	}

	return (dateScore + durationScore) / 2
}

// scorePreferences starts from a neutral 0.7 and adds small boosts for age
// range, religion, and marital status matches.
func scorePreferences(prefs MatchPreferences, profile PersonalProfile) float64 {
	if prefs.AgeRange == nil && prefs.Religion == "" && prefs.MaritalStatus == "" {
		return 0.7
	}

	score := 0.7
	if prefs.AgeRange != nil && profile.Age >= prefs.AgeRange.Min && profile.Age <= prefs.AgeRange.Max {
		score += 0.1
	}
	if prefs.Religion != "" && strings.EqualFold(prefs.Religion, profile.Religion) {
		score += 0.1
	}
	if prefs.MaritalStatus != "" && strings.EqualFold(prefs.MaritalStatus, profile.MaritalStatus) {
		score += 0.05
	}

	return math.Min(score, 1.0)
}

func scoreRatings(r Ratings) float64 {
	if r.Count == 0 {
		return 0.5
	}
	return math.Min(r.Average/5.0+math.Min(float64(r.Count)*0.01, 0.2), 1.0)
}

// computeFactors evaluates all seven sub-scores for one candidate.
func computeFactors(criteria *MatchCriteria, maid *MaidProfile) map[string]float64 {
	return map[string]float64{
		FactorSkills:       scoreSkills(criteria.Requirements.Skills, maid),
		FactorExperience:   scoreExperience(criteria.Requirements.Experience, maid.ExperienceYears),
		FactorLanguage:     scoreLanguages(criteria.Preferences.Languages, maid.Languages),
		FactorLocation:     scoreLocation(criteria.Location, maid.PreferredLocations),
		FactorAvailability: scoreAvailability(criteria.Requirements.Availability, maid.Availability),
		FactorPreferences:  scorePreferences(criteria.Preferences, maid.Profile),
		FactorRatings:      scoreRatings(maid.Ratings),
	}
}

// weightedScore folds the breakdown into the base score.
func weightedScore(breakdown map[string]float64) float64 {
	score := 0.0
	for factor, weight := range factorWeights {
		score += breakdown[factor] * weight
	}
	return score
}

// confidenceFrom derives score stability from the spread across nonzero
// factors: low variance means the factors agree.
func confidenceFrom(breakdown map[string]float64) float64 {
	var nonzero []float64
	for _, v := range breakdown {
		if v > 0 {
			nonzero = append(nonzero, v)
		}
	}
	if len(nonzero) == 0 {
		return 0.1
	}

	mean := 0.0
	for _, v := range nonzero {
		mean += v
	}
	mean /= float64(len(nonzero))

	variance := 0.0
	for _, v := range nonzero {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(nonzero))

	return math.Max(0.1, 1-variance)
}

// reasonsFrom lists a human-readable line per factor scoring above 0.8, in
// fixed factor order so output is deterministic.
func reasonsFrom(breakdown map[string]float64) []string {
	var reasons []string
	for _, factor := range factorOrder {
		if breakdown[factor] > 0.8 {
			reasons = append(reasons, factorReasons[factor])
		}
	}
	return reasons
}
