// internal/matching/adjustments.go
package matching

import (
	"math"
	"strings"
	"time"
)

// similarityThreshold gates which historical outcomes count toward the
// success-rate multiplier.
const similarityThreshold = 0.7

// ProfileSimilarity averages whichever comparison factors both snapshots can
// support: location equality (0 or 1) and preference key/value overlap ratio.
// Returns 0 when nothing is comparable.
func ProfileSimilarity(a, b ProfileSnapshot) float64 {
	var factors []float64

	if a.Location != "" && b.Location != "" {
		if strings.EqualFold(a.Location, b.Location) {
			factors = append(factors, 1.0)
		} else {
			factors = append(factors, 0.0)
		}
	}

	if len(a.Preferences) > 0 && len(b.Preferences) > 0 {
		matched := 0
		for k, va := range a.Preferences {
			if vb, ok := b.Preferences[k]; ok && strings.EqualFold(va, vb) {
				matched++
			}
		}
		denom := len(a.Preferences)
		if len(b.Preferences) > denom {
			denom = len(b.Preferences)
		}
		factors = append(factors, float64(matched)/float64(denom))
	}

	if len(factors) == 0 {
		return 0
	}

	total := 0.0
	for _, f := range factors {
		total += f
	}
	return total / float64(len(factors))
}

// sponsorSnapshot reduces a sponsor profile to its comparable slice.
func sponsorSnapshot(s *SponsorProfile) ProfileSnapshot {
	snap := ProfileSnapshot{Location: s.Location, Preferences: map[string]string{}}
	if s.Preferences.Religion != "" {
		snap.Preferences["religion"] = s.Preferences.Religion
	}
	if s.Preferences.MaritalStatus != "" {
		snap.Preferences["maritalStatus"] = s.Preferences.MaritalStatus
	}
	return snap
}

// maidSnapshot reduces a candidate profile to its comparable slice. The first
// preferred location stands in for "the" location.
func maidSnapshot(m *MaidProfile) ProfileSnapshot {
	snap := ProfileSnapshot{Preferences: map[string]string{}}
	if len(m.PreferredLocations) > 0 {
		snap.Location = m.PreferredLocations[0]
	}
	if m.Profile.Religion != "" {
		snap.Preferences["religion"] = m.Profile.Religion
	}
	if m.Profile.MaritalStatus != "" {
		snap.Preferences["maritalStatus"] = m.Profile.MaritalStatus
	}
	return snap
}

// historicalMultiplier maps the success rate of similar past placements onto
// [0.8, 1.2]. No similar history stays neutral at 1.0 (rate 0.5).
func historicalMultiplier(sponsor ProfileSnapshot, maid ProfileSnapshot, history []MatchOutcome) float64 {
	considered := 0
	successes := 0
	for _, outcome := range history {
		if ProfileSimilarity(outcome.Sponsor, sponsor) > similarityThreshold ||
			ProfileSimilarity(outcome.Maid, maid) > similarityThreshold {
			considered++
			if outcome.Outcome == OutcomeSuccessful {
				successes++
			}
		}
	}

	rate := 0.5
	if considered > 0 {
		rate = float64(successes) / float64(considered)
	}
	return 0.8 + 0.4*rate
}

// trendingBonus adds 0.02 per candidate skill currently trending, capped at 0.1.
func trendingBonus(skills []Skill, trending []string) float64 {
	bonus := 0.0
	for _, s := range skills {
		for _, t := range trending {
			if skillsMatch(s.Name, t) {
				bonus += 0.02
				break
			}
		}
	}
	return math.Min(bonus, 0.1)
}

// demandSupplyMultiplier multiplies in one term per candidate skill:
// min(demand/supply * 0.1 + 0.95, 1.1), with untracked skills defaulting to a
// 1:1 ratio. A zero supply counts as 1 to keep the ratio finite.
func demandSupplyMultiplier(skills []Skill, skillDemand map[string]SkillDemand) float64 {
	mult := 1.0
	for _, s := range skills {
		ds, ok := skillDemand[strings.ToLower(s.Name)]
		if !ok {
			ds = SkillDemand{Demand: 1, Supply: 1}
		}
		supply := ds.Supply
		if supply <= 0 {
			supply = 1
		}
		ratio := float64(ds.Demand) / float64(supply)
		mult *= math.Min(ratio*0.1+0.95, 1.1)
	}
	return mult
}

// seasonalMultiplier reads the configured month table, defaulting to baseline.
func seasonalMultiplier(table map[time.Month]float64, month time.Month) float64 {
	if m, ok := table[month]; ok {
		return m
	}
	return 1.0
}

// applyAdjustments runs the adjustment passes in order, each feeding the next,
// and clamps the result to 1.0. There is no floor: a poor history can pull the
// adjusted score below the base score.
func applyAdjustments(
	base float64,
	sponsor ProfileSnapshot,
	maid *MaidProfile,
	learning *LearningData,
	history []MatchOutcome,
	seasonal map[time.Month]float64,
	now time.Time,
) float64 {
	adjusted := base * historicalMultiplier(sponsor, maidSnapshot(maid), history)
	adjusted += trendingBonus(maid.Skills, learning.TrendingSkills)
	adjusted *= seasonalMultiplier(seasonal, now.Month())
	adjusted *= demandSupplyMultiplier(maid.Skills, learning.SkillDemand)
	return math.Min(adjusted, 1.0)
}
