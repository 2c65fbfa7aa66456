// internal/matching/learning.go
package matching

import (
	"context"
	"strings"
)

// LearningStore persists LearningData across process restarts. Any durable
// key-value shaped store satisfies it; the shipped implementation is redis.
type LearningStore interface {
	// Load returns the stored learning data, or (nil, nil) when none exists yet.
	Load(ctx context.Context) (*LearningData, error)
	Save(ctx context.Context, data *LearningData) error
}

// recordSearch folds the skills of one effective search into the learning
// state: each skill joins the trending list (bounded, oldest evicted) and has
// its demand counter bumped. Callers must hold the engine write lock.
func recordSearch(data *LearningData, criteria *MatchCriteria, trendingCap int) {
	seen := make(map[string]bool)
	var skills []string
	for _, s := range criteria.Requirements.Skills {
		k := strings.ToLower(strings.TrimSpace(s))
		if k != "" && !seen[k] {
			seen[k] = true
			skills = append(skills, k)
		}
	}
	for _, s := range criteria.Preferences.Skills {
		k := strings.ToLower(strings.TrimSpace(s))
		if k != "" && !seen[k] {
			seen[k] = true
			skills = append(skills, k)
		}
	}

	if data.SkillDemand == nil {
		data.SkillDemand = make(map[string]SkillDemand)
	}

	for _, skill := range skills {
		tracked := false
		for _, t := range data.TrendingSkills {
			if t == skill {
				tracked = true
				break
			}
		}
		if !tracked {
			data.TrendingSkills = append(data.TrendingSkills, skill)
			// bounded list: evict oldest entries past the cap
			if trendingCap > 0 && len(data.TrendingSkills) > trendingCap {
				data.TrendingSkills = data.TrendingSkills[len(data.TrendingSkills)-trendingCap:]
			}
		}

		entry := data.SkillDemand[skill]
		entry.Demand++
		data.SkillDemand[skill] = entry
	}
}
