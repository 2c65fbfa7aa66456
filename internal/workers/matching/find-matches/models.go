// internal/workers/matching/find-matches/models.go
package findmatches

import "maidmatch/internal/matching"

type Input struct {
	RequestID   string                     `json:"requestId,omitempty"`
	SponsorID   string                     `json:"sponsorId"`
	Preferences *matching.MatchPreferences `json:"preferences,omitempty"`
	Limit       int                        `json:"limit,omitempty"`
}

type Output struct {
	RequestID string                 `json:"requestId"`
	SponsorID string                 `json:"sponsorId"`
	Matches   []matching.MatchResult `json:"matches"`
	Count     int                    `json:"count"`
}
