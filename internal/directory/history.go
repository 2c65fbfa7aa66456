// internal/directory/history.go
package directory

import (
	"context"
	"database/sql"
	"encoding/json"

	"maidmatch/internal/common/errors"
	"maidmatch/internal/common/logger"
	"maidmatch/internal/matching"
)

// PostgresHistory reads past placement outcomes recorded by the placement
// flow. Implements matching.HistoryProvider; strictly read-only here.
type PostgresHistory struct {
	db     *sql.DB
	window int
	logger logger.Logger
}

func NewPostgresHistory(db *sql.DB, window int, log logger.Logger) *PostgresHistory {
	if window <= 0 {
		window = 500
	}
	return &PostgresHistory{
		db:     db,
		window: window,
		logger: log.WithFields(map[string]interface{}{"component": "matching-history"}),
	}
}

// RecentOutcomes returns the newest outcomes, bounded by the configured window.
func (h *PostgresHistory) RecentOutcomes(ctx context.Context) ([]matching.MatchOutcome, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT sponsor_location, sponsor_preferences, maid_location, maid_preferences, outcome
		FROM match_outcomes
		ORDER BY created_at DESC
		LIMIT $1`, h.window)
	if err != nil {
		return nil, errors.NewHistoryFetchFailedError(err)
	}
	defer rows.Close()

	var outcomes []matching.MatchOutcome
	for rows.Next() {
		var o matching.MatchOutcome
		var sponsorPrefs, maidPrefs []byte
		if err := rows.Scan(&o.Sponsor.Location, &sponsorPrefs, &o.Maid.Location, &maidPrefs, &o.Outcome); err != nil {
			return nil, errors.NewHistoryFetchFailedError(err)
		}
		if err := json.Unmarshal(sponsorPrefs, &o.Sponsor.Preferences); err != nil {
			o.Sponsor.Preferences = nil
		}
		if err := json.Unmarshal(maidPrefs, &o.Maid.Preferences); err != nil {
			o.Maid.Preferences = nil
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewHistoryFetchFailedError(err)
	}

	return outcomes, nil
}
