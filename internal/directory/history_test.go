// internal/directory/history_test.go
package directory

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"maidmatch/internal/common/errors"
	"maidmatch/internal/common/logger"
	"maidmatch/internal/matching"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresHistory_RecentOutcomes(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	sponsorPrefs, _ := json.Marshal(map[string]string{"religion": "muslim"})
	maidPrefs, _ := json.Marshal(map[string]string{"religion": "muslim"})

	mock.ExpectQuery("SELECT sponsor_location").
		WithArgs(500).
		WillReturnRows(sqlmock.NewRows([]string{
			"sponsor_location", "sponsor_preferences", "maid_location", "maid_preferences", "outcome",
		}).
			AddRow("Dubai, UAE", sponsorPrefs, "Dubai, UAE", maidPrefs, matching.OutcomeSuccessful).
			AddRow("Riyadh, KSA", sponsorPrefs, "Manila, PH", maidPrefs, "terminated"))

	history := NewPostgresHistory(db, 0, logger.NewTestLogger(t))
	outcomes, err := history.RecentOutcomes(context.Background())

	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "Dubai, UAE", outcomes[0].Sponsor.Location)
	assert.Equal(t, matching.OutcomeSuccessful, outcomes[0].Outcome)
	assert.Equal(t, "muslim", outcomes[0].Sponsor.Preferences["religion"])
	assert.Equal(t, "terminated", outcomes[1].Outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistory_WindowPassedToQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT sponsor_location").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{
			"sponsor_location", "sponsor_preferences", "maid_location", "maid_preferences", "outcome",
		}))

	history := NewPostgresHistory(db, 50, logger.NewTestLogger(t))
	outcomes, err := history.RecentOutcomes(context.Background())

	require.NoError(t, err)
	assert.Empty(t, outcomes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistory_QueryFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT sponsor_location").
		WillReturnError(sql.ErrConnDone)

	history := NewPostgresHistory(db, 500, logger.NewTestLogger(t))
	_, err := history.RecentOutcomes(context.Background())

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeHistoryFetchFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestPostgresHistory_MalformedPreferences(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT sponsor_location").
		WithArgs(500).
		WillReturnRows(sqlmock.NewRows([]string{
			"sponsor_location", "sponsor_preferences", "maid_location", "maid_preferences", "outcome",
		}).
			AddRow("Dubai, UAE", []byte("{bad"), "Dubai, UAE", []byte("{bad"), matching.OutcomeSuccessful))

	history := NewPostgresHistory(db, 500, logger.NewTestLogger(t))
	outcomes, err := history.RecentOutcomes(context.Background())

	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Nil(t, outcomes[0].Sponsor.Preferences)
	assert.Nil(t, outcomes[0].Maid.Preferences)
}
