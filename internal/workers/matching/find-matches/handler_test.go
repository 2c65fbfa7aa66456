// internal/workers/matching/find-matches/handler_test.go
package findmatches

import (
	"context"
	"testing"
	"time"

	"maidmatch/internal/common/errors"
	"maidmatch/internal/common/logger"
	"maidmatch/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		DefaultLimit: 10,
	}
}

// fakeMatcher records the arguments of the last FindMatches call.
type fakeMatcher struct {
	results   []matching.MatchResult
	err       error
	sponsorID string
	overrides *matching.MatchPreferences
	limit     int
	calls     int
}

func (f *fakeMatcher) FindMatches(ctx context.Context, sponsorID string, overrides *matching.MatchPreferences, limit int) ([]matching.MatchResult, error) {
	f.calls++
	f.sponsorID = sponsorID
	f.overrides = overrides
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func testResults() []matching.MatchResult {
	return []matching.MatchResult{
		{CandidateID: "maid-1", Score: 0.82, AdjustedScore: 0.86, Confidence: 0.9},
		{CandidateID: "maid-2", Score: 0.71, AdjustedScore: 0.74, Confidence: 0.85},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	matcher := &fakeMatcher{results: testResults()}
	handler := NewHandler(createTestConfig(), matcher, logger.NewTestLogger(t))

	input := &Input{
		RequestID: "req-123",
		SponsorID: "sponsor-1",
		Limit:     5,
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "req-123", output.RequestID)
	assert.Equal(t, "sponsor-1", output.SponsorID)
	assert.Equal(t, 2, output.Count)
	assert.Len(t, output.Matches, 2)
	assert.Equal(t, "maid-1", output.Matches[0].CandidateID)

	assert.Equal(t, "sponsor-1", matcher.sponsorID)
	assert.Equal(t, 5, matcher.limit)
}

func TestHandler_Execute_GeneratesRequestID(t *testing.T) {
	matcher := &fakeMatcher{results: testResults()}
	handler := NewHandler(createTestConfig(), matcher, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{SponsorID: "sponsor-1"})

	require.NoError(t, err)
	assert.NotEmpty(t, output.RequestID)
}

func TestHandler_Execute_DefaultLimit(t *testing.T) {
	matcher := &fakeMatcher{results: testResults()}
	handler := NewHandler(createTestConfig(), matcher, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{SponsorID: "sponsor-1"})

	require.NoError(t, err)
	assert.Equal(t, 10, matcher.limit)
}

func TestHandler_Execute_PassesPreferenceOverrides(t *testing.T) {
	matcher := &fakeMatcher{results: nil}
	handler := NewHandler(createTestConfig(), matcher, logger.NewTestLogger(t))

	prefs := &matching.MatchPreferences{
		Skills:    []string{"cooking"},
		Languages: []string{"english"},
	}

	output, err := handler.Execute(context.Background(), &Input{
		SponsorID:   "sponsor-1",
		Preferences: prefs,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, output.Count)
	require.NotNil(t, matcher.overrides)
	assert.Equal(t, []string{"cooking"}, matcher.overrides.Skills)
}

// ==========================
// Validation & Error Tests
// ==========================

func TestHandler_Execute_MissingSponsorID(t *testing.T) {
	matcher := &fakeMatcher{}
	handler := NewHandler(createTestConfig(), matcher, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, 0, matcher.calls)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidMatchRequest, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestHandler_Execute_NegativeLimit(t *testing.T) {
	matcher := &fakeMatcher{}
	handler := NewHandler(createTestConfig(), matcher, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{SponsorID: "sponsor-1", Limit: -1})

	require.Error(t, err)
	assert.Equal(t, 0, matcher.calls)
}

func TestHandler_Execute_SponsorNotFound(t *testing.T) {
	matcher := &fakeMatcher{err: errors.NewSponsorNotFoundError("sponsor-missing")}
	handler := NewHandler(createTestConfig(), matcher, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{SponsorID: "sponsor-missing"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.IsNotFound(err))
}

func TestHandler_Execute_PoolFetchFailurePropagates(t *testing.T) {
	matcher := &fakeMatcher{err: errors.NewPoolFetchTimeoutError()}
	handler := NewHandler(createTestConfig(), matcher, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{SponsorID: "sponsor-1"})

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodePoolFetchTimeout, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
