// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"sponsor not found", NewSponsorNotFoundError("sponsor-1"), ErrCodeSponsorNotFound, false},
		{"profile fetch failed", NewProfileFetchFailedError("sponsor-1", assert.AnError), ErrCodeProfileFetchFailed, true},
		{"pool fetch failed", NewPoolFetchFailedError(assert.AnError), ErrCodePoolFetchFailed, true},
		{"pool fetch timeout", NewPoolFetchTimeoutError(), ErrCodePoolFetchTimeout, true},
		{"history fetch failed", NewHistoryFetchFailedError(assert.AnError), ErrCodeHistoryFetchFailed, true},
		{"learning save failed", NewLearningSaveFailedError(assert.AnError), ErrCodeLearningSaveFailed, false},
		{"invalid match request", NewInvalidMatchRequestError("sponsorId is required"), ErrCodeInvalidMatchRequest, false},
		{"database connection failed", NewDatabaseConnectionFailedError(assert.AnError), ErrCodeDatabaseConnFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.Contains(t, tt.err.Error(), string(tt.code))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewSponsorNotFoundError("sponsor-1")))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", NewSponsorNotFoundError("sponsor-1"))))
	assert.False(t, IsNotFound(NewPoolFetchFailedError(assert.AnError)))
	assert.False(t, IsNotFound(assert.AnError))
	assert.False(t, IsNotFound(nil))
}

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		retries int
	}{
		{ErrCodeProfileFetchFailed, 3},
		{ErrCodePoolFetchFailed, 3},
		{ErrCodeHistoryFetchFailed, 3},
		{ErrCodeDatabaseConnFailed, 3},
		{ErrCodeSearchQueryFailed, 3},
		{ErrCodePoolFetchTimeout, 2},
		{ErrCodeSponsorNotFound, 0},
		{ErrCodeInvalidMatchRequest, 0},
		{ErrCodeLearningSaveFailed, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.retries, GetRetryCount(tt.code))
			assert.Equal(t, tt.retries > 0, IsRetryableErrorCode(tt.code))
		})
	}
}

func TestConvertToBPMNError(t *testing.T) {
	t.Run("retryable error keeps retries", func(t *testing.T) {
		bpmnErr := ConvertToBPMNError(NewPoolFetchFailedError(assert.AnError))

		assert.Equal(t, "CANDIDATE_POOL_FETCH_FAILED", bpmnErr.Code)
		assert.Equal(t, 3, bpmnErr.Retries)
		assert.True(t, bpmnErr.Retryable)
		assert.Equal(t, "CANDIDATE_POOL_FETCH_FAILED", bpmnErr.ErrorVariables["originalErrorCode"])
	})

	t.Run("non-retryable error zeroes retries", func(t *testing.T) {
		bpmnErr := ConvertToBPMNError(NewSponsorNotFoundError("sponsor-1"))

		assert.Equal(t, "SPONSOR_NOT_FOUND", bpmnErr.Code)
		assert.Equal(t, 0, bpmnErr.Retries)
		assert.False(t, bpmnErr.Retryable)
	})

	t.Run("unmapped code falls back to itself", func(t *testing.T) {
		bpmnErr := ConvertToBPMNError(&StandardError{Code: "SOMETHING_ELSE"})
		assert.Equal(t, "SOMETHING_ELSE", bpmnErr.Code)
	})
}

func TestBPMNError_ToErrorVariables(t *testing.T) {
	bpmnErr := &BPMNError{
		Code:      "SPONSOR_NOT_FOUND",
		Message:   "Sponsor profile not found",
		Retryable: false,
		ErrorVariables: map[string]interface{}{
			"sponsorId": "sponsor-1",
		},
	}

	vars := bpmnErr.ToErrorVariables()

	assert.Equal(t, "SPONSOR_NOT_FOUND", vars["errorCode"])
	assert.Equal(t, "Sponsor profile not found", vars["errorMessage"])
	assert.Equal(t, false, vars["retryable"])
	assert.Equal(t, "sponsor-1", vars["sponsorId"])
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		category string
	}{
		{ErrCodeSponsorNotFound, "PROFILE"},
		{ErrCodeProfileFetchFailed, "PROFILE"},
		{ErrCodePoolFetchFailed, "CANDIDATE_POOL"},
		{ErrCodeMaidIndexNotFound, "CANDIDATE_POOL"},
		{ErrCodeHistoryFetchFailed, "LEARNING"},
		{ErrCodeLearningSaveFailed, "LEARNING"},
		{ErrCodeDatabaseConnFailed, "DATABASE"},
		{ErrCodeInvalidMatchRequest, "VALIDATION"},
		{"UNKNOWN_CODE", "OTHER"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.category, GetErrorCategory(tt.code), string(tt.code))
	}
}
