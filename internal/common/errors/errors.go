// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeSponsorNotFound      ErrorCode = "SPONSOR_NOT_FOUND"
	ErrCodeProfileFetchFailed   ErrorCode = "PROFILE_FETCH_FAILED"
	ErrCodePoolFetchFailed      ErrorCode = "CANDIDATE_POOL_FETCH_FAILED"
	ErrCodePoolFetchTimeout     ErrorCode = "CANDIDATE_POOL_FETCH_TIMEOUT"
	ErrCodeHistoryFetchFailed   ErrorCode = "HISTORY_FETCH_FAILED"
	ErrCodeLearningLoadFailed   ErrorCode = "LEARNING_DATA_LOAD_FAILED"
	ErrCodeLearningSaveFailed   ErrorCode = "LEARNING_DATA_SAVE_FAILED"
	ErrCodeInvalidMatchRequest  ErrorCode = "INVALID_MATCH_REQUEST"
	ErrCodeDatabaseConnFailed   ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed    ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeMaidIndexNotFound    ErrorCode = "MAID_INDEX_NOT_FOUND"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// IsNotFound reports whether err is a sponsor-not-found error, however wrapped.
func IsNotFound(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == ErrCodeSponsorNotFound
	}
	return false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewSponsorNotFoundError creates a non-retryable profile lookup error.
// Fatal to the matching call, surfaced to the caller unchanged.
func NewSponsorNotFoundError(sponsorID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSponsorNotFound,
		Message:   "Sponsor profile not found",
		Details:   fmt.Sprintf("sponsorId: %s", sponsorID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileFetchFailedError creates a retryable profile transport error.
func NewProfileFetchFailedError(sponsorID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileFetchFailed,
		Message:   "Sponsor profile fetch failed",
		Details:   fmt.Sprintf("sponsorId: %s, error: %s", sponsorID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPoolFetchFailedError creates a retryable candidate pool transport error.
func NewPoolFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePoolFetchFailed,
		Message:   "Candidate pool fetch failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPoolFetchTimeoutError creates a retryable candidate pool timeout error.
func NewPoolFetchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodePoolFetchTimeout,
		Message:   "Candidate pool fetch timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryFetchFailedError creates a retryable matching history read error.
func NewHistoryFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryFetchFailed,
		Message:   "Matching history fetch failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLearningSaveFailedError creates the advisory learning persistence error.
// Never fails a matching call; logged and swallowed by the engine.
func NewLearningSaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLearningSaveFailed,
		Message:   "Learning data save failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidMatchRequestError creates a non-retryable request validation error.
func NewInvalidMatchRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidMatchRequest,
		Message:   "Invalid match request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes (identical by convention).
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeSponsorNotFound:     "SPONSOR_NOT_FOUND",
	ErrCodeProfileFetchFailed:  "PROFILE_FETCH_FAILED",
	ErrCodePoolFetchFailed:     "CANDIDATE_POOL_FETCH_FAILED",
	ErrCodePoolFetchTimeout:    "CANDIDATE_POOL_FETCH_TIMEOUT",
	ErrCodeHistoryFetchFailed:  "HISTORY_FETCH_FAILED",
	ErrCodeLearningLoadFailed:  "LEARNING_DATA_LOAD_FAILED",
	ErrCodeLearningSaveFailed:  "LEARNING_DATA_SAVE_FAILED",
	ErrCodeInvalidMatchRequest: "INVALID_MATCH_REQUEST",
	ErrCodeDatabaseConnFailed:  "DATABASE_CONNECTION_FAILED",
	ErrCodeSearchQueryFailed:   "SEARCH_QUERY_FAILED",
	ErrCodeMaidIndexNotFound:   "MAID_INDEX_NOT_FOUND",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProfileFetchFailed,
		ErrCodePoolFetchFailed,
		ErrCodeHistoryFetchFailed,
		ErrCodeDatabaseConnFailed,
		ErrCodeSearchQueryFailed:
		return 3 // Retryable technical errors

	case ErrCodePoolFetchTimeout:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SPONSOR") || strings.Contains(codeStr, "PROFILE"):
		return "PROFILE"
	case strings.Contains(codeStr, "POOL") || strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "CANDIDATE_POOL"
	case strings.Contains(codeStr, "LEARNING") || strings.Contains(codeStr, "HISTORY"):
		return "LEARNING"
	case strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
