// internal/workers/matching/find-matches/handler.go
package findmatches

import (
	"context"
	"encoding/json"
	"fmt"

	"maidmatch/internal/common/errors"
	"maidmatch/internal/common/logger"
	"maidmatch/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "find-matches"
)

// Matcher is the slice of the engine this worker needs.
type Matcher interface {
	FindMatches(ctx context.Context, sponsorID string, overrides *matching.MatchPreferences, limit int) ([]matching.MatchResult, error)
}

type Handler struct {
	config   *Config
	matcher  Matcher
	logger   logger.Logger
	errorMgr *errors.ErrorHandler
}

func NewHandler(config *Config, matcher Matcher, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		matcher:  matcher,
		logger:   scoped,
		errorMgr: errors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errorMgr.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.SponsorID == "" {
		return nil, errors.NewInvalidMatchRequestError("sponsorId is required")
	}
	if input.Limit < 0 {
		return nil, errors.NewInvalidMatchRequestError("limit must not be negative")
	}

	requestID := input.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	limit := input.Limit
	if limit == 0 {
		limit = h.config.DefaultLimit
	}

	matches, err := h.matcher.FindMatches(ctx, input.SponsorID, input.Preferences, limit)
	if err != nil {
		return nil, err
	}

	h.logger.Info("matches computed", map[string]interface{}{
		"requestId": requestID,
		"sponsorId": input.SponsorID,
		"count":     len(matches),
	})

	return &Output{
		RequestID: requestID,
		SponsorID: input.SponsorID,
		Matches:   matches,
		Count:     len(matches),
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
