package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/prometheus/client_golang/prometheus"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lakegate/internal/domain/commands"
	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
	"github.com/rios0rios0/lakegate/internal/infrastructure/resilient"
)

// Actions accepted by the branch lifecycle handler.
const (
	ActionCreateBranch   = "create_branch"
	ActionDeleteBranch   = "delete_branch"
	ActionMerge          = "merge"
	ActionCheckConflicts = "check_conflicts"
)

// BranchEvent is a branch lifecycle or merge request. It arrives either as
// the invocation payload or as the detail of an EventBridge event.
type BranchEvent struct {
	Action      string `json:"action"`
	Repository  string `json:"repository"`
	Branch      string `json:"branch,omitempty"`
	Source      string `json:"source,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// BranchResponse is returned to the invoker. Success is false for every
// outcome the caller must act on, including conflicts and refusals.
type BranchResponse struct {
	Success   bool                 `json:"success"`
	Outcome   string               `json:"outcome"`
	Message   string               `json:"message"`
	Reference string               `json:"reference,omitempty"`
	Merge     json.RawMessage      `json:"merge,omitempty"`
	Conflicts []entities.DiffEntry `json:"conflicts,omitempty"`
}

// BranchLifecycleHandler serves branch creation, deletion and merge requests
// from pipeline orchestration. Settings are resolved on the first invocation
// and reused by the warm container.
type BranchLifecycleHandler struct {
	settingsRepo repositories.SettingsRepository
	branch       commands.Branch
	merge        commands.Merge
	metrics      prometheus.Gatherer

	mu       sync.Mutex
	settings *entities.Settings
}

// NewBranchLifecycleHandler creates a new BranchLifecycleHandler.
func NewBranchLifecycleHandler(
	settingsRepo repositories.SettingsRepository,
	branch commands.Branch,
	merge commands.Merge,
	metrics prometheus.Gatherer,
) *BranchLifecycleHandler {
	return &BranchLifecycleHandler{settingsRepo: settingsRepo, branch: branch, merge: merge, metrics: metrics}
}

// Handle decodes the payload and dispatches it. Expected failures are
// reported in the response; only an unusable payload or missing settings
// produce an error. The traffic summary it logs is cumulative for the warm
// container.
func (it *BranchLifecycleHandler) Handle(ctx context.Context, payload json.RawMessage) (BranchResponse, error) {
	defer resilient.LogSummary(it.metrics)

	event, err := decodeEvent(payload)
	if err != nil {
		return BranchResponse{}, err
	}

	entry := logger.WithFields(logger.Fields{
		"action":     event.Action,
		"repository": event.Repository,
	})
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		entry = entry.WithField("request_id", lc.AwsRequestID)
	}
	entry.Info("Handling branch lifecycle request")

	settings, err := it.resolveSettings(ctx)
	if err != nil {
		return BranchResponse{}, err
	}

	var result entities.Result
	switch event.Action {
	case ActionCreateBranch:
		result = it.branch.Create(ctx, settings, event.Repository, event.Branch, event.Source)
	case ActionDeleteBranch:
		result = it.branch.Delete(ctx, settings, event.Repository, event.Branch)
	case ActionMerge:
		result = it.merge.Merge(ctx, settings, mergeRequest(event))
	case ActionCheckConflicts:
		result = it.merge.CheckConflicts(ctx, settings, mergeRequest(event))
	default:
		result = entities.Result{
			Outcome: entities.OutcomeValidationError,
			Message: fmt.Sprintf("Unknown action '%s'", event.Action),
		}
	}

	entry.WithField("outcome", result.Outcome.String()).Info(result.Message)
	return toResponse(result), nil
}

func (it *BranchLifecycleHandler) resolveSettings(ctx context.Context) (*entities.Settings, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.settings != nil {
		return it.settings, nil
	}
	settings, err := it.settingsRepo.Load(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	it.settings = settings
	return settings, nil
}

func decodeEvent(payload json.RawMessage) (BranchEvent, error) {
	var probe struct {
		DetailType string `json:"detail-type"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return BranchEvent{}, fmt.Errorf("failed to decode event: %w", err)
	}

	body := []byte(payload)
	if probe.DetailType != "" {
		var envelope events.CloudWatchEvent
		if err := json.Unmarshal(payload, &envelope); err != nil {
			return BranchEvent{}, fmt.Errorf("failed to decode EventBridge event: %w", err)
		}
		logger.Debugf("Unwrapping EventBridge event %s (%s)", envelope.ID, envelope.DetailType)
		body = envelope.Detail
	}

	var event BranchEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return BranchEvent{}, fmt.Errorf("failed to decode branch event: %w", err)
	}
	return event, nil
}

func mergeRequest(event BranchEvent) entities.MergeRequest {
	return entities.MergeRequest{
		Repository:  event.Repository,
		Source:      event.Source,
		Destination: event.Destination,
	}
}

func toResponse(result entities.Result) BranchResponse {
	response := BranchResponse{
		Success:   result.Succeeded(),
		Outcome:   result.Outcome.String(),
		Message:   result.Message,
		Conflicts: result.Conflicts,
	}
	if result.Merge != nil {
		response.Reference = result.Merge.Reference
		response.Merge = result.Merge.Raw
	}
	return response
}
