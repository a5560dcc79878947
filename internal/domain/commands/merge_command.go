package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// Merge is the interface for the merge orchestrator.
type Merge interface {
	Validate(request entities.MergeRequest) entities.Result
	CheckConflicts(ctx context.Context, settings *entities.Settings, request entities.MergeRequest) entities.Result
	Merge(ctx context.Context, settings *entities.Settings, request entities.MergeRequest) entities.Result
}

// MergeCommand folds a source branch into a destination branch, but only
// after validating the request and proving there are no conflicts.
type MergeCommand struct {
	factory repositories.VersioningFactory
}

// NewMergeCommand creates a new MergeCommand.
func NewMergeCommand(factory repositories.VersioningFactory) *MergeCommand {
	return &MergeCommand{factory: factory}
}

// Validate checks the request without any network call.
func (it *MergeCommand) Validate(request entities.MergeRequest) entities.Result {
	if err := entities.ValidateMergeRequest(request); err != nil {
		logger.Warnf("Rejected merge request %s -> %s in %q: %v",
			request.Source, request.Destination, request.Repository, err)
		return rejected(err)
	}
	return entities.Result{
		Outcome: entities.OutcomeSuccess,
		Message: fmt.Sprintf("Merge of %s into %s is valid", request.Source, request.Destination),
	}
}

// CheckConflicts diffs source against destination. The result succeeds only
// when the diff was read completely and holds no conflicting path; a diff
// that cannot be read blocks the merge.
func (it *MergeCommand) CheckConflicts(
	ctx context.Context,
	settings *entities.Settings,
	request entities.MergeRequest,
) entities.Result {
	if validation := it.Validate(request); !validation.Succeeded() {
		return validation
	}

	versioning, failed := open(it.factory, settings)
	if failed != nil {
		return *failed
	}

	diff, err := versioning.Diff(ctx, request.Repository, request.Source, request.Destination)
	if err != nil {
		logger.Errorf("Conflict check of %s -> %s in %q failed, refusing to merge: %v",
			request.Source, request.Destination, request.Repository, err)
		return failure(err, "Conflict check failed, refusing to merge")
	}

	var conflicts []entities.DiffEntry
	for _, entry := range diff {
		if entry.IsConflict() {
			conflicts = append(conflicts, entry)
		}
	}
	if len(conflicts) > 0 {
		paths := make([]string, 0, len(conflicts))
		for _, entry := range conflicts {
			paths = append(paths, entry.Path)
		}
		logger.Warnf("Merge conflicts between %s and %s in %q: %v",
			request.Source, request.Destination, request.Repository, paths)
		return entities.Result{
			Outcome:   entities.OutcomeConflict,
			Message:   fmt.Sprintf("Merge conflicts detected: %v", paths),
			Conflicts: conflicts,
		}
	}

	logger.Debugf("No conflicts between %s and %s in %q (%d changes)",
		request.Source, request.Destination, request.Repository, len(diff))
	return entities.Result{
		Outcome: entities.OutcomeSuccess,
		Message: fmt.Sprintf("No conflicts between %s and %s", request.Source, request.Destination),
	}
}

// Merge runs the validation and conflict check, then merges. A rejected
// merge is never retried here.
func (it *MergeCommand) Merge(
	ctx context.Context,
	settings *entities.Settings,
	request entities.MergeRequest,
) entities.Result {
	check := it.CheckConflicts(ctx, settings, request)
	if !check.Succeeded() {
		return check
	}

	versioning, failed := open(it.factory, settings)
	if failed != nil {
		return *failed
	}

	merged, err := versioning.Merge(
		ctx, request.Repository, request.Source, request.Destination,
		mergeMessage(request.Source, request.Destination),
	)
	switch entities.KindOf(err) {
	case entities.OutcomeSuccess:
		if merged == nil {
			merged = &entities.MergeResult{}
		}
		logger.Infof("Merged %s into %s in %q (%s)",
			request.Source, request.Destination, request.Repository, merged.Reference)
		return entities.Result{
			Outcome: entities.OutcomeSuccess,
			Message: fmt.Sprintf("Merged %s into %s", request.Source, request.Destination),
			Merge:   merged,
		}
	case entities.OutcomeConflict:
		logger.Warnf("Server rejected merge of %s into %s in %q: %v",
			request.Source, request.Destination, request.Repository, err)
		return failure(err, "Merge rejected by server")
	default:
		logger.Errorf("Failed to merge %s into %s in %q: %v",
			request.Source, request.Destination, request.Repository, err)
		return failure(err, "Failed to merge %s into %s", request.Source, request.Destination)
	}
}

func mergeMessage(source, destination string) string {
	return fmt.Sprintf("Automated merge: %s → %s", source, destination)
}
