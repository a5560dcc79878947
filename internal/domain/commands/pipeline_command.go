package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// Pipeline is the surface orchestration code calls.
type Pipeline interface {
	UploadObject(
		ctx context.Context, settings *entities.Settings,
		repo, branch, path string, content []byte, contentType string,
	) error
	CommitChanges(
		ctx context.Context, settings *entities.Settings,
		repo, branch, message string, metadata map[string]string,
	) (*entities.Commit, error)
	GetObject(ctx context.Context, settings *entities.Settings, repo, ref, path string) ([]byte, error)
	RepositoryName(pipeline, layer string) string
	StorageNamespace(settings *entities.Settings, pipeline, layer string) string
	StartRun(ctx context.Context, settings *entities.Settings, pipeline, layer, runID string) (string, entities.Result)
	FinishRun(ctx context.Context, settings *entities.Settings, pipeline, layer, branch string) entities.Result
}

// PipelineCommand is a thin facade over the versioning server. It neither
// retries nor coordinates: resilience lives in the client and coordination
// in the branch and merge commands.
type PipelineCommand struct {
	factory repositories.VersioningFactory
	branch  Branch
	merge   Merge
}

// NewPipelineCommand creates a new PipelineCommand.
func NewPipelineCommand(factory repositories.VersioningFactory, branch Branch, merge Merge) *PipelineCommand {
	return &PipelineCommand{factory: factory, branch: branch, merge: merge}
}

// UploadObject writes content at path on branch.
func (it *PipelineCommand) UploadObject(
	ctx context.Context,
	settings *entities.Settings,
	repo, branch, path string,
	content []byte,
	contentType string,
) error {
	versioning, err := it.factory.Open(settings)
	if err != nil {
		return err
	}
	if uploadErr := versioning.UploadObject(ctx, repo, branch, path, content, contentType); uploadErr != nil {
		return fmt.Errorf("failed to upload %q to %s/%s: %w", path, repo, branch, uploadErr)
	}
	logger.Debugf("Uploaded %d bytes to %s/%s/%s", len(content), repo, branch, path)
	return nil
}

// CommitChanges commits everything pending on branch.
func (it *PipelineCommand) CommitChanges(
	ctx context.Context,
	settings *entities.Settings,
	repo, branch, message string,
	metadata map[string]string,
) (*entities.Commit, error) {
	versioning, err := it.factory.Open(settings)
	if err != nil {
		return nil, err
	}
	commit, err := versioning.Commit(ctx, repo, branch, entities.CommitInput{Message: message, Metadata: metadata})
	if err != nil {
		return nil, fmt.Errorf("failed to commit to %s/%s: %w", repo, branch, err)
	}
	logger.Infof("Committed %s to %s/%s", commit.ID, repo, branch)
	return commit, nil
}

// GetObject reads path at ref. A missing object yields nil content and no error.
func (it *PipelineCommand) GetObject(
	ctx context.Context,
	settings *entities.Settings,
	repo, ref, path string,
) ([]byte, error) {
	versioning, err := it.factory.Open(settings)
	if err != nil {
		return nil, err
	}
	content, err := versioning.GetObject(ctx, repo, ref, path)
	if entities.KindOf(err) == entities.OutcomeNotFound {
		logger.Debugf("Object %s/%s/%s not found", repo, ref, path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q from %s/%s: %w", path, repo, ref, err)
	}
	return content, nil
}

// RepositoryName resolves a repository name without any I/O.
func (it *PipelineCommand) RepositoryName(pipeline, layer string) string {
	return entities.RepositoryName(pipeline, layer)
}

// StorageNamespace resolves where a pipeline layer stores its objects.
func (it *PipelineCommand) StorageNamespace(settings *entities.Settings, pipeline, layer string) string {
	cfg, ok := entities.FindRepositoryConfig(entities.RepositoryName(pipeline, layer))
	if !ok {
		cfg = entities.RepositoryConfig{Pipeline: pipeline, Layer: layer}
	}
	return entities.StorageNamespace(cfg, settings.Bucket())
}

// StartRun creates the branch a run writes to and returns its name.
func (it *PipelineCommand) StartRun(
	ctx context.Context,
	settings *entities.Settings,
	pipeline, layer, runID string,
) (string, entities.Result) {
	branch := entities.RunBranchName(runID)
	repo := entities.RepositoryName(pipeline, layer)
	return branch, it.branch.Create(ctx, settings, repo, branch, entities.DefaultBranch)
}

// FinishRun merges a run branch into main and deletes it once merged. A
// rejected merge keeps the branch for inspection.
func (it *PipelineCommand) FinishRun(
	ctx context.Context,
	settings *entities.Settings,
	pipeline, layer, branch string,
) entities.Result {
	if !entities.IsRunBranch(branch) {
		return rejected(errors.New("only run branches can be finished"))
	}

	repo := entities.RepositoryName(pipeline, layer)
	merged := it.merge.Merge(ctx, settings, entities.MergeRequest{
		Repository:  repo,
		Source:      branch,
		Destination: entities.DefaultBranch,
	})
	if !merged.Succeeded() {
		logger.Warnf("Keeping run branch %q in %q: %s", branch, repo, merged.Message)
		return merged
	}

	if deleted := it.branch.Delete(ctx, settings, repo, branch); !deleted.Succeeded() {
		logger.Warnf("Merged run branch %q but could not delete it: %s", branch, deleted.Message)
	}
	return merged
}
