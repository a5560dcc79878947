package repositories

import (
	"context"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
)

// VersioningRepository abstracts the versioning server's REST API. Every
// method is a live call: nothing is cached locally. Non-success answers are
// returned as *entities.APIError so callers can inspect the outcome kind.
type VersioningRepository interface {
	// ListRepositories returns every repository visible to the caller.
	ListRepositories(ctx context.Context) ([]entities.Repository, error)

	// GetRepository returns a single repository or an error of kind NotFound.
	GetRepository(ctx context.Context, name string) (*entities.Repository, error)

	// CreateRepository creates a repository. A repository created concurrently
	// by someone else is reported with kind AlreadyExists.
	CreateRepository(ctx context.Context, repo entities.Repository) (*entities.Repository, error)

	// GetBranch returns a branch or an error of kind NotFound.
	GetBranch(ctx context.Context, repo, branch string) (*entities.Branch, error)

	// CreateBranch cuts branch.Name from branch.Source.
	CreateBranch(ctx context.Context, branch entities.Branch) error

	// DeleteBranch removes a branch. A missing branch is reported with kind NotFound.
	DeleteBranch(ctx context.Context, repo, branch string) error

	// Commit records the pending changes of a branch.
	Commit(ctx context.Context, repo, branch string, input entities.CommitInput) (*entities.Commit, error)

	// Diff lists every change between two refs, following pagination.
	Diff(ctx context.Context, repo, source, destination string) ([]entities.DiffEntry, error)

	// Merge folds source into destination.
	Merge(ctx context.Context, repo, source, destination, message string) (*entities.MergeResult, error)

	// UploadObject writes raw bytes at path on a branch.
	UploadObject(ctx context.Context, repo, branch, path string, content []byte, contentType string) error

	// GetObject reads raw bytes at path on a ref.
	GetObject(ctx context.Context, repo, ref, path string) ([]byte, error)
}
