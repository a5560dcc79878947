//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// SpyVersioningRepository implements repositories.VersioningRepository as a configurable spy.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpyVersioningRepository struct {
	// --- ListRepositories ---
	Repositories []entities.Repository
	ListErr      error

	// --- GetRepository ---
	Repository       *entities.Repository
	GetRepositoryErr error
	RepositoryGets   []string

	// --- CreateRepository ---
	CreateRepositoryErr error
	CreatedRepositories []entities.Repository

	// --- GetBranch ---
	GetBranchErr error
	BranchGets   []string

	// --- CreateBranch ---
	CreateBranchErr  error
	CreateBranchErrs map[string]error // branch name -> error
	CreatedBranches  []entities.Branch

	// --- DeleteBranch ---
	DeleteBranchErr error
	DeletedBranches []string

	// --- Commit ---
	CommitResult *entities.Commit
	CommitErr    error
	CommitInputs []entities.CommitInput

	// --- Diff ---
	DiffEntries []entities.DiffEntry
	DiffErr     error
	DiffCalls   int

	// --- Merge ---
	MergeResult   *entities.MergeResult
	MergeErr      error
	MergeMessages []string

	// --- UploadObject ---
	UploadErr     error
	UploadedPaths []string

	// --- GetObject ---
	ObjectContent []byte
	GetObjectErr  error
}

var _ repositories.VersioningRepository = (*SpyVersioningRepository)(nil)

func (s *SpyVersioningRepository) ListRepositories(_ context.Context) ([]entities.Repository, error) {
	return s.Repositories, s.ListErr
}

func (s *SpyVersioningRepository) GetRepository(_ context.Context, name string) (*entities.Repository, error) {
	s.RepositoryGets = append(s.RepositoryGets, name)
	if s.GetRepositoryErr != nil {
		return nil, s.GetRepositoryErr
	}
	if s.Repository != nil {
		return s.Repository, nil
	}
	return &entities.Repository{Name: name, DefaultBranch: entities.DefaultBranch}, nil
}

func (s *SpyVersioningRepository) CreateRepository(
	_ context.Context, repo entities.Repository,
) (*entities.Repository, error) {
	s.CreatedRepositories = append(s.CreatedRepositories, repo)
	if s.CreateRepositoryErr != nil {
		return nil, s.CreateRepositoryErr
	}
	return &repo, nil
}

func (s *SpyVersioningRepository) GetBranch(_ context.Context, repo, branch string) (*entities.Branch, error) {
	s.BranchGets = append(s.BranchGets, branch)
	if s.GetBranchErr != nil {
		return nil, s.GetBranchErr
	}
	return &entities.Branch{Repository: repo, Name: branch}, nil
}

func (s *SpyVersioningRepository) CreateBranch(_ context.Context, branch entities.Branch) error {
	s.CreatedBranches = append(s.CreatedBranches, branch)
	if err, ok := s.CreateBranchErrs[branch.Name]; ok {
		return err
	}
	return s.CreateBranchErr
}

func (s *SpyVersioningRepository) DeleteBranch(_ context.Context, _, branch string) error {
	s.DeletedBranches = append(s.DeletedBranches, branch)
	return s.DeleteBranchErr
}

func (s *SpyVersioningRepository) Commit(
	_ context.Context, _, _ string, input entities.CommitInput,
) (*entities.Commit, error) {
	s.CommitInputs = append(s.CommitInputs, input)
	if s.CommitErr != nil {
		return nil, s.CommitErr
	}
	if s.CommitResult != nil {
		return s.CommitResult, nil
	}
	return &entities.Commit{ID: "c0ffee", Message: input.Message, Metadata: input.Metadata}, nil
}

func (s *SpyVersioningRepository) Diff(_ context.Context, _, _, _ string) ([]entities.DiffEntry, error) {
	s.DiffCalls++
	return s.DiffEntries, s.DiffErr
}

func (s *SpyVersioningRepository) Merge(
	_ context.Context, _, _, _, message string,
) (*entities.MergeResult, error) {
	s.MergeMessages = append(s.MergeMessages, message)
	if s.MergeErr != nil {
		return nil, s.MergeErr
	}
	if s.MergeResult != nil {
		return s.MergeResult, nil
	}
	return &entities.MergeResult{Reference: "merge-ref"}, nil
}

func (s *SpyVersioningRepository) UploadObject(
	_ context.Context, _, _, path string, _ []byte, _ string,
) error {
	s.UploadedPaths = append(s.UploadedPaths, path)
	return s.UploadErr
}

func (s *SpyVersioningRepository) GetObject(_ context.Context, _, _, _ string) ([]byte, error) {
	return s.ObjectContent, s.GetObjectErr
}
