package commands

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// Branch is the interface for the branch lifecycle.
type Branch interface {
	Create(ctx context.Context, settings *entities.Settings, repo, branch, source string) entities.Result
	Delete(ctx context.Context, settings *entities.Settings, repo, branch string) entities.Result
}

// BranchCommand creates and deletes the short-lived branches pipeline runs
// write to. Both operations converge on the same end state when repeated.
type BranchCommand struct {
	factory repositories.VersioningFactory
}

// NewBranchCommand creates a new BranchCommand.
func NewBranchCommand(factory repositories.VersioningFactory) *BranchCommand {
	return &BranchCommand{factory: factory}
}

// Create cuts branch from source (main when empty). An existing branch is
// reported as AlreadyExists without a second POST.
func (it *BranchCommand) Create(
	ctx context.Context,
	settings *entities.Settings,
	repo, branch, source string,
) entities.Result {
	if source == "" {
		source = entities.DefaultBranch
	}
	if err := validateBranchTarget(repo, branch); err != nil {
		return rejected(err)
	}
	if err := entities.ValidateBranchName(source); err != nil {
		return rejected(err)
	}

	versioning, failed := open(it.factory, settings)
	if failed != nil {
		return *failed
	}

	_, err := versioning.GetBranch(ctx, repo, branch)
	switch entities.KindOf(err) {
	case entities.OutcomeSuccess:
		logger.Infof("Branch %q already exists in %q", branch, repo)
		return entities.Result{
			Outcome: entities.OutcomeAlreadyExists,
			Message: fmt.Sprintf("Branch '%s' already exists in '%s'", branch, repo),
		}
	case entities.OutcomeNotFound:
	default:
		logger.Errorf("Failed to check branch %q in %q: %v", branch, repo, err)
		return failure(err, "Failed to check branch '%s' in '%s'", branch, repo)
	}

	err = versioning.CreateBranch(ctx, entities.Branch{Repository: repo, Name: branch, Source: source})
	switch entities.KindOf(err) {
	case entities.OutcomeSuccess:
		logger.Infof("Created branch %q from %q in %q", branch, source, repo)
		return entities.Result{
			Outcome: entities.OutcomeCreated,
			Message: fmt.Sprintf("Created branch '%s' from '%s' in '%s'", branch, source, repo),
		}
	case entities.OutcomeAlreadyExists:
		logger.Infof("Branch %q was created concurrently in %q", branch, repo)
		return entities.Result{
			Outcome: entities.OutcomeAlreadyExists,
			Message: fmt.Sprintf("Branch '%s' already exists in '%s'", branch, repo),
		}
	default:
		logger.Errorf("Failed to create branch %q in %q: %v", branch, repo, err)
		return failure(err, "Failed to create branch '%s' in '%s'", branch, repo)
	}
}

// Delete removes branch. The default branch is never deleted: "main" is
// refused locally and any other name is checked against the repository's
// recorded default branch first. When that check cannot be made nothing is
// deleted. A branch that is already gone is reported as AlreadyAbsent.
func (it *BranchCommand) Delete(
	ctx context.Context,
	settings *entities.Settings,
	repo, branch string,
) entities.Result {
	if err := validateBranchTarget(repo, branch); err != nil {
		return rejected(err)
	}
	if strings.EqualFold(branch, entities.DefaultBranch) {
		return refuseDefault(repo, branch)
	}

	versioning, failed := open(it.factory, settings)
	if failed != nil {
		return *failed
	}

	repository, err := versioning.GetRepository(ctx, repo)
	if err != nil {
		logger.Errorf("Cannot verify default branch of %q, not deleting %q: %v", repo, branch, err)
		return failure(err, "Cannot verify default branch of '%s'", repo)
	}
	if repository.DefaultBranch != "" && strings.EqualFold(branch, repository.DefaultBranch) {
		return refuseDefault(repo, branch)
	}

	err = versioning.DeleteBranch(ctx, repo, branch)
	switch entities.KindOf(err) {
	case entities.OutcomeSuccess:
		logger.Infof("Deleted branch %q from %q", branch, repo)
		return entities.Result{
			Outcome: entities.OutcomeSuccess,
			Message: fmt.Sprintf("Deleted branch '%s' from '%s'", branch, repo),
		}
	case entities.OutcomeNotFound:
		logger.Infof("Branch %q is already absent from %q", branch, repo)
		return entities.Result{
			Outcome: entities.OutcomeAlreadyAbsent,
			Message: fmt.Sprintf("Branch '%s' does not exist in '%s'", branch, repo),
		}
	default:
		logger.Errorf("Failed to delete branch %q from %q: %v", branch, repo, err)
		return failure(err, "Failed to delete branch '%s' from '%s'", branch, repo)
	}
}

func validateBranchTarget(repo, branch string) error {
	if strings.TrimSpace(repo) == "" {
		return &entities.ValidationError{Reason: "Repository and branch are required"}
	}
	return entities.ValidateBranchName(branch)
}

func refuseDefault(repo, branch string) entities.Result {
	logger.Warnf("Refusing to delete default branch %q of %q", branch, repo)
	return entities.Result{
		Outcome: entities.OutcomeRefused,
		Message: fmt.Sprintf("Refusing to delete default branch '%s' of '%s'", branch, repo),
	}
}
