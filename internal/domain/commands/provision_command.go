package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// Provision is the interface for repository provisioning.
type Provision interface {
	CreateRepository(ctx context.Context, settings *entities.Settings, cfg entities.RepositoryConfig) entities.Result
	CreateAllRepositories(ctx context.Context, settings *entities.Settings) ProvisionSummary
}

// ProvisionSummary reports a batch provisioning run. A repository that
// already existed counts as succeeded.
type ProvisionSummary struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Success   []string `json:"success"`
	Failures  []string `json:"failed_repositories"`
}

// ProvisionCommand ensures every catalog repository exists on the server.
type ProvisionCommand struct {
	factory repositories.VersioningFactory
	catalog []entities.RepositoryConfig
}

// NewProvisionCommand creates a new ProvisionCommand for the given catalog.
func NewProvisionCommand(
	factory repositories.VersioningFactory,
	catalog []entities.RepositoryConfig,
) *ProvisionCommand {
	return &ProvisionCommand{factory: factory, catalog: catalog}
}

// CreateRepository creates cfg unless it already exists. The standard
// branches are cut from main on a fresh repository on a best-effort basis.
func (it *ProvisionCommand) CreateRepository(
	ctx context.Context,
	settings *entities.Settings,
	cfg entities.RepositoryConfig,
) entities.Result {
	if err := entities.ValidateRepositoryConfig(cfg); err != nil {
		return rejected(err)
	}

	versioning, failed := open(it.factory, settings)
	if failed != nil {
		return *failed
	}

	_, err := versioning.GetRepository(ctx, cfg.Name)
	switch entities.KindOf(err) {
	case entities.OutcomeSuccess:
		logger.Infof("Repository %q already exists", cfg.Name)
		return entities.Result{
			Outcome: entities.OutcomeAlreadyExists,
			Message: fmt.Sprintf("Repository '%s' already exists", cfg.Name),
		}
	case entities.OutcomeNotFound:
	default:
		logger.Errorf("Failed to check repository %q: %v", cfg.Name, err)
		return failure(err, "Failed to check repository '%s'", cfg.Name)
	}

	namespace := entities.StorageNamespace(cfg, settings.Bucket())
	logger.Infof("Creating repository %q at %s", cfg.Name, namespace)

	_, err = versioning.CreateRepository(ctx, entities.Repository{
		Name:             cfg.Name,
		StorageNamespace: namespace,
		DefaultBranch:    entities.DefaultBranch,
	})
	switch entities.KindOf(err) {
	case entities.OutcomeSuccess:
	case entities.OutcomeAlreadyExists:
		logger.Infof("Repository %q was created concurrently", cfg.Name)
		return entities.Result{
			Outcome: entities.OutcomeAlreadyExists,
			Message: fmt.Sprintf("Repository '%s' already exists", cfg.Name),
		}
	default:
		logger.Errorf("Failed to create repository %q: %v", cfg.Name, err)
		return failure(err, "Failed to create repository '%s'", cfg.Name)
	}

	it.createStandardBranches(ctx, versioning, cfg.Name)

	logger.Infof("Created repository %q", cfg.Name)
	return entities.Result{
		Outcome: entities.OutcomeCreated,
		Message: fmt.Sprintf("Created repository '%s'", cfg.Name),
	}
}

func (it *ProvisionCommand) createStandardBranches(
	ctx context.Context,
	versioning repositories.VersioningRepository,
	repo string,
) {
	for _, name := range entities.StandardBranches {
		err := versioning.CreateBranch(ctx, entities.Branch{
			Repository: repo,
			Name:       name,
			Source:     entities.DefaultBranch,
		})
		switch entities.KindOf(err) {
		case entities.OutcomeSuccess, entities.OutcomeAlreadyExists:
			logger.Debugf("Branch %q ready in %q", name, repo)
		default:
			logger.Warnf("Failed to create branch %q in %q (ignored): %v", name, repo, err)
		}
	}
}

// CreateAllRepositories provisions the whole catalog. A failing repository
// never stops the others.
func (it *ProvisionCommand) CreateAllRepositories(
	ctx context.Context,
	settings *entities.Settings,
) ProvisionSummary {
	summary := ProvisionSummary{
		Total:    len(it.catalog),
		Success:  []string{},
		Failures: []string{},
	}

	for _, cfg := range it.catalog {
		result := it.CreateRepository(ctx, settings, cfg)
		if result.Succeeded() {
			summary.Succeeded++
			summary.Success = append(summary.Success, cfg.Name)
			continue
		}
		summary.Failed++
		summary.Failures = append(summary.Failures, cfg.Name)
	}

	logger.Infof(
		"Provisioning complete: %d repositories, %d succeeded, %d failed",
		summary.Total, summary.Succeeded, summary.Failed,
	)
	return summary
}
