package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// Status is the interface for the catalog status report.
type Status interface {
	Execute(ctx context.Context, settings *entities.Settings) (*CatalogStatus, error)
}

// CatalogStatus compares the catalog with what the server holds.
type CatalogStatus struct {
	Present   []string `json:"present"`
	Missing   []string `json:"missing"`
	Unmanaged []string `json:"unmanaged"`
}

// IsComplete reports whether every catalog repository exists.
func (s *CatalogStatus) IsComplete() bool {
	return len(s.Missing) == 0
}

// StatusCommand lists the server's repositories against the catalog.
type StatusCommand struct {
	factory repositories.VersioningFactory
	catalog []entities.RepositoryConfig
}

// NewStatusCommand creates a new StatusCommand for the given catalog.
func NewStatusCommand(factory repositories.VersioningFactory, catalog []entities.RepositoryConfig) *StatusCommand {
	return &StatusCommand{factory: factory, catalog: catalog}
}

// Execute reports which catalog repositories are present or missing, and
// which server repositories are outside the catalog.
func (it *StatusCommand) Execute(ctx context.Context, settings *entities.Settings) (*CatalogStatus, error) {
	versioning, err := it.factory.Open(settings)
	if err != nil {
		return nil, err
	}

	existing, err := versioning.ListRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	onServer := make(map[string]bool, len(existing))
	for _, repo := range existing {
		onServer[repo.Name] = true
	}

	status := &CatalogStatus{Present: []string{}, Missing: []string{}, Unmanaged: []string{}}
	inCatalog := make(map[string]bool)
	for _, cfg := range it.catalog {
		inCatalog[cfg.Name] = true
		if onServer[cfg.Name] {
			status.Present = append(status.Present, cfg.Name)
			continue
		}
		status.Missing = append(status.Missing, cfg.Name)
	}
	for _, repo := range existing {
		if !inCatalog[repo.Name] {
			status.Unmanaged = append(status.Unmanaged, repo.Name)
		}
	}

	logger.Infof("Catalog status: %d present, %d missing, %d unmanaged",
		len(status.Present), len(status.Missing), len(status.Unmanaged))
	return status, nil
}
