package repositories

import (
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	domainRepos "github.com/rios0rios0/lakegate/internal/domain/repositories"
	"github.com/rios0rios0/lakegate/internal/infrastructure/repositories/versioning"
	"github.com/rios0rios0/lakegate/internal/infrastructure/resilient"
)

// ServerVersioningFactory opens REST-backed versioning repositories and keeps
// one per settings value for the life of the process.
type ServerVersioningFactory struct {
	credentials *CredentialsRegistry
	registerer  prometheus.Registerer

	mu     sync.Mutex
	opened map[*entities.Settings]domainRepos.VersioningRepository
}

var _ domainRepos.VersioningFactory = (*ServerVersioningFactory)(nil)

// NewServerVersioningFactory creates a factory that authenticates with the
// sources in credentials and records client metrics on registerer.
func NewServerVersioningFactory(
	credentials *CredentialsRegistry,
	registerer prometheus.Registerer,
) *ServerVersioningFactory {
	return &ServerVersioningFactory{
		credentials: credentials,
		registerer:  registerer,
		opened:      make(map[*entities.Settings]domainRepos.VersioningRepository),
	}
}

// Open returns the repository for settings, building it on first use.
func (it *ServerVersioningFactory) Open(settings *entities.Settings) (domainRepos.VersioningRepository, error) {
	if settings == nil {
		return nil, errors.New("settings are required")
	}

	it.mu.Lock()
	defer it.mu.Unlock()

	if repo, ok := it.opened[settings]; ok {
		return repo, nil
	}

	creds, err := it.credentials.ForSettings(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credentials: %w", err)
	}

	client, err := resilient.NewClient(settings, creds, it.registerer)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Opened versioning server at %s using %s credentials", settings.APIBaseURL(), creds.Name())
	repo := versioning.NewVersioningServerRepository(client)
	it.opened[settings] = repo
	return repo, nil
}
