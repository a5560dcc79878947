package repositories

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lakegate/config"
	"github.com/rios0rios0/lakegate/internal/domain/entities"
	domainRepos "github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// IdentityOpener builds an identity resolver pinned to region ("" lets the
// provider's default chain decide).
type IdentityOpener func(ctx context.Context, region string) (domainRepos.IdentityRepository, error)

// ConfigSettingsRepository reads settings from a file or the environment and
// resolves the deploying identity exactly once per load.
type ConfigSettingsRepository struct {
	openIdentity IdentityOpener
}

var _ domainRepos.SettingsRepository = (*ConfigSettingsRepository)(nil)

// NewConfigSettingsRepository creates the repository with the given identity opener.
func NewConfigSettingsRepository(openIdentity IdentityOpener) *ConfigSettingsRepository {
	return &ConfigSettingsRepository{openIdentity: openIdentity}
}

// Load reads the settings at path. Without a path the default locations are
// searched and, when no file exists, the environment alone is used.
func (it *ConfigSettingsRepository) Load(ctx context.Context, path string) (*entities.Settings, error) {
	settings, err := read(path)
	if err != nil {
		return nil, err
	}

	identity, err := it.openIdentity(ctx, settings.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize identity resolver: %w", err)
	}

	resolved, err := identity.Resolve(ctx, settings.Identity())
	if err != nil {
		return nil, err
	}

	settings = settings.WithIdentity(resolved)
	logger.Infof(
		"Resolved identity: account=%s region=%s environment=%s bucket=%s",
		settings.AccountID, settings.Region, settings.Environment, settings.Bucket(),
	)
	return settings, nil
}

func read(path string) (*entities.Settings, error) {
	if path == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found (%v), reading settings from the environment", err)
			return config.FromEnvironment()
		}
		path = found
	}

	logger.Infof("Using config file: %s", path)
	return config.Load(path)
}
