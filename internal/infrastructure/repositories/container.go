package repositories

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	domainRepos "github.com/rios0rios0/lakegate/internal/domain/repositories"
	"github.com/rios0rios0/lakegate/internal/infrastructure/repositories/amazon"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register credentials registry with every credentials source
	if err := container.Provide(func() *CredentialsRegistry {
		reg := NewCredentialsRegistry()
		reg.Register(CredentialsStatic, func(settings *entities.Settings) (domainRepos.CredentialsRepository, error) {
			return NewStaticCredentialsRepository(settings.AccessKey, settings.SecretKey), nil
		})
		reg.Register(CredentialsSecret, amazon.OpenSecretCredentials)
		return reg
	}); err != nil {
		return err
	}

	// Client metrics are kept on a private registry, gathered when a command ends
	if err := container.Provide(prometheus.NewRegistry); err != nil {
		return err
	}
	if err := container.Provide(func(impl *prometheus.Registry) prometheus.Registerer {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *prometheus.Registry) prometheus.Gatherer {
		return impl
	}); err != nil {
		return err
	}

	if err := container.Provide(NewServerVersioningFactory); err != nil {
		return err
	}
	if err := container.Provide(func() IdentityOpener {
		return amazon.OpenIdentityRepository
	}); err != nil {
		return err
	}
	if err := container.Provide(NewConfigSettingsRepository); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *ServerVersioningFactory) domainRepos.VersioningFactory {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ConfigSettingsRepository) domainRepos.SettingsRepository {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
