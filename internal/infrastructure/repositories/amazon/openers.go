package amazon

import (
	"context"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// OpenIdentityRepository loads the AWS configuration for region and returns
// an STS-backed identity resolver.
func OpenIdentityRepository(ctx context.Context, region string) (repositories.IdentityRepository, error) {
	cfg, err := LoadConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return NewSTSIdentityRepository(cfg), nil
}

// OpenSecretCredentials loads the AWS configuration for the settings' region
// and returns a Secrets Manager credentials source.
func OpenSecretCredentials(settings *entities.Settings) (repositories.CredentialsRepository, error) {
	cfg, err := LoadConfig(context.Background(), settings.Region)
	if err != nil {
		return nil, err
	}
	return NewSecretCredentialsRepository(cfg, settings.CredentialsSecret), nil
}
