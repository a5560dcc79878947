package amazon

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// CallerIdentityAPI is the part of the STS client used to look up the account.
type CallerIdentityAPI interface {
	GetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

// STSIdentityRepository resolves the account id through STS and the region
// through the loaded AWS configuration, falling back to a fixed region.
type STSIdentityRepository struct {
	client CallerIdentityAPI
	region string
}

var _ repositories.IdentityRepository = (*STSIdentityRepository)(nil)

// NewSTSIdentityRepository builds the resolver from a loaded AWS configuration.
func NewSTSIdentityRepository(cfg aws.Config) *STSIdentityRepository {
	return NewSTSIdentityRepositoryWithClient(sts.NewFromConfig(cfg), cfg.Region)
}

// NewSTSIdentityRepositoryWithClient builds the resolver on an existing client.
func NewSTSIdentityRepositoryWithClient(client CallerIdentityAPI, region string) *STSIdentityRepository {
	return &STSIdentityRepository{client: client, region: region}
}

// Resolve fills in whatever known is missing. The identity service is only
// called when the account id is not already known.
func (it *STSIdentityRepository) Resolve(
	ctx context.Context,
	known entities.Identity,
) (entities.Identity, error) {
	identity := known

	if identity.AccountID == "" {
		out, err := it.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		if err != nil {
			return identity, fmt.Errorf("failed to resolve deploying account id: %w", err)
		}
		identity.AccountID = aws.ToString(out.Account)
		logger.Debugf("Resolved account id %s from caller identity", identity.AccountID)
	}

	if identity.Region == "" {
		identity.Region = it.region
	}
	if identity.Region == "" {
		logger.Warnf("No AWS region configured, falling back to %s", entities.FallbackRegion)
		identity.Region = entities.FallbackRegion
	}

	return identity, nil
}
