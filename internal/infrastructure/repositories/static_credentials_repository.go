package repositories

import (
	"context"
	"errors"

	domainRepos "github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// StaticCredentialsRepository serves the access key pair from settings.
type StaticCredentialsRepository struct {
	accessKeyID     string
	secretAccessKey string
}

var _ domainRepos.CredentialsRepository = (*StaticCredentialsRepository)(nil)

// NewStaticCredentialsRepository creates a repository for a fixed key pair.
func NewStaticCredentialsRepository(accessKeyID, secretAccessKey string) *StaticCredentialsRepository {
	return &StaticCredentialsRepository{accessKeyID: accessKeyID, secretAccessKey: secretAccessKey}
}

func (it *StaticCredentialsRepository) Name() string { return "static" }

func (it *StaticCredentialsRepository) Credentials(_ context.Context) (domainRepos.Credentials, error) {
	if it.accessKeyID == "" || it.secretAccessKey == "" {
		return domainRepos.Credentials{}, errors.New("access key and secret key are required")
	}
	return domainRepos.Credentials{
		AccessKeyID:     it.accessKeyID,
		SecretAccessKey: it.secretAccessKey,
	}, nil
}
