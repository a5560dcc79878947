package amazon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// SecretValueAPI is the part of the Secrets Manager client used to read credentials.
type SecretValueAPI interface {
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

type secretPayload struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	Token           string `json:"token"`
}

// SecretCredentialsRepository reads credentials from Secrets Manager on every
// call, so a rotated secret applies to the very next request.
type SecretCredentialsRepository struct {
	client   SecretValueAPI
	secretID string
}

var _ repositories.CredentialsRepository = (*SecretCredentialsRepository)(nil)

// NewSecretCredentialsRepository builds the repository from a loaded AWS configuration.
func NewSecretCredentialsRepository(cfg aws.Config, secretID string) *SecretCredentialsRepository {
	return NewSecretCredentialsRepositoryWithClient(secretsmanager.NewFromConfig(cfg), secretID)
}

// NewSecretCredentialsRepositoryWithClient builds the repository on an existing client.
func NewSecretCredentialsRepositoryWithClient(client SecretValueAPI, secretID string) *SecretCredentialsRepository {
	return &SecretCredentialsRepository{client: client, secretID: secretID}
}

func (it *SecretCredentialsRepository) Name() string { return "secret" }

// Credentials fetches and decodes the secret. A secret holding "token" yields
// bearer credentials; one holding the key pair yields HTTP Basic credentials.
func (it *SecretCredentialsRepository) Credentials(ctx context.Context) (repositories.Credentials, error) {
	out, err := it.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(it.secretID),
	})
	if err != nil {
		return repositories.Credentials{}, fmt.Errorf("failed to read secret %q: %w", it.secretID, err)
	}

	raw := aws.ToString(out.SecretString)
	if raw == "" {
		return repositories.Credentials{}, fmt.Errorf("secret %q has no string value", it.secretID)
	}

	var payload secretPayload
	if unmarshalErr := json.Unmarshal([]byte(raw), &payload); unmarshalErr != nil {
		return repositories.Credentials{}, fmt.Errorf("failed to parse secret %q: %w", it.secretID, unmarshalErr)
	}

	switch {
	case payload.Token != "":
		return repositories.Credentials{Token: payload.Token}, nil
	case payload.AccessKeyID != "" && payload.SecretAccessKey != "":
		return repositories.Credentials{
			AccessKeyID:     payload.AccessKeyID,
			SecretAccessKey: payload.SecretAccessKey,
		}, nil
	default:
		return repositories.Credentials{}, errors.New("secret must hold either token or access_key_id and secret_access_key")
	}
}
