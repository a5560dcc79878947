//go:build unit

package amazon_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
	"github.com/rios0rios0/lakegate/internal/infrastructure/repositories/amazon"
)

type stubCallerIdentity struct {
	account string
	err     error
	calls   int
}

func (s *stubCallerIdentity) GetCallerIdentity(
	_ context.Context,
	_ *sts.GetCallerIdentityInput,
	_ ...func(*sts.Options),
) (*sts.GetCallerIdentityOutput, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &sts.GetCallerIdentityOutput{Account: aws.String(s.account)}, nil
}

type stubSecretValue struct {
	secret   *string
	err      error
	secretID string
}

func (s *stubSecretValue) GetSecretValue(
	_ context.Context,
	params *secretsmanager.GetSecretValueInput,
	_ ...func(*secretsmanager.Options),
) (*secretsmanager.GetSecretValueOutput, error) {
	s.secretID = aws.ToString(params.SecretId)
	if s.err != nil {
		return nil, s.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: s.secret}, nil
}

func TestSTSIdentityRepository(t *testing.T) {
	t.Parallel()

	t.Run("should resolve the account id and the configured region", func(t *testing.T) {
		t.Parallel()

		// given
		client := &stubCallerIdentity{account: "111122223333"}
		repository := amazon.NewSTSIdentityRepositoryWithClient(client, "eu-west-1")

		// when
		identity, err := repository.Resolve(context.Background(), entities.Identity{Environment: "dev"})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.Identity{AccountID: "111122223333", Region: "eu-west-1", Environment: "dev"}, identity)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("should not call the identity service when the account is known", func(t *testing.T) {
		t.Parallel()

		// given
		client := &stubCallerIdentity{account: "999999999999"}
		repository := amazon.NewSTSIdentityRepositoryWithClient(client, "eu-west-1")

		// when
		identity, err := repository.Resolve(context.Background(), entities.Identity{
			AccountID: "111122223333", Region: "sa-east-1",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "111122223333", identity.AccountID)
		assert.Equal(t, "sa-east-1", identity.Region)
		assert.Zero(t, client.calls)
	})

	t.Run("should fall back to the default region", func(t *testing.T) {
		t.Parallel()

		// given
		repository := amazon.NewSTSIdentityRepositoryWithClient(&stubCallerIdentity{account: "1"}, "")

		// when
		identity, err := repository.Resolve(context.Background(), entities.Identity{})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.FallbackRegion, identity.Region)
	})

	t.Run("should fail when the account cannot be resolved", func(t *testing.T) {
		t.Parallel()

		// given
		client := &stubCallerIdentity{err: errors.New("no credentials")}
		repository := amazon.NewSTSIdentityRepositoryWithClient(client, "eu-west-1")

		// when
		_, err := repository.Resolve(context.Background(), entities.Identity{})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to resolve deploying account id")
	})
}

func TestSecretCredentialsRepository(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		secret   *string
		expected repositories.Credentials
		errMsg   string
	}{
		{
			name:     "should read a key pair",
			secret:   aws.String(`{"access_key_id":"AKIA","secret_access_key":"s3cr3t"}`),
			expected: repositories.Credentials{AccessKeyID: "AKIA", SecretAccessKey: "s3cr3t"},
		},
		{
			name:     "should prefer a token",
			secret:   aws.String(`{"token":"t0ken","access_key_id":"AKIA","secret_access_key":"s3cr3t"}`),
			expected: repositories.Credentials{Token: "t0ken"},
		},
		{
			name:   "should reject an empty secret",
			secret: nil,
			errMsg: "has no string value",
		},
		{
			name:   "should reject malformed JSON",
			secret: aws.String("access_key_id=AKIA"),
			errMsg: "failed to parse secret",
		},
		{
			name:   "should reject a secret without credentials",
			secret: aws.String(`{"access_key_id":"AKIA"}`),
			errMsg: "secret must hold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			client := &stubSecretValue{secret: tt.secret}
			repository := amazon.NewSecretCredentialsRepositoryWithClient(client, "lakefs/dev")

			// when
			creds, err := repository.Credentials(context.Background())

			// then
			assert.Equal(t, "lakefs/dev", client.secretID)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, creds)
		})
	}

	t.Run("should wrap a failed read", func(t *testing.T) {
		t.Parallel()

		// given
		client := &stubSecretValue{err: errors.New("access denied")}
		repository := amazon.NewSecretCredentialsRepositoryWithClient(client, "lakefs/dev")

		// when
		_, err := repository.Credentials(context.Background())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), `failed to read secret "lakefs/dev"`)
		assert.Equal(t, "secret", repository.Name())
	})
}
