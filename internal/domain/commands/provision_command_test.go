//go:build unit

package commands_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/lakegate/internal/domain/commands"
	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/lakegate/test/infrastructure/repositorydoubles"
)

func notFound() error {
	return &entities.APIError{Kind: entities.OutcomeNotFound, Status: http.StatusNotFound}
}

func TestProvisionCommandCreateRepository(t *testing.T) {
	t.Parallel()

	t.Run("should create repository and standard branches when absent", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyVersioningRepository{GetRepositoryErr: notFound()}
		cmd := commands.NewProvisionCommand(&doubles.StubVersioningFactory{Repository: spy}, entities.Catalog())
		settings := entitybuilders.NewSettingsBuilder().WithAccountID("111122223333").BuildSettings()
		cfg := entitybuilders.NewRepositoryConfigBuilder().BuildRepositoryConfig()

		// when
		result := cmd.CreateRepository(context.Background(), settings, cfg)

		// then
		assert.True(t, result.Succeeded())
		assert.Equal(t, entities.OutcomeCreated, result.Outcome)
		assert.Equal(t, "Created repository 'consultation-silver'", result.Message)
		require.Len(t, spy.CreatedRepositories, 1)
		assert.Equal(t, entities.Repository{
			Name:             "consultation-silver",
			StorageNamespace: "s3://medallion-lake-dev-111122223333/silver/consultation",
			DefaultBranch:    "main",
		}, spy.CreatedRepositories[0])
		require.Len(t, spy.CreatedBranches, 2)
		assert.Equal(t, "develop", spy.CreatedBranches[0].Name)
		assert.Equal(t, "staging", spy.CreatedBranches[1].Name)
		assert.Equal(t, "main", spy.CreatedBranches[1].Source)
	})

	t.Run("should report already exists without POST when repository exists", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyVersioningRepository{}
		cmd := commands.NewProvisionCommand(&doubles.StubVersioningFactory{Repository: spy}, entities.Catalog())
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		cfg := entitybuilders.NewRepositoryConfigBuilder().BuildRepositoryConfig()

		// when
		first := cmd.CreateRepository(context.Background(), settings, cfg)
		second := cmd.CreateRepository(context.Background(), settings, cfg)

		// then
		for _, result := range []entities.Result{first, second} {
			assert.True(t, result.Succeeded())
			assert.Equal(t, entities.OutcomeAlreadyExists, result.Outcome)
			assert.Equal(t, "Repository 'consultation-silver' already exists", result.Message)
		}
		assert.Empty(t, spy.CreatedRepositories)
		assert.Empty(t, spy.CreatedBranches)
	})

	t.Run("should treat a creation conflict as already exists", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyVersioningRepository{
			GetRepositoryErr:    notFound(),
			CreateRepositoryErr: &entities.APIError{Kind: entities.OutcomeAlreadyExists, Status: http.StatusConflict},
		}
		cmd := commands.NewProvisionCommand(&doubles.StubVersioningFactory{Repository: spy}, entities.Catalog())
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		cfg := entitybuilders.NewRepositoryConfigBuilder().BuildRepositoryConfig()

		// when
		result := cmd.CreateRepository(context.Background(), settings, cfg)

		// then
		assert.True(t, result.Succeeded())
		assert.Equal(t, entities.OutcomeAlreadyExists, result.Outcome)
		assert.Empty(t, spy.CreatedBranches)
	})

	t.Run("should still succeed when standard branch creation fails", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyVersioningRepository{
			GetRepositoryErr: notFound(),
			CreateBranchErrs: map[string]error{
				"develop": &entities.APIError{Kind: entities.OutcomeServerError, Status: http.StatusInternalServerError},
			},
		}
		cmd := commands.NewProvisionCommand(&doubles.StubVersioningFactory{Repository: spy}, entities.Catalog())
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		cfg := entitybuilders.NewRepositoryConfigBuilder().BuildRepositoryConfig()

		// when
		result := cmd.CreateRepository(context.Background(), settings, cfg)

		// then
		assert.True(t, result.Succeeded())
		assert.Equal(t, entities.OutcomeCreated, result.Outcome)
		assert.Len(t, spy.CreatedBranches, 2)
	})

	t.Run("should fail with server body when creation is rejected", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyVersioningRepository{
			GetRepositoryErr: notFound(),
			CreateRepositoryErr: &entities.APIError{
				Kind:   entities.OutcomeServerError,
				Status: http.StatusBadRequest,
				Body:   `{"message":"bad storage namespace"}`,
			},
		}
		cmd := commands.NewProvisionCommand(&doubles.StubVersioningFactory{Repository: spy}, entities.Catalog())
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		cfg := entitybuilders.NewRepositoryConfigBuilder().BuildRepositoryConfig()

		// when
		result := cmd.CreateRepository(context.Background(), settings, cfg)

		// then
		assert.False(t, result.Succeeded())
		assert.Equal(t, entities.OutcomeServerError, result.Outcome)
		assert.Contains(t, result.Message, "bad storage namespace")
		assert.Empty(t, spy.CreatedBranches)
	})

	t.Run("should fail without POST when existence check fails", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyVersioningRepository{
			GetRepositoryErr: entities.NewTransportError(errors.New("connection refused")),
		}
		cmd := commands.NewProvisionCommand(&doubles.StubVersioningFactory{Repository: spy}, entities.Catalog())
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		cfg := entitybuilders.NewRepositoryConfigBuilder().BuildRepositoryConfig()

		// when
		result := cmd.CreateRepository(context.Background(), settings, cfg)

		// then
		assert.False(t, result.Succeeded())
		assert.Equal(t, entities.OutcomeTransportError, result.Outcome)
		assert.Empty(t, spy.CreatedRepositories)
	})

	t.Run("should reject an incomplete config without opening the server", func(t *testing.T) {
		t.Parallel()

		// given
		factory := &doubles.StubVersioningFactory{Repository: &doubles.SpyVersioningRepository{}}
		cmd := commands.NewProvisionCommand(factory, entities.Catalog())
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		result := cmd.CreateRepository(context.Background(), settings, entities.RepositoryConfig{Name: "orphan"})

		// then
		assert.Equal(t, entities.OutcomeValidationError, result.Outcome)
		assert.Zero(t, factory.OpenCount)
	})

	t.Run("should namespace foundation role repositories by role", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyVersioningRepository{GetRepositoryErr: notFound()}
		cmd := commands.NewProvisionCommand(&doubles.StubVersioningFactory{Repository: spy}, entities.Catalog())
		settings := entitybuilders.NewSettingsBuilder().
			WithEnvironment(entities.EnvironmentProd).
			WithAccountID("999988887777").
			BuildSettings()
		cfg := entitybuilders.NewRepositoryConfigBuilder().
			WithPipeline(entities.PipelineFoundation).
			WithLayer(entities.RoleModels).
			BuildRepositoryConfig()

		// when
		result := cmd.CreateRepository(context.Background(), settings, cfg)

		// then
		assert.True(t, result.Succeeded())
		require.Len(t, spy.CreatedRepositories, 1)
		assert.Equal(t,
			"s3://medallion-lake-prod-999988887777/foundation/models",
			spy.CreatedRepositories[0].StorageNamespace,
		)
	})
}

func TestProvisionCommandCreateAllRepositories(t *testing.T) {
	t.Parallel()

	t.Run("should provision every catalog repository", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyVersioningRepository{GetRepositoryErr: notFound()}
		cmd := commands.NewProvisionCommand(&doubles.StubVersioningFactory{Repository: spy}, entities.Catalog())
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		summary := cmd.CreateAllRepositories(context.Background(), settings)

		// then
		assert.Equal(t, 14, summary.Total)
		assert.Equal(t, 14, summary.Succeeded)
		assert.Zero(t, summary.Failed)
		assert.Len(t, summary.Success, 14)
		assert.Empty(t, summary.Failures)
		assert.Len(t, spy.CreatedRepositories, 14)
	})

	t.Run("should isolate failures per repository", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyVersioningRepository{
			GetRepositoryErr:    notFound(),
			CreateRepositoryErr: &entities.APIError{Kind: entities.OutcomeServerError, Status: http.StatusBadGateway},
		}
		cmd := commands.NewProvisionCommand(&doubles.StubVersioningFactory{Repository: spy}, entities.Catalog())
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		summary := cmd.CreateAllRepositories(context.Background(), settings)

		// then
		assert.Equal(t, 14, summary.Total)
		assert.Zero(t, summary.Succeeded)
		assert.Equal(t, 14, summary.Failed)
		assert.Len(t, summary.Failures, 14)
		assert.Len(t, spy.CreatedRepositories, 14, "every repository must still be attempted")
	})

	t.Run("should count a factory failure against every repository", func(t *testing.T) {
		t.Parallel()

		// given
		factory := &doubles.StubVersioningFactory{OpenErr: errors.New("no credentials")}
		cmd := commands.NewProvisionCommand(factory, entities.Catalog())
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		summary := cmd.CreateAllRepositories(context.Background(), settings)

		// then
		assert.Equal(t, summary.Total, summary.Failed)
		assert.Contains(t, summary.Failures, "foundation-metadata")
	})
}
