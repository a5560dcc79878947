//go:build unit

package versioning_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
	"github.com/rios0rios0/lakegate/internal/infrastructure/repositories/versioning"
	"github.com/rios0rios0/lakegate/internal/infrastructure/resilient"
	"github.com/rios0rios0/lakegate/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/lakegate/test/infrastructure/repositorydoubles"
)

// scriptedDoer answers requests with queued responses and records every request.
type scriptedDoer struct {
	responses []*resilient.Response
	err       error
	requests  []resilient.Request
}

func (d *scriptedDoer) Do(_ context.Context, req resilient.Request) (*resilient.Response, error) {
	d.requests = append(d.requests, req)
	if d.err != nil {
		return nil, d.err
	}
	resp := d.responses[0]
	if len(d.responses) > 1 {
		d.responses = d.responses[1:]
	}
	return resp, nil
}

func answer(status int, body string) *resilient.Response {
	return &resilient.Response{StatusCode: status, Body: []byte(body)}
}

func TestListRepositories(t *testing.T) {
	t.Parallel()

	t.Run("should follow pagination until the last page", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{
			answer(http.StatusOK, `{"pagination":{"has_more":true,"next_offset":"consultation-gold"},
				"results":[{"id":"consultation-bronze"},{"id":"consultation-gold"}]}`),
			answer(http.StatusOK, `{"pagination":{"has_more":false},"results":[{"id":"podcast-gold"}]}`),
		}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		repos, err := repository.ListRepositories(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, repos, 3)
		assert.Equal(t, "podcast-gold", repos[2].Name)
		require.Len(t, doer.requests, 2)
		assert.Empty(t, doer.requests[0].Query.Get("after"))
		assert.Equal(t, "consultation-gold", doer.requests[1].Query.Get("after"))
		assert.Equal(t, "1000", doer.requests[1].Query.Get("amount"))
	})

	t.Run("should fail when any page fails", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{
			answer(http.StatusOK, `{"pagination":{"has_more":true,"next_offset":"x"},"results":[]}`),
			answer(http.StatusBadGateway, "bad gateway"),
		}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		repos, err := repository.ListRepositories(context.Background())

		// then
		require.Error(t, err)
		assert.Nil(t, repos)
		assert.Equal(t, entities.OutcomeServerError, entities.KindOf(err))
	})
}

func TestGetRepository(t *testing.T) {
	t.Parallel()

	t.Run("should map the server answer", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{answer(http.StatusOK,
			`{"id":"consultation-silver","default_branch":"main","creation_date":1700000000,
			"storage_namespace":"s3://medallion-lake-dev-1/silver/consultation"}`)}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		repo, err := repository.GetRepository(context.Background(), "consultation-silver")

		// then
		require.NoError(t, err)
		assert.Equal(t, "consultation-silver", repo.Name)
		assert.Equal(t, "main", repo.DefaultBranch)
		assert.Equal(t, int64(1700000000), repo.CreationDate.Unix())
		assert.Equal(t, "/repositories/consultation-silver", doer.requests[0].Path)
		assert.False(t, doer.requests[0].Mutation)
	})

	t.Run("should classify a missing repository and keep the body", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{answer(http.StatusNotFound, `{"message":"not found"}`)}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		_, err := repository.GetRepository(context.Background(), "scratch")

		// then
		var apiErr *entities.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, entities.OutcomeNotFound, apiErr.Kind)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.JSONEq(t, `{"message":"not found"}`, apiErr.Body)
	})

	t.Run("should pass transport errors through", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{err: entities.NewTransportError(errors.New("connection refused"))}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		_, err := repository.GetRepository(context.Background(), "scratch")

		// then
		assert.Equal(t, entities.OutcomeTransportError, entities.KindOf(err))
	})
}

func TestCreateRepository(t *testing.T) {
	t.Parallel()

	t.Run("should post the repository with main as default branch", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{answer(http.StatusCreated, "")}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		created, err := repository.CreateRepository(context.Background(), entities.Repository{
			Name:             "consultation-silver",
			StorageNamespace: "s3://bucket/silver/consultation",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "main", created.DefaultBranch)
		assert.Equal(t, http.MethodPost, doer.requests[0].Method)
		assert.True(t, doer.requests[0].Mutation)
	})

	t.Run("should report a concurrent creation as already exists", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{answer(http.StatusConflict, "exists")}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		_, err := repository.CreateRepository(context.Background(), entities.Repository{Name: "consultation-silver"})

		// then
		assert.Equal(t, entities.OutcomeAlreadyExists, entities.KindOf(err))
	})
}

func TestBranches(t *testing.T) {
	t.Parallel()

	t.Run("should escape branch paths", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{answer(http.StatusOK, `{"commit_id":"abc"}`)}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		branch, err := repository.GetBranch(context.Background(), "consultation-silver", "feature/x")

		// then
		require.NoError(t, err)
		assert.Equal(t, "abc", branch.CommitID)
		assert.Equal(t, "/repositories/consultation-silver/branches/feature%2Fx", doer.requests[0].Path)
	})

	t.Run("should report a 409 on branch creation as already exists", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{answer(http.StatusConflict, "")}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		err := repository.CreateBranch(context.Background(), entities.Branch{
			Repository: "consultation-silver", Name: "run-1", Source: "main",
		})

		// then
		assert.Equal(t, entities.OutcomeAlreadyExists, entities.KindOf(err))
	})

	t.Run("should report a missing branch on delete as not found", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{answer(http.StatusNotFound, "")}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		err := repository.DeleteBranch(context.Background(), "consultation-silver", "run-1")

		// then
		assert.Equal(t, entities.OutcomeNotFound, entities.KindOf(err))
		assert.Equal(t, http.MethodDelete, doer.requests[0].Method)
	})
}

func TestDiffAndMerge(t *testing.T) {
	t.Parallel()

	t.Run("should collect every diff page", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{
			answer(http.StatusOK, `{"pagination":{"has_more":true,"next_offset":"a"},
				"results":[{"type":"added","path":"a"}]}`),
			answer(http.StatusOK, `{"pagination":{"has_more":false},"results":[{"type":"conflict","path":"b"}]}`),
		}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		entries, err := repository.Diff(context.Background(), "consultation-silver", "run-1", "main")

		// then
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[1].IsConflict())
		assert.Equal(t, "/repositories/consultation-silver/refs/run-1/diff/main", doer.requests[0].Path)
	})

	t.Run("should return the merge reference and raw answer", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{answer(http.StatusOK, `{"reference":"abc123"}`)}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		merged, err := repository.Merge(context.Background(), "consultation-silver", "run-1", "main", "msg")

		// then
		require.NoError(t, err)
		assert.Equal(t, "abc123", merged.Reference)
		assert.JSONEq(t, `{"reference":"abc123"}`, string(merged.Raw))
		assert.Equal(t, "/repositories/consultation-silver/refs/main/merge", doer.requests[0].Path)
	})

	t.Run("should classify a merge conflict", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{answer(http.StatusConflict, "conflict")}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		_, err := repository.Merge(context.Background(), "consultation-silver", "run-1", "main", "msg")

		// then
		assert.Equal(t, entities.OutcomeConflict, entities.KindOf(err))
	})
}

func TestObjects(t *testing.T) {
	t.Parallel()

	t.Run("should upload with an octet-stream default", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{answer(http.StatusCreated, "{}")}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		err := repository.UploadObject(context.Background(), "consultation-bronze", "run-1", "raw/a.json", nil, "")

		// then
		require.NoError(t, err)
		req := doer.requests[0]
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "application/octet-stream", req.ContentType)
		assert.Equal(t, "raw/a.json", req.Query.Get("path"))
		assert.NotNil(t, req.Body)
	})

	t.Run("should return the object body", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{answer(http.StatusOK, "payload")}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		content, err := repository.GetObject(context.Background(), "consultation-bronze", "main", "a.json")

		// then
		require.NoError(t, err)
		assert.Equal(t, "payload", string(content))
	})
}

func TestCommit(t *testing.T) {
	t.Parallel()

	t.Run("should map the created commit", func(t *testing.T) {
		t.Parallel()

		// given
		doer := &scriptedDoer{responses: []*resilient.Response{answer(http.StatusCreated,
			`{"id":"c0ffee","message":"ingest","metadata":{"run":"42"},"parents":["p1"]}`)}}
		repository := versioning.NewVersioningServerRepository(doer)

		// when
		commit, err := repository.Commit(context.Background(), "consultation-bronze", "run-42",
			entities.CommitInput{Message: "ingest", Metadata: map[string]string{"run": "42"}})

		// then
		require.NoError(t, err)
		assert.Equal(t, "c0ffee", commit.ID)
		assert.Equal(t, []string{"p1"}, commit.Parents)
		assert.Equal(t, "/repositories/consultation-bronze/branches/run-42/commits", doer.requests[0].Path)
	})
}

func TestCommitWithoutBody(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"", "created"} {
		t.Run("should report success for a created commit with body "+strconv.Quote(body), func(t *testing.T) {
			t.Parallel()

			// given
			doer := &scriptedDoer{responses: []*resilient.Response{answer(http.StatusCreated, body)}}
			repository := versioning.NewVersioningServerRepository(doer)
			input := entities.CommitInput{Message: "ingest", Metadata: map[string]string{"run": "42"}}

			// when
			commit, err := repository.Commit(context.Background(), "consultation-bronze", "run-42", input)

			// then
			require.NoError(t, err)
			assert.Equal(t, "ingest", commit.Message)
			assert.Equal(t, map[string]string{"run": "42"}, commit.Metadata)
		})
	}
}

func TestVersioningServerRepositoryOverHTTP(t *testing.T) {
	t.Parallel()

	t.Run("should reach the server through the resilient client", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/repositories/consultation-silver" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"consultation-silver","default_branch":"main"}`))
		}))
		defer server.Close()
		settings := entitybuilders.NewSettingsBuilder().WithEndpoint(server.URL).BuildSettings()
		credentials := &doubles.StubCredentialsRepository{
			Value: repositories.Credentials{AccessKeyID: "AKIATEST", SecretAccessKey: "secret-test"},
		}
		client, err := resilient.NewClient(settings, credentials, nil)
		require.NoError(t, err)
		repository := versioning.NewVersioningServerRepository(client)

		// when
		repo, getErr := repository.GetRepository(context.Background(), "consultation-silver")
		_, missingErr := repository.GetRepository(context.Background(), "scratch")

		// then
		require.NoError(t, getErr)
		assert.Equal(t, "main", repo.DefaultBranch)
		assert.Equal(t, entities.OutcomeNotFound, entities.KindOf(missingErr))
	})
}
