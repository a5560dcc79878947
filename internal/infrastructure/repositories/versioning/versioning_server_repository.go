package versioning

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
	"github.com/rios0rios0/lakegate/internal/infrastructure/resilient"
)

const pageSize = 1000

// Doer sends a request to the versioning server.
type Doer interface {
	Do(ctx context.Context, req resilient.Request) (*resilient.Response, error)
}

// VersioningServerRepository implements repositories.VersioningRepository
// against the server's REST API rooted at {endpoint}/api/v1.
type VersioningServerRepository struct {
	client Doer
}

var _ repositories.VersioningRepository = (*VersioningServerRepository)(nil)

// NewVersioningServerRepository creates the adapter on top of a resilient client.
func NewVersioningServerRepository(client Doer) *VersioningServerRepository {
	return &VersioningServerRepository{client: client}
}

// ListRepositories follows pagination until every repository is listed.
func (it *VersioningServerRepository) ListRepositories(ctx context.Context) ([]entities.Repository, error) {
	var all []entities.Repository
	after := ""

	for {
		resp, err := it.client.Do(ctx, resilient.Request{
			Method: http.MethodGet,
			Path:   "/repositories",
			Query:  pageQuery(after),
		})
		if err != nil {
			return nil, err
		}
		if classifyErr := classify(resp, http.StatusOK); classifyErr != nil {
			return nil, classifyErr
		}

		var page repositoryList
		if decodeErr := resp.DecodeJSON(&page); decodeErr != nil {
			return nil, decodeErr
		}
		for _, repo := range page.Results {
			all = append(all, repo.toEntity())
		}

		if !page.Pagination.HasMore || page.Pagination.NextOffset == "" {
			break
		}
		after = page.Pagination.NextOffset
	}

	return all, nil
}

func (it *VersioningServerRepository) GetRepository(
	ctx context.Context,
	name string,
) (*entities.Repository, error) {
	resp, err := it.client.Do(ctx, resilient.Request{
		Method: http.MethodGet,
		Path:   "/repositories/" + url.PathEscape(name),
	})
	if err != nil {
		return nil, err
	}
	if classifyErr := classify(resp, http.StatusOK); classifyErr != nil {
		return nil, classifyErr
	}

	var dto repositoryDTO
	if decodeErr := resp.DecodeJSON(&dto); decodeErr != nil {
		return nil, decodeErr
	}
	repo := dto.toEntity()
	return &repo, nil
}

func (it *VersioningServerRepository) CreateRepository(
	ctx context.Context,
	repo entities.Repository,
) (*entities.Repository, error) {
	defaultBranch := repo.DefaultBranch
	if defaultBranch == "" {
		defaultBranch = entities.DefaultBranch
	}

	resp, err := it.client.Do(ctx, resilient.Request{
		Method: http.MethodPost,
		Path:   "/repositories",
		JSON: repositoryCreation{
			Name:             repo.Name,
			StorageNamespace: repo.StorageNamespace,
			DefaultBranch:    defaultBranch,
		},
		Mutation: true,
	})
	if err != nil {
		return nil, err
	}
	if classifyErr := classifyCreation(resp); classifyErr != nil {
		return nil, classifyErr
	}

	created := repo
	created.DefaultBranch = defaultBranch
	var dto repositoryDTO
	if len(resp.Body) > 0 && resp.DecodeJSON(&dto) == nil && dto.ID != "" {
		created = dto.toEntity()
	}
	return &created, nil
}

func (it *VersioningServerRepository) GetBranch(
	ctx context.Context,
	repo, branch string,
) (*entities.Branch, error) {
	resp, err := it.client.Do(ctx, resilient.Request{
		Method: http.MethodGet,
		Path:   branchPath(repo, branch),
	})
	if err != nil {
		return nil, err
	}
	if classifyErr := classify(resp, http.StatusOK); classifyErr != nil {
		return nil, classifyErr
	}

	var dto branchDTO
	if decodeErr := resp.DecodeJSON(&dto); decodeErr != nil {
		return nil, decodeErr
	}
	return &entities.Branch{Repository: repo, Name: branch, CommitID: dto.CommitID}, nil
}

func (it *VersioningServerRepository) CreateBranch(ctx context.Context, branch entities.Branch) error {
	resp, err := it.client.Do(ctx, resilient.Request{
		Method:   http.MethodPost,
		Path:     "/repositories/" + url.PathEscape(branch.Repository) + "/branches",
		JSON:     branchCreation{Name: branch.Name, Source: branch.Source},
		Mutation: true,
	})
	if err != nil {
		return err
	}
	return classifyCreation(resp)
}

func (it *VersioningServerRepository) DeleteBranch(ctx context.Context, repo, branch string) error {
	resp, err := it.client.Do(ctx, resilient.Request{
		Method:   http.MethodDelete,
		Path:     branchPath(repo, branch),
		Mutation: true,
	})
	if err != nil {
		return err
	}
	return classify(resp, http.StatusNoContent)
}

func (it *VersioningServerRepository) Commit(
	ctx context.Context,
	repo, branch string,
	input entities.CommitInput,
) (*entities.Commit, error) {
	resp, err := it.client.Do(ctx, resilient.Request{
		Method:   http.MethodPost,
		Path:     branchPath(repo, branch) + "/commits",
		JSON:     input,
		Mutation: true,
	})
	if err != nil {
		return nil, err
	}
	if classifyErr := classify(resp, http.StatusCreated); classifyErr != nil {
		return nil, classifyErr
	}

	// the commit exists once the server answered 201, whatever the body holds
	commit := entities.Commit{Message: input.Message, Metadata: input.Metadata}
	var dto commitDTO
	if len(resp.Body) > 0 && resp.DecodeJSON(&dto) == nil && dto.ID != "" {
		commit = dto.toEntity()
	}
	return &commit, nil
}

// Diff lists changes between source and destination, following pagination.
// Any failing page fails the whole diff.
func (it *VersioningServerRepository) Diff(
	ctx context.Context,
	repo, source, destination string,
) ([]entities.DiffEntry, error) {
	var all []entities.DiffEntry
	after := ""
	path := fmt.Sprintf("/repositories/%s/refs/%s/diff/%s",
		url.PathEscape(repo), url.PathEscape(source), url.PathEscape(destination))

	for {
		resp, err := it.client.Do(ctx, resilient.Request{
			Method: http.MethodGet,
			Path:   path,
			Query:  pageQuery(after),
		})
		if err != nil {
			return nil, err
		}
		if classifyErr := classify(resp, http.StatusOK); classifyErr != nil {
			return nil, classifyErr
		}

		var page diffList
		if decodeErr := resp.DecodeJSON(&page); decodeErr != nil {
			return nil, decodeErr
		}
		all = append(all, page.Results...)

		if !page.Pagination.HasMore || page.Pagination.NextOffset == "" {
			break
		}
		after = page.Pagination.NextOffset
	}

	return all, nil
}

func (it *VersioningServerRepository) Merge(
	ctx context.Context,
	repo, source, destination, message string,
) (*entities.MergeResult, error) {
	resp, err := it.client.Do(ctx, resilient.Request{
		Method:   http.MethodPost,
		Path:     fmt.Sprintf("/repositories/%s/refs/%s/merge", url.PathEscape(repo), url.PathEscape(destination)),
		JSON:     mergeCreation{Source: source, Message: message},
		Mutation: true,
	})
	if err != nil {
		return nil, err
	}
	if classifyErr := classify(resp, http.StatusOK); classifyErr != nil {
		return nil, classifyErr
	}

	result := &entities.MergeResult{Raw: append([]byte(nil), resp.Body...)}
	var dto mergeDTO
	if len(resp.Body) > 0 && resp.DecodeJSON(&dto) == nil {
		result.Reference = dto.Reference
	}
	return result, nil
}

func (it *VersioningServerRepository) UploadObject(
	ctx context.Context,
	repo, branch, path string,
	content []byte,
	contentType string,
) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if content == nil {
		content = []byte{}
	}

	resp, err := it.client.Do(ctx, resilient.Request{
		Method:      http.MethodPut,
		Path:        branchPath(repo, branch) + "/objects",
		Query:       url.Values{"path": []string{path}},
		Body:        content,
		ContentType: contentType,
		Mutation:    true,
	})
	if err != nil {
		return err
	}
	return classify(resp, http.StatusCreated)
}

func (it *VersioningServerRepository) GetObject(
	ctx context.Context,
	repo, ref, path string,
) ([]byte, error) {
	resp, err := it.client.Do(ctx, resilient.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/repositories/%s/refs/%s/objects", url.PathEscape(repo), url.PathEscape(ref)),
		Query:  url.Values{"path": []string{path}},
	})
	if err != nil {
		return nil, err
	}
	if classifyErr := classify(resp, http.StatusOK); classifyErr != nil {
		return nil, classifyErr
	}
	return resp.Body, nil
}

func branchPath(repo, branch string) string {
	return "/repositories/" + url.PathEscape(repo) + "/branches/" + url.PathEscape(branch)
}

func pageQuery(after string) url.Values {
	query := url.Values{"amount": []string{strconv.Itoa(pageSize)}}
	if after != "" {
		query.Set("after", after)
	}
	return query
}

// classify turns an unexpected status into a typed *entities.APIError.
func classify(resp *resilient.Response, expected int) error {
	if resp.StatusCode == expected {
		return nil
	}

	kind := entities.OutcomeServerError
	switch resp.StatusCode {
	case http.StatusNotFound:
		kind = entities.OutcomeNotFound
	case http.StatusConflict:
		kind = entities.OutcomeConflict
	}

	body := strings.TrimSpace(string(resp.Body))
	logger.Debugf("Versioning server answered %d (expected %d): %s", resp.StatusCode, expected, body)
	return &entities.APIError{Kind: kind, Status: resp.StatusCode, Body: body}
}

// classifyCreation treats 409 on a create as "someone else created it first".
func classifyCreation(resp *resilient.Response) error {
	if resp.StatusCode == http.StatusCreated {
		return nil
	}
	if resp.StatusCode == http.StatusConflict {
		return &entities.APIError{
			Kind:   entities.OutcomeAlreadyExists,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(resp.Body)),
		}
	}
	return classify(resp, http.StatusCreated)
}
