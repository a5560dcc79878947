package versioning

import (
	"time"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
)

type pagination struct {
	HasMore    bool   `json:"has_more"`
	NextOffset string `json:"next_offset"`
	Results    int    `json:"results"`
	MaxPerPage int    `json:"max_per_page"`
}

type repositoryDTO struct {
	ID               string `json:"id"`
	CreationDate     int64  `json:"creation_date"`
	DefaultBranch    string `json:"default_branch"`
	StorageNamespace string `json:"storage_namespace"`
}

func (r repositoryDTO) toEntity() entities.Repository {
	repo := entities.Repository{
		Name:             r.ID,
		StorageNamespace: r.StorageNamespace,
		DefaultBranch:    r.DefaultBranch,
	}
	if r.CreationDate > 0 {
		repo.CreationDate = time.Unix(r.CreationDate, 0).UTC()
	}
	return repo
}

type repositoryList struct {
	Pagination pagination      `json:"pagination"`
	Results    []repositoryDTO `json:"results"`
}

type repositoryCreation struct {
	Name             string `json:"name"`
	StorageNamespace string `json:"storage_namespace"`
	DefaultBranch    string `json:"default_branch"`
}

type branchDTO struct {
	ID       string `json:"id"`
	CommitID string `json:"commit_id"`
}

type branchCreation struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

type commitDTO struct {
	ID           string            `json:"id"`
	Parents      []string          `json:"parents"`
	Committer    string            `json:"committer"`
	Message      string            `json:"message"`
	CreationDate int64             `json:"creation_date"`
	Metadata     map[string]string `json:"metadata"`
}

func (c commitDTO) toEntity() entities.Commit {
	commit := entities.Commit{
		ID:        c.ID,
		Message:   c.Message,
		Committer: c.Committer,
		Metadata:  c.Metadata,
		Parents:   c.Parents,
	}
	if c.CreationDate > 0 {
		commit.CreationDate = time.Unix(c.CreationDate, 0).UTC()
	}
	return commit
}

type diffList struct {
	Pagination pagination           `json:"pagination"`
	Results    []entities.DiffEntry `json:"results"`
}

type mergeCreation struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

type mergeDTO struct {
	Reference string `json:"reference"`
}
