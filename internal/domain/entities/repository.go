package entities

import (
	"encoding/json"
	"time"
)

// DefaultBranch is the integration branch every repository is created with.
const DefaultBranch = "main"

// StandardBranches are cut from DefaultBranch when a repository is provisioned.
var StandardBranches = []string{"develop", "staging"} //nolint:gochecknoglobals // fixed catalog data

// Repository is a versioned container for one dataset at one medallion layer.
type Repository struct {
	Name             string
	StorageNamespace string
	DefaultBranch    string
	CreationDate     time.Time
}

// Branch is a named pointer inside a repository.
type Branch struct {
	Repository string
	Name       string
	Source     string
	CommitID   string
}

// CommitInput is what a pipeline run attaches to a commit.
type CommitInput struct {
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Commit is an immutable snapshot created on a branch.
type Commit struct {
	ID           string
	Message      string
	Committer    string
	Metadata     map[string]string
	Parents      []string
	CreationDate time.Time
}

// DiffTypeConflict marks a path changed on both sides since the common ancestor.
const DiffTypeConflict = "conflict"

// DiffEntry is one changed path between two refs.
type DiffEntry struct {
	Type      string `json:"type"`
	Path      string `json:"path"`
	PathType  string `json:"path_type,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

// IsConflict reports whether the entry blocks a merge.
func (d DiffEntry) IsConflict() bool {
	return d.Type == DiffTypeConflict
}

// MergeRequest describes a single attempt to fold Source into Destination.
type MergeRequest struct {
	Repository  string `validate:"required"`
	Source      string `validate:"required,safe_ref"`
	Destination string `validate:"required,safe_ref,nefield=Source"`
}

// MergeResult echoes the server's merge-commit answer back to the caller.
type MergeResult struct {
	Reference string
	Raw       json.RawMessage
}
