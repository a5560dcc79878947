//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/lakegate/internal/domain/commands"
	"github.com/rios0rios0/lakegate/internal/domain/entities"
)

// BranchCall records the arguments of a branch command invocation.
type BranchCall struct {
	Repository string
	Branch     string
	Source     string
}

// StubBranchCommand is a stub implementation of commands.Branch.
type StubBranchCommand struct {
	CreateResult entities.Result
	DeleteResult entities.Result
	Creates      []BranchCall
	Deletes      []BranchCall
	LastSettings *entities.Settings
}

var _ commands.Branch = (*StubBranchCommand)(nil)

func (s *StubBranchCommand) Create(
	_ context.Context,
	settings *entities.Settings,
	repo, branch, source string,
) entities.Result {
	s.LastSettings = settings
	s.Creates = append(s.Creates, BranchCall{Repository: repo, Branch: branch, Source: source})
	return s.CreateResult
}

func (s *StubBranchCommand) Delete(
	_ context.Context,
	settings *entities.Settings,
	repo, branch string,
) entities.Result {
	s.LastSettings = settings
	s.Deletes = append(s.Deletes, BranchCall{Repository: repo, Branch: branch})
	return s.DeleteResult
}
