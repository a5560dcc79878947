//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/lakegate/internal/domain/commands"
	"github.com/rios0rios0/lakegate/internal/domain/entities"
)

// StubMergeCommand is a stub implementation of commands.Merge.
type StubMergeCommand struct {
	ValidateResult entities.Result
	CheckResult    entities.Result
	MergeResult    entities.Result
	Requests       []entities.MergeRequest
	MergeCount     int
	CheckCount     int
}

var _ commands.Merge = (*StubMergeCommand)(nil)

func (s *StubMergeCommand) Validate(request entities.MergeRequest) entities.Result {
	s.Requests = append(s.Requests, request)
	return s.ValidateResult
}

func (s *StubMergeCommand) CheckConflicts(
	_ context.Context,
	_ *entities.Settings,
	request entities.MergeRequest,
) entities.Result {
	s.CheckCount++
	s.Requests = append(s.Requests, request)
	return s.CheckResult
}

func (s *StubMergeCommand) Merge(
	_ context.Context,
	_ *entities.Settings,
	request entities.MergeRequest,
) entities.Result {
	s.MergeCount++
	s.Requests = append(s.Requests, request)
	return s.MergeResult
}
