//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// StubIdentityRepository implements repositories.IdentityRepository. Fields
// of Identity fill in whatever the known identity lacks.
type StubIdentityRepository struct {
	Identity   entities.Identity
	ResolveErr error
	Calls      int
	LastKnown  entities.Identity
}

var _ repositories.IdentityRepository = (*StubIdentityRepository)(nil)

func (s *StubIdentityRepository) Resolve(_ context.Context, known entities.Identity) (entities.Identity, error) {
	s.Calls++
	s.LastKnown = known
	if s.ResolveErr != nil {
		return known, s.ResolveErr
	}
	resolved := known
	if resolved.AccountID == "" {
		resolved.AccountID = s.Identity.AccountID
	}
	if resolved.Region == "" {
		resolved.Region = s.Identity.Region
	}
	return resolved, nil
}
