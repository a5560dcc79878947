//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// StubCredentialsRepository implements repositories.CredentialsRepository and
// counts how often credentials are fetched.
type StubCredentialsRepository struct {
	SourceName     string
	Value          repositories.Credentials
	CredentialsErr error
	Calls          int
}

var _ repositories.CredentialsRepository = (*StubCredentialsRepository)(nil)

func (s *StubCredentialsRepository) Name() string {
	if s.SourceName == "" {
		return "stub"
	}
	return s.SourceName
}

func (s *StubCredentialsRepository) Credentials(_ context.Context) (repositories.Credentials, error) {
	s.Calls++
	return s.Value, s.CredentialsErr
}
