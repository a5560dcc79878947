//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// StubSettingsRepository implements repositories.SettingsRepository.
type StubSettingsRepository struct {
	Settings  *entities.Settings
	LoadErr   error
	LoadCount int
	LastPath  string
}

var _ repositories.SettingsRepository = (*StubSettingsRepository)(nil)

func (s *StubSettingsRepository) Load(_ context.Context, path string) (*entities.Settings, error) {
	s.LoadCount++
	s.LastPath = path
	return s.Settings, s.LoadErr
}
