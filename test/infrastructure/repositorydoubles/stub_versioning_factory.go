//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// StubVersioningFactory implements repositories.VersioningFactory and always
// opens the configured repository.
type StubVersioningFactory struct {
	Repository repositories.VersioningRepository
	OpenErr    error
	OpenCount  int
}

var _ repositories.VersioningFactory = (*StubVersioningFactory)(nil)

func (f *StubVersioningFactory) Open(_ *entities.Settings) (repositories.VersioningRepository, error) {
	f.OpenCount++
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	return f.Repository, nil
}
