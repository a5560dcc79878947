package repositories

import (
	"context"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
)

// SettingsRepository loads and validates settings and resolves the deploying
// identity. An empty path means "search the default locations, then fall
// back to environment variables".
type SettingsRepository interface {
	Load(ctx context.Context, path string) (*entities.Settings, error)
}
