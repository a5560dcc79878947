package repositories

import (
	"context"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
)

// IdentityRepository resolves the deploying account and region. It is called
// once at startup and the result is frozen into entities.Settings. Fields
// already set on known are kept as-is.
type IdentityRepository interface {
	Resolve(ctx context.Context, known entities.Identity) (entities.Identity, error)
}
