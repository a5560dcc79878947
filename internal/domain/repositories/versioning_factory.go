package repositories

import (
	"github.com/rios0rios0/lakegate/internal/domain/entities"
)

// VersioningFactory opens a VersioningRepository for resolved settings.
// Opening the same settings twice returns the same repository, so its circuit
// breaker and connection pool are shared by every caller.
type VersioningFactory interface {
	Open(settings *entities.Settings) (VersioningRepository, error)
}
