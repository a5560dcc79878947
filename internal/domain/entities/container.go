package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
// Settings are not registered here: they need a config path and a resolved
// identity, both owned by the repositories layer.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(Catalog)
}
