package handlers

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all event handler providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(NewBranchLifecycleHandler)
}
