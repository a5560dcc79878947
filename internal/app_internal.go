package internal

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
)

// AppInternal holds every controller mounted on the CLI.
type AppInternal struct {
	controllers []entities.Controller
	metrics     prometheus.Gatherer
}

// NewAppInternal creates the application from the aggregated controllers.
func NewAppInternal(controllers *[]entities.Controller, metrics prometheus.Gatherer) *AppInternal {
	return &AppInternal{controllers: *controllers, metrics: metrics}
}

// GetControllers returns the controllers in registration order.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

// GetMetrics returns the registry the versioning clients record traffic on.
func (it *AppInternal) GetMetrics() prometheus.Gatherer {
	return it.metrics
}
