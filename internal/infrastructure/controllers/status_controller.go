package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/lakegate/internal/domain/commands"
	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// StatusController handles the "status" subcommand.
type StatusController struct {
	command  commands.Status
	settings repositories.SettingsRepository
}

// NewStatusController creates a new StatusController.
func NewStatusController(command commands.Status, settings repositories.SettingsRepository) *StatusController {
	return &StatusController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the status controller.
func (it *StatusController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "status",
		Short: "Compare the catalog with the repositories on the server",
		Args:  cobra.NoArgs,
	}
}

// Execute prints present, missing and unmanaged repositories. Missing
// catalog repositories make the command fail.
func (it *StatusController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		return err
	}

	status, err := it.command.Execute(commandContext(cmd), settings)
	if err != nil {
		return err
	}
	if printErr := printYAML(cmd, status); printErr != nil {
		return printErr
	}
	if !status.IsComplete() {
		return fmt.Errorf("%d catalog repositories are missing", len(status.Missing))
	}
	return nil
}

// CatalogController handles the "catalog" subcommand.
type CatalogController struct {
	settings repositories.SettingsRepository
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(settings repositories.SettingsRepository) *CatalogController {
	return &CatalogController{settings: settings}
}

// GetBind returns the Cobra command metadata for the catalog controller.
func (it *CatalogController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "catalog",
		Short: "Print the repository catalog with resolved storage namespaces",
		Args:  cobra.NoArgs,
	}
}

type catalogEntry struct {
	Name             string `yaml:"name"`
	Description      string `yaml:"description"`
	Pipeline         string `yaml:"pipeline"`
	Layer            string `yaml:"layer"`
	StorageNamespace string `yaml:"storage_namespace"`
}

// Execute prints every catalog entry. No request is sent to the server.
func (it *CatalogController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		return err
	}

	bucket := settings.Bucket()
	catalog := entities.Catalog()
	entries := make([]catalogEntry, 0, len(catalog))
	for _, cfg := range catalog {
		entries = append(entries, catalogEntry{
			Name:             cfg.Name,
			Description:      cfg.Description,
			Pipeline:         cfg.Pipeline,
			Layer:            cfg.Layer,
			StorageNamespace: entities.StorageNamespace(cfg, bucket),
		})
	}
	return printYAML(cmd, entries)
}
