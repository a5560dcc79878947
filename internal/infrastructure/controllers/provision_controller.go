package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/lakegate/internal/domain/commands"
	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// ProvisionController handles the "provision" subcommand.
type ProvisionController struct {
	command  commands.Provision
	settings repositories.SettingsRepository
}

// NewProvisionController creates a new ProvisionController.
func NewProvisionController(
	command commands.Provision,
	settings repositories.SettingsRepository,
) *ProvisionController {
	return &ProvisionController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the provision controller.
func (it *ProvisionController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "provision [repository]",
		Short: "Create the catalog repositories on the versioning server",
		Long: `Ensure the repositories the platform needs exist.

Without an argument every catalog repository is provisioned and a summary is
printed. Existing repositories are left untouched. New repositories get the
develop and staging branches cut from main.`,
		Args: cobra.MaximumNArgs(1),
	}
}

// Execute provisions one repository or the whole catalog.
func (it *ProvisionController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	if len(args) == 1 {
		cfg, ok := entities.FindRepositoryConfig(args[0])
		if !ok {
			return fmt.Errorf("repository %q is not in the catalog", args[0])
		}
		return report(cmd, it.command.CreateRepository(ctx, settings, cfg))
	}

	logger.Infof("Provisioning %d repositories in %s", len(entities.Catalog()), settings.Environment)
	summary := it.command.CreateAllRepositories(ctx, settings)
	if printErr := printYAML(cmd, summary); printErr != nil {
		return printErr
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d repositories failed to provision", summary.Failed, summary.Total)
	}
	return nil
}
