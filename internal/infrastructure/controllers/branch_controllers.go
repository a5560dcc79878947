package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/lakegate/internal/domain/commands"
	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// CreateBranchController handles the "create-branch" subcommand.
type CreateBranchController struct {
	command  commands.Branch
	settings repositories.SettingsRepository
}

// NewCreateBranchController creates a new CreateBranchController.
func NewCreateBranchController(
	command commands.Branch,
	settings repositories.SettingsRepository,
) *CreateBranchController {
	return &CreateBranchController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the create-branch controller.
func (it *CreateBranchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "create-branch <repository> <branch>",
		Short: "Create a branch (no-op when it already exists)",
		Args:  cobra.ExactArgs(2), //nolint:mnd // repository and branch
	}
}

// Execute creates the branch.
func (it *CreateBranchController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		return err
	}
	source, _ := cmd.Flags().GetString("source")
	return report(cmd, it.command.Create(commandContext(cmd), settings, args[0], args[1], source))
}

// AddFlags adds the create-branch flags to the given Cobra command.
func (it *CreateBranchController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", entities.DefaultBranch, "Branch or commit to cut the new branch from")
}

// DeleteBranchController handles the "delete-branch" subcommand.
type DeleteBranchController struct {
	command  commands.Branch
	settings repositories.SettingsRepository
}

// NewDeleteBranchController creates a new DeleteBranchController.
func NewDeleteBranchController(
	command commands.Branch,
	settings repositories.SettingsRepository,
) *DeleteBranchController {
	return &DeleteBranchController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the delete-branch controller.
func (it *DeleteBranchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "delete-branch <repository> <branch>",
		Short: "Delete a branch (the default branch is always refused)",
		Args:  cobra.ExactArgs(2), //nolint:mnd // repository and branch
	}
}

// Execute deletes the branch.
func (it *DeleteBranchController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		return err
	}
	return report(cmd, it.command.Delete(commandContext(cmd), settings, args[0], args[1]))
}
