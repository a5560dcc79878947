package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/lakegate/internal/domain/commands"
	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

func mergeRequest(args []string) entities.MergeRequest {
	return entities.MergeRequest{Repository: args[0], Source: args[1], Destination: args[2]}
}

// MergeController handles the "merge" subcommand.
type MergeController struct {
	command  commands.Merge
	settings repositories.SettingsRepository
}

// NewMergeController creates a new MergeController.
func NewMergeController(command commands.Merge, settings repositories.SettingsRepository) *MergeController {
	return &MergeController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the merge controller.
func (it *MergeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "merge <repository> <source> <destination>",
		Short: "Merge source into destination after a conflict check",
		Long: `Validate the request, diff source against destination and merge only
when no path was changed on both sides. Conflicts are never resolved here.`,
		Args: cobra.ExactArgs(3), //nolint:mnd // repository, source and destination
	}
}

// Execute merges the branches.
func (it *MergeController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		return err
	}
	return report(cmd, it.command.Merge(commandContext(cmd), settings, mergeRequest(args)))
}

// ConflictsController handles the "conflicts" subcommand.
type ConflictsController struct {
	command  commands.Merge
	settings repositories.SettingsRepository
}

// NewConflictsController creates a new ConflictsController.
func NewConflictsController(command commands.Merge, settings repositories.SettingsRepository) *ConflictsController {
	return &ConflictsController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the conflicts controller.
func (it *ConflictsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "conflicts <repository> <source> <destination>",
		Short: "Report whether source can be merged into destination",
		Args:  cobra.ExactArgs(3), //nolint:mnd // repository, source and destination
	}
}

// Execute runs the conflict check.
func (it *ConflictsController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		return err
	}
	return report(cmd, it.command.CheckConflicts(commandContext(cmd), settings, mergeRequest(args)))
}

// ValidateMergeController handles the "validate-merge" subcommand.
type ValidateMergeController struct {
	command commands.Merge
}

// NewValidateMergeController creates a new ValidateMergeController.
func NewValidateMergeController(command commands.Merge) *ValidateMergeController {
	return &ValidateMergeController{command: command}
}

// GetBind returns the Cobra command metadata for the validate-merge controller.
func (it *ValidateMergeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "validate-merge <repository> <source> <destination>",
		Short: "Check a merge request offline",
		Args:  cobra.ExactArgs(3), //nolint:mnd // repository, source and destination
	}
}

// Execute validates the request without settings or network access.
func (it *ValidateMergeController) Execute(cmd *cobra.Command, args []string) error {
	return report(cmd, it.command.Validate(mergeRequest(args)))
}
