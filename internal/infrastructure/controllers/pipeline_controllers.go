package controllers

import (
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/lakegate/internal/domain/commands"
	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// UploadController handles the "upload" subcommand.
type UploadController struct {
	command  commands.Pipeline
	settings repositories.SettingsRepository
}

// NewUploadController creates a new UploadController.
func NewUploadController(command commands.Pipeline, settings repositories.SettingsRepository) *UploadController {
	return &UploadController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the upload controller.
func (it *UploadController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "upload <repository> <branch> <path> <file>",
		Short: "Upload a local file to a branch",
		Args:  cobra.ExactArgs(4), //nolint:mnd // repository, branch, path and file
	}
}

// Execute uploads the file.
func (it *UploadController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(args[3])
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", args[3], err)
	}
	contentType, _ := cmd.Flags().GetString("content-type")

	if uploadErr := it.command.UploadObject(
		commandContext(cmd), settings, args[0], args[1], args[2], content, contentType,
	); uploadErr != nil {
		return uploadErr
	}
	logger.Infof("Uploaded %s to %s/%s/%s", args[3], args[0], args[1], args[2])
	return nil
}

// AddFlags adds the upload flags to the given Cobra command.
func (it *UploadController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("content-type", "", "Content-Type of the object (default: application/octet-stream)")
}

// CommitController handles the "commit" subcommand.
type CommitController struct {
	command  commands.Pipeline
	settings repositories.SettingsRepository
}

// NewCommitController creates a new CommitController.
func NewCommitController(command commands.Pipeline, settings repositories.SettingsRepository) *CommitController {
	return &CommitController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the commit controller.
func (it *CommitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "commit <repository> <branch> <message>",
		Short: "Commit the pending changes of a branch",
		Args:  cobra.ExactArgs(3), //nolint:mnd // repository, branch and message
	}
}

// Execute commits and prints the commit id.
func (it *CommitController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		return err
	}
	metadata, _ := cmd.Flags().GetStringToString("meta")

	commit, err := it.command.CommitChanges(commandContext(cmd), settings, args[0], args[1], args[2], metadata)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), commit.ID)
	return err
}

// AddFlags adds the commit flags to the given Cobra command.
func (it *CommitController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringToString("meta", nil, "Commit metadata as key=value pairs")
}

// GetController handles the "get" subcommand.
type GetController struct {
	command  commands.Pipeline
	settings repositories.SettingsRepository
}

// NewGetController creates a new GetController.
func NewGetController(command commands.Pipeline, settings repositories.SettingsRepository) *GetController {
	return &GetController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the get controller.
func (it *GetController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "get <repository> <ref> <path>",
		Short: "Read an object at a ref",
		Args:  cobra.ExactArgs(3), //nolint:mnd // repository, ref and path
	}
}

// Execute writes the object to --output or standard output.
func (it *GetController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		return err
	}

	content, err := it.command.GetObject(commandContext(cmd), settings, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	if content == nil {
		return fmt.Errorf("object %q not found at %s/%s", args[2], args[0], args[1])
	}

	output, _ := cmd.Flags().GetString("output")
	if output != "" {
		return os.WriteFile(output, content, 0o600) //nolint:mnd // owner read/write
	}
	_, err = cmd.OutOrStdout().Write(content)
	return err
}

// AddFlags adds the get flags to the given Cobra command.
func (it *GetController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Write the object to this file instead of standard output")
}

// NamespaceController handles the "namespace" subcommand.
type NamespaceController struct {
	command  commands.Pipeline
	settings repositories.SettingsRepository
}

// NewNamespaceController creates a new NamespaceController.
func NewNamespaceController(
	command commands.Pipeline,
	settings repositories.SettingsRepository,
) *NamespaceController {
	return &NamespaceController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the namespace controller.
func (it *NamespaceController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "namespace <pipeline> <layer>",
		Short: "Resolve the repository name and storage namespace of a pipeline layer",
		Args:  cobra.ExactArgs(2), //nolint:mnd // pipeline and layer
	}
}

// Execute prints the resolved identifiers.
func (it *NamespaceController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		return err
	}
	return printYAML(cmd, map[string]string{
		"repository":        it.command.RepositoryName(args[0], args[1]),
		"storage_namespace": it.command.StorageNamespace(settings, args[0], args[1]),
	})
}

// StartRunController handles the "start-run" subcommand.
type StartRunController struct {
	command  commands.Pipeline
	settings repositories.SettingsRepository
}

// NewStartRunController creates a new StartRunController.
func NewStartRunController(
	command commands.Pipeline,
	settings repositories.SettingsRepository,
) *StartRunController {
	return &StartRunController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the start-run controller.
func (it *StartRunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "start-run <pipeline> <layer> [run-id]",
		Short: "Create the branch a pipeline run writes to",
		Args:  cobra.RangeArgs(2, 3), //nolint:mnd // pipeline, layer and optional run id
	}
}

// Execute creates the run branch and prints its name.
func (it *StartRunController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		return err
	}
	runID := ""
	if len(args) == 3 { //nolint:mnd // optional run id
		runID = args[2]
	}

	branch, result := it.command.StartRun(commandContext(cmd), settings, args[0], args[1], runID)
	if !result.Succeeded() {
		return report(cmd, result)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), branch)
	return err
}

// FinishRunController handles the "finish-run" subcommand.
type FinishRunController struct {
	command  commands.Pipeline
	settings repositories.SettingsRepository
}

// NewFinishRunController creates a new FinishRunController.
func NewFinishRunController(
	command commands.Pipeline,
	settings repositories.SettingsRepository,
) *FinishRunController {
	return &FinishRunController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the finish-run controller.
func (it *FinishRunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "finish-run <pipeline> <layer> <branch>",
		Short: "Merge a run branch into main and delete it",
		Args:  cobra.ExactArgs(3), //nolint:mnd // pipeline, layer and branch
	}
}

// Execute finishes the run.
func (it *FinishRunController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, it.settings)
	if err != nil {
		return err
	}
	return report(cmd, it.command.FinishRun(commandContext(cmd), settings, args[0], args[1], args[2]))
}
