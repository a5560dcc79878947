package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// resultView is how a command result is printed.
type resultView struct {
	Outcome   string               `yaml:"outcome"`
	Message   string               `yaml:"message"`
	Reference string               `yaml:"reference,omitempty"`
	Conflicts []entities.DiffEntry `yaml:"conflicts,omitempty"`
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func loadSettings(cmd *cobra.Command, settingsRepo repositories.SettingsRepository) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := settingsRepo.Load(commandContext(cmd), configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// printYAML writes value to the command's output.
func printYAML(cmd *cobra.Command, value interface{}) error {
	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	return encoder.Close()
}

// report prints result and turns a failed outcome into an error.
func report(cmd *cobra.Command, result entities.Result) error {
	view := resultView{
		Outcome:   result.Outcome.String(),
		Message:   result.Message,
		Conflicts: result.Conflicts,
	}
	if result.Merge != nil {
		view.Reference = result.Merge.Reference
	}
	if err := printYAML(cmd, view); err != nil {
		return err
	}
	if !result.Succeeded() {
		return fmt.Errorf("%s: %s", result.Outcome, result.Message)
	}
	return nil
}
