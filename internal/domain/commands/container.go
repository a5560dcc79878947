package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	for _, constructor := range []interface{}{
		NewProvisionCommand,
		NewBranchCommand,
		NewMergeCommand,
		NewPipelineCommand,
		NewStatusCommand,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *ProvisionCommand) Provision {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *BranchCommand) Branch {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *MergeCommand) Merge {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *PipelineCommand) Pipeline {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *StatusCommand) Status {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
