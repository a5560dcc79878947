package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	for _, constructor := range []interface{}{
		NewProvisionController,
		NewStatusController,
		NewCatalogController,
		NewCreateBranchController,
		NewDeleteBranchController,
		NewMergeController,
		NewConflictsController,
		NewValidateMergeController,
		NewUploadController,
		NewCommitController,
		NewGetController,
		NewNamespaceController,
		NewStartRunController,
		NewFinishRunController,
		NewControllers,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	provisionController *ProvisionController,
	statusController *StatusController,
	catalogController *CatalogController,
	createBranchController *CreateBranchController,
	deleteBranchController *DeleteBranchController,
	mergeController *MergeController,
	conflictsController *ConflictsController,
	validateMergeController *ValidateMergeController,
	uploadController *UploadController,
	commitController *CommitController,
	getController *GetController,
	namespaceController *NamespaceController,
	startRunController *StartRunController,
	finishRunController *FinishRunController,
) *[]entities.Controller {
	return &[]entities.Controller{
		provisionController,
		statusController,
		catalogController,
		createBranchController,
		deleteBranchController,
		mergeController,
		conflictsController,
		validateMergeController,
		uploadController,
		commitController,
		getController,
		namespaceController,
		startRunController,
		finishRunController,
	}
}
