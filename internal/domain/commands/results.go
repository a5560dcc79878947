package commands

import (
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// failure builds a result from err, keeping the server's answer in the message.
func failure(err error, format string, args ...interface{}) entities.Result {
	return entities.Result{
		Outcome: entities.KindOf(err),
		Message: fmt.Sprintf("%s: %v", fmt.Sprintf(format, args...), err),
	}
}

// rejected builds a result for a request refused before any network call.
func rejected(err error) entities.Result {
	var validationErr *entities.ValidationError
	if errors.As(err, &validationErr) {
		return entities.Result{Outcome: entities.OutcomeValidationError, Message: validationErr.Reason}
	}
	return entities.Result{Outcome: entities.OutcomeValidationError, Message: err.Error()}
}

// open returns the versioning repository for settings, or a failed result
// when the client cannot be built.
func open(
	factory repositories.VersioningFactory,
	settings *entities.Settings,
) (repositories.VersioningRepository, *entities.Result) {
	repo, err := factory.Open(settings)
	if err != nil {
		logger.Errorf("Failed to open versioning server: %v", err)
		result := entities.Result{
			Outcome: entities.OutcomeTransportError,
			Message: fmt.Sprintf("Failed to open versioning server: %v", err),
		}
		return nil, &result
	}
	return repo, nil
}
