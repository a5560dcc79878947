package entities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const mergeFieldsRequired = "Repository, source and destination branches are required"

var validate = newValidator() //nolint:gochecknoglobals // validator caches struct metadata

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("safe_ref", func(fl validator.FieldLevel) bool {
		return IsSafeRef(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// IsSafeRef rejects names that could be read as path traversal or that the
// server would split: "..", "//" and whitespace.
func IsSafeRef(name string) bool {
	return !strings.Contains(name, "..") &&
		!strings.Contains(name, "//") &&
		!strings.ContainsAny(name, " \t\n")
}

// ValidateMergeRequest checks a merge request without touching the network.
func ValidateMergeRequest(request MergeRequest) error {
	if strings.TrimSpace(request.Repository) == "" ||
		strings.TrimSpace(request.Source) == "" ||
		strings.TrimSpace(request.Destination) == "" {
		return &ValidationError{Reason: mergeFieldsRequired}
	}

	err := validate.Struct(request)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Reason: err.Error()}
	}

	// report in a stable order: missing fields, self-merge, then bad names
	for _, tag := range []string{"required", "nefield", "safe_ref"} {
		for _, fe := range fieldErrs {
			if fe.Tag() != tag {
				continue
			}
			switch tag {
			case "required":
				return &ValidationError{Reason: mergeFieldsRequired}
			case "nefield":
				return &ValidationError{
					Reason: fmt.Sprintf("Cannot merge branch %s into itself", request.Source),
				}
			default:
				return &ValidationError{Reason: fmt.Sprintf("Invalid branch name: '%v'", fe.Value())}
			}
		}
	}
	return &ValidationError{Reason: err.Error()}
}

// ValidateBranchName checks a branch name before it is created or deleted.
func ValidateBranchName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Reason: "Branch name is required"}
	}
	if !IsSafeRef(name) {
		return &ValidationError{Reason: fmt.Sprintf("Invalid branch name: '%s'", name)}
	}
	return nil
}

// ValidateSettings checks required configuration values.
func ValidateSettings(settings *Settings) error {
	err := validate.Struct(settings)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %q (%s)", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

// ValidateRepositoryConfig checks a catalog entry.
func ValidateRepositoryConfig(cfg RepositoryConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return &ValidationError{Reason: fmt.Sprintf("invalid repository config %q: %v", cfg.Name, err)}
	}
	return nil
}
