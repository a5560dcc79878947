package entities

import (
	"errors"
	"fmt"
)

// Outcome classifies the result of a call against the versioning server so
// callers can branch on intent instead of parsing messages.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeCreated
	OutcomeAlreadyExists
	OutcomeAlreadyAbsent
	OutcomeConflict
	OutcomeNotFound
	OutcomeTransportError
	OutcomeValidationError
	OutcomeRefused
	OutcomeServerError
)

var outcomeNames = map[Outcome]string{ //nolint:gochecknoglobals // lookup table
	OutcomeSuccess:         "success",
	OutcomeCreated:         "created",
	OutcomeAlreadyExists:   "already-exists",
	OutcomeAlreadyAbsent:   "already-absent",
	OutcomeConflict:        "conflict",
	OutcomeNotFound:        "not-found",
	OutcomeTransportError:  "transport-error",
	OutcomeValidationError: "validation-error",
	OutcomeRefused:         "refused",
	OutcomeServerError:     "server-error",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// APIError is returned by the versioning adapter for every non-success answer.
// Body holds the server's response verbatim so operators can diagnose it.
type APIError struct {
	Kind   Outcome
	Status int
	Body   string
	Err    error
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil && e.Status == 0:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Body != "":
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Body)
	default:
		return fmt.Sprintf("%s (status %d)", e.Kind, e.Status)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// NewTransportError wraps a network-level failure.
func NewTransportError(err error) *APIError {
	return &APIError{Kind: OutcomeTransportError, Err: err}
}

// ValidationError rejects a request before any network call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// KindOf extracts the outcome carried by err. A nil error is a success and an
// error that is not an APIError is treated as a transport failure.
func KindOf(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return OutcomeValidationError
	}
	return OutcomeTransportError
}

// Result is what every control-plane operation hands back to its caller.
type Result struct {
	Outcome   Outcome
	Message   string
	Merge     *MergeResult
	Conflicts []DiffEntry
}

// Succeeded reports whether the intent of the operation holds on the server.
// "Already exists" and "already absent" are successes, not failures.
func (r Result) Succeeded() bool {
	switch r.Outcome {
	case OutcomeSuccess, OutcomeCreated, OutcomeAlreadyExists, OutcomeAlreadyAbsent:
		return true
	default:
		return false
	}
}
