// Package lifecycle contains the pure validation rules for ticket, contract,
// payment and work-order state changes. Functions here operate on entity
// snapshots and never touch storage; the service layer calls them before
// persisting anything.
package lifecycle

import "fmt"

// Reason classifies why a validation rejected a proposed change.
type Reason string

const (
	ReasonInvalidTransition  Reason = "invalid-transition"
	ReasonUnknownStatus      Reason = "unknown-status"
	ReasonPreconditionFailed Reason = "precondition-failed"
)

// ValidationError is a typed rejection result. It carries a machine-readable
// reason so the CRUD layer can surface a field-level message without crashing
// the request.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func newInvalidTransition(format string, args ...any) error {
	return &ValidationError{Reason: ReasonInvalidTransition, Message: fmt.Sprintf(format, args...)}
}

func newUnknownStatus(format string, args ...any) error {
	return &ValidationError{Reason: ReasonUnknownStatus, Message: fmt.Sprintf(format, args...)}
}

func newPreconditionFailed(format string, args ...any) error {
	return &ValidationError{Reason: ReasonPreconditionFailed, Message: fmt.Sprintf(format, args...)}
}
