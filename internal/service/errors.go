package service

import (
	"errors"
	"net/http"

	"github.com/redesmx/isp-backoffice/internal/lifecycle"
	apperrors "github.com/redesmx/isp-backoffice/pkg/util/errorutil"
)

// mapLifecycleError translates a lifecycle rejection into the transport-facing
// error shape. Invalid transitions and failed preconditions are conflicts;
// unknown statuses are bad input.
func mapLifecycleError(err error) error {
	if err == nil {
		return nil
	}
	var validationErr *lifecycle.ValidationError
	if !errors.As(err, &validationErr) {
		return apperrors.MapError(err)
	}
	details := map[string]any{"reason": string(validationErr.Reason)}
	switch validationErr.Reason {
	case lifecycle.ReasonUnknownStatus:
		return apperrors.NewValidationError(validationErr.Message, details)
	case lifecycle.ReasonInvalidTransition, lifecycle.ReasonPreconditionFailed:
		return apperrors.NewDomainError("CONFLICT", validationErr.Message, http.StatusConflict, details)
	default:
		return apperrors.NewValidationError(validationErr.Message, details)
	}
}
