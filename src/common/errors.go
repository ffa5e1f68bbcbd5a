package common

import (
	"errors"
	"net/http"
)

// Sentinel errors for the reservation and billing flows. Handlers translate
// them to HTTP statuses with StatusFor; services wrap them with context via
// fmt.Errorf("...: %w", err).
var (
	ErrValidation          = errors.New("invalid request")
	ErrNotFound            = errors.New("record not found")
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrDuplicateRequest    = errors.New("user has secured accommodation for this event")
	ErrInventoryExhausted  = errors.New("accommodation exhausted")
	ErrPricingUnconfigured = errors.New("no price configured for user tier")
	ErrGateway             = errors.New("payment gateway error")
)

func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInventoryExhausted):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateRequest):
		return http.StatusConflict
	case errors.Is(err, ErrPreconditionFailed):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation), errors.Is(err, ErrPricingUnconfigured):
		return http.StatusBadRequest
	case errors.Is(err, ErrGateway):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
