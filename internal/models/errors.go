package models

import "errors"

// Domain error taxonomy. Repositories and services wrap these sentinels with
// fmt.Errorf("...: %w", ...) so callers can branch with errors.Is while the
// message keeps its context. Every one of these aborts the enclosing
// transaction; only ErrStorageConflict is safe to retry, since it implies no
// partial effect occurred.
var (
	ErrValidation             = errors.New("validation error")
	ErrNotFound               = errors.New("not found")
	ErrProductUnavailable     = errors.New("product unavailable")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrPriceMismatch          = errors.New("price mismatch")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrAlreadyConsumed        = errors.New("already consumed")
	ErrStorageConflict        = errors.New("storage conflict")
	ErrInternal               = errors.New("internal error")
)

// ErrorKind returns the wire name for the error's category. Unknown errors
// are reported as internal.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrProductUnavailable):
		return "product_unavailable"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrPriceMismatch):
		return "price_mismatch"
	case errors.Is(err, ErrInvalidStateTransition):
		return "invalid_state_transition"
	case errors.Is(err, ErrAlreadyConsumed):
		return "already_consumed"
	case errors.Is(err, ErrStorageConflict):
		return "storage_conflict"
	default:
		return "internal"
	}
}
