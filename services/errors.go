package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors returned by the lifecycle engine. Handlers map them to HTTP
// statuses through HTTPStatus so a client can tell a stale view (conflict)
// from a permission problem or a missing record.
var (
	ErrBountyNotFound = errors.New("bounty not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrClaimNotFound  = errors.New("claim not found")

	ErrNotOpen                = errors.New("bounty is not open")
	ErrNotPendingVerification = errors.New("bounty is not pending verification")
	ErrAlreadyCompleted       = errors.New("bounty has already been completed")
	ErrBountyCancelled        = errors.New("bounty has been cancelled")
	ErrNotAssigned            = errors.New("bounty is not assigned")
	ErrClaimNotAssigned       = errors.New("claim is not in assigned state")
	ErrClaimNotCompleted      = errors.New("claim is not pending verification")
	ErrAlreadyClaimed         = errors.New("member already holds a claim on this bounty")
	ErrNotInfinite            = errors.New("bounty does not accept multiple claims")
	ErrInfinite               = errors.New("open-ended bounties are driven per claim")

	ErrNotAuthorized     = errors.New("not authorized for this action")
	ErrInsufficientStake = errors.New("insufficient stake balance")

	// ErrConflict surfaces a lost compare-and-swap: the status guard matched
	// nothing because a concurrent request won the write.
	ErrConflict = errors.New("bounty was modified concurrently, refresh and retry")
)

// ValidationError marks caller-fault input problems so handlers can echo the
// message with a 400 instead of masking it as a server fault.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validation(msg string) error { return &ValidationError{Msg: msg} }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps a domain error onto the response status convention:
// 400 validation, 403 authorization, 404 missing, 409 state conflict and
// economic refusals, 500 everything unexpected.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, ErrBountyNotFound),
		errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrClaimNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotInfinite),
		errors.Is(err, ErrInfinite):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotOpen),
		errors.Is(err, ErrNotPendingVerification),
		errors.Is(err, ErrAlreadyCompleted),
		errors.Is(err, ErrBountyCancelled),
		errors.Is(err, ErrNotAssigned),
		errors.Is(err, ErrClaimNotAssigned),
		errors.Is(err, ErrClaimNotCompleted),
		errors.Is(err, ErrAlreadyClaimed),
		errors.Is(err, ErrInsufficientStake),
		errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
