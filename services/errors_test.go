package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{validation("title is required"), http.StatusBadRequest},
		{ErrNotInfinite, http.StatusBadRequest},
		{ErrInfinite, http.StatusBadRequest},
		{ErrNotAuthorized, http.StatusForbidden},
		{ErrBountyNotFound, http.StatusNotFound},
		{ErrMemberNotFound, http.StatusNotFound},
		{ErrClaimNotFound, http.StatusNotFound},
		{ErrNotOpen, http.StatusConflict},
		{ErrNotPendingVerification, http.StatusConflict},
		{ErrAlreadyCompleted, http.StatusConflict},
		{ErrBountyCancelled, http.StatusConflict},
		{ErrAlreadyClaimed, http.StatusConflict},
		{ErrInsufficientStake, http.StatusConflict},
		{ErrConflict, http.StatusConflict},
		{errors.New("driver: bad connection"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestHTTPStatusWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("verify bounty 12: %w", ErrNotPendingVerification)
	if got := HTTPStatus(wrapped); got != http.StatusConflict {
		t.Fatalf("wrapped sentinel should keep its status, got %d", got)
	}
	vErr := fmt.Errorf("create bounty: %w", validationf("stake_value must be at least %d", 3))
	if got := HTTPStatus(vErr); got != http.StatusBadRequest {
		t.Fatalf("wrapped validation error should map to 400, got %d", got)
	}
}
