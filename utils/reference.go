package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NewClaimID mints the opaque identifier attached to each claim on an
// open-ended bounty.
func NewClaimID() string {
	return uuid.NewString()
}

// StakeReference builds the idempotency key recorded with a stake event.
// Settlement events derive it from the bounty (or claim) being settled, so a
// replayed payout collides on the unique index instead of paying twice.
func StakeReference(kind string, parts ...interface{}) string {
	ref := "stk:" + kind
	for _, p := range parts {
		ref += fmt.Sprintf(":%v", p)
	}
	return ref
}

// NewAdjustmentReference returns a unique reference for manual admin
// adjustments, which have no natural settlement key.
func NewAdjustmentReference() string {
	return "stk:adjustment:" + uuid.NewString()
}
