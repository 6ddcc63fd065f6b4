package models

import "time"

type ClaimStatus string

const (
	ClaimAssigned  ClaimStatus = "assigned"
	ClaimCompleted ClaimStatus = "completed"
	ClaimVerified  ClaimStatus = "verified"
)

// claimTransitions mirrors the top-level machine for the per-claim mini
// lifecycle. Claims never regress; clawback removes the row outright.
var claimTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimAssigned:  {ClaimCompleted},
	ClaimCompleted: {ClaimVerified},
	ClaimVerified:  {},
}

func (s ClaimStatus) Valid() bool {
	_, ok := claimTransitions[s]
	return ok
}

func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	for _, t := range claimTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// BountyClaim is one member's attempt at an open-ended bounty. Each claim is
// settled independently of its siblings.
type BountyClaim struct {
	ID         uint        `gorm:"primaryKey" json:"-"`
	ClaimID    string      `gorm:"size:36;uniqueIndex;not null" json:"claim_id"`
	BountyID   uint        `gorm:"not null;uniqueIndex:idx_claims_bounty_user,priority:1" json:"bounty_id"`
	UserID     uint        `gorm:"not null;uniqueIndex:idx_claims_bounty_user,priority:2" json:"user_id"`
	Status     ClaimStatus `gorm:"type:varchar(20);not null;default:'assigned'" json:"status"`
	ClaimedAt  time.Time   `gorm:"not null" json:"claimed_at"`
	Submission string      `gorm:"type:text" json:"submission,omitempty"`
	VerifiedBy *uint       `json:"verified_by,omitempty"`
	VerifiedAt *time.Time  `json:"verified_at,omitempty"`
	CreatedAt  time.Time   `json:"-"`
	UpdatedAt  time.Time   `json:"-"`
}

func (BountyClaim) TableName() string {
	return "bounty_claims"
}
