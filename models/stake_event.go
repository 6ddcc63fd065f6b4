package models

import "time"

// StakeEvent is the immutable record written alongside every stake balance
// mutation. The unique reference is derived from the bounty or claim being
// settled, so a double-applied settlement fails the insert instead of paying
// twice. Balances stay a single integer on the member row; this log exists
// for auditing and replay protection, not double-entry accounting.
type StakeEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"not null;index" json:"member_id"`
	Amount    int       `gorm:"not null" json:"amount"`
	Flow      string    `gorm:"type:varchar(10);not null" json:"flow"` // debit | credit
	Kind      string    `gorm:"type:varchar(20);not null" json:"kind"` // escrow | payout | claim_payout | adjustment
	Reference string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"reference"`
	Message   *string   `gorm:"type:text" json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (StakeEvent) TableName() string {
	return "stake_events"
}

const (
	FlowDebit  = "debit"
	FlowCredit = "credit"

	KindEscrow      = "escrow"
	KindPayout      = "payout"
	KindClaimPayout = "claim_payout"
	KindAdjustment  = "adjustment"
)
