package models

import "time"

// BaseStake is the fixed payout included in every bounty on top of whatever
// bonus the creator funds out of their own balance.
const BaseStake = 3

type BountyStatus string

const (
	StatusOpen      BountyStatus = "open"
	StatusAssigned  BountyStatus = "assigned"
	StatusCompleted BountyStatus = "completed"
	StatusVerified  BountyStatus = "verified"
	StatusCancelled BountyStatus = "cancelled"
)

// bountyTransitions is the single source of truth for status legality.
// Handlers never compare statuses ad hoc; they ask CanTransitionTo.
var bountyTransitions = map[BountyStatus][]BountyStatus{
	StatusOpen:      {StatusAssigned, StatusCompleted, StatusCancelled},
	StatusAssigned:  {StatusCompleted, StatusCancelled, StatusOpen}, // open via clawback
	StatusCompleted: {StatusVerified, StatusCancelled},
	StatusVerified:  {},
	StatusCancelled: {},
}

func (s BountyStatus) Valid() bool {
	_, ok := bountyTransitions[s]
	return ok
}

func (s BountyStatus) CanTransitionTo(next BountyStatus) bool {
	for _, t := range bountyTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s BountyStatus) Terminal() bool {
	return len(bountyTransitions[s]) == 0 && s.Valid()
}

type RewardType string

const (
	RewardHours  RewardType = "hours"
	RewardCash   RewardType = "cash"
	RewardCustom RewardType = "custom"
)

func (r RewardType) Valid() bool {
	switch r {
	case RewardHours, RewardCash, RewardCustom:
		return true
	}
	return false
}

type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case RecurNone, RecurDaily, RecurWeekly, RecurMonthly:
		return true
	}
	return false
}

// NextStart computes when the successor of a recurring bounty becomes
// visible, always at start of day in the given location.
func (r Recurrence) NextStart(from time.Time) (time.Time, bool) {
	loc := from.Location()
	switch r {
	case RecurDaily:
		next := from.AddDate(0, 0, 1)
		return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, loc), true
	case RecurWeekly:
		next := from.AddDate(0, 0, 7)
		return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, loc), true
	case RecurMonthly:
		// First day of the following month.
		firstOfMonth := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, loc)
		return firstOfMonth.AddDate(0, 1, 0), true
	default:
		return time.Time{}, false
	}
}

// Bounty is the root lifecycle entity. Rows are never deleted; cancellation
// is a status write. For open-ended bounties (IsInfinite) the top-level
// status is ignored and the per-claim records in Claims carry the state.
type Bounty struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:150;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	CreatorID   uint         `gorm:"not null;index" json:"creator_id"`
	RewardType  RewardType   `gorm:"type:varchar(20);not null;default:'custom'" json:"reward_type"`
	RewardValue string       `gorm:"size:255" json:"reward_value"`
	StakeValue  int          `gorm:"not null" json:"stake_value"`
	Recurrence  Recurrence   `gorm:"type:varchar(20);not null;default:'none'" json:"recurrence"`
	StartsAt    time.Time    `gorm:"not null;index" json:"starts_at"`
	EndsAt      *time.Time   `json:"ends_at,omitempty"`
	IsInfinite  bool         `gorm:"not null;default:false" json:"is_infinite"`
	Status      BountyStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	AssignedTo  *uint        `gorm:"index" json:"assigned_to,omitempty"`
	AssignedAt  *time.Time   `json:"assigned_at,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	Requirements []BountyRequirement `gorm:"foreignKey:BountyID" json:"requirements,omitempty"`
	Submissions  []BountySubmission  `gorm:"foreignKey:BountyID" json:"submissions,omitempty"`
	Claims       []BountyClaim       `gorm:"foreignKey:BountyID" json:"claims,omitempty"`
}

func (Bounty) TableName() string {
	return "bounties"
}

// AdditionalStake is the creator-funded portion above the base payout.
func (b *Bounty) AdditionalStake() int {
	extra := b.StakeValue - BaseStake
	if extra < 0 {
		return 0
	}
	return extra
}

// ClaimBy returns the claim held by a member, if any.
func (b *Bounty) ClaimBy(memberID uint) *BountyClaim {
	for i := range b.Claims {
		if b.Claims[i].UserID == memberID {
			return &b.Claims[i]
		}
	}
	return nil
}

// FirstSubmitter returns the earliest submitter, used as the awardee fallback
// when a bounty was completed without ever being assigned.
func (b *Bounty) FirstSubmitter() (uint, bool) {
	if len(b.Submissions) == 0 {
		return 0, false
	}
	first := b.Submissions[0]
	for _, s := range b.Submissions[1:] {
		if s.CreatedAt.Before(first.CreatedAt) {
			first = s
		}
	}
	return first.UserID, true
}

// BountyRequirement is one display-only requirement line. Requirements are
// not enforced programmatically.
type BountyRequirement struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	BountyID uint   `gorm:"not null;index" json:"-"`
	Position int    `gorm:"not null" json:"-"`
	Body     string `gorm:"size:500;not null" json:"body"`
}

func (BountyRequirement) TableName() string {
	return "bounty_requirements"
}

// BountySubmission is one entry of the single-claim submission history. The
// full history is kept; verification only cares about the assignee or, when
// unassigned, the earliest row.
type BountySubmission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BountyID  uint      `gorm:"not null;index" json:"bounty_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func (BountySubmission) TableName() string {
	return "bounty_submissions"
}
