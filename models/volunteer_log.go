package models

import "time"

// VolunteerLogEntry records approved volunteer hours credited when an
// hours-reward bounty is verified. Entries created here are always approved;
// the wider membership system also writes pending entries from other flows.
type VolunteerLogEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MemberID    uint      `gorm:"not null;index" json:"member_id"`
	Hours       float64   `gorm:"not null" json:"hours"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Status      string    `gorm:"type:varchar(20);not null;default:'approved'" json:"status"`
	VerifiedBy  uint      `gorm:"not null" json:"verified_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func (VolunteerLogEntry) TableName() string {
	return "volunteer_log_entries"
}
