package models

import "time"

// Member mirrors the membership service's user record. This service only
// reads identity fields and mutates the stake balance; accounts themselves
// are owned elsewhere.
type Member struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	DisplayName string    `gorm:"size:100;not null" json:"display_name"`
	Stake       int       `gorm:"not null;default:0" json:"stake"`
	IsAdmin     bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Member) TableName() string {
	return "members"
}
