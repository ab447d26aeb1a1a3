package models

import (
	"time"

	"gorm.io/gorm"
)

// Referral links a referrer (member or agent) to a referred member.
// The UNPAID -> PAID transition is the sole trigger for commission
// crediting; a referral can only be paid once.
type Referral struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ReferrerID   uint           `gorm:"not null;index:idx_referrals_referrer" json:"referrer_id"`
	ReferrerType string         `gorm:"size:20;not null;index:idx_referrals_referrer" json:"referrer_type"` // MEMBER, AGENT
	MemberID     uint           `gorm:"uniqueIndex;not null" json:"member_id"`                              // each member is referred at most once
	Status       string         `gorm:"size:20;not null;index" json:"status"`                               // UNPAID, PAID
	StatusDate   *time.Time     `json:"status_date,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Member User `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Referral) TableName() string { return "referrals" }
