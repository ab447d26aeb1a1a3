package models

import (
	"time"

	"gorm.io/gorm"
)

// Application is a member's admission application. Only the payment side
// matters to the ledger; catalog and document handling live elsewhere.
type Application struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	MemberID      uint           `gorm:"not null;index" json:"member_id"`
	ProgramName   string         `gorm:"size:255" json:"program_name"`
	SchoolName    string         `gorm:"size:255" json:"school_name"`
	PaymentStatus string         `gorm:"size:20;not null;default:'UNPAID';index" json:"payment_status"` // UNPAID, PAID
	PaidAt        *time.Time     `json:"paid_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Member User `gorm:"foreignKey:MemberID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}
