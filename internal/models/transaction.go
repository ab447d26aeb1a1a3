package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction records a payment attempt for an application, keyed by the
// provider-issued reference. Settlement flips PENDING -> COMPLETED exactly
// once via a guarded update.
type Transaction struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ApplicationID uint           `gorm:"not null;index" json:"application_id"`
	MemberID      uint           `gorm:"not null;index" json:"member_id"`
	Reference     string         `gorm:"size:128;uniqueIndex;not null" json:"reference"`
	AmountCents   int64          `gorm:"not null" json:"amount_cents"`
	Currency      string         `gorm:"size:3;default:'NGN'" json:"currency"`
	Provider      string         `gorm:"size:50;not null" json:"provider"`
	Status        string         `gorm:"size:20;not null;index" json:"status"` // PENDING, COMPLETED
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Application Application `gorm:"foreignKey:ApplicationID" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
