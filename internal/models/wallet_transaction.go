package models

import (
	"time"

	"gorm.io/gorm"
)

// WalletTransaction is the append-only audit record of every balance change.
// AmountCents is a positive magnitude; direction is implied by Type
// (COMMISSION and REFUND credit, WITHDRAWAL debits). Every credit/debit on
// a wallet writes exactly one row here, in the same database transaction.
type WalletTransaction struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	WalletID      uint           `gorm:"not null;index" json:"wallet_id"`
	Type          string         `gorm:"size:30;not null;index" json:"type"`   // COMMISSION, REFUND, WITHDRAWAL
	AmountCents   int64          `gorm:"not null" json:"amount_cents"`
	Status        string         `gorm:"size:20;not null;index" json:"status"` // PENDING, COMPLETED
	ApplicationID *uint          `gorm:"index" json:"application_id,omitempty"`
	Reference     string         `gorm:"size:128;index" json:"reference"` // e.g. referral_5_member_12, withdrawal order id
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Wallet Wallet `gorm:"foreignKey:WalletID" json:"-"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
