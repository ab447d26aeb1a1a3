package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a single user's ledger balance. One wallet per
// (user_id, user_type) pair, created lazily on first read or credit.
// Balance is fixed-point: integer kobo (2 fractional digits), never float.
type Wallet struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	UserID              uint           `gorm:"not null;uniqueIndex:idx_wallets_owner" json:"user_id"`
	UserType            string         `gorm:"size:20;not null;uniqueIndex:idx_wallets_owner" json:"user_type"` // MEMBER, AGENT
	BalanceCents        int64          `gorm:"not null;default:0" json:"balance_cents"`
	TotalWithdrawnCents int64          `gorm:"not null;default:0" json:"total_withdrawn_cents"`
	Currency            string         `gorm:"size:3;default:'NGN'" json:"currency"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Wallet) TableName() string {
	return "wallets"
}
