package models

import (
	"time"

	"gorm.io/gorm"
)

// Withdrawal is a request to move wallet funds to an external bank account.
// Lifecycle: PENDING -> APPROVED | REJECTED, terminal thereafter.
// WalletID is captured at request time so resolution never re-derives the
// wallet from (user_id, user_type).
type Withdrawal struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	UserID               uint           `gorm:"not null;index:idx_withdrawals_owner" json:"user_id"`
	UserType             string         `gorm:"size:20;not null;index:idx_withdrawals_owner" json:"user_type"` // MEMBER, AGENT
	WalletID             uint           `gorm:"not null;index" json:"wallet_id"`
	OrderID              string         `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	AccountName          string         `gorm:"size:150;not null" json:"account_name"`
	AccountNumber        string         `gorm:"size:32;not null" json:"account_number"`
	BankName             string         `gorm:"size:100;not null" json:"bank_name"`
	AmountCents          int64          `gorm:"not null" json:"amount_cents"`
	Status               string         `gorm:"size:20;not null;index" json:"status"` // PENDING, APPROVED, REJECTED
	RejectionReason      string         `gorm:"size:500" json:"rejection_reason,omitempty"`
	TransactionReference string         `gorm:"size:128" json:"transaction_reference,omitempty"`
	ProcessedBy          *uint          `json:"processed_by,omitempty"`
	ProcessedAt          *time.Time     `json:"processed_at,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	Wallet Wallet `gorm:"foreignKey:WalletID" json:"-"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
