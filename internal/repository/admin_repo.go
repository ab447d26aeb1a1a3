package repository

import (
	"collegemigration/internal/domain"
	"collegemigration/internal/models"

	"gorm.io/gorm"
)

// LedgerStats is the admin dashboard roll-up.
type LedgerStats struct {
	TotalWallets            int64 `json:"total_wallets"`
	TotalBalanceCents       int64 `json:"total_balance_cents"`
	TotalWithdrawnCents     int64 `json:"total_withdrawn_cents"`
	PendingWithdrawals      int64 `json:"pending_withdrawals"`
	PendingWithdrawalCents  int64 `json:"pending_withdrawal_cents"`
	CompletedPayments       int64 `json:"completed_payments"`
	CompletedPaymentCents   int64 `json:"completed_payment_cents"`
	PaidReferrals           int64 `json:"paid_referrals"`
	CommissionCreditedCents int64 `json:"commission_credited_cents"`
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetLedgerStats() (*LedgerStats, error) {
	var s LedgerStats
	if err := r.db.Model(&models.Wallet{}).Count(&s.TotalWallets).Error; err != nil {
		return nil, err
	}

	var sums struct{ Balance, Withdrawn int64 }
	if err := r.db.Model(&models.Wallet{}).
		Select("COALESCE(SUM(balance_cents), 0) as balance, COALESCE(SUM(total_withdrawn_cents), 0) as withdrawn").
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	s.TotalBalanceCents = sums.Balance
	s.TotalWithdrawnCents = sums.Withdrawn

	if err := r.db.Model(&models.Withdrawal{}).Where("status = ?", domain.WithdrawalStatusPending).Count(&s.PendingWithdrawals).Error; err != nil {
		return nil, err
	}
	var pending struct{ Total int64 }
	if err := r.db.Model(&models.Withdrawal{}).
		Select("COALESCE(SUM(amount_cents), 0) as total").
		Where("status = ?", domain.WithdrawalStatusPending).
		Scan(&pending).Error; err != nil {
		return nil, err
	}
	s.PendingWithdrawalCents = pending.Total

	if err := r.db.Model(&models.Transaction{}).Where("status = ?", domain.PaymentStatusCompleted).Count(&s.CompletedPayments).Error; err != nil {
		return nil, err
	}
	var payments struct{ Total int64 }
	if err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount_cents), 0) as total").
		Where("status = ?", domain.PaymentStatusCompleted).
		Scan(&payments).Error; err != nil {
		return nil, err
	}
	s.CompletedPaymentCents = payments.Total

	if err := r.db.Model(&models.Referral{}).Where("status = ?", domain.ReferralStatusPaid).Count(&s.PaidReferrals).Error; err != nil {
		return nil, err
	}
	var commission struct{ Total int64 }
	if err := r.db.Model(&models.WalletTransaction{}).
		Select("COALESCE(SUM(amount_cents), 0) as total").
		Where("type = ? AND status = ?", domain.WalletTxTypeCommission, domain.WalletTxStatusCompleted).
		Scan(&commission).Error; err != nil {
		return nil, err
	}
	s.CommissionCreditedCents = commission.Total

	return &s, nil
}
