package service

import (
	"errors"
	"fmt"
	"time"

	"collegemigration/config"
	"collegemigration/internal/domain"
	"collegemigration/internal/models"
	"collegemigration/internal/repository"

	"gorm.io/gorm"
)

// ReferralService is the commission engine. Marking a referral PAID and
// crediting the referrer's wallet happen in one database transaction, so
// status and credit can never diverge. The status guard on the update is
// the double-pay check: a referral that already reached PAID is not
// payable again.
type ReferralService struct {
	db           *gorm.DB
	referralRepo *repository.ReferralRepository
	walletRepo   *repository.WalletRepository
	commission   config.CommissionConfig
	notifier     Notifier
}

func NewReferralService(
	db *gorm.DB,
	referralRepo *repository.ReferralRepository,
	walletRepo *repository.WalletRepository,
	commission config.CommissionConfig,
	notifier Notifier,
) *ReferralService {
	return &ReferralService{
		db:           db,
		referralRepo: referralRepo,
		walletRepo:   walletRepo,
		commission:   commission,
		notifier:     notifier,
	}
}

// SettleReferral transitions a referral's status on behalf of its referrer.
// A transition to PAID credits the referrer's wallet with the role-specific
// commission in the same transaction.
func (s *ReferralService) SettleReferral(referralID uint, newStatus string, actingUserID uint, actingUserType string) (*models.Referral, error) {
	if newStatus != domain.ReferralStatusPaid && newStatus != domain.ReferralStatusUnpaid {
		return nil, fmt.Errorf("%w: status must be %s or %s", domain.ErrValidation, domain.ReferralStatusUnpaid, domain.ReferralStatusPaid)
	}
	ref, err := s.referralRepo.GetByID(referralID)
	if err != nil {
		return nil, err
	}
	if ref.ReferrerID != actingUserID || ref.ReferrerType != actingUserType {
		return nil, domain.ErrNotFound
	}
	if ref.Status == newStatus {
		return nil, domain.ErrAlreadyInStatus
	}
	// PAID is terminal: reverting would let the referral be paid again.
	if ref.Status == domain.ReferralStatusPaid {
		return nil, fmt.Errorf("%w: a paid referral cannot be reverted", domain.ErrValidation)
	}
	if err := s.settle(ref, newStatus); err != nil {
		return nil, err
	}
	return s.referralRepo.GetByID(referralID)
}

// SettleForMember pays out the unpaid referral for a member whose
// application payment just settled. A member with no referral, or one
// already paid, is a no-op.
func (s *ReferralService) SettleForMember(memberID uint) error {
	ref, err := s.referralRepo.GetUnpaidByMember(memberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	err = s.settle(ref, domain.ReferralStatusPaid)
	if errors.Is(err, domain.ErrAlreadyInStatus) {
		return nil
	}
	return err
}

func (s *ReferralService) settle(ref *models.Referral, newStatus string) error {
	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.referralRepo.WithTx(tx).MarkStatus(ref.ID, ref.Status, newStatus, now); err != nil {
			return err
		}
		if newStatus != domain.ReferralStatusPaid {
			return nil
		}
		wallets := s.walletRepo.WithTx(tx)
		w, err := wallets.GetOrCreate(ref.ReferrerID, ref.ReferrerType)
		if err != nil {
			return err
		}
		amount := s.rateFor(ref.ReferrerType)
		_, err = wallets.Credit(w.ID, amount,
			domain.WalletTxTypeCommission, domain.WalletTxStatusCompleted,
			nil, fmt.Sprintf("referral_%d_member_%d", ref.ID, ref.MemberID))
		return err
	})
	if err != nil {
		return err
	}
	if newStatus == domain.ReferralStatusPaid && s.notifier != nil {
		s.notifier.NotifyCommissionEarned(ref.ReferrerID, ref.ReferrerType, s.rateFor(ref.ReferrerType))
	}
	return nil
}

func (s *ReferralService) rateFor(referrerType string) int64 {
	if referrerType == domain.UserTypeAgent {
		return s.commission.AgentRateCents
	}
	return s.commission.MemberRateCents
}
