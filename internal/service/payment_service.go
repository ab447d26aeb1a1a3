package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"collegemigration/internal/domain"
	"collegemigration/internal/models"
	"collegemigration/internal/repository"
	"collegemigration/pkg/payment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentService reconciles application payments with the external
// provider. The verifier call happens before any local transaction
// begins, so a timeout leaves no partial ledger state. Settlement is a
// guarded status flip: zero rows affected on an existing transaction is
// the idempotent no-op case under duplicate webhook delivery.
type PaymentService struct {
	db            *gorm.DB
	txRepo        *repository.TransactionRepository
	appRepo       *repository.ApplicationRepository
	referralSvc   *ReferralService
	verifier      payment.Verifier
	notifier      Notifier
	verifyTimeout time.Duration
}

func NewPaymentService(
	db *gorm.DB,
	txRepo *repository.TransactionRepository,
	appRepo *repository.ApplicationRepository,
	referralSvc *ReferralService,
	verifier payment.Verifier,
	notifier Notifier,
	verifyTimeout time.Duration,
) *PaymentService {
	if verifyTimeout <= 0 {
		verifyTimeout = 20 * time.Second
	}
	return &PaymentService{
		db:            db,
		txRepo:        txRepo,
		appRepo:       appRepo,
		referralSvc:   referralSvc,
		verifier:      verifier,
		notifier:      notifier,
		verifyTimeout: verifyTimeout,
	}
}

// Initiate records a pending payment attempt for an application and
// returns the reference the client hands to the provider checkout.
func (s *PaymentService) Initiate(memberID, applicationID uint, amountCents int64) (*models.Transaction, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	app, err := s.appRepo.GetByID(applicationID)
	if err != nil {
		return nil, err
	}
	if app.MemberID != memberID {
		return nil, domain.ErrNotFound
	}
	t := &models.Transaction{
		ApplicationID: applicationID,
		MemberID:      memberID,
		Reference:     fmt.Sprintf("cm-%s", uuid.New().String()),
		AmountCents:   amountCents,
		Currency:      "NGN",
		Provider:      "paystack",
		Status:        domain.PaymentStatusPending,
	}
	if err := s.txRepo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// SettlementResult reports what VerifyAndSettle did for a reference.
type SettlementResult struct {
	Reference      string `json:"reference"`
	Settled        bool   `json:"settled"`
	AlreadySettled bool   `json:"already_settled"`
	ProviderStatus string `json:"provider_status"`
	ApplicationID  uint   `json:"application_id,omitempty"`
}

// VerifyAndSettle checks a reference with the provider and, exactly once,
// marks the local transaction completed and the application paid. Retries
// of failed verifier calls belong to the webhook layer, not here.
func (s *PaymentService) VerifyAndSettle(ctx context.Context, reference string) (*SettlementResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	defer cancel()
	res, err := s.verifier.Verify(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	if !res.Success {
		return &SettlementResult{Reference: reference, Settled: false, ProviderStatus: res.ProviderStatus}, nil
	}

	t, err := s.txRepo.GetByReference(reference)
	switch {
	case err == nil:
		return s.settleExisting(t, res)
	case errors.Is(err, domain.ErrNotFound):
		return s.settleReconstructed(reference, res)
	default:
		return nil, err
	}
}

func (s *PaymentService) settleExisting(t *models.Transaction, res *payment.VerifyResult) (*SettlementResult, error) {
	now := time.Now()
	var rows int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		rows, err = s.txRepo.WithTx(tx).Complete(t.Reference, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Already completed by an earlier delivery; nothing to do.
			return nil
		}
		return s.appRepo.WithTx(tx).MarkPaid(t.ApplicationID, now)
	})
	if err != nil {
		return nil, err
	}
	out := &SettlementResult{
		Reference:      t.Reference,
		Settled:        true,
		AlreadySettled: rows == 0,
		ProviderStatus: res.ProviderStatus,
		ApplicationID:  t.ApplicationID,
	}
	if rows > 0 {
		s.afterSettlement(t.MemberID, t.AmountCents, t.Reference)
	}
	return out, nil
}

// settleReconstructed handles a webhook that raced ahead of the local
// initiation record. The provider-side correlation metadata is only
// trusted after it checks out against the application it names.
func (s *PaymentService) settleReconstructed(reference string, res *payment.VerifyResult) (*SettlementResult, error) {
	if res.ApplicationID == 0 || res.MemberID == 0 {
		return nil, fmt.Errorf("%w: verifier metadata missing correlation ids for %s", domain.ErrValidation, reference)
	}
	app, err := s.appRepo.GetByID(res.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown application %d for %s", domain.ErrValidation, res.ApplicationID, reference)
	}
	if app.MemberID != res.MemberID {
		return nil, fmt.Errorf("%w: member mismatch for %s", domain.ErrValidation, reference)
	}
	now := time.Now()
	t := &models.Transaction{
		ApplicationID: res.ApplicationID,
		MemberID:      res.MemberID,
		Reference:     reference,
		AmountCents:   res.AmountCents,
		Currency:      res.Currency,
		Provider:      "paystack",
		Status:        domain.PaymentStatusCompleted,
		CompletedAt:   &now,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.txRepo.WithTx(tx).Create(t); err != nil {
			return err
		}
		return s.appRepo.WithTx(tx).MarkPaid(res.ApplicationID, now)
	})
	if err != nil {
		return nil, err
	}
	s.afterSettlement(res.MemberID, res.AmountCents, reference)
	return &SettlementResult{
		Reference:      reference,
		Settled:        true,
		ProviderStatus: res.ProviderStatus,
		ApplicationID:  res.ApplicationID,
	}, nil
}

// afterSettlement runs the post-commit effects: transitive commission
// crediting and the best-effort payment notification. Neither can undo
// the settlement.
func (s *PaymentService) afterSettlement(memberID uint, amountCents int64, reference string) {
	if s.referralSvc != nil {
		if err := s.referralSvc.SettleForMember(memberID); err != nil {
			log.Printf("[Payment] commission settle for member %d: %v", memberID, err)
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyPaymentConfirmed(memberID, amountCents, reference)
	}
}
