package service

import (
	"fmt"
	"strings"
	"time"

	"collegemigration/internal/domain"
	"collegemigration/internal/models"
	"collegemigration/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WithdrawalService is the withdrawal state machine:
// PENDING -> APPROVED | REJECTED, terminal thereafter.
//
// Funds are escrowed by debiting the wallet at request time; the debit's
// wallet transaction stays PENDING until resolution. Approval completes
// it; rejection completes it and issues a compensating refund credit, so
// the audit trail always sums back to the balance.
type WithdrawalService struct {
	db             *gorm.DB
	walletRepo     *repository.WalletRepository
	withdrawalRepo *repository.WithdrawalRepository
	notifier       Notifier
}

func NewWithdrawalService(
	db *gorm.DB,
	walletRepo *repository.WalletRepository,
	withdrawalRepo *repository.WithdrawalRepository,
	notifier Notifier,
) *WithdrawalService {
	return &WithdrawalService{
		db:             db,
		walletRepo:     walletRepo,
		withdrawalRepo: withdrawalRepo,
		notifier:       notifier,
	}
}

type WithdrawalRequest struct {
	UserID        uint
	UserType      string
	AccountName   string
	AccountNumber string
	BankName      string
	AmountCents   int64
}

// Request creates a PENDING withdrawal and debits the wallet in the same
// transaction. The admin notification goes out after commit, best-effort.
func (s *WithdrawalService) Request(req WithdrawalRequest) (*models.Withdrawal, error) {
	if err := validateWithdrawalRequest(req); err != nil {
		return nil, err
	}
	wallet, err := s.walletRepo.GetByUser(req.UserID, req.UserType)
	if err != nil {
		return nil, err
	}
	pending, err := s.withdrawalRepo.HasPending(req.UserID, req.UserType)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.ErrDuplicatePendingRequest
	}
	if wallet.BalanceCents < req.AmountCents {
		return nil, domain.ErrInsufficientBalance
	}

	orderID := fmt.Sprintf("wd-%s", uuid.New().String())
	w := &models.Withdrawal{
		UserID:        req.UserID,
		UserType:      req.UserType,
		WalletID:      wallet.ID,
		OrderID:       orderID,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		AmountCents:   req.AmountCents,
		Status:        domain.WithdrawalStatusPending,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Guarded atomic debit: authoritative even if the pre-check raced.
		if _, err := s.walletRepo.WithTx(tx).Debit(wallet.ID, req.AmountCents,
			domain.WalletTxTypeWithdrawal, domain.WalletTxStatusPending, nil, orderID); err != nil {
			return err
		}
		// Re-check under the wallet row lock taken by the debit: a
		// request that committed between the pre-check and this
		// transaction is visible here, and ours rolls back.
		pending, err := s.withdrawalRepo.WithTx(tx).HasPending(req.UserID, req.UserType)
		if err != nil {
			return err
		}
		if pending {
			return domain.ErrDuplicatePendingRequest
		}
		return s.withdrawalRepo.WithTx(tx).Create(w)
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyWithdrawalRequested(w)
	}
	return w, nil
}

type WithdrawalDecision struct {
	AdminID              uint
	Approve              bool
	RejectionReason      string
	TransactionReference string
}

// Resolve moves a PENDING withdrawal to its terminal state exactly once.
func (s *WithdrawalService) Resolve(withdrawalID uint, d WithdrawalDecision) (*models.Withdrawal, error) {
	if d.Approve && strings.TrimSpace(d.TransactionReference) == "" {
		return nil, fmt.Errorf("%w: transaction reference required on approval", domain.ErrValidation)
	}
	if !d.Approve && strings.TrimSpace(d.RejectionReason) == "" {
		return nil, fmt.Errorf("%w: rejection reason required", domain.ErrValidation)
	}
	w, err := s.withdrawalRepo.GetByID(withdrawalID)
	if err != nil {
		return nil, err
	}
	if w.Status != domain.WithdrawalStatusPending {
		return nil, domain.ErrAlreadyProcessed
	}

	now := time.Now()
	updates := map[string]interface{}{
		"processed_by": d.AdminID,
		"processed_at": now,
	}
	if d.Approve {
		updates["status"] = domain.WithdrawalStatusApproved
		updates["transaction_reference"] = d.TransactionReference
	} else {
		updates["status"] = domain.WithdrawalStatusRejected
		updates["rejection_reason"] = d.RejectionReason
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		wallets := s.walletRepo.WithTx(tx)
		// Status guard in the update makes the terminal transition
		// single-shot under concurrent admin actions.
		if err := s.withdrawalRepo.WithTx(tx).Resolve(withdrawalID, updates); err != nil {
			return err
		}
		escrow, err := wallets.GetTransactionByReference(w.WalletID, w.OrderID)
		if err != nil {
			return err
		}
		if err := wallets.MarkTransactionStatus(escrow.ID, domain.WalletTxStatusCompleted); err != nil {
			return err
		}
		if d.Approve {
			return wallets.AddTotalWithdrawn(w.WalletID, w.AmountCents)
		}
		// Rejection returns the escrowed funds.
		_, err = wallets.Credit(w.WalletID, w.AmountCents,
			domain.WalletTxTypeRefund, domain.WalletTxStatusCompleted,
			nil, fmt.Sprintf("refund_%s", w.OrderID))
		return err
	})
	if err != nil {
		return nil, err
	}

	resolved, err := s.withdrawalRepo.GetByID(withdrawalID)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyWithdrawalResolved(resolved)
	}
	return resolved, nil
}

func validateWithdrawalRequest(req WithdrawalRequest) error {
	switch {
	case req.UserID == 0:
		return fmt.Errorf("%w: user id required", domain.ErrValidation)
	case req.UserType != domain.UserTypeMember && req.UserType != domain.UserTypeAgent:
		return fmt.Errorf("%w: invalid user type", domain.ErrValidation)
	case strings.TrimSpace(req.AccountName) == "":
		return fmt.Errorf("%w: account name required", domain.ErrValidation)
	case strings.TrimSpace(req.AccountNumber) == "":
		return fmt.Errorf("%w: account number required", domain.ErrValidation)
	case strings.TrimSpace(req.BankName) == "":
		return fmt.Errorf("%w: bank name required", domain.ErrValidation)
	case req.AmountCents <= 0:
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	return nil
}
