package repository

import (
	"errors"

	"collegemigration/internal/domain"
	"collegemigration/internal/models"

	"gorm.io/gorm"
)

// WalletRepository is the ledger store. Balance is never written directly:
// every change goes through Credit or Debit, which pair the balance update
// with exactly one WalletTransaction row inside a single database
// transaction. Debits use a guarded atomic update so two concurrent
// debits can never both pass the balance check.
type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// WithTx returns a repository bound to an in-flight transaction so callers
// can compose wallet mutations with their own writes atomically.
func (r *WalletRepository) WithTx(tx *gorm.DB) *WalletRepository {
	return &WalletRepository{db: tx}
}

func (r *WalletRepository) GetByID(id uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetByUser(userID uint, userType string) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.Where("user_id = ? AND user_type = ?", userID, userType).First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

// GetOrCreate returns the wallet for (userID, userType), creating it with a
// zero balance on first use.
func (r *WalletRepository) GetOrCreate(userID uint, userType string) (*models.Wallet, error) {
	w, err := r.GetByUser(userID, userType)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, err
	}
	w = &models.Wallet{UserID: userID, UserType: userType, BalanceCents: 0, Currency: "NGN"}
	if err := r.db.Create(w).Error; err != nil {
		// Lost a first-touch race: the unique owner index means another
		// caller just inserted the row, so read theirs instead.
		if existing, readErr := r.GetByUser(userID, userType); readErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return w, nil
}

// Credit increases the wallet balance and records the transaction, atomically.
func (r *WalletRepository) Credit(walletID uint, amountCents int64, txType, status string, applicationID *uint, reference string) (*models.WalletTransaction, error) {
	var wt *models.WalletTransaction
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Wallet{}).
			Where("id = ?", walletID).
			UpdateColumn("balance_cents", gorm.Expr("balance_cents + ?", amountCents))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrWalletNotFound
		}
		wt = &models.WalletTransaction{
			WalletID:      walletID,
			Type:          txType,
			AmountCents:   amountCents,
			Status:        status,
			ApplicationID: applicationID,
			Reference:     reference,
		}
		return tx.Create(wt).Error
	})
	if err != nil {
		return nil, err
	}
	return wt, nil
}

// Debit decreases the wallet balance and records the transaction, atomically.
// The balance guard lives in the UPDATE itself: zero rows affected on an
// existing wallet means the funds were not there at decrement time.
func (r *WalletRepository) Debit(walletID uint, amountCents int64, txType, status string, applicationID *uint, reference string) (*models.WalletTransaction, error) {
	var wt *models.WalletTransaction
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Wallet{}).
			Where("id = ? AND balance_cents >= ?", walletID, amountCents).
			UpdateColumn("balance_cents", gorm.Expr("balance_cents - ?", amountCents))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Wallet{}).Where("id = ?", walletID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrWalletNotFound
			}
			return domain.ErrInsufficientBalance
		}
		wt = &models.WalletTransaction{
			WalletID:      walletID,
			Type:          txType,
			AmountCents:   amountCents,
			Status:        status,
			ApplicationID: applicationID,
			Reference:     reference,
		}
		return tx.Create(wt).Error
	})
	if err != nil {
		return nil, err
	}
	return wt, nil
}

// AddTotalWithdrawn bumps the running withdrawn total (reporting only,
// not part of the balance invariant).
func (r *WalletRepository) AddTotalWithdrawn(walletID uint, amountCents int64) error {
	return r.db.Model(&models.Wallet{}).
		Where("id = ?", walletID).
		UpdateColumn("total_withdrawn_cents", gorm.Expr("total_withdrawn_cents + ?", amountCents)).Error
}

// ListTransactions returns a wallet's history, newest first.
func (r *WalletRepository) ListTransactions(walletID uint, page, limit int) ([]models.WalletTransaction, int64, error) {
	var list []models.WalletTransaction
	var total int64
	q := r.db.Model(&models.WalletTransaction{}).Where("wallet_id = ?", walletID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}

// GetTransactionByReference finds a wallet's transaction by its reference
// string (used to locate the escrow debit of a withdrawal).
func (r *WalletRepository) GetTransactionByReference(walletID uint, reference string) (*models.WalletTransaction, error) {
	var wt models.WalletTransaction
	err := r.db.Where("wallet_id = ? AND reference = ?", walletID, reference).First(&wt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &wt, nil
}

// MarkTransactionStatus flips a wallet transaction's status (escrow
// completion on withdrawal approval).
func (r *WalletRepository) MarkTransactionStatus(txID uint, status string) error {
	return r.db.Model(&models.WalletTransaction{}).
		Where("id = ?", txID).
		UpdateColumn("status", status).Error
}

// ListWallets returns wallets for the admin surface, filtered by user type.
func (r *WalletRepository) ListWallets(userType string, page, limit int) ([]models.Wallet, int64, error) {
	var list []models.Wallet
	var total int64
	q := r.db.Model(&models.Wallet{})
	if userType != "" {
		q = q.Where("user_type = ?", userType)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("balance_cents DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}
