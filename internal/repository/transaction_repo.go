package repository

import (
	"errors"
	"time"

	"collegemigration/internal/domain"
	"collegemigration/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) WithTx(tx *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: tx}
}

func (r *TransactionRepository) Create(t *models.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) GetByReference(reference string) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.Where("reference = ?", reference).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Complete marks a transaction completed exactly once. Returns the number
// of rows affected: zero with an existing row is the idempotent no-op case
// under duplicate webhook delivery.
func (r *TransactionRepository) Complete(reference string, at time.Time) (int64, error) {
	res := r.db.Model(&models.Transaction{}).
		Where("reference = ? AND status <> ?", reference, domain.PaymentStatusCompleted).
		Updates(map[string]interface{}{"status": domain.PaymentStatusCompleted, "completed_at": at})
	return res.RowsAffected, res.Error
}
