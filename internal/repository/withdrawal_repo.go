package repository

import (
	"errors"
	"time"

	"collegemigration/internal/domain"
	"collegemigration/internal/models"

	"gorm.io/gorm"
)

type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) WithTx(tx *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: tx}
}

func (r *WithdrawalRepository) Create(w *models.Withdrawal) error {
	return r.db.Create(w).Error
}

func (r *WithdrawalRepository) GetByID(id uint) (*models.Withdrawal, error) {
	var w models.Withdrawal
	if err := r.db.First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// HasPending reports whether the user already has an unresolved withdrawal.
func (r *WithdrawalRepository) HasPending(userID uint, userType string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Withdrawal{}).
		Where("user_id = ? AND user_type = ? AND status = ?", userID, userType, domain.WithdrawalStatusPending).
		Count(&count).Error
	return count > 0, err
}

// Resolve transitions a withdrawal out of PENDING exactly once. The status
// guard is in the WHERE clause; zero rows affected means some other
// resolution got there first (or the row never existed).
func (r *WithdrawalRepository) Resolve(id uint, updates map[string]interface{}) error {
	res := r.db.Model(&models.Withdrawal{}).
		Where("id = ? AND status = ?", id, domain.WithdrawalStatusPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.Withdrawal{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrAlreadyProcessed
	}
	return nil
}

// WithdrawalFilter narrows the admin listing.
type WithdrawalFilter struct {
	Status   string
	UserType string
	From     *time.Time
	To       *time.Time
	Search   string // matches account name, account number or bank name
}

func (r *WithdrawalRepository) List(f WithdrawalFilter, page, limit int) ([]models.Withdrawal, int64, error) {
	q := r.db.Model(&models.Withdrawal{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserType != "" {
		q = q.Where("user_type = ?", f.UserType)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("account_name LIKE ? OR account_number LIKE ? OR bank_name LIKE ?", like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Withdrawal
	err := q.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}

// ListByUser returns the user's own withdrawal history.
func (r *WithdrawalRepository) ListByUser(userID uint, userType string, page, limit int) ([]models.Withdrawal, int64, error) {
	q := r.db.Model(&models.Withdrawal{}).Where("user_id = ? AND user_type = ?", userID, userType)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Withdrawal
	err := q.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}
