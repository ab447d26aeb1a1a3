package repository

import (
	"errors"
	"time"

	"collegemigration/internal/domain"
	"collegemigration/internal/models"

	"gorm.io/gorm"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) WithTx(tx *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: tx}
}

func (r *ReferralRepository) Create(ref *models.Referral) error {
	return r.db.Create(ref).Error
}

func (r *ReferralRepository) GetByID(id uint) (*models.Referral, error) {
	var ref models.Referral
	if err := r.db.First(&ref, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ref, nil
}

// GetUnpaidByMember returns the unpaid referral for a referred member, if any.
func (r *ReferralRepository) GetUnpaidByMember(memberID uint) (*models.Referral, error) {
	var ref models.Referral
	err := r.db.Where("member_id = ? AND status = ?", memberID, domain.ReferralStatusUnpaid).First(&ref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ref, nil
}

// MarkStatus moves a referral to newStatus with a guard on the current
// status, so an already-paid referral can never be paid again.
func (r *ReferralRepository) MarkStatus(id uint, fromStatus, newStatus string, at time.Time) error {
	res := r.db.Model(&models.Referral{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(map[string]interface{}{"status": newStatus, "status_date": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyInStatus
	}
	return nil
}

func (r *ReferralRepository) ListByReferrer(referrerID uint, referrerType string, page, limit int) ([]models.Referral, int64, error) {
	q := r.db.Model(&models.Referral{}).
		Where("referrer_id = ? AND referrer_type = ?", referrerID, referrerType)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Referral
	err := q.Preload("Member").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}
