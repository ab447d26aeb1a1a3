package repository

import (
	"errors"
	"time"

	"collegemigration/internal/domain"
	"collegemigration/internal/models"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) WithTx(tx *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: tx}
}

func (r *ApplicationRepository) GetByID(id uint) (*models.Application, error) {
	var a models.Application
	if err := r.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) MarkPaid(id uint, at time.Time) error {
	return r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"payment_status": domain.ApplicationPaymentPaid, "paid_at": at}).Error
}
