package repository

import (
	"errors"
	"time"

	emaildomain "mailsort-backend/internal/email/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// classificationRepository implements ClassificationRepository interface
type classificationRepository struct {
	db *gorm.DB
}

// NewClassificationRepository creates a new instance of classificationRepository
func NewClassificationRepository(db *gorm.DB) ClassificationRepository {
	return &classificationRepository{
		db: db,
	}
}

func (r *classificationRepository) Create(classification *emaildomain.Classification) error {
	if classification.ID == "" {
		classification.ID = uuid.New().String()
	}
	classification.CreatedAt = time.Now()
	classification.UpdatedAt = time.Now()
	return r.db.Create(classification).Error
}

func (r *classificationRepository) FindByEmailID(emailID string) (*emaildomain.Classification, error) {
	var classification emaildomain.Classification
	err := r.db.Where("email_id = ?", emailID).First(&classification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &classification, nil
}

func (r *classificationRepository) Update(classification *emaildomain.Classification) error {
	classification.UpdatedAt = time.Now()
	return r.db.Save(classification).Error
}

func (r *classificationRepository) Stats() (int64, float64, error) {
	var count int64
	if err := r.db.Model(&emaildomain.Classification{}).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	var avg float64
	err := r.db.Model(&emaildomain.Classification{}).
		Select("AVG(confidence)").
		Scan(&avg).Error
	if err != nil {
		return 0, 0, err
	}
	return count, avg, nil
}
