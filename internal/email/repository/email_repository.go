package repository

import (
	"errors"
	"time"

	emaildomain "mailsort-backend/internal/email/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// emailRepository implements EmailRepository interface
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new instance of emailRepository
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{
		db: db,
	}
}

func (r *emailRepository) Create(email *emaildomain.Email) error {
	if email.ID == "" {
		email.ID = uuid.New().String()
	}
	email.CreatedAt = time.Now()
	return r.db.Create(email).Error
}

func (r *emailRepository) FindByID(id string) (*emaildomain.Email, error) {
	var email emaildomain.Email
	err := r.db.Where("id = ?", id).First(&email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *emailRepository) FindByExternalID(externalID string) (*emaildomain.Email, error) {
	var email emaildomain.Email
	err := r.db.Where("external_id = ?", externalID).First(&email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *emailRepository) UpdateEmbedding(id string, embedding emaildomain.Vector) error {
	return r.db.Model(&emaildomain.Email{}).
		Where("id = ?", id).
		Update("embedding", embedding).Error
}

func (r *emailRepository) List(filter EmailFilter) ([]*emaildomain.Email, error) {
	query := r.db.
		Preload("Classification").
		Preload("Classification.Category").
		Order("received_at DESC")

	if filter.CategoryID != "" && filter.CategoryID != "all" {
		query = query.
			Joins("JOIN classifications ON classifications.email_id = emails.id").
			Where("classifications.category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("subject ILIKE ? OR sender ILIKE ?", pattern, pattern)
	}

	var emails []*emaildomain.Email
	if err := query.Find(&emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *emailRepository) ListWithEmbedding() ([]*emaildomain.Email, error) {
	var emails []*emaildomain.Email
	err := r.db.Where("embedding IS NOT NULL").Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *emailRepository) ListWithoutEmbedding() ([]*emaildomain.Email, error) {
	var emails []*emaildomain.Email
	err := r.db.Where("embedding IS NULL OR embedding = ''").Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *emailRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&emaildomain.Email{}).Count(&count).Error
	return count, err
}
