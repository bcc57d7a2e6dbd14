package repository

import (
	"errors"
	"fmt"
	"time"

	emaildomain "mailsort-backend/internal/email/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// categoryRepository implements CategoryRepository interface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new instance of categoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

func (r *categoryRepository) Create(category *emaildomain.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("category %q: %w", category.Name, emaildomain.ErrDuplicateName)
		}
		return err
	}
	return nil
}

func (r *categoryRepository) FindByID(id string) (*emaildomain.Category, error) {
	var category emaildomain.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List() ([]*emaildomain.Category, error) {
	var categories []*emaildomain.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(category *emaildomain.Category) error {
	category.UpdatedAt = time.Now()
	if err := r.db.Save(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("category %q: %w", category.Name, emaildomain.ErrDuplicateName)
		}
		return err
	}
	return nil
}

// Delete removes the category and cascades to its classifications. The
// cascade is an explicit transaction rather than a schema annotation so the
// referential-integrity guarantee lives in the contract, not the dialect.
func (r *categoryRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&emaildomain.Classification{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&emaildomain.Category{}).Error
	})
}

func (r *categoryRepository) ListWithStats() ([]*emaildomain.CategoryStats, error) {
	var totalEmails int64
	if err := r.db.Model(&emaildomain.Email{}).Count(&totalEmails).Error; err != nil {
		return nil, err
	}

	var stats []*emaildomain.CategoryStats
	err := r.db.Model(&emaildomain.Category{}).
		Select("categories.*, count(classifications.id) AS email_count").
		Joins("LEFT JOIN classifications ON classifications.category_id = categories.id").
		Group("categories.id").
		Order("categories.name ASC").
		Find(&stats).Error
	if err != nil {
		return nil, err
	}

	for _, s := range stats {
		if totalEmails > 0 {
			s.Percentage = float64(s.EmailCount) / float64(totalEmails) * 100
		}
	}
	return stats, nil
}

func (r *categoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&emaildomain.Category{}).Count(&count).Error
	return count, err
}
