package usecase

import (
	"fmt"

	emaildomain "mailsort-backend/internal/email/domain"
	"mailsort-backend/internal/email/repository"
)

// categoryUsecase implements CategoryUsecase interface
type categoryUsecase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUsecase creates a new instance of categoryUsecase
func NewCategoryUsecase(categoryRepo repository.CategoryRepository) CategoryUsecase {
	return &categoryUsecase{
		categoryRepo: categoryRepo,
	}
}

func (u *categoryUsecase) ListCategories() ([]*emaildomain.Category, error) {
	return u.categoryRepo.List()
}

func (u *categoryUsecase) ListCategoriesWithStats() ([]*emaildomain.CategoryStats, error) {
	return u.categoryRepo.ListWithStats()
}

func (u *categoryUsecase) CreateCategory(category *emaildomain.Category) error {
	return u.categoryRepo.Create(category)
}

func (u *categoryUsecase) UpdateCategory(id string, update *emaildomain.Category) (*emaildomain.Category, error) {
	category, err := u.categoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", id, emaildomain.ErrNotFound)
	}

	category.Name = update.Name
	category.Description = update.Description
	category.Color = update.Color
	category.Icon = update.Icon
	if err := u.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category; the repository cascades to dependent
// classifications in the same transaction.
func (u *categoryUsecase) DeleteCategory(id string) error {
	category, err := u.categoryRepo.FindByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("category %s: %w", id, emaildomain.ErrNotFound)
	}
	return u.categoryRepo.Delete(id)
}
