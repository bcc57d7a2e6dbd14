package usecase

import (
	"testing"

	emaildomain "mailsort-backend/internal/email/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCategoryAppliesFields(t *testing.T) {
	repo := &fakeCategoryRepo{}
	_ = repo.Create(&emaildomain.Category{ID: "work", Name: "Work", Color: "#ff0000", Icon: "briefcase"})
	uc := NewCategoryUsecase(repo)

	updated, err := uc.UpdateCategory("work", &emaildomain.Category{
		Name:  "Work & Projects",
		Color: "#00ff00",
		Icon:  "folder",
	})
	require.NoError(t, err)

	assert.Equal(t, "work", updated.ID)
	assert.Equal(t, "Work & Projects", updated.Name)
	assert.Equal(t, "#00ff00", updated.Color)
	assert.Equal(t, "folder", updated.Icon)
}

func TestUpdateCategoryUnknownID(t *testing.T) {
	uc := NewCategoryUsecase(&fakeCategoryRepo{})

	_, err := uc.UpdateCategory("nope", &emaildomain.Category{Name: "X"})
	assert.ErrorIs(t, err, emaildomain.ErrNotFound)
}

func TestDeleteCategoryUnknownID(t *testing.T) {
	uc := NewCategoryUsecase(&fakeCategoryRepo{})

	err := uc.DeleteCategory("nope")
	assert.ErrorIs(t, err, emaildomain.ErrNotFound)
}

func TestDeleteCategoryRemovesIt(t *testing.T) {
	repo := &fakeCategoryRepo{}
	_ = repo.Create(&emaildomain.Category{ID: "work", Name: "Work"})
	uc := NewCategoryUsecase(repo)

	require.NoError(t, uc.DeleteCategory("work"))
	remaining, _ := repo.List()
	assert.Empty(t, remaining)
}
