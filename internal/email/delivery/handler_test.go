package delivery

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	emaildomain "mailsort-backend/internal/email/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubCategoryUsecase struct {
	names map[string]bool
}

func (s *stubCategoryUsecase) ListCategories() ([]*emaildomain.Category, error) {
	return nil, nil
}

func (s *stubCategoryUsecase) ListCategoriesWithStats() ([]*emaildomain.CategoryStats, error) {
	return nil, nil
}

func (s *stubCategoryUsecase) CreateCategory(category *emaildomain.Category) error {
	if s.names[category.Name] {
		return fmt.Errorf("category %q: %w", category.Name, emaildomain.ErrDuplicateName)
	}
	s.names[category.Name] = true
	return nil
}

func (s *stubCategoryUsecase) UpdateCategory(id string, category *emaildomain.Category) (*emaildomain.Category, error) {
	return nil, fmt.Errorf("category %s: %w", id, emaildomain.ErrNotFound)
}

func (s *stubCategoryUsecase) DeleteCategory(id string) error {
	return nil
}

func newCategoryRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewEmailHandler(nil, &stubCategoryUsecase{names: map[string]bool{}})

	r := gin.New()
	r.POST("/api/categories", handler.CreateCategory)
	r.PATCH("/api/categories/:id", handler.UpdateCategory)
	return r
}

func postCategory(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCategoryDuplicateNameConflicts(t *testing.T) {
	r := newCategoryRouter()
	body := `{"name":"Work","color":"#ff0000","icon":"briefcase"}`

	assert.Equal(t, http.StatusCreated, postCategory(r, body).Code)
	assert.Equal(t, http.StatusConflict, postCategory(r, body).Code)
}

func TestCreateCategoryValidatesBody(t *testing.T) {
	r := newCategoryRouter()

	w := postCategory(r, `{"name":"Work"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCategoryUnknownIDNotFound(t *testing.T) {
	r := newCategoryRouter()
	req := httptest.NewRequest(http.MethodPatch, "/api/categories/nope",
		strings.NewReader(`{"name":"Work","color":"#ff0000","icon":"briefcase"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
