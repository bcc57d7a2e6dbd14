package delivery

import (
	"errors"
	"net/http"

	emaildomain "mailsort-backend/internal/email/domain"
	emaildto "mailsort-backend/internal/email/dto"
	"mailsort-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	emailUsecase    usecase.EmailUsecase
	categoryUsecase usecase.CategoryUsecase
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase, categoryUsecase usecase.CategoryUsecase) *EmailHandler {
	return &EmailHandler{
		emailUsecase:    emailUsecase,
		categoryUsecase: categoryUsecase,
	}
}

// Sync pulls one batch from the mail source. A cancelled request still
// reports the partial counts accumulated before cancellation.
func (h *EmailHandler) Sync(c *gin.Context) {
	result, err := h.emailUsecase.Sync(c.Request.Context())
	if err != nil {
		if result != nil {
			c.JSON(http.StatusOK, result)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) Classify(c *gin.Context) {
	var req emaildto.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.emailUsecase.Classify(c.Request.Context(), c.Param("id"), req.CategoryID, req.IsManual)
	if err != nil {
		if errors.Is(err, emaildomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *EmailHandler) ComputeEmbeddings(c *gin.Context) {
	processed, err := h.emailUsecase.RecomputeEmbeddings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "processed": processed})
		return
	}

	c.JSON(http.StatusOK, emaildto.RecomputeResult{Success: true, Processed: processed})
}

func (h *EmailHandler) ListEmails(c *gin.Context) {
	emails, err := h.emailUsecase.ListEmails(usecase.EmailListFilter{
		CategoryID: c.Query("category"),
		Search:     c.Query("search"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.EmailsResponse{Emails: emails, Total: len(emails)})
}

func (h *EmailHandler) GetEmail(c *gin.Context) {
	email, err := h.emailUsecase.GetEmail(c.Param("id"))
	if err != nil {
		if errors.Is(err, emaildomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "email not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, email)
}

func (h *EmailHandler) Stats(c *gin.Context) {
	stats, err := h.emailUsecase.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *EmailHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryUsecase.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *EmailHandler) CategoryStats(c *gin.Context) {
	stats, err := h.categoryUsecase.ListCategoriesWithStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *EmailHandler) CreateCategory(c *gin.Context) {
	var req emaildto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &emaildomain.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	}
	if err := h.categoryUsecase.CreateCategory(category); err != nil {
		if errors.Is(err, emaildomain.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *EmailHandler) UpdateCategory(c *gin.Context) {
	var req emaildto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryUsecase.UpdateCategory(c.Param("id"), &emaildomain.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		if errors.Is(err, emaildomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		if errors.Is(err, emaildomain.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *EmailHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryUsecase.DeleteCategory(c.Param("id")); err != nil {
		if errors.Is(err, emaildomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
