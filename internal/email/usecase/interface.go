package usecase

import (
	"context"

	emaildomain "mailsort-backend/internal/email/domain"
	emaildto "mailsort-backend/internal/email/dto"
)

// EmailUsecase defines the interface for email sync and classification
// operations
type EmailUsecase interface {
	// Sync pulls a batch of inbox messages, embeds and auto-classifies the
	// new ones, and returns aggregate counts. Per-message failures are
	// counted, not propagated; only the initial inbox listing can fail the
	// whole call.
	Sync(ctx context.Context) (*emaildto.SyncResult, error)
	// Classify assigns an email to a category, creating or updating its
	// single classification. Manual assignments always get confidence 1.0.
	Classify(ctx context.Context, emailID, categoryID string, isManual bool) error
	// RecomputeEmbeddings embeds every email that lacks an embedding and
	// returns the number processed.
	RecomputeEmbeddings(ctx context.Context) (int, error)

	ListEmails(filter EmailListFilter) ([]*emaildomain.Email, error)
	GetEmail(id string) (*emaildomain.Email, error)
	Stats() (*emaildto.StatsResponse, error)
}

// EmailListFilter mirrors the query parameters of the email listing endpoint.
type EmailListFilter struct {
	CategoryID string
	Search     string
}

// CategoryUsecase defines the interface for category management
type CategoryUsecase interface {
	ListCategories() ([]*emaildomain.Category, error)
	ListCategoriesWithStats() ([]*emaildomain.CategoryStats, error)
	CreateCategory(category *emaildomain.Category) error
	UpdateCategory(id string, category *emaildomain.Category) (*emaildomain.Category, error)
	DeleteCategory(id string) error
}
