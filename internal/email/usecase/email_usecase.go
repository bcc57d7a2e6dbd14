package usecase

import (
	"fmt"

	emaildomain "mailsort-backend/internal/email/domain"
	emaildto "mailsort-backend/internal/email/dto"
	"mailsort-backend/internal/email/repository"
	"mailsort-backend/pkg/ai"
	"mailsort-backend/pkg/config"
	"mailsort-backend/pkg/ratelimit"

	"github.com/rs/zerolog"
)

// emailUsecase implements EmailUsecase interface
type emailUsecase struct {
	emailRepo          repository.EmailRepository
	categoryRepo       repository.CategoryRepository
	classificationRepo repository.ClassificationRepository
	mailSource         emaildomain.MailSource
	provider           ai.Provider

	// One pacer per rate-limited upstream. The embed pacer is shared by
	// sync and the embedding backfill so both paths stay inside the same
	// provider budget.
	mailPacer  ratelimit.Pacer
	embedPacer ratelimit.Pacer

	config *config.Config
	logger zerolog.Logger
}

// NewEmailUsecase creates a new instance of emailUsecase
func NewEmailUsecase(
	emailRepo repository.EmailRepository,
	categoryRepo repository.CategoryRepository,
	classificationRepo repository.ClassificationRepository,
	mailSource emaildomain.MailSource,
	provider ai.Provider,
	mailPacer ratelimit.Pacer,
	embedPacer ratelimit.Pacer,
	cfg *config.Config,
	logger zerolog.Logger,
) EmailUsecase {
	return &emailUsecase{
		emailRepo:          emailRepo,
		categoryRepo:       categoryRepo,
		classificationRepo: classificationRepo,
		mailSource:         mailSource,
		provider:           provider,
		mailPacer:          mailPacer,
		embedPacer:         embedPacer,
		config:             cfg,
		logger:             logger,
	}
}

func (u *emailUsecase) ListEmails(filter EmailListFilter) ([]*emaildomain.Email, error) {
	return u.emailRepo.List(repository.EmailFilter{
		CategoryID: filter.CategoryID,
		Search:     filter.Search,
	})
}

func (u *emailUsecase) GetEmail(id string) (*emaildomain.Email, error) {
	email, err := u.emailRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if email == nil {
		return nil, fmt.Errorf("email %s: %w", id, emaildomain.ErrNotFound)
	}
	return email, nil
}

func (u *emailUsecase) Stats() (*emaildto.StatsResponse, error) {
	totalEmails, err := u.emailRepo.Count()
	if err != nil {
		return nil, err
	}
	totalCategories, err := u.categoryRepo.Count()
	if err != nil {
		return nil, err
	}
	categorized, avgConfidence, err := u.classificationRepo.Stats()
	if err != nil {
		return nil, err
	}

	return &emaildto.StatsResponse{
		TotalEmails:       totalEmails,
		CategorizedEmails: categorized,
		TotalCategories:   totalCategories,
		AverageConfidence: avgConfidence,
	}, nil
}
