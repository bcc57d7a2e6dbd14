package usecase

import (
	"context"
	"fmt"

	emaildomain "mailsort-backend/internal/email/domain"
)

// Classify creates or updates the single classification of an email. A
// manual assignment is a full-trust override: confidence becomes 1.0 and any
// earlier automatic score is discarded, not blended.
func (u *emailUsecase) Classify(ctx context.Context, emailID, categoryID string, isManual bool) error {
	email, err := u.emailRepo.FindByID(emailID)
	if err != nil {
		return err
	}
	if email == nil {
		return fmt.Errorf("email %s: %w", emailID, emaildomain.ErrNotFound)
	}

	category, err := u.categoryRepo.FindByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("category %s: %w", categoryID, emaildomain.ErrNotFound)
	}

	existing, err := u.classificationRepo.FindByEmailID(emailID)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.CategoryID = categoryID
		existing.IsManual = isManual
		if isManual {
			existing.Confidence = 1.0
		}
		return u.classificationRepo.Update(existing)
	}

	confidence := 0.5
	if isManual {
		confidence = 1.0
	}
	return u.classificationRepo.Create(&emaildomain.Classification{
		EmailID:    emailID,
		CategoryID: categoryID,
		Confidence: confidence,
		IsManual:   isManual,
	})
}

// RecomputeEmbeddings backfills embeddings for emails that never got one,
// sequentially and through the same provider pacer as sync. Per-email
// failures are logged and skipped so one bad record cannot stall the
// backfill.
func (u *emailUsecase) RecomputeEmbeddings(ctx context.Context) (int, error) {
	emails, err := u.emailRepo.ListWithoutEmbedding()
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, email := range emails {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		if email.HasEmbedding() {
			continue
		}

		if err := u.embedPacer.Wait(ctx); err != nil {
			return processed, err
		}
		embedding, err := u.embed(ctx, email.Subject, email.Body, email.Snippet)
		if err != nil {
			u.logger.Error().Err(err).Str("email_id", email.ID).Msg("backfill embedding failed")
			continue
		}
		if err := u.emailRepo.UpdateEmbedding(email.ID, embedding); err != nil {
			u.logger.Error().Err(err).Str("email_id", email.ID).Msg("failed to store embedding")
			continue
		}
		processed++
	}

	return processed, nil
}
