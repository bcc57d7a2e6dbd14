package usecase

import (
	"context"
	"fmt"

	emaildomain "mailsort-backend/internal/email/domain"
	emaildto "mailsort-backend/internal/email/dto"
	"mailsort-backend/pkg/vector"
)

// Sync pulls up to SyncBatchSize inbox message ids and processes them
// strictly in sequence. Both upstreams enforce per-caller rate limits, so the
// loop trades latency for reliability: no fan-out, one pacer wait before each
// external call.
//
// A failing message is counted and skipped; only the initial listing returns
// an error. Cancellation is honored between messages, which is safe because
// each message's persistence is atomic on its own.
func (u *emailUsecase) Sync(ctx context.Context) (*emaildto.SyncResult, error) {
	ids, err := u.mailSource.ListInboxMessageIDs(ctx, u.config.SyncBatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox messages: %w", err)
	}

	result := &emaildto.SyncResult{Success: true, Total: len(ids)}

	for _, id := range ids {
		if ctx.Err() != nil {
			result.Success = false
			return result, ctx.Err()
		}

		existing, err := u.emailRepo.FindByExternalID(id)
		if err != nil {
			u.logger.Error().Err(err).Str("message_id", id).Msg("dedup lookup failed")
			result.Errors++
			continue
		}
		if existing != nil {
			result.Synced++
			continue
		}

		if err := u.syncNewMessage(ctx, id); err != nil {
			if ctx.Err() != nil {
				result.Success = false
				return result, ctx.Err()
			}
			u.logger.Error().Err(err).Str("message_id", id).Msg("failed to process message")
			result.Errors++
			continue
		}

		result.New++
		result.Synced++
	}

	u.logger.Info().
		Int("total", result.Total).
		Int("synced", result.Synced).
		Int("new", result.New).
		Int("errors", result.Errors).
		Msg("sync finished")

	return result, nil
}

// syncNewMessage fetches, embeds, persists, and auto-classifies one message.
func (u *emailUsecase) syncNewMessage(ctx context.Context, id string) error {
	if err := u.mailPacer.Wait(ctx); err != nil {
		return err
	}
	msg, err := u.mailSource.FetchMessage(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	if err := u.embedPacer.Wait(ctx); err != nil {
		return err
	}
	embedding, err := u.embed(ctx, msg.Subject, msg.Body, msg.Snippet)
	if err != nil {
		return err
	}

	email := &emaildomain.Email{
		ExternalID: msg.ID,
		Subject:    msg.Subject,
		From:       msg.From,
		To:         msg.To,
		Body:       msg.Body,
		Snippet:    msg.Snippet,
		ReceivedAt: msg.ReceivedAt,
		Embedding:  embedding,
	}
	if err := u.emailRepo.Create(email); err != nil {
		return fmt.Errorf("persist email: %w", err)
	}

	return u.autoClassify(email)
}

// autoClassify scores the email against the labeled corpus and records an
// automatic classification when the best mean similarity clears the
// acceptance threshold. Below-threshold matches leave the email unclassified
// rather than forcing a low-confidence guess.
func (u *emailUsecase) autoClassify(email *emaildomain.Email) error {
	labeled, err := u.labeledCorpus()
	if err != nil {
		return fmt.Errorf("build labeled corpus: %w", err)
	}

	match, err := vector.BestCategory(email.Embedding, labeled)
	if err != nil {
		return fmt.Errorf("score categories: %w", err)
	}
	if match == nil || match.Confidence <= u.config.ClassifyThreshold {
		return nil
	}

	classification := &emaildomain.Classification{
		EmailID:    email.ID,
		CategoryID: match.CategoryID,
		Confidence: match.Confidence,
		IsManual:   false,
	}
	if err := u.classificationRepo.Create(classification); err != nil {
		return fmt.Errorf("persist classification: %w", err)
	}

	u.logger.Debug().
		Str("email_id", email.ID).
		Str("category_id", match.CategoryID).
		Float64("confidence", match.Confidence).
		Msg("auto-classified email")
	return nil
}

// labeledCorpus reads the current reference set from persistence: every
// stored email that has both an embedding and a classification. It is
// rebuilt for every classification decision, so emails classified earlier in
// a batch immediately become signal for the ones after them.
func (u *emailUsecase) labeledCorpus() ([]vector.Labeled, error) {
	emails, err := u.emailRepo.ListWithEmbedding()
	if err != nil {
		return nil, err
	}

	labeled := make([]vector.Labeled, 0, len(emails))
	for _, email := range emails {
		if !email.HasEmbedding() {
			continue
		}
		classification, err := u.classificationRepo.FindByEmailID(email.ID)
		if err != nil {
			return nil, err
		}
		if classification == nil {
			continue
		}
		labeled = append(labeled, vector.Labeled{
			Embedding:  email.Embedding,
			CategoryID: classification.CategoryID,
		})
	}
	return labeled, nil
}

// embed builds the provider input from subject and body (snippet when the
// body is empty), hard-truncated to the configured limit, and checks the
// returned dimensionality against configuration.
func (u *emailUsecase) embed(ctx context.Context, subject, body, snippet string) (emaildomain.Vector, error) {
	text := body
	if text == "" {
		text = snippet
	}
	text = subject + "\n\n" + text
	if runes := []rune(text); len(runes) > u.config.EmbedTextLimit {
		text = string(runes[:u.config.EmbedTextLimit])
	}

	embedding, err := u.provider.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if want := u.config.EmbeddingDimensions; want > 0 && len(embedding) != want {
		return nil, &vector.DimensionError{LenA: len(embedding), LenB: want}
	}
	return embedding, nil
}
