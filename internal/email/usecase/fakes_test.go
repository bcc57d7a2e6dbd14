package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	emaildomain "mailsort-backend/internal/email/domain"
	"mailsort-backend/internal/email/repository"
)

// In-memory fakes for the persistence, mail-source, and embedding-provider
// contracts. Slices keep insertion order so corpus iteration is stable.

type fakeEmailRepo struct {
	emails    []*emaildomain.Email
	createErr error
}

func (r *fakeEmailRepo) Create(email *emaildomain.Email) error {
	if r.createErr != nil {
		return r.createErr
	}
	if email.ID == "" {
		email.ID = fmt.Sprintf("email-%d", len(r.emails)+1)
	}
	r.emails = append(r.emails, email)
	return nil
}

func (r *fakeEmailRepo) FindByID(id string) (*emaildomain.Email, error) {
	for _, e := range r.emails {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeEmailRepo) FindByExternalID(externalID string) (*emaildomain.Email, error) {
	for _, e := range r.emails {
		if e.ExternalID == externalID {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeEmailRepo) UpdateEmbedding(id string, embedding emaildomain.Vector) error {
	for _, e := range r.emails {
		if e.ID == id {
			e.Embedding = embedding
			return nil
		}
	}
	return fmt.Errorf("email %s: %w", id, emaildomain.ErrNotFound)
}

func (r *fakeEmailRepo) List(filter repository.EmailFilter) ([]*emaildomain.Email, error) {
	return r.emails, nil
}

func (r *fakeEmailRepo) ListWithEmbedding() ([]*emaildomain.Email, error) {
	var out []*emaildomain.Email
	for _, e := range r.emails {
		if e.HasEmbedding() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmailRepo) ListWithoutEmbedding() ([]*emaildomain.Email, error) {
	var out []*emaildomain.Email
	for _, e := range r.emails {
		if !e.HasEmbedding() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmailRepo) Count() (int64, error) {
	return int64(len(r.emails)), nil
}

type fakeCategoryRepo struct {
	categories []*emaildomain.Category
}

func (r *fakeCategoryRepo) Create(c *emaildomain.Category) error {
	if c.ID == "" {
		c.ID = fmt.Sprintf("category-%d", len(r.categories)+1)
	}
	r.categories = append(r.categories, c)
	return nil
}

func (r *fakeCategoryRepo) FindByID(id string) (*emaildomain.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) List() ([]*emaildomain.Category, error) {
	return r.categories, nil
}

func (r *fakeCategoryRepo) Update(c *emaildomain.Category) error { return nil }

func (r *fakeCategoryRepo) Delete(id string) error {
	for i, c := range r.categories {
		if c.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeCategoryRepo) ListWithStats() ([]*emaildomain.CategoryStats, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) Count() (int64, error) {
	return int64(len(r.categories)), nil
}

type fakeClassificationRepo struct {
	classifications []*emaildomain.Classification
}

func (r *fakeClassificationRepo) Create(c *emaildomain.Classification) error {
	if c.ID == "" {
		c.ID = fmt.Sprintf("classification-%d", len(r.classifications)+1)
	}
	r.classifications = append(r.classifications, c)
	return nil
}

func (r *fakeClassificationRepo) FindByEmailID(emailID string) (*emaildomain.Classification, error) {
	for _, c := range r.classifications {
		if c.EmailID == emailID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClassificationRepo) Update(c *emaildomain.Classification) error {
	for i, existing := range r.classifications {
		if existing.ID == c.ID {
			r.classifications[i] = c
			return nil
		}
	}
	return fmt.Errorf("classification %s: %w", c.ID, emaildomain.ErrNotFound)
}

func (r *fakeClassificationRepo) Stats() (int64, float64, error) {
	if len(r.classifications) == 0 {
		return 0, 0, nil
	}
	var sum float64
	for _, c := range r.classifications {
		sum += c.Confidence
	}
	return int64(len(r.classifications)), sum / float64(len(r.classifications)), nil
}

type fakeMailSource struct {
	ids      []string
	messages map[string]*emaildomain.Message
	listErr  error
	// onFetch runs before each fetch; tests use it to cancel mid-batch
	onFetch func(id string)
}

func (s *fakeMailSource) ListInboxMessageIDs(ctx context.Context, max int64) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if int64(len(s.ids)) > max {
		return s.ids[:max], nil
	}
	return s.ids, nil
}

func (s *fakeMailSource) FetchMessage(ctx context.Context, id string) (*emaildomain.Message, error) {
	if s.onFetch != nil {
		s.onFetch(id)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	msg, ok := s.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %s: %w", id, emaildomain.ErrNotFound)
	}
	return msg, nil
}

// fakeProvider maps a subject keyword to a fixed embedding, and can be told
// to fail for texts containing failOn.
type fakeProvider struct {
	vectors map[string][]float64
	failOn  string
	calls   int
}

func (p *fakeProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	p.calls++
	if p.failOn != "" && strings.Contains(text, p.failOn) {
		return nil, fmt.Errorf("embedding provider unavailable")
	}
	for key, v := range p.vectors {
		if strings.Contains(text, key) {
			out := make([]float64, len(v))
			copy(out, v)
			return out, nil
		}
	}
	return []float64{0, 0, 1}, nil
}

// countingPacer records waits without sleeping.
type countingPacer struct {
	waits int
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	return ctx.Err()
}

func newMessage(id, subject string) *emaildomain.Message {
	return &emaildomain.Message{
		ID:         id,
		Subject:    subject,
		From:       "sender@example.com",
		To:         "me@example.com",
		Body:       "body of " + subject,
		Snippet:    "snippet of " + subject,
		ReceivedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}
