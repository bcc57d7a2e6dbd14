package repository

import emaildomain "mailsort-backend/internal/email/domain"

// EmailFilter narrows email listings. Zero value means no filtering.
type EmailFilter struct {
	CategoryID string
	Search     string
}

// EmailRepository defines the interface for email persistence
type EmailRepository interface {
	Create(email *emaildomain.Email) error
	// FindByID returns (nil, nil) when no email exists with that id
	FindByID(id string) (*emaildomain.Email, error)
	// FindByExternalID returns (nil, nil) when the external id is unknown;
	// this is the dedup check used by sync
	FindByExternalID(externalID string) (*emaildomain.Email, error)
	// UpdateEmbedding attaches or replaces the embedding of an email
	UpdateEmbedding(id string, embedding emaildomain.Vector) error
	// List returns emails newest-first with classification and category
	// preloaded, optionally filtered by category and subject/sender search
	List(filter EmailFilter) ([]*emaildomain.Email, error)
	// ListWithEmbedding returns every email that has a stored embedding;
	// together with their classifications these form the labeled corpus
	ListWithEmbedding() ([]*emaildomain.Email, error)
	// ListWithoutEmbedding returns emails whose embedding is missing or
	// empty, for the backfill operation
	ListWithoutEmbedding() ([]*emaildomain.Email, error)
	Count() (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	Create(category *emaildomain.Category) error
	// FindByID returns (nil, nil) when no category exists with that id
	FindByID(id string) (*emaildomain.Category, error)
	List() ([]*emaildomain.Category, error)
	Update(category *emaildomain.Category) error
	// Delete removes the category and its classifications in one
	// transaction (explicit application-level cascade)
	Delete(id string) error
	// ListWithStats returns every category with its classified-email count
	// and percentage of all emails
	ListWithStats() ([]*emaildomain.CategoryStats, error)
	Count() (int64, error)
}

// ClassificationRepository defines the interface for classification persistence
type ClassificationRepository interface {
	Create(classification *emaildomain.Classification) error
	// FindByEmailID returns (nil, nil) when the email has no classification
	FindByEmailID(emailID string) (*emaildomain.Classification, error)
	Update(classification *emaildomain.Classification) error
	// Stats returns the number of classifications and their mean confidence
	// (0 when there are none)
	Stats() (count int64, avgConfidence float64, err error)
}
