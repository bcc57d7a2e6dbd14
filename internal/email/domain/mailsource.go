package domain

import (
	"context"
	"time"
)

// Message is a fully fetched mail-source message with headers already
// resolved to their fallback values: "(No Subject)" for a missing subject,
// "Unknown" for missing from/to, the fetch time for a missing or unparsable
// date.
type Message struct {
	ID         string
	Subject    string
	From       string
	To         string
	Snippet    string
	Body       string
	ReceivedAt time.Time
}

// MailSource lists and fetches inbox messages. Implementations exist for
// Gmail and IMAP; the sync orchestrator paces its own calls, so
// implementations must not sleep internally.
type MailSource interface {
	ListInboxMessageIDs(ctx context.Context, max int64) ([]string, error)
	FetchMessage(ctx context.Context, id string) (*Message, error)
}
