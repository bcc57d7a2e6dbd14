package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/mail"
	"time"

	emaildomain "mailsort-backend/internal/email/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Service reads the authenticated user's Gmail inbox. It implements
// emaildomain.MailSource.
type Service struct {
	srv *gmail.Service
}

// NewService builds a Gmail client from an OAuth token pair. When a refresh
// token is present the access token is treated as already expired so the
// first call refreshes it.
func NewService(ctx context.Context, clientID, clientSecret, accessToken, refreshToken string) (*Service, error) {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}
	if refreshToken != "" {
		token.Expiry = time.Now()
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
	}
	client := oauth2.NewClient(ctx, config.TokenSource(ctx, token))

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}

	return &Service{srv: srv}, nil
}

func (s *Service) ListInboxMessageIDs(ctx context.Context, max int64) ([]string, error) {
	resp, err := s.srv.Users.Messages.List("me").
		Q("in:inbox").
		MaxResults(max).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list inbox messages: %w", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		ids = append(ids, msg.Id)
	}
	return ids, nil
}

func (s *Service) FetchMessage(ctx context.Context, id string) (*emaildomain.Message, error) {
	msg, err := s.srv.Users.Messages.Get("me", id).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to fetch message %s: %w", id, err)
	}

	return convertMessage(msg), nil
}

func convertMessage(msg *gmail.Message) *emaildomain.Message {
	subject := getHeader(msg.Payload.Headers, "Subject")
	if subject == "" {
		subject = "(No Subject)"
	}
	from := getHeader(msg.Payload.Headers, "From")
	if from == "" {
		from = "Unknown"
	}
	to := getHeader(msg.Payload.Headers, "To")
	if to == "" {
		to = "Unknown"
	}

	receivedAt := time.Now()
	if date := getHeader(msg.Payload.Headers, "Date"); date != "" {
		if parsed, err := mail.ParseDate(date); err == nil {
			receivedAt = parsed
		}
	}

	return &emaildomain.Message{
		ID:         msg.Id,
		Subject:    subject,
		From:       from,
		To:         to,
		Snippet:    msg.Snippet,
		Body:       extractPlainText(msg.Payload),
		ReceivedAt: receivedAt,
	}
}

func getHeader(headers []*gmail.MessagePartHeader, name string) string {
	for _, h := range headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// extractPlainText walks the MIME tree depth-first and returns the first
// text/plain part. Multipart containers carry their text in nested parts, so
// recursion covers multipart/alternative and multipart/mixed alike. A direct
// top-level body payload is the last resort regardless of its MIME type; a
// single-part message stores its only body there.
func extractPlainText(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	if payload.MimeType == "text/plain" && payload.Body != nil && payload.Body.Data != "" {
		return decodeBase64URL(payload.Body.Data)
	}

	for _, part := range payload.Parts {
		if text := extractPlainText(part); text != "" {
			return text
		}
	}

	if payload.Body != nil && payload.Body.Data != "" {
		return decodeBase64URL(payload.Body.Data)
	}
	return ""
}

// decodeBase64URL tolerates both unpadded and padded encodings; Gmail uses
// the former but stored fixtures sometimes carry the latter.
func decodeBase64URL(data string) string {
	if decoded, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	return ""
}
