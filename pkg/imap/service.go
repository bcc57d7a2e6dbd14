package imap

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	emaildomain "mailsort-backend/internal/email/domain"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
)

// Service reads an IMAP inbox. It implements emaildomain.MailSource with the
// message UID (decimal string) as the external id.
//
// Connections are short-lived: each call dials, logs in, and logs out. Sync
// batches are small and infrequent enough that connection reuse is not worth
// the reconnect-state machinery.
type Service struct {
	host     string
	port     int
	username string
	password string
}

func NewService(host string, port int, username, password string) *Service {
	return &Service{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

func (s *Service) connect() (*client.Client, error) {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	c, err := client.DialTLS(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to %s: %w", addr, err)
	}

	if err := c.Login(s.username, s.password); err != nil {
		_ = c.Logout()
		return nil, fmt.Errorf("imap login failed: %w", err)
	}
	return c, nil
}

// ListInboxMessageIDs returns the UIDs of the newest max inbox messages,
// newest first.
func (s *Service) ListInboxMessageIDs(ctx context.Context, max int64) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer c.Logout()

	mbox, err := c.Select("INBOX", true)
	if err != nil {
		return nil, fmt.Errorf("unable to select inbox: %w", err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	from := uint32(1)
	if int64(mbox.Messages) > max {
		from = mbox.Messages - uint32(max) + 1
	}
	seqset := new(imap.SeqSet)
	seqset.AddRange(from, mbox.Messages)

	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, []imap.FetchItem{imap.FetchUid}, messages)
	}()

	var ids []string
	for msg := range messages {
		ids = append(ids, strconv.FormatUint(uint64(msg.Uid), 10))
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("unable to fetch message uids: %w", err)
	}

	// Highest sequence numbers are the newest messages.
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids, nil
}

func (s *Service) FetchMessage(ctx context.Context, id string) (*emaildomain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	uid, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid message id %q: %w", id, err)
	}

	c, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer c.Logout()

	if _, err := c.Select("INBOX", true); err != nil {
		return nil, fmt.Errorf("unable to select inbox: %w", err)
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uint32(uid))
	section := &imap.BodySectionName{}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- c.UidFetch(seqset, []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}, messages)
	}()

	msg := <-messages
	if err := <-done; err != nil {
		return nil, fmt.Errorf("unable to fetch message %s: %w", id, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("message %s: %w", id, emaildomain.ErrNotFound)
	}

	return convertMessage(id, msg, msg.GetBody(section))
}

func convertMessage(id string, msg *imap.Message, body io.Reader) (*emaildomain.Message, error) {
	out := &emaildomain.Message{
		ID:         id,
		Subject:    "(No Subject)",
		From:       "Unknown",
		To:         "Unknown",
		ReceivedAt: time.Now(),
	}

	if env := msg.Envelope; env != nil {
		if env.Subject != "" {
			out.Subject = env.Subject
		}
		if addr := formatAddresses(env.From); addr != "" {
			out.From = addr
		}
		if addr := formatAddresses(env.To); addr != "" {
			out.To = addr
		}
		if !env.Date.IsZero() {
			out.ReceivedAt = env.Date
		}
	}

	if body != nil {
		text, err := extractPlainText(body)
		if err != nil {
			return nil, fmt.Errorf("unable to parse message body: %w", err)
		}
		out.Body = text
		out.Snippet = snippet(text)
	}

	return out, nil
}

func formatAddresses(addrs []*imap.Address) string {
	parts := make([]string, 0, len(addrs))
	for _, a := range addrs {
		parts = append(parts, a.Address())
	}
	return strings.Join(parts, ", ")
}

// extractPlainText returns the first text/plain part of a MIME message, or
// the first text part of any kind when no plain part exists.
func extractPlainText(body io.Reader) (string, error) {
	mr, err := mail.CreateReader(body)
	if err != nil {
		return "", err
	}

	fallback := ""
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, err := header.ContentType()
		if err != nil {
			continue
		}

		data, err := io.ReadAll(part.Body)
		if err != nil {
			return "", err
		}
		if contentType == "text/plain" {
			return string(data), nil
		}
		if fallback == "" && strings.HasPrefix(contentType, "text/") {
			fallback = string(data)
		}
	}
	return fallback, nil
}

func snippet(text string) string {
	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > 200 {
		return string(runes[:200])
	}
	return text
}
