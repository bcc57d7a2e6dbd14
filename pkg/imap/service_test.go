package imap

import (
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multipartMessage = "From: alice@example.com\r\n" +
	"To: bob@example.com\r\n" +
	"Subject: hello\r\n" +
	"Content-Type: multipart/alternative; boundary=frontier\r\n" +
	"\r\n" +
	"--frontier\r\n" +
	"Content-Type: text/html\r\n" +
	"\r\n" +
	"<p>rich version</p>\r\n" +
	"--frontier\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"plain version\r\n" +
	"--frontier--\r\n"

func TestExtractPlainTextPrefersPlainPart(t *testing.T) {
	text, err := extractPlainText(strings.NewReader(multipartMessage))
	require.NoError(t, err)
	assert.Equal(t, "plain version\r\n", text)
}

func TestExtractPlainTextFallsBackToHTML(t *testing.T) {
	message := "From: alice@example.com\r\n" +
		"Subject: html only\r\n" +
		"Content-Type: multipart/alternative; boundary=frontier\r\n" +
		"\r\n" +
		"--frontier\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<p>only html</p>\r\n" +
		"--frontier--\r\n"

	text, err := extractPlainText(strings.NewReader(message))
	require.NoError(t, err)
	assert.Equal(t, "<p>only html</p>\r\n", text)
}

func TestConvertMessageEnvelope(t *testing.T) {
	date := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	msg := &imap.Message{
		Envelope: &imap.Envelope{
			Subject: "hello",
			Date:    date,
			From: []*imap.Address{
				{MailboxName: "alice", HostName: "example.com"},
			},
			To: []*imap.Address{
				{MailboxName: "bob", HostName: "example.com"},
				{MailboxName: "carol", HostName: "example.com"},
			},
		},
	}

	got, err := convertMessage("42", msg, strings.NewReader(multipartMessage))
	require.NoError(t, err)

	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "hello", got.Subject)
	assert.Equal(t, "alice@example.com", got.From)
	assert.Equal(t, "bob@example.com, carol@example.com", got.To)
	assert.Equal(t, date, got.ReceivedAt)
	assert.Equal(t, "plain version\r\n", got.Body)
	assert.Equal(t, "plain version", got.Snippet)
}

func TestConvertMessageFallbacks(t *testing.T) {
	got, err := convertMessage("7", &imap.Message{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "(No Subject)", got.Subject)
	assert.Equal(t, "Unknown", got.From)
	assert.Equal(t, "Unknown", got.To)
	assert.False(t, got.ReceivedAt.IsZero())
}

func TestSnippetTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	assert.Len(t, snippet(long), 200)
	assert.Equal(t, "short", snippet("  short \n"))
}
