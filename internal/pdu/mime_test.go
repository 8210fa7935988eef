package pdu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== FromMIME Tests ====================

func TestFromMIME_TextOnly(t *testing.T) {
	// Arrange
	raw := `From: +15551234567/TYPE=PLMN@mms.example.net
To: +15557654321/TYPE=PLMN@mms.example.net
Subject: Dinner
Date: Tue, 03 Mar 2026 18:30:00 +0000
Message-Id: <abc123@mms.example.net>
Content-Type: text/plain; charset=utf-8

See you at eight.`

	// Act
	conf, err := FromMIME(strings.NewReader(raw))

	// Assert
	require.NoError(t, err)
	require.NotNil(t, conf.From)
	from, _ := conf.From.Text()
	assert.Equal(t, "+15551234567", from)
	require.Len(t, conf.To, 1)
	to, _ := conf.To[0].Text()
	assert.Equal(t, "+15557654321", to)
	subject, _ := conf.Subject.Text()
	assert.Equal(t, "Dinner", subject)
	assert.Equal(t, int64(1772562600), conf.Date)
	assert.Equal(t, "abc123@mms.example.net", conf.MessageID)

	require.Equal(t, 1, conf.Body.PartsNum())
	assert.Equal(t, "text/plain", conf.Body.Parts[0].ContentType)
	assert.Equal(t, "See you at eight.", strings.TrimSpace(string(conf.Body.Parts[0].Data)))
}

func TestFromMIME_WithImageAttachment(t *testing.T) {
	// Arrange
	raw := "From: Alice <alice@example.com>\r\n" +
		"Subject: Photo\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: multipart/mixed; boundary=\"b1\"\r\n" +
		"\r\n" +
		"--b1\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Look at this\r\n" +
		"--b1\r\n" +
		"Content-Type: image/png\r\n" +
		"Content-Disposition: attachment; filename=\"cat.png\"\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"\r\n" +
		"iVBORw0KGgo=\r\n" +
		"--b1--\r\n"

	// Act
	conf, err := FromMIME(strings.NewReader(raw))

	// Assert
	require.NoError(t, err)
	from, _ := conf.From.Text()
	assert.Equal(t, "alice@example.com", from)
	require.Equal(t, 2, conf.Body.PartsNum())
	assert.Equal(t, "text/plain", conf.Body.Parts[0].ContentType)

	img := conf.Body.Parts[1]
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, "cat.png", img.Filename)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, img.Data)
	assert.Same(t, img, conf.Body.Resolve("cat.png"))
}

func TestSenderAddress(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"+15550001111/TYPE=PLMN", "+15550001111"},
		{"<+15550001111/type=plmn@relay.example>", "+15550001111"},
		{`"Bob" <bob@example.com>`, "bob@example.com"},
		{"carol@example.com", "carol@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, senderAddress(tt.header))
		})
	}
}
