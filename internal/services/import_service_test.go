package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/welldanyogia/webrana-msgview/internal/errors"
	"github.com/welldanyogia/webrana-msgview/internal/models"
	"github.com/welldanyogia/webrana-msgview/internal/pdu"
	"github.com/welldanyogia/webrana-msgview/tests/mocks"
)

// MockPDUWriter is a mock implementation of PDUWriter
type MockPDUWriter struct {
	mock.Mock
}

func (m *MockPDUWriter) Persist(ctx context.Context, g pdu.GenericPdu, box int, threadID int64) (string, error) {
	args := m.Called(ctx, g, box, threadID)
	return args.String(0), args.Error(1)
}

const sampleMIME = "From: +15551234567/TYPE=PLMN@mms.example.net\r\n" +
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
	"Content-Disposition: attachment; filename=\"../../cat.png\"\r\n" +
	"Content-Transfer-Encoding: base64\r\n" +
	"\r\n" +
	"iVBORw0KGgo=\r\n" +
	"--b1--\r\n"

// ==================== ImportMIME Tests ====================

func TestImportMIME_Success(t *testing.T) {
	// Arrange
	writer := new(MockPDUWriter)
	service := NewImportService(writer, new(mocks.MockConversationRepository), nil)
	writer.On("Persist", mock.Anything, mock.MatchedBy(func(g pdu.GenericPdu) bool {
		conf, ok := g.(*pdu.RetrieveConf)
		if !ok || conf.MultimediaBody().PartsNum() != 2 {
			return false
		}
		from, _ := conf.From.Text()
		name := conf.Body.Parts[1].Filename
		return from == "+15551234567" && strings.HasSuffix(name, "cat.png") && !strings.Contains(name, "/")
	}), pdu.MessageBoxInbox, int64(7)).Return("content://mms/11", nil)

	// Act
	uri, err := service.ImportMIME(context.Background(), strings.NewReader(sampleMIME), 7)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "content://mms/11", uri)
	writer.AssertExpectations(t)
}

func TestImportMIME_PersistError(t *testing.T) {
	writer := new(MockPDUWriter)
	service := NewImportService(writer, nil, nil)
	writer.On("Persist", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("disk full"))

	uri, err := service.ImportMIME(context.Background(), strings.NewReader(sampleMIME), 1)

	assert.Empty(t, uri)
	assert.ErrorContains(t, err, "disk full")
}

// ==================== ImportSms Tests ====================

func TestImportSms_Success(t *testing.T) {
	// Arrange
	repo := new(mocks.MockConversationRepository)
	service := NewImportService(nil, repo, nil)
	sms := &models.Sms{ThreadID: 1, Address: " +15550001111 ", Body: "two\nlines\x00", Date: 10, Type: 1, Status: -1}
	repo.On("CreateSms", mock.Anything, sms).Return(nil)

	// Act
	err := service.ImportSms(context.Background(), sms)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "+15550001111", sms.Address)
	assert.Equal(t, "two\nlines", sms.Body)
	repo.AssertExpectations(t)
}

func TestImportSms_Rejects(t *testing.T) {
	tests := []struct {
		name string
		sms  *models.Sms
	}{
		{"empty address", &models.Sms{Address: "", Type: 1}},
		{"bad address", &models.Sms{Address: "not a number!", Type: 1}},
		{"bad box", &models.Sms{Address: "+1555", Type: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockConversationRepository)
			service := NewImportService(nil, repo, nil)

			err := service.ImportSms(context.Background(), tt.sms)

			assert.True(t, apperrors.IsInvalidInput(err))
			repo.AssertNotCalled(t, "CreateSms", mock.Anything, mock.Anything)
		})
	}
}
