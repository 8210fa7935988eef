package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	apperrors "github.com/welldanyogia/webrana-msgview/internal/errors"
	"github.com/welldanyogia/webrana-msgview/internal/models"
	"github.com/welldanyogia/webrana-msgview/internal/pdu"
	"github.com/welldanyogia/webrana-msgview/internal/repository"
	"github.com/welldanyogia/webrana-msgview/internal/validator"
)

// MaxSmsBodyLength bounds imported SMS bodies; concatenated SMS rarely
// exceed a few thousand characters.
const MaxSmsBodyLength = 10000

// PDUWriter stores PDUs in the message store.
type PDUWriter interface {
	Persist(ctx context.Context, g pdu.GenericPdu, box int, threadID int64) (string, error)
}

// ImportService defines the interface for bringing messages into the store
type ImportService interface {
	// ImportMIME stores a MIME message as a received MMS and returns its URI.
	ImportMIME(ctx context.Context, r io.Reader, threadID int64) (string, error)

	// ImportSms validates and stores an SMS row.
	ImportSms(ctx context.Context, sms *models.Sms) error
}

// importService implements ImportService
type importService struct {
	pdus   PDUWriter
	repo   repository.ConversationRepository
	logger *slog.Logger
}

// NewImportService creates a new ImportService instance
func NewImportService(pdus PDUWriter, repo repository.ConversationRepository, log *slog.Logger) ImportService {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &importService{pdus: pdus, repo: repo, logger: log}
}

// ImportMIME parses r and stores it in the inbox of threadID
func (s *importService) ImportMIME(ctx context.Context, r io.Reader, threadID int64) (string, error) {
	conf, err := pdu.FromMIME(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	for _, part := range conf.MultimediaBody().Parts {
		if part.Filename != "" {
			part.Filename = validator.SanitizeFilename(part.Filename)
		}
	}

	uri, err := s.pdus.Persist(ctx, conf, pdu.MessageBoxInbox, threadID)
	if err != nil {
		return "", fmt.Errorf("failed to store imported message: %w", err)
	}

	s.logger.Info("imported mime message",
		slog.String("uri", uri),
		slog.Int64("thread_id", threadID),
		slog.Int("parts", conf.MultimediaBody().PartsNum()),
	)
	return uri, nil
}

// ImportSms checks the address and folder and cleans the body before storing
func (s *importService) ImportSms(ctx context.Context, sms *models.Sms) error {
	if err := validator.ValidateAddress(sms.Address); err != nil {
		return fmt.Errorf("%w: address: %v", apperrors.ErrInvalidInput, err)
	}
	if err := validator.ValidateSmsBox(sms.Type); err != nil {
		return fmt.Errorf("%w: type %d: %v", apperrors.ErrInvalidInput, sms.Type, err)
	}

	sms.Address = validator.SanitizeString(sms.Address, validator.MaxAddressLength)
	sms.Body = validator.SanitizeText(sms.Body, MaxSmsBodyLength)

	if err := s.repo.CreateSms(ctx, sms); err != nil {
		return err
	}
	return nil
}
