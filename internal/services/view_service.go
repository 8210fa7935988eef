package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/welldanyogia/webrana-msgview/internal/cursor"
	apperrors "github.com/welldanyogia/webrana-msgview/internal/errors"
	"github.com/welldanyogia/webrana-msgview/internal/logger"
	"github.com/welldanyogia/webrana-msgview/internal/message"
	"github.com/welldanyogia/webrana-msgview/internal/metrics"
	"github.com/welldanyogia/webrana-msgview/internal/repository"
	"github.com/welldanyogia/webrana-msgview/internal/validator"
)

// ViewService defines the interface for reading message views
type ViewService interface {
	// Get builds the view of one message. highlight is an optional search term.
	Get(ctx context.Context, kind string, id int64, highlight string) (*message.View, error)

	// ListThread builds the views of a thread, oldest first. Rows that fail to
	// build are logged and left out.
	ListThread(ctx context.Context, threadID int64, highlight string) ([]*message.View, error)
}

// viewService implements ViewService
type viewService struct {
	repo    repository.ConversationRepository
	builder *message.Builder
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewViewService creates a new ViewService instance
func NewViewService(repo repository.ConversationRepository, builder *message.Builder, m *metrics.Metrics, log *slog.Logger) ViewService {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &viewService{
		repo:    repo,
		builder: builder,
		metrics: m,
		logger:  log,
	}
}

// Get fetches the row and builds its view
func (s *viewService) Get(ctx context.Context, kind string, id int64, highlight string) (*message.View, error) {
	if _, err := message.ParseKind(kind); err != nil {
		return nil, err
	}
	if err := validator.ValidateMessageID(id); err != nil {
		return nil, fmt.Errorf("%w: %s %d: %v", apperrors.ErrInvalidInput, kind, id, err)
	}

	row, cols, err := s.repo.Message(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, kind, row, cols, highlight)
}

// ListThread builds every row of the thread that can be built
func (s *viewService) ListThread(ctx context.Context, threadID int64, highlight string) ([]*message.View, error) {
	rows, err := s.repo.Thread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	views := make([]*message.View, 0, len(rows.Values))
	for _, row := range rows.Values {
		kind := row.String(rows.Columns.MsgType)
		view, err := s.build(ctx, kind, row, rows.Columns, highlight)
		if err != nil {
			logger.BuildFailure(s.logger, kind, row.Int64(rows.Columns.MsgID), err)
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *viewService) build(ctx context.Context, kind string, row cursor.Values, cols *cursor.ColumnsMap, highlight string) (*message.View, error) {
	start := time.Now()
	view, anomalies, err := s.builder.Build(ctx, kind, row, cols, highlight)
	if s.metrics != nil {
		s.metrics.ObserveBuild(kind, time.Since(start).Seconds(), err)
	}
	if err != nil {
		return nil, err
	}

	if len(anomalies) > 0 {
		logger.LogAnomalies(s.logger, view.URI(), anomalies)
		if s.metrics != nil {
			for _, field := range anomalies.Fields() {
				s.metrics.AddAnomaly(field)
			}
		}
	}
	return view, nil
}
