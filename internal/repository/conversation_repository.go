package repository

import (
	"context"
	"fmt"

	"github.com/welldanyogia/webrana-msgview/internal/cursor"
	apperrors "github.com/welldanyogia/webrana-msgview/internal/errors"
	"github.com/welldanyogia/webrana-msgview/internal/models"
	"gorm.io/gorm"
)

// Both halves of the conversation projection produce the columns of
// cursor.Projection in order. MMS dates are stored in seconds and scaled so
// the union sorts on one clock.
const (
	smsProjection = `SELECT 'sms' AS transport_type, id AS _id, thread_id, address, body, date, read,
		type, status, locked, error_code,
		NULL AS sub, NULL AS sub_cs, NULL AS m_type, NULL AS msg_box, NULL AS d_rpt, NULL AS rr, NULL AS err_type
		FROM sms`
	mmsProjection = `SELECT 'mms' AS transport_type, id AS _id, thread_id, NULL AS address, NULL AS body, date * 1000 AS date, read,
		NULL AS type, NULL AS status, locked, NULL AS error_code,
		sub, sub_cs, m_type, msg_box, d_rpt, rr, err_type
		FROM pdu`
)

// Rows is a materialized result of the conversation projection.
type Rows struct {
	Values  []cursor.Values
	Columns *cursor.ColumnsMap
}

// ConversationRepository reads SMS and MMS rows in the shared projection
// shape and stores SMS rows.
type ConversationRepository interface {
	Thread(ctx context.Context, threadID int64) (*Rows, error)
	Message(ctx context.Context, kind string, id int64) (cursor.Values, *cursor.ColumnsMap, error)
	CreateSms(ctx context.Context, sms *models.Sms) error
}

// conversationRepository implements ConversationRepository using GORM
type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new ConversationRepository instance
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Thread returns every message of a thread, oldest first
func (r *conversationRepository) Thread(ctx context.Context, threadID int64) (*Rows, error) {
	query := smsProjection + ` WHERE thread_id = ?
		UNION ALL ` + mmsProjection + ` WHERE thread_id = ?
		ORDER BY date ASC, _id ASC`

	return r.query(ctx, query, threadID, threadID)
}

// Message returns the single row of the given kind and id
func (r *conversationRepository) Message(ctx context.Context, kind string, id int64) (cursor.Values, *cursor.ColumnsMap, error) {
	var query string
	switch kind {
	case "sms":
		query = smsProjection + ` WHERE id = ?`
	case "mms":
		query = mmsProjection + ` WHERE id = ?`
	default:
		return nil, nil, apperrors.UnknownMessageType(kind)
	}

	rows, err := r.query(ctx, query, id)
	if err != nil {
		return nil, nil, err
	}
	if len(rows.Values) == 0 {
		return nil, nil, fmt.Errorf("%s %d: %w", kind, id, apperrors.ErrMessageNotFound)
	}
	return rows.Values[0], rows.Columns, nil
}

// CreateSms stores a new SMS row
func (r *conversationRepository) CreateSms(ctx context.Context, sms *models.Sms) error {
	if err := r.db.WithContext(ctx).Create(sms).Error; err != nil {
		return fmt.Errorf("failed to create sms: %w", err)
	}
	return nil
}

func (r *conversationRepository) query(ctx context.Context, query string, args ...any) (*Rows, error) {
	rows, err := r.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}
	defer rows.Close()

	values, columns, err := cursor.ReadAll(rows)
	if err != nil {
		return nil, err
	}
	return &Rows{Values: values, Columns: cursor.NewColumnsMap(columns)}, nil
}
