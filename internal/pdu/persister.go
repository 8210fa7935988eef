package pdu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/welldanyogia/webrana-msgview/internal/errors"
	"github.com/welldanyogia/webrana-msgview/internal/models"
	"github.com/welldanyogia/webrana-msgview/internal/storage"
	"gorm.io/gorm"
)

// Persister loads and stores PDUs in the pdu, addr and part tables. Binary
// part payloads go through FileStorage.
type Persister struct {
	db    *gorm.DB
	parts storage.FileStorage
	now   func() time.Time
}

// NewPersister creates a Persister. parts may be nil for stores that only
// ever hold text parts.
func NewPersister(db *gorm.DB, parts storage.FileStorage) *Persister {
	return &Persister{db: db, parts: parts, now: time.Now}
}

// Load reads the PDU addressed by uri and returns a *NotificationInd,
// *RetrieveConf or *SendReq depending on its stored message type.
func (p *Persister) Load(ctx context.Context, uri string) (GenericPdu, error) {
	id, err := IDFromURI(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	var row models.Pdu
	err = p.db.WithContext(ctx).
		Preload("Addrs").
		Preload("Parts", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC, id ASC")
		}).
		First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrPduNotFound, uri)
		}
		return nil, fmt.Errorf("failed to load pdu %s: %w", uri, err)
	}

	switch row.MessageType {
	case MessageTypeNotificationInd:
		return &NotificationInd{
			From:            addrOfType(row.Addrs, AddrTypeFrom),
			Subject:         subjectOf(row),
			ContentLocation: []byte(row.ContentLocation),
			MessageSize:     row.MessageSize,
			Expiry:          row.Expiry,
			TransactionID:   []byte(row.TransactionID),
		}, nil

	case MessageTypeRetrieveConf, MessageTypeSendReq:
		body, err := p.loadBody(row.Parts)
		if err != nil {
			return nil, fmt.Errorf("failed to load parts of %s: %w", uri, err)
		}
		mm := MultimediaMessagePdu{Subject: subjectOf(row), Date: row.Date, Body: body}
		to := addrsOfType(row.Addrs, AddrTypeTo)

		if row.MessageType == MessageTypeRetrieveConf {
			return &RetrieveConf{
				MultimediaMessagePdu: mm,
				From:                 addrOfType(row.Addrs, AddrTypeFrom),
				To:                   to,
				MessageID:            row.MessageID,
			}, nil
		}
		return &SendReq{
			MultimediaMessagePdu: mm,
			To:                   to,
			DeliveryReport:       reportValue(row.DeliveryReport),
			ReadReport:           reportValue(row.ReadReport),
			TransactionID:        []byte(row.TransactionID),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported message type 0x%x for %s", row.MessageType, uri)
	}
}

func (p *Persister) loadBody(parts []models.Part) (*Body, error) {
	body := &Body{}
	for _, m := range parts {
		part := &Part{
			ContentType:     m.ContentType,
			Charset:         m.Charset,
			Name:            m.Name,
			Filename:        m.Filename,
			ContentID:       m.ContentID,
			ContentLocation: m.ContentLocation,
		}
		switch {
		case m.DataPath != "":
			if p.parts == nil {
				return nil, fmt.Errorf("part %d has a payload file but no part storage is configured", m.ID)
			}
			data, err := storage.ReadAll(p.parts, m.DataPath)
			if err != nil {
				return nil, fmt.Errorf("part %d: %w", m.ID, err)
			}
			part.Data = data
		default:
			// the text column is always stored decoded
			part.Data = []byte(m.Text)
			part.Charset = CharsetUTF8
		}
		body.AddPart(part)
	}
	return body, nil
}

// Persist stores g in the given message box and thread and returns its URI.
func (p *Persister) Persist(ctx context.Context, g GenericPdu, box int, threadID int64) (string, error) {
	row := models.Pdu{
		ThreadID:    threadID,
		MessageBox:  box,
		MessageType: g.MessageType(),
	}
	var addrs []models.Addr
	var body *Body

	switch v := g.(type) {
	case *NotificationInd:
		row.Date = p.now().Unix()
		row.ContentLocation = string(v.ContentLocation)
		row.MessageSize = v.MessageSize
		row.Expiry = v.Expiry
		row.TransactionID = string(v.TransactionID)
		setSubject(&row, v.Subject)
		addrs = appendAddr(addrs, AddrTypeFrom, v.From)
	case *RetrieveConf:
		row.Date = v.Date
		row.MessageID = v.MessageID
		setSubject(&row, v.Subject)
		addrs = appendAddr(addrs, AddrTypeFrom, v.From)
		for _, to := range v.To {
			addrs = appendAddr(addrs, AddrTypeTo, to)
		}
		body = v.Body
	case *SendReq:
		row.Date = v.Date
		row.TransactionID = string(v.TransactionID)
		row.DeliveryReport = reportColumn(v.DeliveryReport)
		row.ReadReport = reportColumn(v.ReadReport)
		setSubject(&row, v.Subject)
		addrs = appendAddr(addrs, AddrTypeFrom, NewEncodedStringValue(InsertAddressToken))
		for _, to := range v.To {
			addrs = appendAddr(addrs, AddrTypeTo, to)
		}
		body = v.Body
	default:
		return "", fmt.Errorf("%w: cannot persist pdu of type %T", apperrors.ErrInvalidInput, g)
	}

	var saved []string
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create pdu: %w", err)
		}

		for i := range addrs {
			addrs[i].MsgID = row.ID
			if err := tx.Create(&addrs[i]).Error; err != nil {
				return fmt.Errorf("failed to create addr: %w", err)
			}
		}

		if body == nil {
			return nil
		}
		for seq, part := range body.Parts {
			m, err := p.partRow(part)
			if err != nil {
				return err
			}
			if m.DataPath != "" {
				saved = append(saved, m.DataPath)
			}
			m.MsgID = row.ID
			m.Seq = seq
			if err := tx.Create(&m).Error; err != nil {
				return fmt.Errorf("failed to create part: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		for _, path := range saved {
			_ = p.parts.Delete(path)
		}
		return "", err
	}

	return URIFor(row.ID), nil
}

// partRow keeps text parts inline and writes everything else to part storage.
func (p *Persister) partRow(part *Part) (models.Part, error) {
	m := models.Part{
		ContentType:     part.ContentType,
		Charset:         part.Charset,
		Name:            part.Name,
		Filename:        part.Filename,
		ContentID:       part.ContentID,
		ContentLocation: part.ContentLocation,
	}

	if isInlineText(part.ContentType) {
		if text, err := Decode(part.Charset, part.Data); err == nil {
			m.Text = text
			return m, nil
		}
	}

	if p.parts == nil {
		return m, fmt.Errorf("no part storage configured for %s part", part.ContentType)
	}
	name := part.Filename
	if name == "" {
		name = part.Name
	}
	path, err := p.parts.Save(name, bytes.NewReader(part.Data))
	if err != nil {
		return m, fmt.Errorf("failed to save part payload: %w", err)
	}
	m.DataPath = path
	return m, nil
}

func isInlineText(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.HasPrefix(ct, "text/") || ct == "application/smil"
}

func subjectOf(row models.Pdu) *EncodedStringValue {
	if row.Subject == "" {
		return nil
	}
	return columnValue(row.SubjectCharset, row.Subject)
}

func setSubject(row *models.Pdu, v *EncodedStringValue) {
	if v == nil || len(v.Data) == 0 {
		return
	}
	row.Subject = ToISOString(v.Data)
	row.SubjectCharset = v.Charset
}

func appendAddr(addrs []models.Addr, typ int, v *EncodedStringValue) []models.Addr {
	if v == nil {
		return addrs
	}
	return append(addrs, models.Addr{
		Address: ToISOString(v.Data),
		Type:    typ,
		Charset: v.Charset,
	})
}

func addrOfType(addrs []models.Addr, typ int) *EncodedStringValue {
	for _, a := range addrs {
		if a.Type == typ {
			return columnValue(a.Charset, a.Address)
		}
	}
	return nil
}

func addrsOfType(addrs []models.Addr, typ int) []*EncodedStringValue {
	var out []*EncodedStringValue
	for _, a := range addrs {
		if a.Type == typ {
			out = append(out, columnValue(a.Charset, a.Address))
		}
	}
	return out
}

// columnValue rebuilds an encoded string from an ISO-8859-1 column. Values
// written by other tools as plain UTF-8 text are taken as they are.
func columnValue(charset int, s string) *EncodedStringValue {
	if b, err := BytesOf(s); err == nil {
		return &EncodedStringValue{Charset: charset, Data: b}
	}
	return NewEncodedStringValue(s)
}

func reportColumn(v int) *string {
	if v == 0 {
		return nil
	}
	s := strconv.Itoa(v)
	return &s
}

func reportValue(s *string) int {
	if s == nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return 0
	}
	return v
}
