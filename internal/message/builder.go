package message

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/welldanyogia/webrana-msgview/internal/cursor"
	apperrors "github.com/welldanyogia/webrana-msgview/internal/errors"
	"github.com/welldanyogia/webrana-msgview/internal/i18n"
	"github.com/welldanyogia/webrana-msgview/internal/pdu"
	"github.com/welldanyogia/webrana-msgview/internal/slideshow"
)

// PDUStore loads stored MMS PDUs by URI.
type PDUStore interface {
	Load(ctx context.Context, uri string) (pdu.GenericPdu, error)
}

// SlideshowDecoder lays out a multimedia body as slides.
type SlideshowDecoder interface {
	Decode(ctx context.Context, body *pdu.Body) (*slideshow.Slideshow, error)
}

// ContactResolver maps an address to a display name. It never fails; an
// unknown address resolves to a presentable form of itself.
type ContactResolver interface {
	Resolve(ctx context.Context, address string, createIfAbsent bool) string
}

// Localizer resolves string keys from the i18n package.
type Localizer interface {
	String(key string) string
	Format(key string, args ...any) string
}

// TimestampFormatter renders epoch milliseconds.
type TimestampFormatter interface {
	Format(epochMillis int64) string
}

// Deps are the collaborators a Builder reads through.
type Deps struct {
	PDUs     PDUStore
	Slides   SlideshowDecoder
	Contacts ContactResolver
	Strings  Localizer
	Clock    TimestampFormatter
}

// Builder turns conversation rows into Views. It holds no state of its own
// and is safe for concurrent use when its collaborators are.
type Builder struct {
	deps Deps
}

func NewBuilder(deps Deps) *Builder {
	return &Builder{deps: deps}
}

// Build creates the view of one row. kind must be "sms" or "mms". A nil cols
// means the row is laid out as cursor.Projection.
//
// Failures return no view: an unknown kind, a row without an id, an MMS
// subject that does not decode, and errors from the PDU store or slideshow
// decoder. Malformed report flags are tolerated and come back as anomalies.
func (b *Builder) Build(ctx context.Context, kind string, c cursor.Cursor, cols *cursor.ColumnsMap, highlight string) (*View, Anomalies, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, nil, err
	}
	if cols == nil {
		cols = cursor.DefaultColumnsMap()
	}
	if cols.MsgID < 0 || c.IsNull(cols.MsgID) {
		return nil, nil, fmt.Errorf("%w: row has no message id", apperrors.ErrInvalidInput)
	}

	v := &View{
		kind:      k,
		id:        c.Int64(cols.MsgID),
		highlight: strings.ToLower(highlight),
		formatted: &FormattedBody{},
	}

	if k == KindSms {
		b.buildSms(ctx, v, c, cols)
		return v, nil, nil
	}

	anomalies, err := b.buildMms(ctx, v, c, cols)
	if err != nil {
		return nil, nil, err
	}
	return v, anomalies, nil
}

func (b *Builder) buildSms(ctx context.Context, v *View, c cursor.Cursor, cols *cursor.ColumnsMap) {
	v.uri = SmsContentURI + "/" + strconv.FormatInt(v.id, 10)
	v.readReport = false
	v.deliveryReport = c.Int64(cols.SmsStatus) != SmsStatusNone
	v.boxID = c.Int(cols.SmsType)
	v.address = c.String(cols.SmsAddress)

	if isOutgoingSmsFolder(v.boxID) {
		v.contact = b.self()
	} else {
		v.contact = b.deps.Contacts.Resolve(ctx, v.address, true)
	}
	v.body = c.String(cols.SmsBody)

	if !v.IsOutgoingMessage() {
		v.timestamp = b.deps.Strings.Format(i18n.KeySentOn, b.deps.Clock.Format(c.Int64(cols.SmsDate)))
	}
	v.locked = c.Int64(cols.SmsLocked) != 0
}

func (b *Builder) buildMms(ctx context.Context, v *View, c cursor.Cursor, cols *cursor.ColumnsMap) (Anomalies, error) {
	v.uri = pdu.URIFor(v.id)
	v.boxID = c.Int(cols.MmsMessageBox)

	d := &MmsDetails{
		MessageType: c.Int(cols.MmsMessageType),
		ErrorType:   c.Int(cols.MmsErrorType),
	}
	if sub := c.String(cols.MmsSubject); sub != "" {
		subject, err := decodeSubject(c.Int(cols.MmsSubjectCharset), sub)
		if err != nil {
			return nil, apperrors.SubjectDecode(v.uri, err)
		}
		d.Subject = subject
	}
	v.locked = c.Int64(cols.MmsLocked) != 0

	msg, err := b.deps.PDUs.Load(ctx, v.uri)
	if err != nil {
		return nil, apperrors.UpstreamLoad(v.uri, err)
	}
	if msg.MessageType() != d.MessageType {
		return nil, apperrors.UpstreamLoad(v.uri, fmt.Errorf("stored pdu is %s, row says %s",
			pdu.MessageTypeName(msg.MessageType()), pdu.MessageTypeName(d.MessageType)))
	}

	var anomalies Anomalies
	if ind, ok := msg.(*pdu.NotificationInd); ok {
		v.deliveryReport = false
		b.interpretFrom(ctx, v, msg)
		v.body = string(ind.ContentLocation)
		d.Size = int(ind.MessageSize)
	} else {
		mm, ok := msg.(pdu.Multimedia)
		if !ok {
			return nil, apperrors.UpstreamLoad(v.uri, fmt.Errorf("unsupported pdu %T", msg))
		}
		show, err := b.deps.Slides.Decode(ctx, mm.MultimediaBody())
		if err != nil {
			return nil, apperrors.UpstreamLoad(v.uri, err)
		}
		d.Slideshow = show
		d.AttachmentType = show.AttachmentType()

		b.interpretFrom(ctx, v, msg)

		var bad *Anomaly
		v.deliveryReport, bad = b.reportFlag(v, c, cols.MmsDeliveryReport, FieldDeliveryReport)
		if bad != nil {
			anomalies = append(anomalies, *bad)
		}
		v.readReport, bad = b.reportFlag(v, c, cols.MmsReadReport, FieldReadReport)
		if bad != nil {
			anomalies = append(anomalies, *bad)
		}

		if slide := show.Get(0); slide != nil && slide.HasText() {
			if slide.Text.DRMProtected {
				v.body = b.deps.Strings.String(i18n.KeyDRMProtectedText)
			} else {
				v.body = slide.Text.Text
			}
		}
		d.Size = show.CurrentMessageSize()
	}
	v.mms = d

	if !v.IsOutgoingMessage() {
		var seconds int64
		if ts, ok := msg.(pdu.Timestamped); ok {
			seconds = ts.Timestamp()
		}
		key := i18n.KeySentOn
		if d.MessageType == pdu.MessageTypeNotificationInd {
			key = i18n.KeyExpireOn
		}
		v.timestamp = b.deps.Strings.Format(key, b.deps.Clock.Format(seconds*1000))
	}
	return anomalies, nil
}

// interpretFrom fills the sender from PDUs that carry one. Any other PDU was
// sent by the user and gets the self label for both address and contact.
// Undecodable sender bytes are substituted, not fatal.
func (b *Builder) interpretFrom(ctx context.Context, v *View, msg pdu.GenericPdu) {
	src, ok := msg.(pdu.SenderSource)
	if !ok {
		v.address = b.self()
		v.contact = v.address
		return
	}

	from := src.Sender()
	if from == nil {
		v.address, v.contact = "", ""
		return
	}
	v.address = from.String()
	v.contact = b.deps.Contacts.Resolve(ctx, v.address, true)
}

// reportFlag reads a report request column. Only messages whose address is
// the self label can have requested a report.
func (b *Builder) reportFlag(v *View, c cursor.Cursor, col int, field string) (bool, *Anomaly) {
	if c.IsNull(col) || v.address != b.self() {
		return false, nil
	}
	raw := c.String(col)
	n, err := strconv.Atoi(raw)
	if err != nil {
		a := newMalformedFlag(v.uri, field, raw, err)
		return false, &a
	}
	return n == pdu.ValueYes, nil
}

func (b *Builder) self() string {
	return b.deps.Strings.String(i18n.KeySenderSelf)
}

// decodeSubject turns the ISO-8859-1 column text back into raw header bytes
// and decodes them with the stored charset.
func decodeSubject(charset int, column string) (string, error) {
	raw, err := pdu.BytesOf(column)
	if err != nil {
		return "", err
	}
	v := pdu.EncodedStringValue{Charset: charset, Data: raw}
	return v.Text()
}
