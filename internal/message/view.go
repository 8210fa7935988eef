package message

import (
	"fmt"

	"github.com/welldanyogia/webrana-msgview/internal/pdu"
	"github.com/welldanyogia/webrana-msgview/internal/slideshow"
)

// AttachmentType classifies MMS content for list display.
type AttachmentType = slideshow.AttachmentType

// MmsDetails holds what only MMS views carry.
type MmsDetails struct {
	MessageType    int
	AttachmentType AttachmentType
	Subject        string
	Slideshow      *slideshow.Slideshow // nil for notifications
	Size           int
	ErrorType      int
}

// FormattedBody is the one piece of a View written after construction: a
// renderer stores its formatted output here for reuse. It is not
// synchronized. Readers and writers must share one goroutine; a reader on
// another goroutine may miss a value and format again.
type FormattedBody struct {
	value string
	set   bool
}

// View is the normalized form of one SMS or MMS. Every field except the
// formatted body cache is fixed by Build.
type View struct {
	kind  Kind
	id    int64
	boxID int

	locked         bool
	deliveryReport bool
	readReport     bool

	timestamp string
	address   string
	contact   string
	body      string
	highlight string
	uri       string

	mms       *MmsDetails
	formatted *FormattedBody
}

func (v *View) Kind() Kind                    { return v.kind }
func (v *View) ID() int64                     { return v.id }
func (v *View) BoxID() int                    { return v.boxID }
func (v *View) Locked() bool                  { return v.locked }
func (v *View) DeliveryReportRequested() bool { return v.deliveryReport }
func (v *View) ReadReportRequested() bool     { return v.readReport }
func (v *View) Address() string               { return v.address }
func (v *View) Contact() string               { return v.contact }
func (v *View) Body() string                  { return v.body }
func (v *View) URI() string                   { return v.uri }

// Timestamp is the localized time label, empty for outgoing messages.
func (v *View) Timestamp() string { return v.timestamp }

// Highlight is the lowercased search term, empty when none was given.
func (v *View) Highlight() string { return v.highlight }

// Mms returns a copy of the MMS details, nil for SMS views.
func (v *View) Mms() *MmsDetails {
	if v.mms == nil {
		return nil
	}
	d := *v.mms
	return &d
}

func (v *View) IsMms() bool { return v.kind == KindMms }
func (v *View) IsSms() bool { return v.kind == KindSms }

// IsDownloaded is false only for MMS notifications whose content has not
// been fetched.
func (v *View) IsDownloaded() bool {
	return v.mms == nil || v.mms.MessageType != pdu.MessageTypeNotificationInd
}

// IsOutgoingMessage reports messages still on their way out: MMS in the
// outbox, SMS that failed, wait in the outbox or are queued.
func (v *View) IsOutgoingMessage() bool {
	if v.IsMms() {
		return v.boxID == MmsBoxOutbox
	}
	switch v.boxID {
	case SmsBoxFailed, SmsBoxOutbox, SmsBoxQueued:
		return true
	}
	return false
}

// CachedFormattedBody returns the renderer's stored output, if any.
func (v *View) CachedFormattedBody() (string, bool) {
	return v.formatted.value, v.formatted.set
}

// SetCachedFormattedBody stores the renderer's output, replacing any earlier value.
func (v *View) SetCachedFormattedBody(s string) {
	v.formatted.value = s
	v.formatted.set = true
}

func (v *View) String() string {
	return fmt.Sprintf("type: %s box: %d uri: %s address: %s contact: %s read: %t delivery report: %t",
		v.kind, v.boxID, v.uri, v.address, v.contact, v.readReport, v.deliveryReport)
}
