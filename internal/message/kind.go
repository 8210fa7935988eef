// Package message builds normalized views of SMS and MMS messages from
// conversation rows and stored PDUs.
package message

import (
	apperrors "github.com/welldanyogia/webrana-msgview/internal/errors"
	"github.com/welldanyogia/webrana-msgview/internal/pdu"
)

// Kind is the message family a view was built from.
type Kind int

const (
	KindSms Kind = iota + 1
	KindMms
)

func (k Kind) String() string {
	switch k {
	case KindSms:
		return "sms"
	case KindMms:
		return "mms"
	default:
		return "unknown"
	}
}

// ParseKind accepts exactly "sms" or "mms".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "sms":
		return KindSms, nil
	case "mms":
		return KindMms, nil
	default:
		return 0, apperrors.UnknownMessageType(s)
	}
}

// SMS folders, stored in the type column.
const (
	SmsBoxAll    = 0
	SmsBoxInbox  = 1
	SmsBoxSent   = 2
	SmsBoxDraft  = 3
	SmsBoxOutbox = 4
	SmsBoxFailed = 5
	SmsBoxQueued = 6
)

// MMS message boxes, stored in the msg_box column.
const (
	MmsBoxInbox  = pdu.MessageBoxInbox
	MmsBoxSent   = pdu.MessageBoxSent
	MmsBoxDrafts = pdu.MessageBoxDrafts
	MmsBoxOutbox = pdu.MessageBoxOutbox
)

// SmsStatusNone is the status of an SMS sent without a delivery report request.
const SmsStatusNone = -1

// SmsContentURI is the base URI of stored SMS messages.
const SmsContentURI = "content://sms"

// isOutgoingSmsFolder reports whether an SMS in box was written by the user.
// Sent messages count here although IsOutgoingMessage excludes them.
func isOutgoingSmsFolder(box int) bool {
	switch box {
	case SmsBoxFailed, SmsBoxOutbox, SmsBoxSent, SmsBoxQueued:
		return true
	}
	return false
}
