// Package pdu models stored MMS protocol data units and loads them from the
// message store.
package pdu

// X-Mms-Message-Type values.
const (
	MessageTypeSendReq         = 0x80
	MessageTypeNotificationInd = 0x82
	MessageTypeRetrieveConf    = 0x84
)

// Values of the X-Mms-Delivery-Report and X-Mms-Read-Report headers.
const (
	ValueYes = 0x80
	ValueNo  = 0x81
)

// Address header types as stored in the addr table.
const (
	AddrTypeBCC  = 0x81
	AddrTypeCC   = 0x82
	AddrTypeFrom = 0x89
	AddrTypeTo   = 0x97
)

// Message box values of stored PDUs.
const (
	MessageBoxAll    = 0
	MessageBoxInbox  = 1
	MessageBoxSent   = 2
	MessageBoxDrafts = 3
	MessageBoxOutbox = 4
)

// InsertAddressToken stands in for the sender of an outgoing send-req; the
// MMSC replaces it with the subscriber's address.
const InsertAddressToken = "insert-address-token"

// MessageTypeName returns a short name for logs.
func MessageTypeName(t int) string {
	switch t {
	case MessageTypeSendReq:
		return "send-req"
	case MessageTypeNotificationInd:
		return "notification-ind"
	case MessageTypeRetrieveConf:
		return "retrieve-conf"
	default:
		return "unknown"
	}
}
