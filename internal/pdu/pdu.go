package pdu

// GenericPdu is any stored PDU.
type GenericPdu interface {
	MessageType() int
}

// SenderSource is implemented by PDUs that carry a sender address.
type SenderSource interface {
	Sender() *EncodedStringValue
}

// Timestamped is implemented by PDUs that carry the time a message list
// shows for them, in epoch seconds.
type Timestamped interface {
	Timestamp() int64
}

// Multimedia is implemented by PDUs with a multipart body.
type Multimedia interface {
	GenericPdu
	MultimediaBody() *Body
}

// NotificationInd announces a message that has not been downloaded yet.
type NotificationInd struct {
	From            *EncodedStringValue
	Subject         *EncodedStringValue
	ContentLocation []byte
	MessageSize     int64
	Expiry          int64
	TransactionID   []byte
}

func (*NotificationInd) MessageType() int { return MessageTypeNotificationInd }

// Sender returns the From header, nil when absent.
func (n *NotificationInd) Sender() *EncodedStringValue { return n.From }

// Timestamp is the expiry time: a notification is listed by when it lapses.
func (n *NotificationInd) Timestamp() int64 { return n.Expiry }

// MultimediaMessagePdu holds what retrieve-conf and send-req share.
type MultimediaMessagePdu struct {
	Subject *EncodedStringValue
	Date    int64
	Body    *Body
}

// MultimediaBody returns the message body, never nil.
func (m *MultimediaMessagePdu) MultimediaBody() *Body {
	if m.Body == nil {
		return &Body{}
	}
	return m.Body
}

// Timestamp is the Date header.
func (m *MultimediaMessagePdu) Timestamp() int64 { return m.Date }

// RetrieveConf is a downloaded incoming message.
type RetrieveConf struct {
	MultimediaMessagePdu
	From      *EncodedStringValue
	To        []*EncodedStringValue
	MessageID string
}

func (*RetrieveConf) MessageType() int { return MessageTypeRetrieveConf }

// Sender returns the From header, nil when absent.
func (r *RetrieveConf) Sender() *EncodedStringValue { return r.From }

// SendReq is an outgoing message. Its sender is always the local user, so
// it deliberately has no Sender method.
type SendReq struct {
	MultimediaMessagePdu
	To             []*EncodedStringValue
	DeliveryReport int
	ReadReport     int
	TransactionID  []byte
}

func (*SendReq) MessageType() int { return MessageTypeSendReq }

var (
	_ SenderSource = (*NotificationInd)(nil)
	_ SenderSource = (*RetrieveConf)(nil)
	_ Timestamped  = (*NotificationInd)(nil)
	_ Timestamped  = (*RetrieveConf)(nil)
	_ Timestamped  = (*SendReq)(nil)
	_ Multimedia   = (*RetrieveConf)(nil)
	_ Multimedia   = (*SendReq)(nil)
)
