package models

// Pdu is a row of the pdu table: the header fields of one stored MMS plus the
// columns the conversation projection reads. Date and Expiry are epoch seconds.
//
// Subject and address columns hold raw header bytes as ISO-8859-1 text; the
// charset columns say how to decode them.
type Pdu struct {
	ID              int64   `gorm:"primaryKey;column:id" json:"id"`
	ThreadID        int64   `gorm:"not null;index" json:"thread_id"`
	Date            int64   `gorm:"not null;index" json:"date"`
	Read            bool    `gorm:"default:false" json:"read"`
	MessageBox      int     `gorm:"column:msg_box;not null" json:"msg_box"`
	MessageType     int     `gorm:"column:m_type;not null" json:"m_type"`
	Subject         string  `gorm:"column:sub" json:"sub,omitempty"`
	SubjectCharset  int     `gorm:"column:sub_cs" json:"sub_cs,omitempty"`
	ContentLocation string  `gorm:"column:ct_l" json:"ct_l,omitempty"`
	Expiry          int64   `gorm:"column:exp" json:"exp,omitempty"`
	MessageSize     int64   `gorm:"column:m_size" json:"m_size,omitempty"`
	TransactionID   string  `gorm:"column:tr_id;size:255" json:"tr_id,omitempty"`
	MessageID       string  `gorm:"column:m_id;size:255" json:"m_id,omitempty"`
	DeliveryReport  *string `gorm:"column:d_rpt" json:"d_rpt,omitempty"`
	ReadReport      *string `gorm:"column:rr" json:"rr,omitempty"`
	Locked          bool    `gorm:"default:false" json:"locked"`
	ErrorType       int     `gorm:"column:err_type;default:0" json:"err_type"`

	// Relationships
	Addrs []Addr `gorm:"foreignKey:MsgID;constraint:OnDelete:CASCADE" json:"-"`
	Parts []Part `gorm:"foreignKey:MsgID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for Pdu
func (Pdu) TableName() string {
	return "pdu"
}

// Addr is one address header (from, to, cc, bcc) of a stored PDU.
type Addr struct {
	ID      int64  `gorm:"primaryKey;column:id" json:"id"`
	MsgID   int64  `gorm:"column:msg_id;not null;index" json:"msg_id"`
	Address string `gorm:"size:255" json:"address"`
	Type    int    `gorm:"not null" json:"type"`
	Charset int    `json:"charset"`
}

// TableName returns the table name for Addr
func (Addr) TableName() string {
	return "addr"
}

// Part is one body part of a stored PDU. Text parts keep their payload in
// Text; everything else lives in part storage under DataPath.
type Part struct {
	ID                 int64  `gorm:"primaryKey;column:id" json:"id"`
	MsgID              int64  `gorm:"column:mid;not null;index" json:"mid"`
	Seq                int    `gorm:"not null;default:0" json:"seq"`
	ContentType        string `gorm:"column:ct;size:100" json:"ct"`
	Name               string `gorm:"size:255" json:"name,omitempty"`
	Charset            int    `gorm:"column:chset" json:"chset,omitempty"`
	ContentDisposition string `gorm:"column:cd;size:100" json:"cd,omitempty"`
	Filename           string `gorm:"column:fn;size:255" json:"fn,omitempty"`
	ContentID          string `gorm:"column:cid;size:255" json:"cid,omitempty"`
	ContentLocation    string `gorm:"column:cl;size:255" json:"cl,omitempty"`
	Text               string `gorm:"column:text" json:"text,omitempty"`
	DataPath           string `gorm:"column:_data;size:500" json:"-"`
}

// TableName returns the table name for Part
func (Part) TableName() string {
	return "part"
}
