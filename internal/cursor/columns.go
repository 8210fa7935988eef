package cursor

// Column names of the conversation projection. SMS and MMS rows share one
// result shape; columns that do not apply to a row's kind are NULL.
const (
	ColTransportType = "transport_type"
	ColID            = "_id"
	ColThreadID      = "thread_id"
	ColAddress       = "address"
	ColBody          = "body"
	ColDate          = "date"
	ColRead          = "read"
	ColType          = "type"
	ColStatus        = "status"
	ColLocked        = "locked"
	ColErrorCode     = "error_code"
	ColSubject       = "sub"
	ColSubjectCS     = "sub_cs"
	ColMessageType   = "m_type"
	ColMessageBox    = "msg_box"
	ColDeliveryRpt   = "d_rpt"
	ColReadReport    = "rr"
	ColErrorType     = "err_type"
)

// Projection lists the projection columns in their default order.
var Projection = []string{
	ColTransportType,
	ColID,
	ColThreadID,
	ColAddress,
	ColBody,
	ColDate,
	ColRead,
	ColType,
	ColStatus,
	ColLocked,
	ColErrorCode,
	ColSubject,
	ColSubjectCS,
	ColMessageType,
	ColMessageBox,
	ColDeliveryRpt,
	ColReadReport,
	ColErrorType,
}

// ColumnsMap holds the column index of every field the builder reads.
// A value of -1 means the column is absent and reads as NULL.
type ColumnsMap struct {
	MsgType  int
	MsgID    int
	ThreadID int

	SmsAddress   int
	SmsBody      int
	SmsDate      int
	SmsRead      int
	SmsType      int
	SmsStatus    int
	SmsLocked    int
	SmsErrorCode int

	MmsSubject        int
	MmsSubjectCharset int
	MmsDate           int
	MmsRead           int
	MmsMessageType    int
	MmsMessageBox     int
	MmsDeliveryReport int
	MmsReadReport     int
	MmsErrorType      int
	MmsLocked         int
}

// DefaultColumnsMap returns the mapping for rows laid out as Projection.
func DefaultColumnsMap() *ColumnsMap {
	return NewColumnsMap(Projection)
}

// NewColumnsMap resolves indices from the column names of a result set.
func NewColumnsMap(columns []string) *ColumnsMap {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := idx[c]; !dup {
			idx[c] = i
		}
	}
	find := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}

	return &ColumnsMap{
		MsgType:  find(ColTransportType),
		MsgID:    find(ColID),
		ThreadID: find(ColThreadID),

		SmsAddress:   find(ColAddress),
		SmsBody:      find(ColBody),
		SmsDate:      find(ColDate),
		SmsRead:      find(ColRead),
		SmsType:      find(ColType),
		SmsStatus:    find(ColStatus),
		SmsLocked:    find(ColLocked),
		SmsErrorCode: find(ColErrorCode),

		MmsSubject:        find(ColSubject),
		MmsSubjectCharset: find(ColSubjectCS),
		MmsDate:           find(ColDate),
		MmsRead:           find(ColRead),
		MmsMessageType:    find(ColMessageType),
		MmsMessageBox:     find(ColMessageBox),
		MmsDeliveryReport: find(ColDeliveryRpt),
		MmsReadReport:     find(ColReadReport),
		MmsErrorType:      find(ColErrorType),
		MmsLocked:         find(ColLocked),
	}
}
