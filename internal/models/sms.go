package models

// Sms is a row of the sms table. Date is epoch milliseconds. Status has no
// column default: gorm would substitute it for a legitimate 0 (complete).
type Sms struct {
	ID        int64  `gorm:"primaryKey;column:id" json:"id"`
	ThreadID  int64  `gorm:"not null;index" json:"thread_id"`
	Address   string `gorm:"size:255" json:"address"`
	Body      string `json:"body"`
	Date      int64  `gorm:"not null;index" json:"date"`
	DateSent  int64  `json:"date_sent"`
	Read      bool   `gorm:"default:false" json:"read"`
	Type      int    `gorm:"not null" json:"type"`
	Status    int    `gorm:"not null" json:"status"`
	Locked    bool   `gorm:"default:false" json:"locked"`
	ErrorCode int    `gorm:"default:0" json:"error_code"`
}

// TableName returns the table name for Sms
func (Sms) TableName() string {
	return "sms"
}
