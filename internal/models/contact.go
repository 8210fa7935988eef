package models

import (
	"time"
)

// Contact is a cached address -> display name entry. Name is empty for
// addresses created on lookup that have no known owner yet.
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Address   string    `gorm:"uniqueIndex;not null;size:255" json:"address"`
	Name      string    `gorm:"size:255" json:"name,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}
