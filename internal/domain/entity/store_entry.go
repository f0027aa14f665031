package entity

import (
	"time"
)

// StoreEntry is one key/value document in the relational store backend
type StoreEntry struct {
	Key       string     `gorm:"column:entry_key;primaryKey;size:255"`
	Value     string     `gorm:"type:text;not null"`
	ExpiresAt *time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName returns the table name for StoreEntry
func (StoreEntry) TableName() string {
	return "store_entries"
}
