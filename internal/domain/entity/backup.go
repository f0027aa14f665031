package entity

import (
	"encoding/json"
	"time"
)

// Backup is the full export of the persisted collections
type Backup struct {
	Products  []Product     `json:"products"`
	Customers []Customer    `json:"customers"`
	Invoices  []Invoice     `json:"invoices"`
	Settings  *ShopSettings `json:"settings"`
	Timestamp time.Time     `json:"timestamp"`
}

// BackupDocument is a parsed backup in which any collection may be missing.
// Present keys are kept raw so each can be decoded and written on its own.
type BackupDocument struct {
	Products  json.RawMessage `json:"products,omitempty"`
	Customers json.RawMessage `json:"customers,omitempty"`
	Invoices  json.RawMessage `json:"invoices,omitempty"`
	Settings  json.RawMessage `json:"settings,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// Filename returns the download name for the backup
func (b *Backup) Filename() string {
	return "shopflow_backup_" + b.Timestamp.UTC().Format("2006-01-02") + ".json"
}
