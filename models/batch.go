package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BatchStatus represents the status of an extraction batch
type BatchStatus string

const (
	BatchStatusPending             BatchStatus = "pending"
	BatchStatusProcessing          BatchStatus = "processing"
	BatchStatusCompleted           BatchStatus = "completed"
	BatchStatusCompletedWithErrors BatchStatus = "completed_with_errors"
	BatchStatusFailed              BatchStatus = "failed"
)

// Terminal reports whether a batch has finished processing. Clients stop
// polling once a terminal status is observed.
func (s BatchStatus) Terminal() bool {
	switch s {
	case BatchStatusCompleted, BatchStatusCompletedWithErrors, BatchStatusFailed:
		return true
	}
	return false
}

// RawBundle is the merged raw extraction output (`ui_json`) of a batch
type RawBundle map[string]interface{}

// Value implements driver.Valuer for JSONB
func (b RawBundle) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner for JSONB
func (b *RawBundle) Scan(value interface{}) error {
	if value == nil {
		*b = make(RawBundle)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		*b = make(RawBundle)
		return nil
	}

	return json.Unmarshal(bytes, b)
}

// Batch represents one uploaded tender archive and its extraction run
type Batch struct {
	ID           uuid.UUID   `json:"id"`
	RunID        string      `json:"run_id"`
	Status       BatchStatus `json:"status"`
	Filename     string      `json:"filename"`
	ArchivePath  string      `json:"-"`
	TotalFiles   int         `json:"total_files"`
	UIJSON       RawBundle   `json:"ui_json,omitempty"`
	TenderID     *uuid.UUID  `json:"tender_id,omitempty"`
	ErrorMessage *string     `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
}
