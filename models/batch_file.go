package models

import (
	"time"

	"github.com/google/uuid"
)

// BatchFileStatus represents the status of a single file inside a batch
type BatchFileStatus string

const (
	FileStatusPending    BatchFileStatus = "pending"
	FileStatusProcessing BatchFileStatus = "processing"
	FileStatusSuccess    BatchFileStatus = "success"
	FileStatusFailed     BatchFileStatus = "failed"
)

// BatchFile represents one entry of an uploaded tender archive
type BatchFile struct {
	ID           uuid.UUID       `json:"id"`
	BatchID      uuid.UUID       `json:"batch_id"`
	Filename     string          `json:"filename"`
	Size         int64           `json:"size"`
	Status       BatchFileStatus `json:"status"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BatchFileCounts aggregates per-status file counts for the status endpoint
type BatchFileCounts struct {
	Pending    int `json:"files_pending"`
	Processing int `json:"files_processing"`
	Success    int `json:"files_success"`
	Failed     int `json:"files_failed"`
}
