package models

import (
	"time"

	"github.com/google/uuid"
)

// TenderStatus represents the lifecycle status of a tender
type TenderStatus string

const (
	TenderStatusOpen      TenderStatus = "open"
	TenderStatusSubmitted TenderStatus = "submitted"
	TenderStatusArchived  TenderStatus = "archived"
)

// Tender represents a procurement call tracked by the wizard
type Tender struct {
	ID                  uuid.UUID    `json:"id"`
	Title               string       `json:"title"`
	Buyer               string       `json:"buyer"`
	Region              string       `json:"region"`
	Deadline            *time.Time   `json:"deadline,omitempty"`
	Score               int          `json:"score"`
	ProjectDurationDays int          `json:"project_duration_days"`
	Status              TenderStatus `json:"status"`

	// BatchID links the tender to the extraction run its view was built from.
	BatchID *uuid.UUID  `json:"batch_id,omitempty"`
	View    *TenderView `json:"view,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
