package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateScreeningRequest struct {
	GuidelineID uuid.UUID `json:"guideline_id" validate:"required"`
}

type CompleteScreeningRequest struct {
	CompletionDate string `json:"completion_date" validate:"required"`
	Notes          string `json:"notes,omitempty"`
}

// Response DTOs

type ScreeningResponse struct {
	ID                uuid.UUID             `json:"id"`
	GuidelineID       uuid.UUID             `json:"guideline_id"`
	UserID            uuid.UUID             `json:"user_id"`
	Archived          bool                  `json:"archived"`
	LastCompletedDate *string               `json:"last_completed_date,omitempty"`
	NextDueDate       *string               `json:"next_due_date,omitempty"`
	Guideline         *GuidelineResponse    `json:"guideline,omitempty"`
	Appointments      []AppointmentResponse `json:"appointments,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

type ScreeningListResponse struct {
	Screenings []ScreeningResponse              `json:"screenings"`
	Unmatched  map[string][]AppointmentResponse `json:"unmatched_appointments,omitempty"`
	Total      int                              `json:"total"`
}

type CompletionEventResponse struct {
	ID             uuid.UUID `json:"id"`
	GuidelineID    uuid.UUID `json:"guideline_id"`
	CompletionDate string    `json:"completion_date"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type CompletionHistoryResponse struct {
	Events []CompletionEventResponse `json:"events"`
	Total  int                       `json:"total"`
}
