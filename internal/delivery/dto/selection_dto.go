package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SelectGuidelineRequest struct {
	GuidelineID uuid.UUID `json:"guideline_id" validate:"required"`
}

// Response DTOs

type SelectionResponse struct {
	ID          uuid.UUID          `json:"id"`
	GuidelineID uuid.UUID          `json:"guideline_id"`
	SelectedAt  time.Time          `json:"selected_at"`
	Guideline   *GuidelineResponse `json:"guideline,omitempty"`
}

type SelectionListResponse struct {
	Selections []SelectionResponse `json:"selections"`
	Total      int                 `json:"total"`
}
