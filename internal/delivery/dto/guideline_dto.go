package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AgeRangeRequest struct {
	MinAge int  `json:"min_age" validate:"gte=0,lte=150"`
	MaxAge *int `json:"max_age,omitempty" validate:"omitempty,gte=0,lte=150"`
}

type ResourceRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	URL   string `json:"url,omitempty" validate:"omitempty,url"`
}

type CreateGuidelineRequest struct {
	Name               string            `json:"name" validate:"required,max=255"`
	Description        string            `json:"description,omitempty"`
	Category           string            `json:"category,omitempty" validate:"omitempty,max=100"`
	Genders            []string          `json:"genders" validate:"required,min=1,dive,oneof=male female all"`
	FrequencyMonths    int               `json:"frequency_months,omitempty" validate:"omitempty,gte=0"`
	FrequencyMonthsMax *int              `json:"frequency_months_max,omitempty" validate:"omitempty,gte=0"`
	Tags               []string          `json:"tags,omitempty"`
	AgeRanges          []AgeRangeRequest `json:"age_ranges" validate:"required,min=1,dive"`
	Resources          []ResourceRequest `json:"resources,omitempty" validate:"omitempty,dive"`
}

type UpdateGuidelineRequest struct {
	Name               string            `json:"name,omitempty" validate:"omitempty,max=255"`
	Description        *string           `json:"description,omitempty"`
	Category           *string           `json:"category,omitempty" validate:"omitempty,max=100"`
	Genders            []string          `json:"genders,omitempty" validate:"omitempty,min=1,dive,oneof=male female all"`
	FrequencyMonths    *int              `json:"frequency_months,omitempty" validate:"omitempty,gte=0"`
	FrequencyMonthsMax *int              `json:"frequency_months_max,omitempty" validate:"omitempty,gte=0"`
	Tags               []string          `json:"tags,omitempty"`
	AgeRanges          []AgeRangeRequest `json:"age_ranges,omitempty" validate:"omitempty,min=1,dive"`
}

// CloneGuidelineRequest customizes a personalized copy. All fields are
// optional; unset fields keep the original's values.
type CloneGuidelineRequest struct {
	Name            string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description     *string `json:"description,omitempty"`
	FrequencyMonths *int   `json:"frequency_months,omitempty" validate:"omitempty,gte=0"`
	Notes           string `json:"notes,omitempty"`
}

// Response DTOs

type AgeRangeResponse struct {
	ID     uuid.UUID `json:"id"`
	MinAge int       `json:"min_age"`
	MaxAge *int      `json:"max_age,omitempty"`
}

type ResourceResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	URL   string    `json:"url,omitempty"`
}

type GuidelineResponse struct {
	ID                  uuid.UUID          `json:"id"`
	Name                string             `json:"name"`
	Description         string             `json:"description,omitempty"`
	Category            string             `json:"category,omitempty"`
	Genders             []string           `json:"genders"`
	FrequencyMonths     int                `json:"frequency_months"`
	FrequencyMonthsMax  *int               `json:"frequency_months_max,omitempty"`
	Visibility          string             `json:"visibility"`
	CreatedBy           *uuid.UUID         `json:"created_by,omitempty"`
	Tags                []string           `json:"tags,omitempty"`
	OriginalGuidelineID *uuid.UUID         `json:"original_guideline_id,omitempty"`
	AgeRanges           []AgeRangeResponse `json:"age_ranges,omitempty"`
	Resources           []ResourceResponse `json:"resources,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

type GuidelineListResponse struct {
	Guidelines []GuidelineResponse `json:"guidelines"`
	Total      int                 `json:"total"`
}
