package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	ScreeningID     string `json:"screening_id,omitempty"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
}

type UpdateAppointmentRequest struct {
	ScreeningID     *string `json:"screening_id,omitempty"`
	AppointmentDate string  `json:"appointment_date,omitempty"`
	Completed       *bool   `json:"completed,omitempty"`
}

type AppointmentResultRequest struct {
	Status string `json:"status" validate:"required,max=100"`
	Notes  string `json:"notes,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Response DTOs

type AppointmentResultResponse struct {
	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
	Date   string `json:"date,omitempty"`
}

type AppointmentResponse struct {
	ID              uuid.UUID                  `json:"id"`
	UserID          uuid.UUID                  `json:"user_id"`
	ScreeningID     string                     `json:"screening_id,omitempty"`
	AppointmentDate string                     `json:"appointment_date"`
	Completed       bool                       `json:"completed"`
	Result          *AppointmentResultResponse `json:"result,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
