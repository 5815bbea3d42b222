package converter

import (
	"time"

	"preventive-care-tracker/internal/delivery/dto"
	"preventive-care-tracker/internal/domain/entity"
	"preventive-care-tracker/internal/service"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// ScreeningToResponse converts a ScreeningRecord entity to ScreeningResponse DTO
func ScreeningToResponse(screening *entity.ScreeningRecord) *dto.ScreeningResponse {
	if screening == nil {
		return nil
	}

	response := &dto.ScreeningResponse{
		ID:                screening.ID,
		GuidelineID:       screening.GuidelineID,
		UserID:            screening.UserID,
		Archived:          screening.Archived,
		LastCompletedDate: formatDatePtr(screening.LastCompletedDate),
		NextDueDate:       formatDatePtr(screening.NextDueDate),
		CreatedAt:         screening.CreatedAt,
		UpdatedAt:         screening.UpdatedAt,
	}

	if screening.Guideline.ID != uuid.Nil {
		response.Guideline = GuidelineToResponse(&screening.Guideline)
	}

	return response
}

// ScreeningWithAppointmentsToResponse embeds a reconciled appointment list
func ScreeningWithAppointmentsToResponse(sw *service.ScreeningWithAppointments) *dto.ScreeningResponse {
	response := ScreeningToResponse(&sw.Screening)
	if response == nil {
		return nil
	}
	response.Appointments = AppointmentsToResponses(sw.Appointments)
	return response
}

// AttachResultToResponse converts a full reconciliation pass, keeping the
// unmatched appointments visible under their raw screening_id keys.
func AttachResultToResponse(result *service.AttachResult) *dto.ScreeningListResponse {
	response := &dto.ScreeningListResponse{
		Screenings: make([]dto.ScreeningResponse, 0, len(result.Screenings)),
		Total:      len(result.Screenings),
	}

	for i := range result.Screenings {
		resp := ScreeningWithAppointmentsToResponse(&result.Screenings[i])
		if resp != nil {
			response.Screenings = append(response.Screenings, *resp)
		}
	}

	if len(result.Unmatched) > 0 {
		response.Unmatched = make(map[string][]dto.AppointmentResponse, len(result.Unmatched))
		for key, appointments := range result.Unmatched {
			response.Unmatched[key] = AppointmentsToResponses(appointments)
		}
	}

	return response
}

// CompletionEventToResponse converts a CompletionEvent entity
func CompletionEventToResponse(event *entity.CompletionEvent) *dto.CompletionEventResponse {
	if event == nil {
		return nil
	}
	return &dto.CompletionEventResponse{
		ID:             event.ID,
		GuidelineID:    event.GuidelineID,
		CompletionDate: event.CompletionDate.Format(dateLayout),
		Notes:          event.Notes,
		CreatedAt:      event.CreatedAt,
	}
}

// CompletionEventsToResponses converts a slice of CompletionEvent entities
func CompletionEventsToResponses(events []entity.CompletionEvent) []dto.CompletionEventResponse {
	responses := make([]dto.CompletionEventResponse, len(events))
	for i, event := range events {
		resp := CompletionEventToResponse(&event)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
