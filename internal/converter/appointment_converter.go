package converter

import (
	"preventive-care-tracker/internal/delivery/dto"
	"preventive-care-tracker/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		UserID:          appointment.UserID,
		ScreeningID:     appointment.ScreeningID,
		AppointmentDate: appointment.AppointmentDate.Format(dateLayout),
		Completed:       appointment.Completed,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if appointment.HasResult() {
		response.Result = &dto.AppointmentResultResponse{
			Status: appointment.Result.Status,
			Notes:  appointment.Result.Notes,
			Date:   appointment.Result.Date,
		}
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
