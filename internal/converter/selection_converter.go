package converter

import (
	"preventive-care-tracker/internal/delivery/dto"
	"preventive-care-tracker/internal/domain/entity"

	"github.com/google/uuid"
)

// SelectionToResponse converts a Selection entity to SelectionResponse DTO
func SelectionToResponse(selection *entity.Selection) *dto.SelectionResponse {
	if selection == nil {
		return nil
	}

	response := &dto.SelectionResponse{
		ID:          selection.ID,
		GuidelineID: selection.GuidelineID,
		SelectedAt:  selection.SelectedAt,
	}

	if selection.Guideline.ID != uuid.Nil {
		response.Guideline = GuidelineToResponse(&selection.Guideline)
	}

	return response
}

// SelectionsToResponses converts a slice of Selection entities to slice of SelectionResponse DTOs
func SelectionsToResponses(selections []entity.Selection) []dto.SelectionResponse {
	responses := make([]dto.SelectionResponse, len(selections))
	for i, selection := range selections {
		resp := SelectionToResponse(&selection)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
