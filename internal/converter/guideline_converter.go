package converter

import (
	"preventive-care-tracker/internal/delivery/dto"
	"preventive-care-tracker/internal/domain/entity"
)

// GuidelineToResponse converts a Guideline entity to GuidelineResponse DTO
func GuidelineToResponse(guideline *entity.Guideline) *dto.GuidelineResponse {
	if guideline == nil {
		return nil
	}

	response := &dto.GuidelineResponse{
		ID:                  guideline.ID,
		Name:                guideline.Name,
		Description:         guideline.Description,
		Category:            guideline.Category,
		Genders:             []string(guideline.Genders),
		FrequencyMonths:     guideline.EffectiveFrequencyMonths(),
		FrequencyMonthsMax:  guideline.FrequencyMonthsMax,
		Visibility:          string(guideline.Visibility),
		CreatedBy:           guideline.CreatedBy,
		Tags:                []string(guideline.Tags),
		OriginalGuidelineID: guideline.OriginalGuidelineID,
		CreatedAt:           guideline.CreatedAt,
		UpdatedAt:           guideline.UpdatedAt,
	}

	for _, r := range guideline.AgeRanges {
		response.AgeRanges = append(response.AgeRanges, dto.AgeRangeResponse{
			ID:     r.ID,
			MinAge: r.MinAge,
			MaxAge: r.MaxAge,
		})
	}

	for _, r := range guideline.Resources {
		response.Resources = append(response.Resources, dto.ResourceResponse{
			ID:    r.ID,
			Title: r.Title,
			URL:   r.URL,
		})
	}

	return response
}

// GuidelinesToResponses converts a slice of Guideline entities to slice of GuidelineResponse DTOs
func GuidelinesToResponses(guidelines []entity.Guideline) []dto.GuidelineResponse {
	responses := make([]dto.GuidelineResponse, len(guidelines))
	for i, guideline := range guidelines {
		resp := GuidelineToResponse(&guideline)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
