package handler

import (
	"net/http"
	"strconv"

	"preventive-care-tracker/internal/usecase"
	"preventive-care-tracker/pkg/response"
)

type RecommendationHandler struct {
	recommendationUsecase usecase.RecommendationUsecase
}

func NewRecommendationHandler(recommendationUsecase usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationUsecase: recommendationUsecase,
	}
}

// GetRecommendations classifies the visible catalog against the caller's
// profile
// @Summary Get personalized guideline recommendations
// @Description Returns guidelines split into current and upcoming based on age and gender
// @Tags Recommendations
// @Security BearerAuth
// @Produce json
// @Param include_upcoming query bool false "Include upcoming guidelines (default true)"
// @Param upcoming_years query int false "Lookahead window in years (default 10)"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recommendations [get]
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	includeUpcoming := true
	if raw := r.URL.Query().Get("include_upcoming"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "include_upcoming must be a boolean", nil)
			return
		}
		includeUpcoming = parsed
	}

	upcomingYears := usecase.DefaultUpcomingYears
	if raw := r.URL.Query().Get("upcoming_years"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(w, http.StatusBadRequest, "upcoming_years must be a non-negative integer", nil)
			return
		}
		upcomingYears = parsed
	}

	recommendations, err := h.recommendationUsecase.GetRecommendations(r.Context(), includeUpcoming, upcomingYears)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found, complete registration first")
		default:
			response.InternalServerError(w, "Failed to get recommendations")
		}
		return
	}

	response.Success(w, http.StatusOK, "Recommendations retrieved successfully", recommendations)
}
