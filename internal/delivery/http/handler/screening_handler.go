package handler

import (
	"encoding/json"
	"net/http"

	"preventive-care-tracker/internal/delivery/dto"
	"preventive-care-tracker/internal/usecase"
	"preventive-care-tracker/pkg/response"
	"preventive-care-tracker/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ScreeningHandler struct {
	screeningUsecase usecase.ScreeningUsecase
	validator        *validator.CustomValidator
}

func NewScreeningHandler(screeningUsecase usecase.ScreeningUsecase, validator *validator.CustomValidator) *ScreeningHandler {
	return &ScreeningHandler{
		screeningUsecase: screeningUsecase,
		validator:        validator,
	}
}

// CreateScreening starts tracking a guideline
// @Summary Create a screening record
// @Tags Screenings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateScreeningRequest true "Create Screening Request"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /screenings [post]
func (h *ScreeningHandler) CreateScreening(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	screening, err := h.screeningUsecase.CreateScreening(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrGuidelineNotFound:
			response.NotFound(w, "Guideline not found")
		case usecase.ErrAlreadyTracking:
			response.Conflict(w, "An active screening already exists for this guideline")
		default:
			response.InternalServerError(w, "Failed to create screening")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Screening created successfully", screening)
}

// ListScreenings lists the caller's active screenings with appointments
// @Summary List screenings with reconciled appointments
// @Tags Screenings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /screenings [get]
func (h *ScreeningHandler) ListScreenings(w http.ResponseWriter, r *http.Request) {
	screenings, err := h.screeningUsecase.ListScreenings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list screenings")
		return
	}

	response.Success(w, http.StatusOK, "Screenings retrieved successfully", screenings)
}

// ListArchivedScreenings lists the caller's archived screenings
// @Summary List archived screenings
// @Tags Screenings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /screenings/archived [get]
func (h *ScreeningHandler) ListArchivedScreenings(w http.ResponseWriter, r *http.Request) {
	screenings, err := h.screeningUsecase.ListArchivedScreenings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list archived screenings")
		return
	}

	response.Success(w, http.StatusOK, "Archived screenings retrieved successfully", screenings)
}

// GetScreening returns one screening with its appointments
// @Summary Get a screening by ID
// @Tags Screenings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Screening ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /screenings/{id} [get]
func (h *ScreeningHandler) GetScreening(w http.ResponseWriter, r *http.Request) {
	screeningID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	screening, err := h.screeningUsecase.GetScreening(r.Context(), screeningID)
	if err != nil {
		h.writeScreeningError(w, err, "Failed to get screening")
		return
	}

	response.Success(w, http.StatusOK, "Screening retrieved successfully", screening)
}

// CompleteScreening records a completion and advances the due date
// @Summary Complete a screening
// @Tags Screenings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Screening ID"
// @Param request body dto.CompleteScreeningRequest true "Completion details"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /screenings/{id}/complete [post]
func (h *ScreeningHandler) CompleteScreening(w http.ResponseWriter, r *http.Request) {
	screeningID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req dto.CompleteScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	screening, err := h.screeningUsecase.CompleteScreening(r.Context(), screeningID, &req)
	if err != nil {
		h.writeScreeningError(w, err, "Failed to complete screening")
		return
	}

	response.Success(w, http.StatusOK, "Screening completed successfully", screening)
}

// ArchiveScreening soft-deletes a screening record
// @Summary Archive a screening
// @Tags Screenings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Screening ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /screenings/{id} [delete]
func (h *ScreeningHandler) ArchiveScreening(w http.ResponseWriter, r *http.Request) {
	screeningID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.screeningUsecase.ArchiveScreening(r.Context(), screeningID); err != nil {
		h.writeScreeningError(w, err, "Failed to archive screening")
		return
	}

	response.Success(w, http.StatusOK, "Screening archived successfully", nil)
}

// GetCompletionHistory lists completion events for a guideline
// @Summary Get completion history
// @Tags Screenings
// @Security BearerAuth
// @Produce json
// @Param guidelineId path string true "Guideline ID"
// @Success 200 {object} response.Response
// @Router /guidelines/{guidelineId}/completions [get]
func (h *ScreeningHandler) GetCompletionHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guidelineID, err := uuid.Parse(vars["guidelineId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid guideline ID", nil)
		return
	}

	history, err := h.screeningUsecase.GetCompletionHistory(r.Context(), guidelineID)
	if err != nil {
		response.InternalServerError(w, "Failed to get completion history")
		return
	}

	response.Success(w, http.StatusOK, "Completion history retrieved successfully", history)
}

func (h *ScreeningHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	screeningID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid screening ID", nil)
		return uuid.Nil, false
	}
	return screeningID, true
}

func (h *ScreeningHandler) writeScreeningError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrScreeningNotFound:
		response.NotFound(w, "Screening not found")
	case usecase.ErrScreeningNotOwned:
		response.Forbidden(w, "Screening does not belong to you")
	case usecase.ErrScreeningArchived:
		response.Conflict(w, "Screening is archived")
	case usecase.ErrInvalidDateFormat:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case usecase.ErrGuidelineNotFound:
		response.NotFound(w, "Guideline not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
