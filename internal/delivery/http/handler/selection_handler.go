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

type SelectionHandler struct {
	selectionUsecase usecase.SelectionUsecase
	validator        *validator.CustomValidator
}

func NewSelectionHandler(selectionUsecase usecase.SelectionUsecase, validator *validator.CustomValidator) *SelectionHandler {
	return &SelectionHandler{
		selectionUsecase: selectionUsecase,
		validator:        validator,
	}
}

// Select marks a guideline as tracked
// @Summary Select a guideline
// @Description Idempotent: re-selecting only refreshes the selection timestamp
// @Tags Selections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SelectGuidelineRequest true "Select Guideline Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /selections [post]
func (h *SelectionHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectGuidelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	selection, err := h.selectionUsecase.Select(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrMissingGuidelineID:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrGuidelineNotFound:
			response.NotFound(w, "Guideline not found")
		default:
			response.InternalServerError(w, "Failed to select guideline")
		}
		return
	}

	response.Success(w, http.StatusOK, "Guideline selected successfully", selection)
}

// Deselect stops tracking a guideline
// @Summary Deselect a guideline
// @Description Idempotent: deselecting an untracked guideline succeeds
// @Tags Selections
// @Security BearerAuth
// @Produce json
// @Param guidelineId path string true "Guideline ID"
// @Success 200 {object} response.Response
// @Router /selections/{guidelineId} [delete]
func (h *SelectionHandler) Deselect(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guidelineID, err := uuid.Parse(vars["guidelineId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid guideline ID", nil)
		return
	}

	if err := h.selectionUsecase.Deselect(r.Context(), guidelineID); err != nil {
		switch err {
		case usecase.ErrMissingGuidelineID:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to deselect guideline")
		}
		return
	}

	response.Success(w, http.StatusOK, "Guideline deselected successfully", nil)
}

// ListSelections lists the caller's tracked guidelines
// @Summary List selections
// @Tags Selections
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /selections [get]
func (h *SelectionHandler) ListSelections(w http.ResponseWriter, r *http.Request) {
	selections, err := h.selectionUsecase.ListSelections(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list selections")
		return
	}

	response.Success(w, http.StatusOK, "Selections retrieved successfully", selections)
}
