package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"preventive-care-tracker/internal/delivery/dto"
	"preventive-care-tracker/internal/usecase"
	"preventive-care-tracker/pkg/response"
	"preventive-care-tracker/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type GuidelineHandler struct {
	guidelineUsecase usecase.GuidelineUsecase
	validator        *validator.CustomValidator
}

func NewGuidelineHandler(guidelineUsecase usecase.GuidelineUsecase, validator *validator.CustomValidator) *GuidelineHandler {
	return &GuidelineHandler{
		guidelineUsecase: guidelineUsecase,
		validator:        validator,
	}
}

// CreateGuideline handles catalog guideline creation (admin only)
// @Summary Create a guideline
// @Tags Guidelines
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateGuidelineRequest true "Create Guideline Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/guidelines [post]
func (h *GuidelineHandler) CreateGuideline(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGuidelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	guideline, err := h.guidelineUsecase.CreateGuideline(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create guideline")
		return
	}

	response.Success(w, http.StatusCreated, "Guideline created successfully", guideline)
}

// ListGuidelines handles catalog listing
// @Summary List guidelines visible to the caller
// @Tags Guidelines
// @Security BearerAuth
// @Produce json
// @Param category query string false "Filter by category"
// @Param name query string false "Filter by name substring"
// @Success 200 {object} response.Response
// @Router /guidelines [get]
func (h *GuidelineHandler) ListGuidelines(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	name := r.URL.Query().Get("name")

	guidelines, err := h.guidelineUsecase.ListGuidelines(r.Context(), category, name)
	if err != nil {
		response.InternalServerError(w, "Failed to list guidelines")
		return
	}

	response.Success(w, http.StatusOK, "Guidelines retrieved successfully", guidelines)
}

// GetGuideline handles single guideline retrieval
// @Summary Get a guideline by ID
// @Tags Guidelines
// @Security BearerAuth
// @Produce json
// @Param id path string true "Guideline ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /guidelines/{id} [get]
func (h *GuidelineHandler) GetGuideline(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guidelineID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid guideline ID", nil)
		return
	}

	guideline, err := h.guidelineUsecase.GetGuideline(r.Context(), guidelineID)
	if err != nil {
		switch err {
		case usecase.ErrGuidelineNotFound:
			response.NotFound(w, "Guideline not found")
		default:
			response.InternalServerError(w, "Failed to get guideline")
		}
		return
	}

	response.Success(w, http.StatusOK, "Guideline retrieved successfully", guideline)
}

// UpdateGuideline handles guideline updates (admin only)
// @Summary Update a guideline
// @Tags Guidelines
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Guideline ID"
// @Param request body dto.UpdateGuidelineRequest true "Update Guideline Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/guidelines/{id} [put]
func (h *GuidelineHandler) UpdateGuideline(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guidelineID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid guideline ID", nil)
		return
	}

	var req dto.UpdateGuidelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	guideline, err := h.guidelineUsecase.UpdateGuideline(r.Context(), guidelineID, &req)
	if err != nil {
		switch err {
		case usecase.ErrGuidelineNotFound:
			response.NotFound(w, "Guideline not found")
		default:
			response.InternalServerError(w, "Failed to update guideline")
		}
		return
	}

	response.Success(w, http.StatusOK, "Guideline updated successfully", guideline)
}

// DeleteGuideline handles guideline deletion (admin only)
// @Summary Delete a guideline
// @Tags Guidelines
// @Security BearerAuth
// @Produce json
// @Param id path string true "Guideline ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/guidelines/{id} [delete]
func (h *GuidelineHandler) DeleteGuideline(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guidelineID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid guideline ID", nil)
		return
	}

	if err := h.guidelineUsecase.DeleteGuideline(r.Context(), guidelineID); err != nil {
		switch err {
		case usecase.ErrGuidelineNotFound:
			response.NotFound(w, "Guideline not found")
		default:
			response.InternalServerError(w, "Failed to delete guideline")
		}
		return
	}

	response.Success(w, http.StatusOK, "Guideline deleted successfully", nil)
}

// CloneGuideline handles personalization of a catalog guideline
// @Summary Clone a guideline into a private copy
// @Description Creates a private user-owned copy with optional customizations
// @Tags Guidelines
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Guideline ID"
// @Param request body dto.CloneGuidelineRequest false "Clone customizations"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /guidelines/{id}/clone [post]
func (h *GuidelineHandler) CloneGuideline(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guidelineID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid guideline ID", nil)
		return
	}

	req := &dto.CloneGuidelineRequest{}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(req)
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	guideline, err := h.guidelineUsecase.CloneGuideline(r.Context(), guidelineID, req)
	if err != nil {
		switch {
		case err == usecase.ErrGuidelineNotFound:
			response.NotFound(w, "Guideline not found")
		case errors.Is(err, usecase.ErrCloneRollbackFailed):
			response.Error(w, http.StatusInternalServerError, "Clone failed and cleanup was incomplete", nil)
		default:
			response.InternalServerError(w, "Failed to clone guideline")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Guideline cloned successfully", guideline)
}
