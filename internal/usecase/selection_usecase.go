package usecase

import (
	"context"
	"errors"
	"time"

	"preventive-care-tracker/internal/converter"
	"preventive-care-tracker/internal/delivery/dto"
	"preventive-care-tracker/internal/delivery/http/middleware"
	"preventive-care-tracker/internal/domain/entity"
	"preventive-care-tracker/internal/domain/repository"
	"preventive-care-tracker/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMissingGuidelineID = errors.New("guideline id is required")
)

type SelectionUsecase interface {
	Select(ctx context.Context, req *dto.SelectGuidelineRequest) (*dto.SelectionResponse, error)
	Deselect(ctx context.Context, guidelineID uuid.UUID) error
	ListSelections(ctx context.Context) (*dto.SelectionListResponse, error)
}

type selectionUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	selectionRepo repository.SelectionRepository
	guidelineRepo repository.GuidelineRepository
	auditService  service.AuditService
}

func NewSelectionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	selectionRepo repository.SelectionRepository,
	guidelineRepo repository.GuidelineRepository,
	auditService service.AuditService,
) SelectionUsecase {
	return &selectionUsecase{
		db:            db,
		log:           log,
		selectionRepo: selectionRepo,
		guidelineRepo: guidelineRepo,
		auditService:  auditService,
	}
}

// Select marks a guideline as tracked by the current user. Selecting an
// already-selected guideline only refreshes selected_at, so concurrent calls
// for the same pair converge to a single row without locking.
func (u *selectionUsecase) Select(ctx context.Context, req *dto.SelectGuidelineRequest) (*dto.SelectionResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if req.GuidelineID == uuid.Nil {
		return nil, ErrMissingGuidelineID
	}

	guideline, err := u.guidelineRepo.FindByID(u.db, req.GuidelineID)
	if err != nil {
		u.log.Warnf("Failed to find guideline: %+v", err)
		return nil, err
	}
	if guideline == nil {
		return nil, ErrGuidelineNotFound
	}

	existing, err := u.selectionRepo.FindByUserAndGuideline(u.db, userID, req.GuidelineID)
	if err != nil {
		u.log.Warnf("Failed to check existing selection: %+v", err)
		return nil, err
	}

	if existing != nil {
		existing.SelectedAt = time.Now().UTC()
		if err := u.selectionRepo.Update(u.db, existing); err != nil {
			u.log.Warnf("Failed to touch selection: %+v", err)
			return nil, err
		}
		existing.Guideline = *guideline
		return converter.SelectionToResponse(existing), nil
	}

	selection := &entity.Selection{
		UserID:      userID,
		GuidelineID: req.GuidelineID,
		SelectedAt:  time.Now().UTC(),
	}

	if err := u.selectionRepo.Create(u.db, selection); err != nil {
		u.log.Warnf("Failed to create selection: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionSelectionCreate,
		"selection", selection.ID.String(), selection)

	selection.Guideline = *guideline
	return converter.SelectionToResponse(selection), nil
}

// Deselect removes the selection if present. Deselecting something never
// selected succeeds silently.
func (u *selectionUsecase) Deselect(ctx context.Context, guidelineID uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	if guidelineID == uuid.Nil {
		return ErrMissingGuidelineID
	}

	affected, err := u.selectionRepo.DeleteByUserAndGuideline(u.db, userID, guidelineID)
	if err != nil {
		u.log.Warnf("Failed to delete selection: %+v", err)
		return err
	}

	if affected > 0 {
		u.auditService.LogDelete(ctx, u.db, &userID, entity.AuditActionSelectionDelete,
			"selection", guidelineID.String(), nil)
	}

	return nil
}

func (u *selectionUsecase) ListSelections(ctx context.Context) (*dto.SelectionListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	selections, err := u.selectionRepo.FindByUserID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find selections: %+v", err)
		return nil, err
	}

	return &dto.SelectionListResponse{
		Selections: converter.SelectionsToResponses(selections),
		Total:      len(selections),
	}, nil
}
