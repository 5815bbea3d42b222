package usecase

import (
	"context"
	"errors"
	"fmt"
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
	ErrGuidelineNotFound = errors.New("guideline not found")
	// ErrCloneRollbackFailed means the compensating delete after a failed
	// clone also failed, leaving a half-created guideline behind. This is
	// more severe than the clone failure itself and must reach the caller.
	ErrCloneRollbackFailed = errors.New("failed to roll back partially created guideline")
)

type GuidelineUsecase interface {
	CreateGuideline(ctx context.Context, req *dto.CreateGuidelineRequest) (*dto.GuidelineResponse, error)
	GetGuideline(ctx context.Context, id uuid.UUID) (*dto.GuidelineResponse, error)
	ListGuidelines(ctx context.Context, category, name string) (*dto.GuidelineListResponse, error)
	UpdateGuideline(ctx context.Context, id uuid.UUID, req *dto.UpdateGuidelineRequest) (*dto.GuidelineResponse, error)
	DeleteGuideline(ctx context.Context, id uuid.UUID) error
	CloneGuideline(ctx context.Context, originalID uuid.UUID, req *dto.CloneGuidelineRequest) (*dto.GuidelineResponse, error)
}

type guidelineUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	guidelineRepo repository.GuidelineRepository
	ageRangeRepo  repository.GuidelineAgeRangeRepository
	resourceRepo  repository.GuidelineResourceRepository
	selectionRepo repository.SelectionRepository
	auditService  service.AuditService
	catalogCache  *service.CatalogCacheService
}

func NewGuidelineUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	guidelineRepo repository.GuidelineRepository,
	ageRangeRepo repository.GuidelineAgeRangeRepository,
	resourceRepo repository.GuidelineResourceRepository,
	selectionRepo repository.SelectionRepository,
	auditService service.AuditService,
	catalogCache *service.CatalogCacheService,
) GuidelineUsecase {
	return &guidelineUsecase{
		db:            db,
		log:           log,
		guidelineRepo: guidelineRepo,
		ageRangeRepo:  ageRangeRepo,
		resourceRepo:  resourceRepo,
		selectionRepo: selectionRepo,
		auditService:  auditService,
		catalogCache:  catalogCache,
	}
}

func (u *guidelineUsecase) CreateGuideline(ctx context.Context, req *dto.CreateGuidelineRequest) (*dto.GuidelineResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	guideline := &entity.Guideline{
		Name:               req.Name,
		Description:        req.Description,
		Category:           req.Category,
		Genders:            entity.StringList(req.Genders),
		FrequencyMonths:    req.FrequencyMonths,
		FrequencyMonthsMax: req.FrequencyMonthsMax,
		Visibility:         entity.VisibilityPublic,
		Tags:               entity.StringList(req.Tags),
	}
	if guideline.FrequencyMonths == 0 {
		guideline.FrequencyMonths = entity.DefaultFrequencyMonths
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.guidelineRepo.Create(tx, guideline); err != nil {
		u.log.Warnf("Failed to create guideline: %+v", err)
		return nil, err
	}

	for i, r := range req.AgeRanges {
		ageRange := &entity.GuidelineAgeRange{
			GuidelineID: guideline.ID,
			MinAge:      r.MinAge,
			MaxAge:      r.MaxAge,
			Position:    i,
		}
		if err := u.ageRangeRepo.Create(tx, ageRange); err != nil {
			u.log.Warnf("Failed to create age range: %+v", err)
			return nil, err
		}
		guideline.AgeRanges = append(guideline.AgeRanges, *ageRange)
	}

	for _, r := range req.Resources {
		resource := &entity.GuidelineResource{
			GuidelineID: guideline.ID,
			Title:       r.Title,
			URL:         r.URL,
		}
		if err := u.resourceRepo.Create(tx, resource); err != nil {
			u.log.Warnf("Failed to create resource: %+v", err)
			return nil, err
		}
		guideline.Resources = append(guideline.Resources, *resource)
	}

	u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionGuidelineCreate,
		"guideline", guideline.ID.String(), guideline)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.catalogCache.Invalidate(ctx)

	return converter.GuidelineToResponse(guideline), nil
}

func (u *guidelineUsecase) GetGuideline(ctx context.Context, id uuid.UUID) (*dto.GuidelineResponse, error) {
	guideline, err := u.guidelineRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find guideline: %+v", err)
		return nil, err
	}
	if guideline == nil {
		return nil, ErrGuidelineNotFound
	}

	// Private copies are visible to their owner only
	if guideline.IsPrivate() {
		userID, ok := middleware.GetUserIDFromContext(ctx)
		if !ok || guideline.CreatedBy == nil || *guideline.CreatedBy != userID {
			return nil, ErrGuidelineNotFound
		}
	}

	return converter.GuidelineToResponse(guideline), nil
}

// ListGuidelines returns the public catalog plus the caller's private copies.
func (u *guidelineUsecase) ListGuidelines(ctx context.Context, category, name string) (*dto.GuidelineListResponse, error) {
	filter := &entity.GuidelineFilter{
		Category: category,
		Name:     name,
	}
	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		filter.ViewerID = &userID
	}

	guidelines, err := u.guidelineRepo.FindAll(u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to find guidelines: %+v", err)
		return nil, err
	}

	return &dto.GuidelineListResponse{
		Guidelines: converter.GuidelinesToResponses(guidelines),
		Total:      len(guidelines),
	}, nil
}

func (u *guidelineUsecase) UpdateGuideline(ctx context.Context, id uuid.UUID, req *dto.UpdateGuidelineRequest) (*dto.GuidelineResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	guideline, err := u.guidelineRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find guideline: %+v", err)
		return nil, err
	}
	if guideline == nil {
		return nil, ErrGuidelineNotFound
	}

	oldValue := converter.GuidelineToResponse(guideline)

	if req.Name != "" {
		guideline.Name = req.Name
	}
	if req.Description != nil {
		guideline.Description = *req.Description
	}
	if req.Category != nil {
		guideline.Category = *req.Category
	}
	if len(req.Genders) > 0 {
		guideline.Genders = entity.StringList(req.Genders)
	}
	if req.FrequencyMonths != nil {
		guideline.FrequencyMonths = *req.FrequencyMonths
	}
	if req.FrequencyMonthsMax != nil {
		guideline.FrequencyMonthsMax = req.FrequencyMonthsMax
	}
	if req.Tags != nil {
		guideline.Tags = entity.StringList(req.Tags)
	}

	if err := u.guidelineRepo.Update(tx, guideline); err != nil {
		u.log.Warnf("Failed to update guideline: %+v", err)
		return nil, err
	}

	// Replacing age ranges keeps their stored order via Position
	if len(req.AgeRanges) > 0 {
		if _, err := u.ageRangeRepo.DeleteByGuidelineID(tx, guideline.ID); err != nil {
			u.log.Warnf("Failed to delete old age ranges: %+v", err)
			return nil, err
		}
		guideline.AgeRanges = nil
		for i, r := range req.AgeRanges {
			ageRange := &entity.GuidelineAgeRange{
				GuidelineID: guideline.ID,
				MinAge:      r.MinAge,
				MaxAge:      r.MaxAge,
				Position:    i,
			}
			if err := u.ageRangeRepo.Create(tx, ageRange); err != nil {
				u.log.Warnf("Failed to create age range: %+v", err)
				return nil, err
			}
			guideline.AgeRanges = append(guideline.AgeRanges, *ageRange)
		}
	}

	u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionGuidelineUpdate,
		"guideline", guideline.ID.String(), oldValue, guideline)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.catalogCache.Invalidate(ctx)

	return converter.GuidelineToResponse(guideline), nil
}

// DeleteGuideline is the explicit admin hard delete; nothing else removes a
// guideline row.
func (u *guidelineUsecase) DeleteGuideline(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	guideline, err := u.guidelineRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find guideline: %+v", err)
		return err
	}
	if guideline == nil {
		return ErrGuidelineNotFound
	}

	if _, err := u.ageRangeRepo.DeleteByGuidelineID(tx, id); err != nil {
		u.log.Warnf("Failed to delete age ranges: %+v", err)
		return err
	}
	if _, err := u.resourceRepo.DeleteByGuidelineID(tx, id); err != nil {
		u.log.Warnf("Failed to delete resources: %+v", err)
		return err
	}
	if _, err := u.guidelineRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete guideline: %+v", err)
		return err
	}

	u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionGuidelineDelete,
		"guideline", id.String(), converter.GuidelineToResponse(guideline))

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.catalogCache.Invalidate(ctx)

	return nil
}

// CloneGuideline creates a private, user-owned copy of a guideline.
//
// The copy spans three tables and deliberately runs without a wrapping
// transaction. Failure modes differ by table:
//   - age ranges are load-bearing for classification, so a copy failure
//     aborts the clone and deletes the new guideline (best-effort; if that
//     delete fails too, ErrCloneRollbackFailed surfaces the inconsistency)
//   - resources are informational; a copy failure is logged and swallowed
//   - the automatic selection for the creator is a convenience; failure is
//     logged and swallowed
func (u *guidelineUsecase) CloneGuideline(ctx context.Context, originalID uuid.UUID, req *dto.CloneGuidelineRequest) (*dto.GuidelineResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	original, err := u.guidelineRepo.FindByID(u.db, originalID)
	if err != nil {
		u.log.Warnf("Failed to find guideline: %+v", err)
		return nil, err
	}
	if original == nil {
		return nil, ErrGuidelineNotFound
	}

	// Private copies can only be cloned by their owner. Reported as
	// not-found, like GetGuideline, so their existence does not leak.
	if original.IsPrivate() && (original.CreatedBy == nil || *original.CreatedBy != userID) {
		return nil, ErrGuidelineNotFound
	}

	clone := &entity.Guideline{
		Name:               original.Name,
		Description:        original.Description,
		Category:           original.Category,
		Genders:            append(entity.StringList{}, original.Genders...),
		FrequencyMonths:    original.FrequencyMonths,
		FrequencyMonthsMax: original.FrequencyMonthsMax,
		Visibility:         entity.VisibilityPrivate,
		CreatedBy:          &userID,
		Tags:               append(entity.StringList{}, original.Tags...),
		OriginalGuidelineID: &original.ID,
	}

	if req != nil {
		if req.Name != "" {
			clone.Name = req.Name
		}
		if req.Description != nil {
			clone.Description = *req.Description
		}
		if req.FrequencyMonths != nil {
			clone.FrequencyMonths = *req.FrequencyMonths
		}
	}

	if err := u.guidelineRepo.Create(u.db, clone); err != nil {
		u.log.Warnf("Failed to create cloned guideline: %+v", err)
		return nil, err
	}

	// Copy age ranges with fresh identities. Fatal on failure.
	for _, r := range original.AgeRanges {
		ageRange := &entity.GuidelineAgeRange{
			GuidelineID: clone.ID,
			MinAge:      r.MinAge,
			MaxAge:      r.MaxAge,
			Position:    r.Position,
		}
		if err := u.ageRangeRepo.Create(u.db, ageRange); err != nil {
			u.log.Warnf("Failed to copy age range, rolling back clone %s: %+v", clone.ID, err)
			if _, delErr := u.guidelineRepo.Delete(u.db, clone.ID); delErr != nil {
				u.log.Errorf("CRITICAL: failed to delete half-created guideline %s: %+v", clone.ID, delErr)
				return nil, fmt.Errorf("%w: %v (after: %v)", ErrCloneRollbackFailed, delErr, err)
			}
			return nil, err
		}
		clone.AgeRanges = append(clone.AgeRanges, *ageRange)
	}

	// Copy resources. Non-fatal on failure.
	for _, r := range original.Resources {
		resource := &entity.GuidelineResource{
			GuidelineID: clone.ID,
			Title:       r.Title,
			URL:         r.URL,
		}
		if err := u.resourceRepo.Create(u.db, resource); err != nil {
			u.log.Warnf("Failed to copy resource %q for clone %s, continuing: %+v", r.Title, clone.ID, err)
			continue
		}
		clone.Resources = append(clone.Resources, *resource)
	}

	// Auto-select the clone for its creator. Non-fatal on failure.
	selection := &entity.Selection{
		UserID:      userID,
		GuidelineID: clone.ID,
		SelectedAt:  time.Now().UTC(),
	}
	if err := u.selectionRepo.Create(u.db, selection); err != nil {
		u.log.Warnf("Failed to auto-select clone %s, continuing: %+v", clone.ID, err)
	}

	u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionGuidelineClone,
		"guideline", clone.ID.String(), clone)

	u.catalogCache.Invalidate(ctx)

	return converter.GuidelineToResponse(clone), nil
}
