package usecase

import (
	"context"
	"errors"

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
	ErrProfileNotFound = errors.New("user profile not found")
)

// DefaultUpcomingYears is the look-ahead window when the caller does not
// specify one.
const DefaultUpcomingYears = 10

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, includeUpcoming bool, upcomingYears int) (*dto.RecommendationResponse, error)
}

type recommendationUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	engine        service.RecommendationEngine
	guidelineRepo repository.GuidelineRepository
	profileRepo   repository.UserProfileRepository
	selectionRepo repository.SelectionRepository
	catalogCache  *service.CatalogCacheService
}

func NewRecommendationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	engine service.RecommendationEngine,
	guidelineRepo repository.GuidelineRepository,
	profileRepo repository.UserProfileRepository,
	selectionRepo repository.SelectionRepository,
	catalogCache *service.CatalogCacheService,
) RecommendationUsecase {
	return &recommendationUsecase{
		db:            db,
		log:           log,
		engine:        engine,
		guidelineRepo: guidelineRepo,
		profileRepo:   profileRepo,
		selectionRepo: selectionRepo,
		catalogCache:  catalogCache,
	}
}

// GetRecommendations fetches the catalog, the caller's profile and selection
// set, and runs the classification engine over them. All reads happen up
// front; the engine itself touches nothing.
func (u *recommendationUsecase) GetRecommendations(ctx context.Context, includeUpcoming bool, upcomingYears int) (*dto.RecommendationResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	profile, err := u.profileRepo.FindByUserID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	guidelines, err := u.loadCatalog(ctx, userID)
	if err != nil {
		return nil, err
	}

	selections, err := u.selectionRepo.FindByUserID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find selections: %+v", err)
		return nil, err
	}
	selected := make(map[uuid.UUID]bool, len(selections))
	for _, s := range selections {
		selected[s.GuidelineID] = true
	}

	// Zero is a valid look-ahead (no upcoming window); only a negative
	// value falls back to the default.
	if upcomingYears < 0 {
		upcomingYears = DefaultUpcomingYears
	}

	age := profile.Age()
	classification := u.engine.Classify(guidelines,
		service.RecommendationProfile{UserID: userID, Age: age, Gender: profile.Gender},
		selected,
		service.ClassifyOptions{IncludeUpcoming: includeUpcoming, UpcomingYears: upcomingYears})

	return &dto.RecommendationResponse{
		Current:  toRecommendationEntries(classification.Current),
		Upcoming: toRecommendationEntries(classification.Upcoming),
		Age:      age,
	}, nil
}

// loadCatalog returns the public catalog (cache-first) plus the viewer's
// private guideline copies, which are never cached.
func (u *recommendationUsecase) loadCatalog(ctx context.Context, userID uuid.UUID) ([]entity.Guideline, error) {
	publicCatalog, hit := u.catalogCache.Get(ctx)
	if !hit {
		visibility := entity.VisibilityPublic
		var err error
		publicCatalog, err = u.guidelineRepo.FindAll(u.db, &entity.GuidelineFilter{Visibility: &visibility})
		if err != nil {
			u.log.Warnf("Failed to find guidelines: %+v", err)
			return nil, err
		}
		u.catalogCache.Set(ctx, publicCatalog)
	}

	visibility := entity.VisibilityPrivate
	private, err := u.guidelineRepo.FindAll(u.db, &entity.GuidelineFilter{
		Visibility: &visibility,
		ViewerID:   &userID,
	})
	if err != nil {
		u.log.Warnf("Failed to find private guidelines: %+v", err)
		return nil, err
	}

	return append(publicCatalog, private...), nil
}

func toRecommendationEntries(recommendations []service.GuidelineRecommendation) []dto.RecommendationEntry {
	entries := make([]dto.RecommendationEntry, len(recommendations))
	for i, rec := range recommendations {
		entries[i] = dto.RecommendationEntry{
			Guideline:  *converter.GuidelineToResponse(&rec.Guideline),
			Status:     string(rec.Status),
			IsSelected: rec.IsSelected,
		}
	}
	return entries
}
