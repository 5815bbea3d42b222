package usecase

import (
	"testing"
	"time"

	"preventive-care-tracker/internal/domain/entity"
	"preventive-care-tracker/internal/service"

	"github.com/google/uuid"
)

type recommendationFixture struct {
	uc            RecommendationUsecase
	guidelineRepo *fakeGuidelineRepo
	profileRepo   *fakeProfileRepo
	userID        uuid.UUID
}

// newRecommendationFixture seeds a 50-year-old profile, one guideline the
// profile is inside (45-75) and one it has not reached yet (min age 52).
func newRecommendationFixture() *recommendationFixture {
	f := &recommendationFixture{
		guidelineRepo: newFakeGuidelineRepo(),
		profileRepo:   newFakeProfileRepo(),
		userID:        uuid.New(),
	}

	f.profileRepo.Create(nil, &entity.UserProfile{
		UserID:      f.userID,
		DateOfBirth: time.Now().AddDate(-50, -6, 0),
		Gender:      "female",
	})

	max := 75
	f.guidelineRepo.add(&entity.Guideline{
		Name:       "Colorectal cancer screening",
		Genders:    entity.StringList{entity.GenderAll},
		Visibility: entity.VisibilityPublic,
		AgeRanges: []entity.GuidelineAgeRange{
			{ID: uuid.New(), MinAge: 45, MaxAge: &max, Position: 0},
		},
	})
	f.guidelineRepo.add(&entity.Guideline{
		Name:       "Abdominal aortic aneurysm screening",
		Genders:    entity.StringList{entity.GenderAll},
		Visibility: entity.VisibilityPublic,
		AgeRanges: []entity.GuidelineAgeRange{
			{ID: uuid.New(), MinAge: 52, Position: 0},
		},
	})

	f.uc = NewRecommendationUsecase(nil, testLogger(), service.NewRecommendationEngine(),
		f.guidelineRepo, f.profileRepo, &fakeSelectionRepo{}, testCatalogCache())
	return f
}

func TestZeroLookaheadSuppressesUpcoming(t *testing.T) {
	f := newRecommendationFixture()

	resp, err := f.uc.GetRecommendations(authedContext(f.userID), true, 0)
	if err != nil {
		t.Fatalf("get recommendations: %v", err)
	}
	if len(resp.Current) != 1 {
		t.Fatalf("expected 1 current guideline, got %d", len(resp.Current))
	}
	if len(resp.Upcoming) != 0 {
		t.Errorf("zero look-ahead must yield no upcoming guidelines, got %d", len(resp.Upcoming))
	}
}

func TestNegativeLookaheadFallsBackToDefault(t *testing.T) {
	f := newRecommendationFixture()

	resp, err := f.uc.GetRecommendations(authedContext(f.userID), true, -1)
	if err != nil {
		t.Fatalf("get recommendations: %v", err)
	}
	if len(resp.Upcoming) != 1 {
		t.Fatalf("expected the min-age-52 guideline upcoming under the default window, got %d", len(resp.Upcoming))
	}
	if resp.Upcoming[0].Guideline.Name != "Abdominal aortic aneurysm screening" {
		t.Errorf("unexpected upcoming guideline %q", resp.Upcoming[0].Guideline.Name)
	}
}

func TestRecommendationsRequireProfile(t *testing.T) {
	f := newRecommendationFixture()

	_, err := f.uc.GetRecommendations(authedContext(uuid.New()), true, 0)
	if err != ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
