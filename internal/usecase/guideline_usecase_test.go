package usecase

import (
	"errors"
	"testing"

	"preventive-care-tracker/internal/delivery/dto"
	"preventive-care-tracker/internal/domain/entity"
	"preventive-care-tracker/internal/service"

	"github.com/google/uuid"
)

type cloneFixture struct {
	uc            GuidelineUsecase
	guidelineRepo *fakeGuidelineRepo
	ageRangeRepo  *fakeAgeRangeRepo
	resourceRepo  *fakeResourceRepo
	selectionRepo *fakeSelectionRepo
}

func newCloneFixture() *cloneFixture {
	f := &cloneFixture{
		guidelineRepo: newFakeGuidelineRepo(),
		ageRangeRepo:  &fakeAgeRangeRepo{},
		resourceRepo:  &fakeResourceRepo{},
		selectionRepo: &fakeSelectionRepo{},
	}
	audit := service.NewAuditService(nil, testLogger(), &fakeAuditRepo{})
	f.uc = NewGuidelineUsecase(nil, testLogger(), f.guidelineRepo, f.ageRangeRepo,
		f.resourceRepo, f.selectionRepo, audit, testCatalogCache())
	return f
}

func publicGuidelineWithRanges() *entity.Guideline {
	max := 75
	return &entity.Guideline{
		Name:            "Colorectal cancer screening",
		Description:     "Stool-based test or colonoscopy",
		Category:        "cancer",
		Genders:         entity.StringList{entity.GenderAll},
		FrequencyMonths: 120,
		Visibility:      entity.VisibilityPublic,
		AgeRanges: []entity.GuidelineAgeRange{
			{ID: uuid.New(), MinAge: 45, MaxAge: &max, Position: 0},
		},
		Resources: []entity.GuidelineResource{
			{ID: uuid.New(), Title: "Patient leaflet", URL: "https://example.org/crc"},
		},
	}
}

func TestCloneCreatesPrivateCopy(t *testing.T) {
	f := newCloneFixture()
	userID := uuid.New()
	original := f.guidelineRepo.add(publicGuidelineWithRanges())

	resp, err := f.uc.CloneGuideline(authedContext(userID), original.ID, &dto.CloneGuidelineRequest{})
	if err != nil {
		t.Fatalf("clone: %v", err)
	}

	clone, ok := f.guidelineRepo.guidelines[resp.ID]
	if !ok {
		t.Fatalf("clone not persisted")
	}
	if clone.Visibility != entity.VisibilityPrivate {
		t.Errorf("clone visibility = %q, want private", clone.Visibility)
	}
	if clone.CreatedBy == nil || *clone.CreatedBy != userID {
		t.Errorf("clone not owned by cloning user")
	}
	if clone.OriginalGuidelineID == nil || *clone.OriginalGuidelineID != original.ID {
		t.Errorf("clone missing back-reference to original")
	}

	if len(f.ageRangeRepo.ranges) != 1 {
		t.Fatalf("expected 1 copied age range, got %d", len(f.ageRangeRepo.ranges))
	}
	copied := f.ageRangeRepo.ranges[0]
	if copied.GuidelineID != clone.ID {
		t.Errorf("age range attached to %s, want clone %s", copied.GuidelineID, clone.ID)
	}
	if copied.ID == original.AgeRanges[0].ID {
		t.Errorf("copied age range reused the original's identity")
	}

	// The original must be untouched.
	if original.Visibility != entity.VisibilityPublic {
		t.Errorf("original visibility changed")
	}

	// The creator is auto-subscribed to the copy.
	if len(f.selectionRepo.selections) != 1 || f.selectionRepo.selections[0].GuidelineID != clone.ID {
		t.Errorf("clone not auto-selected for creator")
	}
}

func TestCloneAppliesCustomizations(t *testing.T) {
	f := newCloneFixture()
	original := f.guidelineRepo.add(publicGuidelineWithRanges())

	freq := 24
	desc := "Every two years per family history"
	resp, err := f.uc.CloneGuideline(authedContext(uuid.New()), original.ID, &dto.CloneGuidelineRequest{
		Name:            "My colorectal screening",
		Description:     &desc,
		FrequencyMonths: &freq,
	})
	if err != nil {
		t.Fatalf("clone: %v", err)
	}

	clone := f.guidelineRepo.guidelines[resp.ID]
	if clone.Name != "My colorectal screening" {
		t.Errorf("name = %q", clone.Name)
	}
	if clone.FrequencyMonths != 24 {
		t.Errorf("frequency = %d, want 24", clone.FrequencyMonths)
	}
	if clone.Description != desc {
		t.Errorf("description not overridden")
	}
}

func TestCloneAgeRangeFailureDeletesClone(t *testing.T) {
	f := newCloneFixture()
	original := f.guidelineRepo.add(publicGuidelineWithRanges())
	f.ageRangeRepo.createErr = errors.New("insert failed")

	_, err := f.uc.CloneGuideline(authedContext(uuid.New()), original.ID, nil)
	if err == nil {
		t.Fatal("expected clone to fail")
	}
	if errors.Is(err, ErrCloneRollbackFailed) {
		t.Fatalf("rollback succeeded but error reports rollback failure: %v", err)
	}

	// Only the original remains; the half-created clone was deleted.
	if len(f.guidelineRepo.guidelines) != 1 {
		t.Fatalf("expected 1 guideline after rollback, got %d", len(f.guidelineRepo.guidelines))
	}
	if _, ok := f.guidelineRepo.guidelines[original.ID]; !ok {
		t.Fatalf("original deleted during rollback")
	}
	if len(f.selectionRepo.selections) != 0 {
		t.Errorf("auto-selection created for rolled-back clone")
	}
}

func TestCloneRollbackFailureSurfaces(t *testing.T) {
	f := newCloneFixture()
	original := f.guidelineRepo.add(publicGuidelineWithRanges())
	f.ageRangeRepo.createErr = errors.New("insert failed")
	f.guidelineRepo.deleteErr = errors.New("delete failed")

	_, err := f.uc.CloneGuideline(authedContext(uuid.New()), original.ID, nil)
	if !errors.Is(err, ErrCloneRollbackFailed) {
		t.Fatalf("expected ErrCloneRollbackFailed, got %v", err)
	}
}

func TestCloneResourceFailureIsNonFatal(t *testing.T) {
	f := newCloneFixture()
	original := f.guidelineRepo.add(publicGuidelineWithRanges())
	f.resourceRepo.createErr = errors.New("insert failed")

	resp, err := f.uc.CloneGuideline(authedContext(uuid.New()), original.ID, nil)
	if err != nil {
		t.Fatalf("resource failure should not abort clone: %v", err)
	}
	if _, ok := f.guidelineRepo.guidelines[resp.ID]; !ok {
		t.Fatalf("clone not persisted")
	}
	if len(f.resourceRepo.resources) != 0 {
		t.Errorf("unexpected resources persisted")
	}
}

func TestCloneSelectionFailureIsNonFatal(t *testing.T) {
	f := newCloneFixture()
	original := f.guidelineRepo.add(publicGuidelineWithRanges())
	f.selectionRepo.createErr = errors.New("insert failed")

	if _, err := f.uc.CloneGuideline(authedContext(uuid.New()), original.ID, nil); err != nil {
		t.Fatalf("selection failure should not abort clone: %v", err)
	}
}

func TestCloneUnknownGuideline(t *testing.T) {
	f := newCloneFixture()

	_, err := f.uc.CloneGuideline(authedContext(uuid.New()), uuid.New(), nil)
	if !errors.Is(err, ErrGuidelineNotFound) {
		t.Fatalf("expected ErrGuidelineNotFound, got %v", err)
	}
}

func TestCloneForeignPrivateGuidelineRejected(t *testing.T) {
	f := newCloneFixture()
	ownerID := uuid.New()

	private := publicGuidelineWithRanges()
	private.Name = "Owner's personalized colonoscopy plan"
	private.Visibility = entity.VisibilityPrivate
	private.CreatedBy = &ownerID
	private = f.guidelineRepo.add(private)

	// Another user must see the private copy as not-found, never its content
	resp, err := f.uc.CloneGuideline(authedContext(uuid.New()), private.ID, nil)
	if !errors.Is(err, ErrGuidelineNotFound) {
		t.Fatalf("expected ErrGuidelineNotFound, got %v", err)
	}
	if resp != nil {
		t.Fatalf("expected no response for a foreign private guideline")
	}
	if len(f.guidelineRepo.guidelines) != 1 {
		t.Errorf("expected no clone to be persisted, got %d guidelines", len(f.guidelineRepo.guidelines))
	}

	// The owner can still clone their own private copy
	if _, err := f.uc.CloneGuideline(authedContext(ownerID), private.ID, nil); err != nil {
		t.Fatalf("owner clone: %v", err)
	}
}
