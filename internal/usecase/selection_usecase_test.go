package usecase

import (
	"errors"
	"testing"

	"preventive-care-tracker/internal/delivery/dto"
	"preventive-care-tracker/internal/domain/entity"
	"preventive-care-tracker/internal/service"

	"github.com/google/uuid"
)

func newSelectionFixture() (SelectionUsecase, *fakeSelectionRepo, *fakeGuidelineRepo) {
	selectionRepo := &fakeSelectionRepo{}
	guidelineRepo := newFakeGuidelineRepo()
	audit := service.NewAuditService(nil, testLogger(), &fakeAuditRepo{})
	uc := NewSelectionUsecase(nil, testLogger(), selectionRepo, guidelineRepo, audit)
	return uc, selectionRepo, guidelineRepo
}

func TestSelectTwiceKeepsOneRow(t *testing.T) {
	uc, selectionRepo, guidelineRepo := newSelectionFixture()
	userID := uuid.New()
	guideline := guidelineRepo.add(&entity.Guideline{Name: "Colonoscopy", Genders: entity.StringList{entity.GenderAll}})

	req := &dto.SelectGuidelineRequest{GuidelineID: guideline.ID}

	first, err := uc.Select(authedContext(userID), req)
	if err != nil {
		t.Fatalf("first select: %v", err)
	}

	second, err := uc.Select(authedContext(userID), req)
	if err != nil {
		t.Fatalf("second select: %v", err)
	}

	if len(selectionRepo.selections) != 1 {
		t.Fatalf("expected exactly one selection row, got %d", len(selectionRepo.selections))
	}
	if first.ID != second.ID {
		t.Errorf("second select returned a different row: %s vs %s", first.ID, second.ID)
	}
	if second.SelectedAt.Before(first.SelectedAt) {
		t.Errorf("selected_at not refreshed on re-select")
	}
}

func TestSelectUnknownGuideline(t *testing.T) {
	uc, selectionRepo, _ := newSelectionFixture()

	_, err := uc.Select(authedContext(uuid.New()), &dto.SelectGuidelineRequest{GuidelineID: uuid.New()})
	if !errors.Is(err, ErrGuidelineNotFound) {
		t.Fatalf("expected ErrGuidelineNotFound, got %v", err)
	}
	if len(selectionRepo.selections) != 0 {
		t.Errorf("selection created for unknown guideline")
	}
}

func TestSelectMissingGuidelineID(t *testing.T) {
	uc, _, _ := newSelectionFixture()

	_, err := uc.Select(authedContext(uuid.New()), &dto.SelectGuidelineRequest{})
	if !errors.Is(err, ErrMissingGuidelineID) {
		t.Fatalf("expected ErrMissingGuidelineID, got %v", err)
	}
}

func TestDeselectRemovesRow(t *testing.T) {
	uc, selectionRepo, guidelineRepo := newSelectionFixture()
	userID := uuid.New()
	guideline := guidelineRepo.add(&entity.Guideline{Name: "Mammogram", Genders: entity.StringList{entity.GenderFemale}})

	if _, err := uc.Select(authedContext(userID), &dto.SelectGuidelineRequest{GuidelineID: guideline.ID}); err != nil {
		t.Fatalf("select: %v", err)
	}

	if err := uc.Deselect(authedContext(userID), guideline.ID); err != nil {
		t.Fatalf("deselect: %v", err)
	}
	if len(selectionRepo.selections) != 0 {
		t.Fatalf("expected no selections, got %d", len(selectionRepo.selections))
	}
}

func TestDeselectNeverSelectedSucceeds(t *testing.T) {
	uc, _, _ := newSelectionFixture()

	if err := uc.Deselect(authedContext(uuid.New()), uuid.New()); err != nil {
		t.Fatalf("deselect of untracked guideline should succeed, got %v", err)
	}
}

func TestListSelectionsScopedToUser(t *testing.T) {
	uc, selectionRepo, guidelineRepo := newSelectionFixture()
	userID := uuid.New()
	otherID := uuid.New()
	guideline := guidelineRepo.add(&entity.Guideline{Name: "Lipid panel", Genders: entity.StringList{entity.GenderAll}})

	if _, err := uc.Select(authedContext(userID), &dto.SelectGuidelineRequest{GuidelineID: guideline.ID}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := uc.Select(authedContext(otherID), &dto.SelectGuidelineRequest{GuidelineID: guideline.ID}); err != nil {
		t.Fatalf("select other user: %v", err)
	}
	if len(selectionRepo.selections) != 2 {
		t.Fatalf("expected two rows, got %d", len(selectionRepo.selections))
	}

	list, err := uc.ListSelections(authedContext(userID))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("expected 1 selection for user, got %d", list.Total)
	}
}
