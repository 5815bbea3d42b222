package repository

import (
	"errors"

	"preventive-care-tracker/internal/domain/entity"
	domainRepo "preventive-care-tracker/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type selectionRepository struct{}

func NewSelectionRepository() domainRepo.SelectionRepository {
	return &selectionRepository{}
}

func (r *selectionRepository) Create(db *gorm.DB, selection *entity.Selection) error {
	return db.Omit("Guideline").Create(selection).Error
}

func (r *selectionRepository) FindByUserAndGuideline(db *gorm.DB, userID, guidelineID uuid.UUID) (*entity.Selection, error) {
	var selection entity.Selection
	err := db.Where("user_id = ? AND guideline_id = ?", userID, guidelineID).First(&selection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &selection, nil
}

// FindByUserID returns the user's selections newest-first with the guideline
// and its child rows embedded.
func (r *selectionRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Selection, error) {
	var selections []entity.Selection
	err := db.
		Preload("Guideline").
		Preload("Guideline.AgeRanges", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Guideline.Resources").
		Where("user_id = ?", userID).
		Order("selected_at DESC").
		Find(&selections).Error
	if err != nil {
		return nil, err
	}
	return selections, nil
}

func (r *selectionRepository) Update(db *gorm.DB, selection *entity.Selection) error {
	return db.Omit("Guideline").Save(selection).Error
}

// DeleteByUserAndGuideline removes the matching row. Zero affected rows is
// not an error; deselecting something never selected succeeds silently.
func (r *selectionRepository) DeleteByUserAndGuideline(db *gorm.DB, userID, guidelineID uuid.UUID) (int64, error) {
	affected := db.Where("user_id = ? AND guideline_id = ?", userID, guidelineID).Delete(&entity.Selection{})
	return affected.RowsAffected, affected.Error
}
