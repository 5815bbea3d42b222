package repository

import (
	"errors"

	"preventive-care-tracker/internal/domain/entity"
	domainRepo "preventive-care-tracker/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type guidelineRepository struct{}

func NewGuidelineRepository() domainRepo.GuidelineRepository {
	return &guidelineRepository{}
}

func (r *guidelineRepository) Create(db *gorm.DB, guideline *entity.Guideline) error {
	return db.Omit("AgeRanges", "Resources").Create(guideline).Error
}

func (r *guidelineRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Guideline, error) {
	var guideline entity.Guideline
	err := db.
		Preload("AgeRanges", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Resources").
		Where("id = ?", id).
		First(&guideline).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &guideline, nil
}

// FindAll returns catalog entries matching the filter. With no explicit
// visibility the result is the public catalog plus the viewer's own private
// copies. Age ranges are always preloaded in stored order because the
// recommendation scan depends on it.
func (r *guidelineRepository) FindAll(db *gorm.DB, filter *entity.GuidelineFilter) ([]entity.Guideline, error) {
	var guidelines []entity.Guideline
	query := db.
		Preload("AgeRanges", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Resources")

	if filter != nil {
		if filter.Visibility != nil {
			query = query.Where("visibility = ?", *filter.Visibility)
			if *filter.Visibility == entity.VisibilityPrivate && filter.ViewerID != nil {
				query = query.Where("created_by = ?", *filter.ViewerID)
			}
		} else if filter.ViewerID != nil {
			query = query.Where("visibility = ? OR (visibility = ? AND created_by = ?)",
				entity.VisibilityPublic, entity.VisibilityPrivate, *filter.ViewerID)
		} else {
			query = query.Where("visibility = ?", entity.VisibilityPublic)
		}
		if filter.Category != "" {
			query = query.Where("category = ?", filter.Category)
		}
		if filter.Name != "" {
			query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
		}
	} else {
		query = query.Where("visibility = ?", entity.VisibilityPublic)
	}

	err := query.Order("name ASC").Find(&guidelines).Error
	if err != nil {
		return nil, err
	}
	return guidelines, nil
}

func (r *guidelineRepository) Update(db *gorm.DB, guideline *entity.Guideline) error {
	return db.Omit("AgeRanges", "Resources").Save(guideline).Error
}

func (r *guidelineRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Guideline{})
	return affected.RowsAffected, affected.Error
}

type guidelineAgeRangeRepository struct{}

func NewGuidelineAgeRangeRepository() domainRepo.GuidelineAgeRangeRepository {
	return &guidelineAgeRangeRepository{}
}

func (r *guidelineAgeRangeRepository) Create(db *gorm.DB, ageRange *entity.GuidelineAgeRange) error {
	return db.Create(ageRange).Error
}

func (r *guidelineAgeRangeRepository) FindByGuidelineID(db *gorm.DB, guidelineID uuid.UUID) ([]entity.GuidelineAgeRange, error) {
	var ranges []entity.GuidelineAgeRange
	err := db.Where("guideline_id = ?", guidelineID).Order("position ASC").Find(&ranges).Error
	if err != nil {
		return nil, err
	}
	return ranges, nil
}

func (r *guidelineAgeRangeRepository) DeleteByGuidelineID(db *gorm.DB, guidelineID uuid.UUID) (int64, error) {
	affected := db.Where("guideline_id = ?", guidelineID).Delete(&entity.GuidelineAgeRange{})
	return affected.RowsAffected, affected.Error
}

type guidelineResourceRepository struct{}

func NewGuidelineResourceRepository() domainRepo.GuidelineResourceRepository {
	return &guidelineResourceRepository{}
}

func (r *guidelineResourceRepository) Create(db *gorm.DB, resource *entity.GuidelineResource) error {
	return db.Create(resource).Error
}

func (r *guidelineResourceRepository) FindByGuidelineID(db *gorm.DB, guidelineID uuid.UUID) ([]entity.GuidelineResource, error) {
	var resources []entity.GuidelineResource
	err := db.Where("guideline_id = ?", guidelineID).Order("title ASC").Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *guidelineResourceRepository) DeleteByGuidelineID(db *gorm.DB, guidelineID uuid.UUID) (int64, error) {
	affected := db.Where("guideline_id = ?", guidelineID).Delete(&entity.GuidelineResource{})
	return affected.RowsAffected, affected.Error
}
