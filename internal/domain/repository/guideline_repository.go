package repository

import (
	"preventive-care-tracker/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuidelineRepository interface {
	Create(db *gorm.DB, guideline *entity.Guideline) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Guideline, error)
	FindAll(db *gorm.DB, filter *entity.GuidelineFilter) ([]entity.Guideline, error)
	Update(db *gorm.DB, guideline *entity.Guideline) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}

type GuidelineAgeRangeRepository interface {
	Create(db *gorm.DB, ageRange *entity.GuidelineAgeRange) error
	FindByGuidelineID(db *gorm.DB, guidelineID uuid.UUID) ([]entity.GuidelineAgeRange, error)
	DeleteByGuidelineID(db *gorm.DB, guidelineID uuid.UUID) (int64, error)
}

type GuidelineResourceRepository interface {
	Create(db *gorm.DB, resource *entity.GuidelineResource) error
	FindByGuidelineID(db *gorm.DB, guidelineID uuid.UUID) ([]entity.GuidelineResource, error)
	DeleteByGuidelineID(db *gorm.DB, guidelineID uuid.UUID) (int64, error)
}
