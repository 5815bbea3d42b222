package repository

import (
	"preventive-care-tracker/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SelectionRepository interface {
	Create(db *gorm.DB, selection *entity.Selection) error
	FindByUserAndGuideline(db *gorm.DB, userID, guidelineID uuid.UUID) (*entity.Selection, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Selection, error)
	Update(db *gorm.DB, selection *entity.Selection) error
	DeleteByUserAndGuideline(db *gorm.DB, userID, guidelineID uuid.UUID) (int64, error)
}
