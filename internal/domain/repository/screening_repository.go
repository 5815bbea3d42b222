package repository

import (
	"preventive-care-tracker/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScreeningRepository queries screening records. Finders exclude archived
// rows unless the method name says otherwise; archived rows are never
// physically removed by anything here except Delete, which is reserved for
// explicit admin cleanup.
type ScreeningRepository interface {
	Create(db *gorm.DB, screening *entity.ScreeningRecord) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ScreeningRecord, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.ScreeningRecord, error)
	FindByUserAndGuideline(db *gorm.DB, userID, guidelineID uuid.UUID) (*entity.ScreeningRecord, error)
	FindArchivedByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.ScreeningRecord, error)
	Update(db *gorm.DB, screening *entity.ScreeningRecord) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}

type CompletionEventRepository interface {
	Create(db *gorm.DB, event *entity.CompletionEvent) error
	FindByUserAndGuideline(db *gorm.DB, userID, guidelineID uuid.UUID) ([]entity.CompletionEvent, error)
}
