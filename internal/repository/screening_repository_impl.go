package repository

import (
	"errors"

	"preventive-care-tracker/internal/domain/entity"
	domainRepo "preventive-care-tracker/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type screeningRepository struct{}

func NewScreeningRepository() domainRepo.ScreeningRepository {
	return &screeningRepository{}
}

func (r *screeningRepository) Create(db *gorm.DB, screening *entity.ScreeningRecord) error {
	return db.Omit("Guideline").Create(screening).Error
}

func (r *screeningRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ScreeningRecord, error) {
	var screening entity.ScreeningRecord
	err := db.Preload("Guideline").Where("id = ?", id).First(&screening).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &screening, nil
}

// FindByUserID returns the user's active screening records. Archived rows
// are excluded here and surfaced only through FindArchivedByUserID.
func (r *screeningRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.ScreeningRecord, error) {
	var screenings []entity.ScreeningRecord
	err := db.Preload("Guideline").
		Where("user_id = ? AND archived = ?", userID, false).
		Order("created_at DESC").
		Find(&screenings).Error
	if err != nil {
		return nil, err
	}
	return screenings, nil
}

func (r *screeningRepository) FindByUserAndGuideline(db *gorm.DB, userID, guidelineID uuid.UUID) (*entity.ScreeningRecord, error) {
	var screening entity.ScreeningRecord
	err := db.Where("user_id = ? AND guideline_id = ? AND archived = ?", userID, guidelineID, false).
		First(&screening).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &screening, nil
}

func (r *screeningRepository) FindArchivedByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.ScreeningRecord, error) {
	var screenings []entity.ScreeningRecord
	err := db.Preload("Guideline").
		Where("user_id = ? AND archived = ?", userID, true).
		Order("updated_at DESC").
		Find(&screenings).Error
	if err != nil {
		return nil, err
	}
	return screenings, nil
}

func (r *screeningRepository) Update(db *gorm.DB, screening *entity.ScreeningRecord) error {
	return db.Omit("Guideline").Save(screening).Error
}

func (r *screeningRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.ScreeningRecord{})
	return affected.RowsAffected, affected.Error
}

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("user_id = ?", userID).
		Order("appointment_date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return affected.RowsAffected, affected.Error
}

type completionEventRepository struct{}

func NewCompletionEventRepository() domainRepo.CompletionEventRepository {
	return &completionEventRepository{}
}

func (r *completionEventRepository) Create(db *gorm.DB, event *entity.CompletionEvent) error {
	return db.Create(event).Error
}

func (r *completionEventRepository) FindByUserAndGuideline(db *gorm.DB, userID, guidelineID uuid.UUID) ([]entity.CompletionEvent, error) {
	var events []entity.CompletionEvent
	err := db.Where("user_id = ? AND guideline_id = ?", userID, guidelineID).
		Order("completion_date DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
