package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentNotOwned = errors.New("appointment does not belong to you")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	RecordResult(ctx context.Context, id uuid.UUID, req *dto.AppointmentResultRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// findOwned loads an appointment and checks it belongs to the caller.
func (u *appointmentUsecase) findOwned(id, userID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.UserID != userID {
		return nil, ErrAppointmentNotOwned
	}
	return appointment, nil
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointmentDate, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	appointment := &entity.Appointment{
		UserID:          userID,
		ScreeningID:     req.ScreeningID,
		AppointmentDate: appointmentDate,
	}

	if err := u.appointmentRepo.Create(u.db, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionAppointmentCreate,
		"appointment", appointment.ID.String(), appointment)

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.findOwned(id, userID)
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByUserID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.findOwned(id, userID)
	if err != nil {
		return nil, err
	}

	old := *appointment

	if req.ScreeningID != nil {
		appointment.ScreeningID = *req.ScreeningID
	}
	if req.AppointmentDate != "" {
		appointmentDate, err := time.Parse("2006-01-02", req.AppointmentDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		appointment.AppointmentDate = appointmentDate
	}
	if req.Completed != nil {
		appointment.Completed = *req.Completed
	}

	if err := u.appointmentRepo.Update(u.db, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionAppointmentUpdate,
		"appointment", appointment.ID.String(), &old, appointment)

	return converter.AppointmentToResponse(appointment), nil
}

// RecordResult stores the outcome of a visit and marks the appointment
// completed in one update.
func (u *appointmentUsecase) RecordResult(ctx context.Context, id uuid.UUID, req *dto.AppointmentResultRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.findOwned(id, userID)
	if err != nil {
		return nil, err
	}

	old := *appointment

	appointment.Result = entity.AppointmentResult{
		Status: req.Status,
		Notes:  req.Notes,
		Date:   req.Date,
	}
	appointment.Completed = true

	if err := u.appointmentRepo.Update(u.db, appointment); err != nil {
		u.log.Warnf("Failed to record appointment result: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionAppointmentUpdate,
		"appointment", appointment.ID.String(), &old, appointment)

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	appointment, err := u.findOwned(id, userID)
	if err != nil {
		return err
	}

	if _, err := u.appointmentRepo.Delete(u.db, id); err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}

	u.auditService.LogDelete(ctx, u.db, &userID, entity.AuditActionAppointmentDelete,
		"appointment", appointment.ID.String(), appointment)

	return nil
}
