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
	ErrScreeningNotFound = errors.New("screening record not found")
	ErrScreeningNotOwned = errors.New("screening record does not belong to you")
	ErrScreeningArchived = errors.New("screening record is archived")
	ErrAlreadyTracking   = errors.New("an active screening record already exists for this guideline")
)

type ScreeningUsecase interface {
	CreateScreening(ctx context.Context, req *dto.CreateScreeningRequest) (*dto.ScreeningResponse, error)
	GetScreening(ctx context.Context, id uuid.UUID) (*dto.ScreeningResponse, error)
	ListScreenings(ctx context.Context) (*dto.ScreeningListResponse, error)
	ListArchivedScreenings(ctx context.Context) (*dto.ScreeningListResponse, error)
	CompleteScreening(ctx context.Context, id uuid.UUID, req *dto.CompleteScreeningRequest) (*dto.ScreeningResponse, error)
	ArchiveScreening(ctx context.Context, id uuid.UUID) error
	GetCompletionHistory(ctx context.Context, guidelineID uuid.UUID) (*dto.CompletionHistoryResponse, error)
}

type screeningUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	screeningRepo   repository.ScreeningRepository
	appointmentRepo repository.AppointmentRepository
	guidelineRepo   repository.GuidelineRepository
	completionRepo  repository.CompletionEventRepository
	reconciler      service.ScreeningReconciler
	auditService    service.AuditService
}

func NewScreeningUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	screeningRepo repository.ScreeningRepository,
	appointmentRepo repository.AppointmentRepository,
	guidelineRepo repository.GuidelineRepository,
	completionRepo repository.CompletionEventRepository,
	reconciler service.ScreeningReconciler,
	auditService service.AuditService,
) ScreeningUsecase {
	return &screeningUsecase{
		db:              db,
		log:             log,
		screeningRepo:   screeningRepo,
		appointmentRepo: appointmentRepo,
		guidelineRepo:   guidelineRepo,
		completionRepo:  completionRepo,
		reconciler:      reconciler,
		auditService:    auditService,
	}
}

func (u *screeningUsecase) CreateScreening(ctx context.Context, req *dto.CreateScreeningRequest) (*dto.ScreeningResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if req.GuidelineID == uuid.Nil {
		return nil, ErrMissingGuidelineID
	}

	guideline, err := u.guidelineRepo.FindByID(u.db, req.GuidelineID)
	if err != nil {
		u.log.Warnf("Failed to find guideline: %+v", err)
		return nil, err
	}
	if guideline == nil {
		return nil, ErrGuidelineNotFound
	}

	existing, err := u.screeningRepo.FindByUserAndGuideline(u.db, userID, req.GuidelineID)
	if err != nil {
		u.log.Warnf("Failed to check existing screening: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyTracking
	}

	screening := &entity.ScreeningRecord{
		GuidelineID: req.GuidelineID,
		UserID:      userID,
	}

	if err := u.screeningRepo.Create(u.db, screening); err != nil {
		u.log.Warnf("Failed to create screening: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionScreeningCreate,
		"screening_record", screening.ID.String(), screening)

	screening.Guideline = *guideline
	return converter.ScreeningToResponse(screening), nil
}

// GetScreening returns one screening with its reconciled appointment list,
// sorted newest-first.
func (u *screeningUsecase) GetScreening(ctx context.Context, id uuid.UUID) (*dto.ScreeningResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	screening, err := u.screeningRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find screening: %+v", err)
		return nil, err
	}
	if screening == nil {
		return nil, ErrScreeningNotFound
	}
	if screening.UserID != userID {
		return nil, ErrScreeningNotOwned
	}

	appointments, err := u.appointmentRepo.FindByUserID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	merged := u.reconciler.AttachOne(screening, appointments)

	response := converter.ScreeningToResponse(screening)
	response.Appointments = converter.AppointmentsToResponses(merged)
	return response, nil
}

// ListScreenings returns the user's active screenings with appointments
// attached. Screenings and appointments are read independently, not in one
// transaction; an appointment written between the two reads shows up on the
// next call. That window is accepted for this read-mostly view.
func (u *screeningUsecase) ListScreenings(ctx context.Context) (*dto.ScreeningListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	screenings, err := u.screeningRepo.FindByUserID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find screenings: %+v", err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByUserID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	result := u.reconciler.Attach(screenings, appointments)
	return converter.AttachResultToResponse(&result), nil
}

func (u *screeningUsecase) ListArchivedScreenings(ctx context.Context) (*dto.ScreeningListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	screenings, err := u.screeningRepo.FindArchivedByUserID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find archived screenings: %+v", err)
		return nil, err
	}

	responses := make([]dto.ScreeningResponse, 0, len(screenings))
	for i := range screenings {
		if resp := converter.ScreeningToResponse(&screenings[i]); resp != nil {
			responses = append(responses, *resp)
		}
	}

	return &dto.ScreeningListResponse{
		Screenings: responses,
		Total:      len(responses),
	}, nil
}

// CompleteScreening records a completion: it sets last_completed_date,
// computes next_due_date from the guideline frequency, and appends a
// CompletionEvent to the history. The record stays active.
func (u *screeningUsecase) CompleteScreening(ctx context.Context, id uuid.UUID, req *dto.CompleteScreeningRequest) (*dto.ScreeningResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	screening, err := u.screeningRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find screening: %+v", err)
		return nil, err
	}
	if screening == nil {
		return nil, ErrScreeningNotFound
	}
	if screening.UserID != userID {
		return nil, ErrScreeningNotOwned
	}
	if screening.Archived {
		return nil, ErrScreeningArchived
	}

	completionDate, err := time.Parse("2006-01-02", req.CompletionDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	guideline, err := u.guidelineRepo.FindByID(u.db, screening.GuidelineID)
	if err != nil {
		u.log.Warnf("Failed to find guideline: %+v", err)
		return nil, err
	}
	if guideline == nil {
		return nil, ErrGuidelineNotFound
	}

	nextDue := service.NextDueDate(guideline, completionDate)
	screening.RecordCompletion(completionDate, nextDue)

	if err := u.screeningRepo.Update(u.db, screening); err != nil {
		u.log.Warnf("Failed to update screening: %+v", err)
		return nil, err
	}

	event := &entity.CompletionEvent{
		UserID:         userID,
		GuidelineID:    screening.GuidelineID,
		CompletionDate: completionDate,
		Notes:          req.Notes,
	}
	if err := u.completionRepo.Create(u.db, event); err != nil {
		u.log.Warnf("Failed to append completion event: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionScreeningUpdate,
		"screening_record", screening.ID.String(), nil, screening)

	screening.Guideline = *guideline
	return converter.ScreeningToResponse(screening), nil
}

// ArchiveScreening soft-deletes the record. Archiving an already-archived
// record succeeds silently; there is no way back to active.
func (u *screeningUsecase) ArchiveScreening(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	screening, err := u.screeningRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find screening: %+v", err)
		return err
	}
	if screening == nil {
		return ErrScreeningNotFound
	}
	if screening.UserID != userID {
		return ErrScreeningNotOwned
	}
	if screening.Archived {
		return nil
	}

	screening.Archive()
	if err := u.screeningRepo.Update(u.db, screening); err != nil {
		u.log.Warnf("Failed to archive screening: %+v", err)
		return err
	}

	u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionScreeningArchive,
		"screening_record", screening.ID.String(), nil, screening)

	return nil
}

func (u *screeningUsecase) GetCompletionHistory(ctx context.Context, guidelineID uuid.UUID) (*dto.CompletionHistoryResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if guidelineID == uuid.Nil {
		return nil, ErrMissingGuidelineID
	}

	events, err := u.completionRepo.FindByUserAndGuideline(u.db, userID, guidelineID)
	if err != nil {
		u.log.Warnf("Failed to find completion events: %+v", err)
		return nil, err
	}

	return &dto.CompletionHistoryResponse{
		Events: converter.CompletionEventsToResponses(events),
		Total:  len(events),
	}, nil
}
