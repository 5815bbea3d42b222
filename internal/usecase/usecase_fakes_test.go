package usecase

import (
	"context"
	"io"
	"time"

	"preventive-care-tracker/internal/delivery/http/middleware"
	"preventive-care-tracker/internal/domain/entity"
	"preventive-care-tracker/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// In-memory repository fakes. The usecases under test pass their *gorm.DB
// straight through to the repositories, so a nil DB and map-backed fakes are
// enough to exercise the orchestration logic.

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// testCatalogCache points at a closed port; every operation fails fast and
// is swallowed, which is exactly the cache's contract.
func testCatalogCache() *service.CatalogCacheService {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	return service.NewCatalogCacheService(client, testLogger())
}

func authedContext(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.UserIDKey, userID)
}

type fakeGuidelineRepo struct {
	guidelines map[uuid.UUID]*entity.Guideline
	createErr  error
	deleteErr  error
	deleted    []uuid.UUID
}

func newFakeGuidelineRepo() *fakeGuidelineRepo {
	return &fakeGuidelineRepo{guidelines: make(map[uuid.UUID]*entity.Guideline)}
}

func (f *fakeGuidelineRepo) add(g *entity.Guideline) *entity.Guideline {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	f.guidelines[g.ID] = g
	return g
}

func (f *fakeGuidelineRepo) Create(db *gorm.DB, guideline *entity.Guideline) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(guideline)
	return nil
}

func (f *fakeGuidelineRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Guideline, error) {
	g, ok := f.guidelines[id]
	if !ok {
		return nil, nil
	}
	return g, nil
}

func (f *fakeGuidelineRepo) FindAll(db *gorm.DB, filter *entity.GuidelineFilter) ([]entity.Guideline, error) {
	var out []entity.Guideline
	for _, g := range f.guidelines {
		if filter != nil && filter.Visibility != nil {
			if g.Visibility != *filter.Visibility {
				continue
			}
			if *filter.Visibility == entity.VisibilityPrivate &&
				(filter.ViewerID == nil || g.CreatedBy == nil || *g.CreatedBy != *filter.ViewerID) {
				continue
			}
		}
		out = append(out, *g)
	}
	return out, nil
}

func (f *fakeGuidelineRepo) Update(db *gorm.DB, guideline *entity.Guideline) error {
	f.guidelines[guideline.ID] = guideline
	return nil
}

func (f *fakeGuidelineRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	if _, ok := f.guidelines[id]; !ok {
		return 0, nil
	}
	delete(f.guidelines, id)
	f.deleted = append(f.deleted, id)
	return 1, nil
}

type fakeAgeRangeRepo struct {
	ranges    []entity.GuidelineAgeRange
	createErr error
}

func (f *fakeAgeRangeRepo) Create(db *gorm.DB, ageRange *entity.GuidelineAgeRange) error {
	if f.createErr != nil {
		return f.createErr
	}
	if ageRange.ID == uuid.Nil {
		ageRange.ID = uuid.New()
	}
	f.ranges = append(f.ranges, *ageRange)
	return nil
}

func (f *fakeAgeRangeRepo) FindByGuidelineID(db *gorm.DB, guidelineID uuid.UUID) ([]entity.GuidelineAgeRange, error) {
	var out []entity.GuidelineAgeRange
	for _, r := range f.ranges {
		if r.GuidelineID == guidelineID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAgeRangeRepo) DeleteByGuidelineID(db *gorm.DB, guidelineID uuid.UUID) (int64, error) {
	var kept []entity.GuidelineAgeRange
	var removed int64
	for _, r := range f.ranges {
		if r.GuidelineID == guidelineID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	f.ranges = kept
	return removed, nil
}

type fakeResourceRepo struct {
	resources []entity.GuidelineResource
	createErr error
}

func (f *fakeResourceRepo) Create(db *gorm.DB, resource *entity.GuidelineResource) error {
	if f.createErr != nil {
		return f.createErr
	}
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	f.resources = append(f.resources, *resource)
	return nil
}

func (f *fakeResourceRepo) FindByGuidelineID(db *gorm.DB, guidelineID uuid.UUID) ([]entity.GuidelineResource, error) {
	var out []entity.GuidelineResource
	for _, r := range f.resources {
		if r.GuidelineID == guidelineID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResourceRepo) DeleteByGuidelineID(db *gorm.DB, guidelineID uuid.UUID) (int64, error) {
	var kept []entity.GuidelineResource
	var removed int64
	for _, r := range f.resources {
		if r.GuidelineID == guidelineID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	f.resources = kept
	return removed, nil
}

type fakeSelectionRepo struct {
	selections []entity.Selection
	createErr  error
}

func (f *fakeSelectionRepo) Create(db *gorm.DB, selection *entity.Selection) error {
	if f.createErr != nil {
		return f.createErr
	}
	if selection.ID == uuid.Nil {
		selection.ID = uuid.New()
	}
	f.selections = append(f.selections, *selection)
	return nil
}

func (f *fakeSelectionRepo) FindByUserAndGuideline(db *gorm.DB, userID, guidelineID uuid.UUID) (*entity.Selection, error) {
	for i := range f.selections {
		if f.selections[i].UserID == userID && f.selections[i].GuidelineID == guidelineID {
			return &f.selections[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSelectionRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Selection, error) {
	var out []entity.Selection
	for _, s := range f.selections {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSelectionRepo) Update(db *gorm.DB, selection *entity.Selection) error {
	for i := range f.selections {
		if f.selections[i].ID == selection.ID {
			f.selections[i] = *selection
			return nil
		}
	}
	return nil
}

func (f *fakeSelectionRepo) DeleteByUserAndGuideline(db *gorm.DB, userID, guidelineID uuid.UUID) (int64, error) {
	var kept []entity.Selection
	var removed int64
	for _, s := range f.selections {
		if s.UserID == userID && s.GuidelineID == guidelineID {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	f.selections = kept
	return removed, nil
}

type fakeScreeningRepo struct {
	screenings map[uuid.UUID]*entity.ScreeningRecord
}

func newFakeScreeningRepo() *fakeScreeningRepo {
	return &fakeScreeningRepo{screenings: make(map[uuid.UUID]*entity.ScreeningRecord)}
}

func (f *fakeScreeningRepo) add(s *entity.ScreeningRecord) *entity.ScreeningRecord {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.screenings[s.ID] = s
	return s
}

func (f *fakeScreeningRepo) Create(db *gorm.DB, screening *entity.ScreeningRecord) error {
	f.add(screening)
	return nil
}

func (f *fakeScreeningRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ScreeningRecord, error) {
	s, ok := f.screenings[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (f *fakeScreeningRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.ScreeningRecord, error) {
	var out []entity.ScreeningRecord
	for _, s := range f.screenings {
		if s.UserID == userID && !s.Archived {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScreeningRepo) FindArchivedByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.ScreeningRecord, error) {
	var out []entity.ScreeningRecord
	for _, s := range f.screenings {
		if s.UserID == userID && s.Archived {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScreeningRepo) FindByUserAndGuideline(db *gorm.DB, userID, guidelineID uuid.UUID) (*entity.ScreeningRecord, error) {
	for _, s := range f.screenings {
		if s.UserID == userID && s.GuidelineID == guidelineID && !s.Archived {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeScreeningRepo) Update(db *gorm.DB, screening *entity.ScreeningRecord) error {
	f.screenings[screening.ID] = screening
	return nil
}

func (f *fakeScreeningRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := f.screenings[id]; !ok {
		return 0, nil
	}
	delete(f.screenings, id)
	return 1, nil
}

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func (f *fakeAppointmentRepo) add(a *entity.Appointment) *entity.Appointment {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.appointments[a.ID] = a
	return a
}

func (f *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	f.add(appointment)
	return nil
}

func (f *fakeAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (f *fakeAppointmentRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	f.appointments[appointment.ID] = appointment
	return nil
}

func (f *fakeAppointmentRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := f.appointments[id]; !ok {
		return 0, nil
	}
	delete(f.appointments, id)
	return 1, nil
}

type fakeCompletionRepo struct {
	events []entity.CompletionEvent
}

func (f *fakeCompletionRepo) Create(db *gorm.DB, event *entity.CompletionEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeCompletionRepo) FindByUserAndGuideline(db *gorm.DB, userID, guidelineID uuid.UUID) ([]entity.CompletionEvent, error) {
	var out []entity.CompletionEvent
	for _, e := range f.events {
		if e.UserID == userID && e.GuidelineID == guidelineID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*entity.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*entity.UserProfile)}
}

func (f *fakeProfileRepo) Create(db *gorm.DB, profile *entity.UserProfile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (f *fakeProfileRepo) Update(db *gorm.DB, profile *entity.UserProfile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

type fakeAuditRepo struct {
	logs []entity.AuditLog
}

func (f *fakeAuditRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	log.ID = int64(len(f.logs) + 1)
	log.CreatedAt = time.Now()
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeAuditRepo) FindAll(db *gorm.DB) ([]entity.AuditLog, error) {
	out := make([]entity.AuditLog, len(f.logs))
	copy(out, f.logs)
	return out, nil
}

func (f *fakeAuditRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	for i := range f.logs {
		if f.logs[i].ID == id {
			return &f.logs[i], nil
		}
	}
	return nil, nil
}
