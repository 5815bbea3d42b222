package service

import (
	"testing"
	"time"

	"preventive-care-tracker/internal/domain/entity"

	"github.com/google/uuid"
)

func screening(id, guidelineID uuid.UUID) entity.ScreeningRecord {
	return entity.ScreeningRecord{ID: id, GuidelineID: guidelineID, UserID: uuid.New()}
}

func appointment(id uuid.UUID, screeningID string, day int) entity.Appointment {
	return entity.Appointment{
		ID:              id,
		UserID:          uuid.New(),
		ScreeningID:     screeningID,
		AppointmentDate: time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestAttach_DeduplicatesAcrossBothKeys(t *testing.T) {
	reconciler := NewScreeningReconciler()
	s1 := uuid.New()
	g1 := uuid.New()
	a1 := uuid.New()

	// The same appointment ID referenced through both the screening ID and
	// the guideline ID must appear exactly once.
	result := reconciler.Attach(
		[]entity.ScreeningRecord{screening(s1, g1)},
		[]entity.Appointment{
			appointment(a1, g1.String(), 1),
			appointment(a1, s1.String(), 2),
		},
	)

	if len(result.Screenings) != 1 {
		t.Fatalf("expected 1 screening, got %d", len(result.Screenings))
	}
	attached := result.Screenings[0].Appointments
	if len(attached) != 1 {
		t.Fatalf("expected exactly 1 appointment, got %d", len(attached))
	}
	if attached[0].ID != a1 {
		t.Fatalf("unexpected appointment %s", attached[0].ID)
	}
	if len(result.Unmatched) != 0 {
		t.Fatalf("expected no unmatched appointments")
	}
}

func TestAttach_IDBucketPrecedesGuidelineBucket(t *testing.T) {
	reconciler := NewScreeningReconciler()
	s1 := uuid.New()
	g1 := uuid.New()
	byGuideline := uuid.New()
	byID := uuid.New()

	result := reconciler.Attach(
		[]entity.ScreeningRecord{screening(s1, g1)},
		[]entity.Appointment{
			appointment(byGuideline, g1.String(), 1),
			appointment(byID, s1.String(), 2),
		},
	)

	attached := result.Screenings[0].Appointments
	if len(attached) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(attached))
	}
}

func TestAttach_UnresolvedKeptInUnmatchedBucket(t *testing.T) {
	reconciler := NewScreeningReconciler()
	s1 := uuid.New()
	g1 := uuid.New()
	stray := uuid.New()
	strayKey := uuid.New().String()

	result := reconciler.Attach(
		[]entity.ScreeningRecord{screening(s1, g1)},
		[]entity.Appointment{appointment(stray, strayKey, 1)},
	)

	if len(result.Screenings[0].Appointments) != 0 {
		t.Fatalf("stray appointment must not attach to the screening")
	}
	bucket, ok := result.Unmatched[strayKey]
	if !ok || len(bucket) != 1 || bucket[0].ID != stray {
		t.Fatalf("expected stray appointment under its raw screening_id, got %+v", result.Unmatched)
	}
}

func TestAttach_LaterScreeningWinsKeyCollision(t *testing.T) {
	reconciler := NewScreeningReconciler()
	sharedGuideline := uuid.New()
	first := screening(uuid.New(), sharedGuideline)
	second := screening(uuid.New(), sharedGuideline)
	a := uuid.New()

	// Both screenings register under the shared guideline ID; the later one
	// owns the key, so the appointment lands there.
	result := reconciler.Attach(
		[]entity.ScreeningRecord{first, second},
		[]entity.Appointment{appointment(a, sharedGuideline.String(), 1)},
	)

	var firstOut, secondOut *ScreeningWithAppointments
	for i := range result.Screenings {
		switch result.Screenings[i].Screening.ID {
		case first.ID:
			firstOut = &result.Screenings[i]
		case second.ID:
			secondOut = &result.Screenings[i]
		}
	}

	if firstOut == nil || secondOut == nil {
		t.Fatalf("both screenings must be present in the result")
	}
	if len(firstOut.Appointments) != 0 {
		t.Fatalf("first screening must lose the collision")
	}
	if len(secondOut.Appointments) != 1 || secondOut.Appointments[0].ID != a {
		t.Fatalf("second screening must win the collision")
	}
}

func TestAttach_NoAppointmentDropped(t *testing.T) {
	reconciler := NewScreeningReconciler()
	s1 := screening(uuid.New(), uuid.New())
	s2 := screening(uuid.New(), uuid.New())

	appointments := []entity.Appointment{
		appointment(uuid.New(), s1.ID.String(), 1),
		appointment(uuid.New(), s1.GuidelineID.String(), 2),
		appointment(uuid.New(), s2.ID.String(), 3),
		appointment(uuid.New(), uuid.New().String(), 4),
		appointment(uuid.New(), "", 5),
	}

	result := reconciler.Attach([]entity.ScreeningRecord{s1, s2}, appointments)

	seen := make(map[uuid.UUID]int)
	for _, sw := range result.Screenings {
		for _, a := range sw.Appointments {
			seen[a.ID]++
		}
	}
	for _, bucket := range result.Unmatched {
		for _, a := range bucket {
			seen[a.ID]++
		}
	}

	if len(seen) != len(appointments) {
		t.Fatalf("expected %d distinct appointments accounted for, got %d", len(appointments), len(seen))
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("appointment %s appeared %d times", id, count)
		}
	}
}

func TestAttachOne_SortedByDateDescending(t *testing.T) {
	reconciler := NewScreeningReconciler()
	s := screening(uuid.New(), uuid.New())

	appointments := []entity.Appointment{
		appointment(uuid.New(), s.ID.String(), 3),
		appointment(uuid.New(), s.GuidelineID.String(), 20),
		appointment(uuid.New(), s.ID.String(), 10),
		appointment(uuid.New(), uuid.New().String(), 25), // unrelated
	}

	merged := reconciler.AttachOne(&s, appointments)

	if len(merged) != 3 {
		t.Fatalf("expected 3 merged appointments, got %d", len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].AppointmentDate.After(merged[i-1].AppointmentDate) {
			t.Fatalf("appointments not sorted newest-first at index %d", i)
		}
	}
}
