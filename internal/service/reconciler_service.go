package service

import (
	"sort"

	"preventive-care-tracker/internal/domain/entity"
)

// ScreeningWithAppointments is a screening record with its reconciled
// appointment list embedded
type ScreeningWithAppointments struct {
	Screening    entity.ScreeningRecord `json:"screening"`
	Appointments []entity.Appointment   `json:"appointments"`
}

// AttachResult is the output of a many-screenings reconciliation pass.
// Unmatched holds appointments whose screening_id resolved to nothing,
// keyed by that raw screening_id; appointments are never discarded.
type AttachResult struct {
	Screenings []ScreeningWithAppointments  `json:"screenings"`
	Unmatched  map[string][]entity.Appointment `json:"unmatched,omitempty"`
}

// ScreeningReconciler merges appointment records into screening records.
//
// Appointment.ScreeningID is an ambiguous foreign key: historical rows may
// hold either a screening record's own ID or that record's guideline ID.
// The reconciler resolves both through a dual-key index instead of
// scattering conditionals through callers.
type ScreeningReconciler interface {
	Attach(screenings []entity.ScreeningRecord, appointments []entity.Appointment) AttachResult
	AttachOne(screening *entity.ScreeningRecord, appointments []entity.Appointment) []entity.Appointment
}

type screeningReconciler struct{}

func NewScreeningReconciler() ScreeningReconciler {
	return &screeningReconciler{}
}

// buildIndex registers every screening under both its own ID and its
// guideline ID. On a key collision the later screening in iteration order
// wins; this precedence is part of the documented ambiguity, not a bug to
// correct.
func buildIndex(screenings []entity.ScreeningRecord) map[string]string {
	index := make(map[string]string, len(screenings)*2)
	for _, s := range screenings {
		canonical := s.ID.String()
		index[canonical] = canonical
		index[s.GuidelineID.String()] = canonical
	}
	return index
}

// bucketAppointments resolves each appointment's screening_id through the
// index. Resolved appointments land under the matched screening's canonical
// ID; unresolved ones keep their raw key so nothing is dropped.
func bucketAppointments(index map[string]string, appointments []entity.Appointment) map[string][]entity.Appointment {
	buckets := make(map[string][]entity.Appointment)
	for _, a := range appointments {
		key := a.ScreeningID
		if canonical, ok := index[key]; ok {
			key = canonical
		}
		buckets[key] = append(buckets[key], a)
	}
	return buckets
}

// mergeBuckets concatenates the ID-keyed bucket before the guideline-keyed
// bucket and de-duplicates by appointment ID, keeping the first occurrence.
func mergeBuckets(idBucket, guidelineBucket []entity.Appointment) []entity.Appointment {
	merged := make([]entity.Appointment, 0, len(idBucket)+len(guidelineBucket))
	seen := make(map[string]bool, len(idBucket)+len(guidelineBucket))
	for _, a := range append(append([]entity.Appointment{}, idBucket...), guidelineBucket...) {
		if seen[a.ID.String()] {
			continue
		}
		seen[a.ID.String()] = true
		merged = append(merged, a)
	}
	return merged
}

// Attach reconciles appointments into screenings. Every input appointment
// ends up in exactly one screening's merged list or in the unmatched map;
// no appointment ID appears twice within one screening's list. No ordering
// is imposed across screenings.
func (r *screeningReconciler) Attach(screenings []entity.ScreeningRecord, appointments []entity.Appointment) AttachResult {
	index := buildIndex(screenings)
	buckets := bucketAppointments(index, appointments)

	result := AttachResult{
		Screenings: make([]ScreeningWithAppointments, 0, len(screenings)),
	}

	for _, s := range screenings {
		idKey := s.ID.String()
		guidelineKey := s.GuidelineID.String()

		merged := mergeBuckets(buckets[idKey], buckets[guidelineKey])
		// Consume the buckets so a second screening sharing a key cannot
		// claim the same appointments again.
		delete(buckets, idKey)
		delete(buckets, guidelineKey)

		result.Screenings = append(result.Screenings, ScreeningWithAppointments{
			Screening:    s,
			Appointments: merged,
		})
	}

	if len(buckets) > 0 {
		result.Unmatched = buckets
	}

	return result
}

// AttachOne reconciles appointments for a single screening and sorts the
// merged list by appointment date, newest first.
func (r *screeningReconciler) AttachOne(screening *entity.ScreeningRecord, appointments []entity.Appointment) []entity.Appointment {
	idKey := screening.ID.String()
	guidelineKey := screening.GuidelineID.String()

	var idBucket, guidelineBucket []entity.Appointment
	for _, a := range appointments {
		switch a.ScreeningID {
		case idKey:
			idBucket = append(idBucket, a)
		case guidelineKey:
			guidelineBucket = append(guidelineBucket, a)
		}
	}

	merged := mergeBuckets(idBucket, guidelineBucket)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].AppointmentDate.After(merged[j].AppointmentDate)
	})
	return merged
}
