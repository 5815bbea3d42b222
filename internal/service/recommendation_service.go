package service

import (
	"preventive-care-tracker/internal/domain/entity"

	"github.com/google/uuid"
)

// RecommendationStatus marks whether a guideline applies now or soon
type RecommendationStatus string

const (
	StatusCurrent  RecommendationStatus = "current"
	StatusUpcoming RecommendationStatus = "upcoming"
)

// ClassifyOptions controls the classification pass
type ClassifyOptions struct {
	// IncludeUpcoming enables the look-ahead for ranges the profile has not
	// reached yet
	IncludeUpcoming bool
	// UpcomingYears is how far ahead (in years of age) a not-yet-applicable
	// range still counts as upcoming
	UpcomingYears int
}

// RecommendationProfile is the demographic slice of a user the engine
// classifies against
type RecommendationProfile struct {
	UserID uuid.UUID
	Age    int
	Gender string
}

// GuidelineRecommendation is one classified catalog entry
type GuidelineRecommendation struct {
	Guideline  entity.Guideline     `json:"guideline"`
	Status     RecommendationStatus `json:"status"`
	IsSelected bool                 `json:"is_selected"`
}

// Classification splits the catalog into currently and soon-to-be relevant
// guidelines. Guidelines failing the gender filter or falling outside every
// range appear in neither list.
type Classification struct {
	Current  []GuidelineRecommendation `json:"current"`
	Upcoming []GuidelineRecommendation `json:"upcoming"`
}

// RecommendationEngine classifies guidelines against a profile. Pure: no
// side effects, no I/O.
type RecommendationEngine interface {
	Classify(guidelines []entity.Guideline, profile RecommendationProfile, selected map[uuid.UUID]bool, opts ClassifyOptions) Classification
}

type recommendationEngine struct{}

func NewRecommendationEngine() RecommendationEngine {
	return &recommendationEngine{}
}

// Classify walks each guideline's age ranges in stored order.
//
// A range containing the profile's age marks the guideline current and ends
// the scan for that guideline immediately. A range the profile has not
// reached yet, but will within UpcomingYears, marks it upcoming; the scan
// continues past an upcoming match because a later range may still contain
// the age, and current takes priority over upcoming. Whether overlapping
// ranges within one guideline are intentional is an open catalog question;
// the first-match rule makes the outcome deterministic either way.
//
// A guideline is never placed in both lists.
func (e *recommendationEngine) Classify(
	guidelines []entity.Guideline,
	profile RecommendationProfile,
	selected map[uuid.UUID]bool,
	opts ClassifyOptions,
) Classification {
	result := Classification{
		Current:  []GuidelineRecommendation{},
		Upcoming: []GuidelineRecommendation{},
	}

	for _, guideline := range guidelines {
		// Gender mismatch excludes the guideline entirely, with no
		// upcoming consideration.
		if !guideline.AppliesToGender(profile.Gender) {
			continue
		}

		current := false
		upcoming := false
		for _, ageRange := range guideline.AgeRanges {
			if ageRange.Contains(profile.Age) {
				current = true
				break
			}
			if opts.IncludeUpcoming &&
				ageRange.MinAge > profile.Age &&
				ageRange.MinAge <= profile.Age+opts.UpcomingYears {
				upcoming = true
			}
		}

		entry := GuidelineRecommendation{
			Guideline:  guideline,
			IsSelected: selected[guideline.ID],
		}

		switch {
		case current:
			entry.Status = StatusCurrent
			result.Current = append(result.Current, entry)
		case upcoming:
			entry.Status = StatusUpcoming
			result.Upcoming = append(result.Upcoming, entry)
		}
	}

	return result
}
