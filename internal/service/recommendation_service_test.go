package service

import (
	"testing"

	"preventive-care-tracker/internal/domain/entity"

	"github.com/google/uuid"
)

func intPtr(v int) *int { return &v }

func guidelineWithRanges(name string, genders []string, ranges ...entity.GuidelineAgeRange) entity.Guideline {
	return entity.Guideline{
		ID:        uuid.New(),
		Name:      name,
		Genders:   entity.StringList(genders),
		AgeRanges: ranges,
	}
}

func TestClassify_CurrentWhenAgeInsideRange(t *testing.T) {
	engine := NewRecommendationEngine()
	g := guidelineWithRanges("colon screening", []string{"all"},
		entity.GuidelineAgeRange{MinAge: 45, MaxAge: intPtr(75)})

	result := engine.Classify([]entity.Guideline{g},
		RecommendationProfile{Age: 50, Gender: entity.GenderFemale}, nil, ClassifyOptions{})

	if len(result.Current) != 1 || len(result.Upcoming) != 0 {
		t.Fatalf("expected 1 current / 0 upcoming, got %d / %d", len(result.Current), len(result.Upcoming))
	}
	if result.Current[0].Status != StatusCurrent {
		t.Fatalf("expected status current, got %q", result.Current[0].Status)
	}
}

func TestClassify_MaxAgeInclusive(t *testing.T) {
	engine := NewRecommendationEngine()
	g := guidelineWithRanges("mammogram", []string{"female"},
		entity.GuidelineAgeRange{MinAge: 40, MaxAge: intPtr(74)})

	result := engine.Classify([]entity.Guideline{g},
		RecommendationProfile{Age: 74, Gender: entity.GenderFemale}, nil, ClassifyOptions{})

	if len(result.Current) != 1 {
		t.Fatalf("expected age equal to max_age to classify current")
	}
}

func TestClassify_NilMaxAgeIsUnbounded(t *testing.T) {
	engine := NewRecommendationEngine()
	g := guidelineWithRanges("blood pressure", []string{"all"},
		entity.GuidelineAgeRange{MinAge: 18, MaxAge: nil})

	result := engine.Classify([]entity.Guideline{g},
		RecommendationProfile{Age: 103, Gender: entity.GenderMale}, nil, ClassifyOptions{})

	if len(result.Current) != 1 {
		t.Fatalf("expected unbounded range to match any age >= min_age")
	}
}

func TestClassify_GenderMismatchExcludesEntirely(t *testing.T) {
	engine := NewRecommendationEngine()
	g := guidelineWithRanges("cervical screening", []string{"female"},
		entity.GuidelineAgeRange{MinAge: 25, MaxAge: intPtr(65)})

	// Within the upcoming window too; gender exclusion must still win.
	result := engine.Classify([]entity.Guideline{g},
		RecommendationProfile{Age: 22, Gender: entity.GenderMale}, nil,
		ClassifyOptions{IncludeUpcoming: true, UpcomingYears: 10})

	if len(result.Current) != 0 || len(result.Upcoming) != 0 {
		t.Fatalf("expected full exclusion, got %d current / %d upcoming", len(result.Current), len(result.Upcoming))
	}
}

func TestClassify_UpcomingOnlyWhenRequested(t *testing.T) {
	engine := NewRecommendationEngine()
	g := guidelineWithRanges("colon screening", []string{"all"},
		entity.GuidelineAgeRange{MinAge: 45, MaxAge: intPtr(75)})
	profile := RecommendationProfile{Age: 40, Gender: entity.GenderMale}

	withOut := engine.Classify([]entity.Guideline{g}, profile, nil, ClassifyOptions{})
	if len(withOut.Upcoming) != 0 {
		t.Fatalf("expected no upcoming without the flag")
	}

	with := engine.Classify([]entity.Guideline{g}, profile, nil,
		ClassifyOptions{IncludeUpcoming: true, UpcomingYears: 10})
	if len(with.Upcoming) != 1 {
		t.Fatalf("expected 1 upcoming, got %d", len(with.Upcoming))
	}
	if with.Upcoming[0].Status != StatusUpcoming {
		t.Fatalf("expected status upcoming, got %q", with.Upcoming[0].Status)
	}
}

func TestClassify_UpcomingWindowBoundary(t *testing.T) {
	engine := NewRecommendationEngine()
	g := guidelineWithRanges("colon screening", []string{"all"},
		entity.GuidelineAgeRange{MinAge: 45, MaxAge: intPtr(75)})

	atEdge := engine.Classify([]entity.Guideline{g},
		RecommendationProfile{Age: 35, Gender: entity.GenderMale}, nil,
		ClassifyOptions{IncludeUpcoming: true, UpcomingYears: 10})
	if len(atEdge.Upcoming) != 1 {
		t.Fatalf("min_age == age+upcomingYears should count as upcoming")
	}

	beyond := engine.Classify([]entity.Guideline{g},
		RecommendationProfile{Age: 34, Gender: entity.GenderMale}, nil,
		ClassifyOptions{IncludeUpcoming: true, UpcomingYears: 10})
	if len(beyond.Upcoming) != 0 {
		t.Fatalf("range beyond the window must not count as upcoming")
	}
}

func TestClassify_LaterCurrentOverridesEarlierUpcoming(t *testing.T) {
	engine := NewRecommendationEngine()
	// First range is ahead of the profile (upcoming), second contains it.
	// The scan keeps going after an upcoming match and current wins.
	g := guidelineWithRanges("staged screening", []string{"all"},
		entity.GuidelineAgeRange{MinAge: 50, MaxAge: intPtr(60), Position: 0},
		entity.GuidelineAgeRange{MinAge: 40, MaxAge: intPtr(49), Position: 1})

	result := engine.Classify([]entity.Guideline{g},
		RecommendationProfile{Age: 45, Gender: entity.GenderFemale}, nil,
		ClassifyOptions{IncludeUpcoming: true, UpcomingYears: 10})

	if len(result.Current) != 1 {
		t.Fatalf("expected current to win over the earlier upcoming match")
	}
	if len(result.Upcoming) != 0 {
		t.Fatalf("guideline must not appear in both lists")
	}
}

func TestClassify_FirstCurrentMatchStopsScan(t *testing.T) {
	engine := NewRecommendationEngine()
	// Overlapping ranges; the first containing range decides and the
	// guideline appears exactly once.
	g := guidelineWithRanges("overlapping", []string{"all"},
		entity.GuidelineAgeRange{MinAge: 18, MaxAge: nil, Position: 0},
		entity.GuidelineAgeRange{MinAge: 40, MaxAge: intPtr(80), Position: 1})

	result := engine.Classify([]entity.Guideline{g},
		RecommendationProfile{Age: 50, Gender: entity.GenderMale}, nil, ClassifyOptions{})

	if len(result.Current) != 1 {
		t.Fatalf("expected exactly one current entry, got %d", len(result.Current))
	}
}

func TestClassify_SetsIsSelectedFromSelectionSet(t *testing.T) {
	engine := NewRecommendationEngine()
	selectedG := guidelineWithRanges("selected", []string{"all"},
		entity.GuidelineAgeRange{MinAge: 18, MaxAge: nil})
	otherG := guidelineWithRanges("other", []string{"all"},
		entity.GuidelineAgeRange{MinAge: 18, MaxAge: nil})

	selected := map[uuid.UUID]bool{selectedG.ID: true}
	result := engine.Classify([]entity.Guideline{selectedG, otherG},
		RecommendationProfile{Age: 30, Gender: entity.GenderFemale}, selected, ClassifyOptions{})

	if len(result.Current) != 2 {
		t.Fatalf("expected 2 current entries, got %d", len(result.Current))
	}
	for _, entry := range result.Current {
		want := entry.Guideline.ID == selectedG.ID
		if entry.IsSelected != want {
			t.Fatalf("guideline %q: expected is_selected=%v", entry.Guideline.Name, want)
		}
	}
}

func TestClassify_NeverBothCurrentAndUpcoming(t *testing.T) {
	engine := NewRecommendationEngine()
	guidelines := []entity.Guideline{
		guidelineWithRanges("a", []string{"all"}, entity.GuidelineAgeRange{MinAge: 20, MaxAge: intPtr(40)}),
		guidelineWithRanges("b", []string{"all"}, entity.GuidelineAgeRange{MinAge: 50, MaxAge: nil}),
		guidelineWithRanges("c", []string{"female"}, entity.GuidelineAgeRange{MinAge: 30, MaxAge: intPtr(60)}),
		guidelineWithRanges("d", []string{"all"},
			entity.GuidelineAgeRange{MinAge: 48, MaxAge: intPtr(55)},
			entity.GuidelineAgeRange{MinAge: 40, MaxAge: intPtr(47)}),
	}

	for age := 15; age <= 70; age += 5 {
		result := engine.Classify(guidelines,
			RecommendationProfile{Age: age, Gender: entity.GenderFemale}, nil,
			ClassifyOptions{IncludeUpcoming: true, UpcomingYears: 10})

		currentIDs := make(map[uuid.UUID]bool)
		for _, entry := range result.Current {
			currentIDs[entry.Guideline.ID] = true
		}
		for _, entry := range result.Upcoming {
			if currentIDs[entry.Guideline.ID] {
				t.Fatalf("age %d: guideline %q in both current and upcoming", age, entry.Guideline.Name)
			}
		}
	}
}
