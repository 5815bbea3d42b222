package service

import (
	"testing"
	"time"

	"preventive-care-tracker/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate_TwelveMonths(t *testing.T) {
	g := &entity.Guideline{FrequencyMonths: 12}
	got := NextDueDate(g, date(2024, time.January, 31))
	want := date(2025, time.January, 31)
	if !got.Equal(want) {
		t.Fatalf("expected %s got %s", want.Format("2006-01-02"), got.Format("2006-01-02"))
	}
}

func TestNextDueDate_MonthEndRollsForward(t *testing.T) {
	// Jan 31 + 1 month normalizes through Feb 31 into early March rather
	// than clamping to the end of February. 2024 is a leap year, so the
	// overflow is two days.
	g := &entity.Guideline{FrequencyMonths: 1}
	got := NextDueDate(g, date(2024, time.January, 31))
	want := date(2024, time.March, 2)
	if !got.Equal(want) {
		t.Fatalf("expected %s got %s", want.Format("2006-01-02"), got.Format("2006-01-02"))
	}
}

func TestNextDueDate_MonthEndRollsForwardNonLeap(t *testing.T) {
	g := &entity.Guideline{FrequencyMonths: 1}
	got := NextDueDate(g, date(2023, time.January, 31))
	want := date(2023, time.March, 3)
	if !got.Equal(want) {
		t.Fatalf("expected %s got %s", want.Format("2006-01-02"), got.Format("2006-01-02"))
	}
}

func TestNextDueDate_ZeroFrequencyDefaultsToTwelve(t *testing.T) {
	g := &entity.Guideline{}
	got := NextDueDate(g, date(2024, time.June, 15))
	want := date(2025, time.June, 15)
	if !got.Equal(want) {
		t.Fatalf("expected %s got %s", want.Format("2006-01-02"), got.Format("2006-01-02"))
	}
}

func TestNextDueWindow_UsesFrequencyMax(t *testing.T) {
	max := 24
	g := &entity.Guideline{FrequencyMonths: 12, FrequencyMonthsMax: &max}
	w := NextDueWindow(g, date(2024, time.June, 15))
	if !w.Earliest.Equal(date(2025, time.June, 15)) {
		t.Fatalf("unexpected earliest %s", w.Earliest.Format("2006-01-02"))
	}
	if !w.Latest.Equal(date(2026, time.June, 15)) {
		t.Fatalf("unexpected latest %s", w.Latest.Format("2006-01-02"))
	}
}

func TestNextDueWindow_NoMaxCollapsesToSingleDate(t *testing.T) {
	g := &entity.Guideline{FrequencyMonths: 6}
	w := NextDueWindow(g, date(2024, time.June, 15))
	if !w.Earliest.Equal(w.Latest) {
		t.Fatalf("expected collapsed window, got %s..%s",
			w.Earliest.Format("2006-01-02"), w.Latest.Format("2006-01-02"))
	}
}
