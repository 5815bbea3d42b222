package service

import (
	"time"

	"preventive-care-tracker/internal/domain/entity"
)

// NextDueDate computes when a screening is next due after a completion on
// fromDate. The interval is the guideline's frequency in months, falling
// back to entity.DefaultFrequencyMonths when unset or zero.
//
// Month arithmetic follows time.AddDate: a day-of-month that does not exist
// in the target month rolls forward into the following month instead of
// clamping (Jan 31 + 1 month = Mar 2, or Mar 3 in a non-leap year). This
// rollover is the system's documented behavior; callers must not "fix" it.
func NextDueDate(guideline *entity.Guideline, fromDate time.Time) time.Time {
	return fromDate.AddDate(0, guideline.EffectiveFrequencyMonths(), 0)
}

// DueWindow is the earliest/latest recommended interval for guidelines that
// configure a frequency range rather than a single value.
type DueWindow struct {
	Earliest time.Time
	Latest   time.Time
}

// NextDueWindow computes the due window after a completion on fromDate.
// Latest equals Earliest when the guideline has no frequency_months_max.
func NextDueWindow(guideline *entity.Guideline, fromDate time.Time) DueWindow {
	earliest := NextDueDate(guideline, fromDate)
	latest := earliest
	if guideline.FrequencyMonthsMax != nil && *guideline.FrequencyMonthsMax > guideline.EffectiveFrequencyMonths() {
		latest = fromDate.AddDate(0, *guideline.FrequencyMonthsMax, 0)
	}
	return DueWindow{Earliest: earliest, Latest: latest}
}
