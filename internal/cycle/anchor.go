package cycle

import (
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

// FindLastPeriodStart returns the first day of the most recent period block
// on or before asOf. A block is a run of consecutive calendar days with flow;
// a day without a log ends the block even if flow resumes the day after.
func FindLastPeriodStart(logs []models.DailyLog, asOf time.Time) (time.Time, bool) {
	today := CalendarDay(asOf)

	flowDays := make(map[string]bool, len(logs))
	latest := time.Time{}
	for _, entry := range logs {
		if !entry.HasFlow() {
			continue
		}
		day := CalendarDay(entry.Date)
		if day.After(today) {
			continue
		}
		flowDays[DayKey(day)] = true
		if latest.IsZero() || day.After(latest) {
			latest = day
		}
	}
	if latest.IsZero() {
		return time.Time{}, false
	}

	start := latest
	for flowDays[DayKey(addDays(start, -1))] {
		start = addDays(start, -1)
	}
	return start, true
}
