package cycle

import (
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

type DayKind string

const (
	DayKindPeriod     DayKind = "period"
	DayKindPrediction DayKind = "prediction"
	DayKindNormal     DayKind = "normal"
)

type CalendarDayState struct {
	Date       time.Time `json:"-"`
	DateString string    `json:"date"`
	Day        int       `json:"day"`
	InMonth    bool      `json:"in_month"`
	IsToday    bool      `json:"is_today"`
	Kind       DayKind   `json:"kind"`
	HasData    bool      `json:"has_data"`
}

// IsPeriodDay reports whether day falls inside a predicted period window.
// Predictions are future-only: days before today are never predicted.
func IsPeriodDay(day time.Time, anchor time.Time, profile models.CycleProfile, today time.Time) bool {
	if anchor.IsZero() || profile.CycleLength <= 0 {
		return false
	}
	if CalendarDay(day).Before(CalendarDay(today)) {
		return false
	}

	diffDays := DaysBetween(anchor, day)
	if diffDays < 0 {
		return false
	}
	return diffDays%profile.CycleLength < profile.PeriodLength
}

func ClassifyDay(day time.Time, entry models.DailyLog, hasEntry bool, anchor time.Time, profile models.CycleProfile, today time.Time) DayKind {
	if hasEntry && entry.HasFlow() {
		return DayKindPeriod
	}
	if IsPeriodDay(day, anchor, profile, today) {
		return DayKindPrediction
	}
	return DayKindNormal
}

// MonthGridBounds returns the first and last day of the Sunday-first grid of
// whole weeks covering the month of value.
func MonthGridBounds(value time.Time) (time.Time, time.Time) {
	first := CalendarDay(value)
	first = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := first.AddDate(0, 1, -1)
	return first.AddDate(0, 0, -int(first.Weekday())), monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))
}

// BuildMonth lays out the month grid of monthStart. See MonthGridBounds.
func BuildMonth(monthStart time.Time, logs []models.DailyLog, anchor time.Time, profile models.CycleProfile, today time.Time) []CalendarDayState {
	month := CalendarDay(monthStart).Month()
	gridStart, gridEnd := MonthGridBounds(monthStart)

	latestLogByDate := make(map[string]models.DailyLog, len(logs))
	for _, entry := range logs {
		key := DayKey(entry.Date)
		existing, exists := latestLogByDate[key]
		if !exists || entry.UpdatedAt.After(existing.UpdatedAt) || (entry.UpdatedAt.Equal(existing.UpdatedAt) && entry.ID > existing.ID) {
			latestLogByDate[key] = entry
		}
	}

	todayKey := DayKey(today)
	days := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayLayout)
		entry, hasEntry := latestLogByDate[key]
		days = append(days, CalendarDayState{
			Date:       day,
			DateString: key,
			Day:        day.Day(),
			InMonth:    day.Month() == month,
			IsToday:    key == todayKey,
			Kind:       ClassifyDay(day, entry, hasEntry, anchor, profile, today),
			HasData:    hasEntry && entry.HasData(),
		})
	}
	return days
}
