package cycle

import (
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"

	PhaseUnknown  Phase = "unknown"
	PhaseTracking Phase = "tracking"
	PhaseNewCycle Phase = "new_cycle"
)

const (
	LutealPhaseDays = 14
	// OvulationWindowDays is the number of days on each side of the
	// ovulation day that still count as the ovulation phase.
	OvulationWindowDays = 2
)

type Status struct {
	CurrentDay      *int       `json:"current_day"`
	Phase           Phase      `json:"phase"`
	DaysUntilNext   *int       `json:"days_until_next"`
	NextPeriodDate  *time.Time `json:"next_period_date"`
	LastPeriodStart *time.Time `json:"last_period_start"`
}

func (status Status) HasAnchor() bool {
	return status.LastPeriodStart != nil
}

// ComputeCycleStatus derives the cycle day, phase and next period for asOf.
// A zero anchor means no period start was found; hasLogs tells a user who has
// logged nothing apart from one whose logs contain no flow.
//
// The anchor date itself is cycle day 1. profile must carry positive lengths.
func ComputeCycleStatus(anchor time.Time, hasLogs bool, profile models.CycleProfile, asOf time.Time) Status {
	if anchor.IsZero() {
		if hasLogs {
			return Status{Phase: PhaseTracking}
		}
		return Status{Phase: PhaseNewCycle}
	}

	start := CalendarDay(anchor)
	today := CalendarDay(asOf)
	nextPeriod := addDays(start, profile.CycleLength)
	daysUntilNext := DaysBetween(today, nextPeriod)

	status := Status{
		Phase:           PhaseUnknown,
		DaysUntilNext:   &daysUntilNext,
		NextPeriodDate:  &nextPeriod,
		LastPeriodStart: &start,
	}
	if today.Before(start) {
		return status
	}

	currentDay := DaysBetween(start, today) + 1
	status.CurrentDay = &currentDay
	status.Phase = PhaseForDay(currentDay, profile.CycleLength, profile.PeriodLength)
	return status
}

func OvulationDay(cycleLength int) int {
	return cycleLength - LutealPhaseDays
}

func PhaseForDay(cycleDay int, cycleLength int, periodLength int) Phase {
	ovulationDay := OvulationDay(cycleLength)
	switch {
	case cycleDay <= periodLength:
		return PhaseMenstrual
	case cycleDay < ovulationDay-OvulationWindowDays:
		return PhaseFollicular
	case cycleDay <= ovulationDay+OvulationWindowDays:
		return PhaseOvulation
	default:
		return PhaseLuteal
	}
}
