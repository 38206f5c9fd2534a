package cycle

import (
	"iter"
	"sort"
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

type CycleLength struct {
	PeriodStart time.Time `json:"period_start"`
	Days        int       `json:"days"`
}

// PeriodStarts returns the first day of every period block in ascending
// order. A calendar day without a log counts as a day without flow.
func PeriodStarts(logs []models.DailyLog) []time.Time {
	flowDays := make([]time.Time, 0, len(logs))
	seen := make(map[string]bool, len(logs))
	for _, entry := range logs {
		if !entry.HasFlow() {
			continue
		}
		day := CalendarDay(entry.Date)
		key := DayKey(day)
		if seen[key] {
			continue
		}
		seen[key] = true
		flowDays = append(flowDays, day)
	}
	sort.Slice(flowDays, func(i, j int) bool {
		return flowDays[i].Before(flowDays[j])
	})

	starts := make([]time.Time, 0)
	for index, day := range flowDays {
		if index > 0 && DaysBetween(flowDays[index-1], day) == 1 {
			continue
		}
		starts = append(starts, day)
	}
	return starts
}

// DeriveCycleHistory yields the length of every completed cycle, measured
// from one period start to the next. The open cycle after the latest start
// is not yielded.
func DeriveCycleHistory(logs []models.DailyLog) iter.Seq[CycleLength] {
	return func(yield func(CycleLength) bool) {
		starts := PeriodStarts(logs)
		for index := 0; index+1 < len(starts); index++ {
			length := CycleLength{
				PeriodStart: starts[index],
				Days:        DaysBetween(starts[index], starts[index+1]),
			}
			if !yield(length) {
				return
			}
		}
	}
}
