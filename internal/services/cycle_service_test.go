package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/selene/internal/cycle"
	"github.com/terraincognita07/selene/internal/models"
)

func newTestCycleService(repo *stubDayLogRepo, profiles *stubProfileRepo) *CycleService {
	return NewCycleService(NewDayService(repo), NewProfileService(profiles, []string{"en", "ru"}))
}

func TestCycleServiceStatus(t *testing.T) {
	repo := &stubDayLogRepo{logs: []models.DailyLog{
		flowLog(t, 1, "2025-01-01", models.FlowMedium),
		flowLog(t, 1, "2025-01-02", models.FlowMedium),
		flowLog(t, 1, "2025-01-03", models.FlowLight),
	}}
	service := newTestCycleService(repo, newStubProfileRepo())

	status, err := service.Status(1, mustParseDay(t, "2025-01-15"))
	if err != nil {
		t.Fatalf("Status() unexpected error: %v", err)
	}
	if status.CurrentDay == nil || *status.CurrentDay != 15 {
		t.Fatalf("expected cycle day 15, got %v", status.CurrentDay)
	}
	if status.Phase != cycle.PhaseOvulation {
		t.Fatalf("expected ovulation phase, got %s", status.Phase)
	}
	if status.NextPeriodDate == nil || status.NextPeriodDate.Format("2006-01-02") != "2025-01-29" {
		t.Fatalf("unexpected next period: %v", status.NextPeriodDate)
	}
}

func TestCycleServiceStatusUsesProfileLength(t *testing.T) {
	repo := &stubDayLogRepo{logs: []models.DailyLog{flowLog(t, 1, "2025-01-01", models.FlowMedium)}}
	profiles := newStubProfileRepo(models.CycleProfile{UserID: 1, CycleLength: 32, PeriodLength: 5})
	service := newTestCycleService(repo, profiles)

	status, err := service.Status(1, mustParseDay(t, "2025-01-15"))
	if err != nil {
		t.Fatalf("Status() unexpected error: %v", err)
	}
	if status.NextPeriodDate == nil || status.NextPeriodDate.Format("2006-01-02") != "2025-02-02" {
		t.Fatalf("unexpected next period: %v", status.NextPeriodDate)
	}
}

func TestCycleServiceStatusWithLogsButNoFlow(t *testing.T) {
	repo := &stubDayLogRepo{logs: []models.DailyLog{flowLog(t, 1, "2025-01-10", models.FlowNone)}}
	service := newTestCycleService(repo, newStubProfileRepo())

	status, err := service.Status(1, mustParseDay(t, "2025-01-15"))
	if err != nil {
		t.Fatalf("Status() unexpected error: %v", err)
	}
	if status.Phase != cycle.PhaseTracking || status.HasAnchor() {
		t.Fatalf("expected tracking status without anchor, got %#v", status)
	}
}

func TestCycleServiceStatusFallsBackOnFetchError(t *testing.T) {
	repo := &stubDayLogRepo{err: errStubStorage}
	service := newTestCycleService(repo, newStubProfileRepo())

	status, err := service.Status(1, mustParseDay(t, "2025-01-15"))
	if !errors.Is(err, ErrCycleDataUnavailable) || !errors.Is(err, errStubStorage) {
		t.Fatalf("expected ErrCycleDataUnavailable wrapping storage error, got %v", err)
	}
	if status.Phase != cycle.PhaseNewCycle {
		t.Fatalf("expected new_cycle fallback status, got %s", status.Phase)
	}
}

func TestCycleServiceCalendarMonth(t *testing.T) {
	repo := &stubDayLogRepo{logs: []models.DailyLog{
		flowLog(t, 1, "2025-02-01", models.FlowHeavy),
		flowLog(t, 1, "2025-02-02", models.FlowMedium),
	}}
	service := newTestCycleService(repo, newStubProfileRepo())

	days, err := service.CalendarMonth(1, mustParseDay(t, "2025-02-14"), mustParseDay(t, "2025-02-10"))
	if err != nil {
		t.Fatalf("CalendarMonth() unexpected error: %v", err)
	}
	if len(days) != 35 {
		t.Fatalf("expected 35 grid days, got %d", len(days))
	}

	kinds := map[string]cycle.DayKind{}
	for _, day := range days {
		kinds[day.DateString] = day.Kind
	}
	if kinds["2025-02-01"] != cycle.DayKindPeriod || kinds["2025-02-02"] != cycle.DayKindPeriod {
		t.Fatalf("expected logged flow days to be period days, got %v / %v", kinds["2025-02-01"], kinds["2025-02-02"])
	}
	if kinds["2025-03-01"] != cycle.DayKindPrediction {
		t.Fatalf("expected 2025-03-01 to be predicted, got %v", kinds["2025-03-01"])
	}
	if kinds["2025-02-05"] != cycle.DayKindNormal {
		t.Fatalf("expected past unlogged day to be normal, got %v", kinds["2025-02-05"])
	}
}
