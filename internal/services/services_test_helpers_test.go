package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/selene/internal/cycle"
	"github.com/terraincognita07/selene/internal/models"
)

var errStubStorage = errors.New("storage unavailable")

type stubDayLogRepo struct {
	logs     []models.DailyLog
	err      error
	lastFrom *time.Time
	lastTo   *time.Time
	nextID   uint
}

func (stub *stubDayLogRepo) ListByUser(userID uint) ([]models.DailyLog, error) {
	return stub.ListByUserRange(userID, nil, nil)
}

func (stub *stubDayLogRepo) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error) {
	stub.lastFrom, stub.lastTo = fromStart, toEnd
	if stub.err != nil {
		return nil, stub.err
	}
	result := make([]models.DailyLog, 0)
	for _, entry := range stub.logs {
		if entry.UserID != userID {
			continue
		}
		if fromStart != nil && entry.Date.Before(*fromStart) {
			continue
		}
		if toEnd != nil && !entry.Date.Before(*toEnd) {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (stub *stubDayLogRepo) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error) {
	logs, err := stub.ListByUserRange(userID, &dayStart, &dayEnd)
	if err != nil || len(logs) == 0 {
		return models.DailyLog{}, false, err
	}
	return logs[0], true, nil
}

func (stub *stubDayLogRepo) Upsert(entry *models.DailyLog) error {
	if stub.err != nil {
		return stub.err
	}
	for index, existing := range stub.logs {
		if existing.UserID == entry.UserID && existing.Date.Equal(entry.Date) {
			entry.ID = existing.ID
			stub.logs[index] = *entry
			return nil
		}
	}
	stub.nextID++
	entry.ID = stub.nextID
	stub.logs = append(stub.logs, *entry)
	return nil
}

func (stub *stubDayLogRepo) DeleteByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (int64, error) {
	if stub.err != nil {
		return 0, stub.err
	}
	kept := stub.logs[:0]
	var deleted int64
	for _, entry := range stub.logs {
		if entry.UserID == userID && !entry.Date.Before(dayStart) && entry.Date.Before(dayEnd) {
			deleted++
			continue
		}
		kept = append(kept, entry)
	}
	stub.logs = kept
	return deleted, nil
}

func (stub *stubDayLogRepo) DeleteAllByUser(userID uint) (int64, error) {
	return stub.DeleteByUserAndDayRange(userID, time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC))
}

type stubProfileRepo struct {
	profiles map[uint]models.CycleProfile
	err      error
	saved    int
	notified map[uint]time.Time
}

func newStubProfileRepo(profiles ...models.CycleProfile) *stubProfileRepo {
	stub := &stubProfileRepo{
		profiles: map[uint]models.CycleProfile{},
		notified: map[uint]time.Time{},
	}
	for _, profile := range profiles {
		stub.profiles[profile.UserID] = profile
	}
	return stub
}

func (stub *stubProfileRepo) FindByUserID(userID uint) (models.CycleProfile, bool, error) {
	if stub.err != nil {
		return models.CycleProfile{}, false, stub.err
	}
	profile, ok := stub.profiles[userID]
	return profile, ok, nil
}

func (stub *stubProfileRepo) Save(profile *models.CycleProfile) error {
	if stub.err != nil {
		return stub.err
	}
	stub.saved++
	stub.profiles[profile.UserID] = *profile
	return nil
}

func (stub *stubProfileRepo) ListNotifiable() ([]models.CycleProfile, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	result := make([]models.CycleProfile, 0)
	for _, profile := range stub.profiles {
		if profile.NotificationsEnabled && profile.TelegramChatID != 0 {
			result = append(result, profile)
		}
	}
	return result, nil
}

func (stub *stubProfileRepo) MarkNotified(userID uint, day time.Time) error {
	stub.notified[userID] = day
	profile := stub.profiles[userID]
	profile.LastNotifiedOn = &day
	stub.profiles[userID] = profile
	return nil
}

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return value
}

func flowLog(t *testing.T, userID uint, raw string, flow string) models.DailyLog {
	t.Helper()
	return models.DailyLog{UserID: userID, Date: cycle.CalendarDay(mustParseDay(t, raw)), Flow: flow}
}
