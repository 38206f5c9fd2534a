package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/selene/internal/cycle"
	"github.com/terraincognita07/selene/internal/models"
)

// RecentLogWindowDays bounds the history used to resolve the current cycle.
const RecentLogWindowDays = 90

var (
	ErrDayEntryLoadFailed = errors.New("load day entry failed")
	ErrDayEntrySaveFailed = errors.New("save day entry failed")
	ErrDeleteDayFailed    = errors.New("delete day failed")
	ErrClearLogsFailed    = errors.New("clear logs failed")
	ErrLogsFetchFailed    = errors.New("fetch logs failed")
	ErrInvalidDayRange    = errors.New("invalid day range")
)

type DayLogRepository interface {
	ListByUser(userID uint) ([]models.DailyLog, error)
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error)
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error)
	Upsert(entry *models.DailyLog) error
	DeleteByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (int64, error)
	DeleteAllByUser(userID uint) (int64, error)
}

type DayService struct {
	logs DayLogRepository
}

func NewDayService(logs DayLogRepository) *DayService {
	return &DayService{logs: logs}
}

func DayRange(value time.Time) (time.Time, time.Time) {
	start := cycle.CalendarDay(value)
	return start, start.AddDate(0, 0, 1)
}

func (service *DayService) FetchLogsForRange(userID uint, from time.Time, to time.Time) ([]models.DailyLog, error) {
	fromStart, _ := DayRange(from)
	_, toEnd := DayRange(to)
	if !fromStart.Before(toEnd) {
		return nil, ErrInvalidDayRange
	}
	logs, err := service.logs.ListByUserRange(userID, &fromStart, &toEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLogsFetchFailed, err)
	}
	return logs, nil
}

// FetchRecentLogs returns the logs of the RecentLogWindowDays days ending on today.
func (service *DayService) FetchRecentLogs(userID uint, today time.Time) ([]models.DailyLog, error) {
	return service.FetchLogsForRange(userID, cycle.CalendarDay(today).AddDate(0, 0, -(RecentLogWindowDays-1)), today)
}

func (service *DayService) FetchLogsForMonth(userID uint, year int, month time.Month) ([]models.DailyLog, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return service.FetchLogsForRange(userID, monthStart, monthStart.AddDate(0, 1, -1))
}

func (service *DayService) FetchAllLogs(userID uint) ([]models.DailyLog, error) {
	logs, err := service.logs.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLogsFetchFailed, err)
	}
	return logs, nil
}

// FetchLogByDate returns the stored entry for day, or an empty no-flow entry
// when nothing was logged.
func (service *DayService) FetchLogByDate(userID uint, day time.Time) (models.DailyLog, bool, error) {
	dayStart, dayEnd := DayRange(day)
	entry, found, err := service.logs.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.DailyLog{}, false, fmt.Errorf("%w: %w", ErrDayEntryLoadFailed, err)
	}
	if !found {
		return models.DailyLog{
			UserID:   userID,
			Date:     dayStart,
			Flow:     models.FlowNone,
			Symptoms: []string{},
		}, false, nil
	}
	return entry, true, nil
}

func (service *DayService) UpsertDay(userID uint, day time.Time, input DayEntryInput) (models.DailyLog, error) {
	normalized, err := NormalizeDayEntryInput(input)
	if err != nil {
		return models.DailyLog{}, err
	}

	entry := models.DailyLog{
		UserID:   userID,
		Date:     cycle.CalendarDay(day),
		Flow:     normalized.Flow,
		Symptoms: normalized.Symptoms,
		Mood:     normalized.Mood,
		Notes:    normalized.Notes,
	}
	if err := service.logs.Upsert(&entry); err != nil {
		return models.DailyLog{}, fmt.Errorf("%w: %w", ErrDayEntrySaveFailed, err)
	}

	stored, found, err := service.FetchLogByDate(userID, day)
	if err != nil {
		return models.DailyLog{}, err
	}
	if !found {
		return models.DailyLog{}, ErrDayEntrySaveFailed
	}
	return stored, nil
}

func (service *DayService) DeleteDay(userID uint, day time.Time) (bool, error) {
	dayStart, dayEnd := DayRange(day)
	deleted, err := service.logs.DeleteByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrDeleteDayFailed, err)
	}
	return deleted > 0, nil
}

func (service *DayService) ClearAllLogs(userID uint) (int64, error) {
	cleared, err := service.logs.DeleteAllByUser(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrClearLogsFailed, err)
	}
	return cleared, nil
}
