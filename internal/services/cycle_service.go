package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/selene/internal/cycle"
	"github.com/terraincognita07/selene/internal/models"
)

var ErrCycleDataUnavailable = errors.New("cycle data unavailable")

type CycleLogReader interface {
	FetchRecentLogs(userID uint, today time.Time) ([]models.DailyLog, error)
	FetchLogsForRange(userID uint, from time.Time, to time.Time) ([]models.DailyLog, error)
}

type CycleProfileReader interface {
	Load(userID uint) (models.CycleProfile, error)
}

type CycleService struct {
	logs     CycleLogReader
	profiles CycleProfileReader
}

func NewCycleService(logs CycleLogReader, profiles CycleProfileReader) *CycleService {
	return &CycleService{
		logs:     logs,
		profiles: profiles,
	}
}

// Status computes the cycle status as of asOf. When logs or the profile cannot
// be read it still returns a status built from empty logs or the default
// profile, together with an error wrapping ErrCycleDataUnavailable.
func (service *CycleService) Status(userID uint, asOf time.Time) (cycle.Status, error) {
	logs, profile, err := service.load(userID, asOf)
	anchor, _ := cycle.FindLastPeriodStart(logs, asOf)
	return cycle.ComputeCycleStatus(anchor, len(logs) > 0, profile, asOf), err
}

// CalendarMonth builds the grid for the month containing month. Predictions
// use the period start found as of today.
func (service *CycleService) CalendarMonth(userID uint, month time.Time, today time.Time) ([]cycle.CalendarDayState, error) {
	recent, profile, loadErr := service.load(userID, today)
	anchor, _ := cycle.FindLastPeriodStart(recent, today)

	gridStart, gridEnd := cycle.MonthGridBounds(month)
	monthLogs, err := service.logs.FetchLogsForRange(userID, gridStart, gridEnd)
	if err != nil {
		monthLogs = nil
		loadErr = errors.Join(loadErr, ErrCycleDataUnavailable, err)
	}
	return cycle.BuildMonth(month, monthLogs, anchor, profile, today), loadErr
}

func (service *CycleService) load(userID uint, asOf time.Time) ([]models.DailyLog, models.CycleProfile, error) {
	var errs []error

	logs, err := service.logs.FetchRecentLogs(userID, asOf)
	if err != nil {
		logs = nil
		errs = append(errs, err)
	}

	profile, err := service.profiles.Load(userID)
	if err != nil {
		profile = models.DefaultCycleProfile(userID)
		errs = append(errs, err)
	}
	profile = ResolveProfile(profile)

	if len(errs) > 0 {
		return logs, profile, errors.Join(append([]error{ErrCycleDataUnavailable}, errs...)...)
	}
	return logs, profile, nil
}
