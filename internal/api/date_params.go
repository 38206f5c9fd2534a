package api

import (
	"errors"
	"strings"
	"time"
)

const maxDayRangeDays = 366

var errInvalidDayRange = errors.New("invalid day range")

// parseDayParam reads a YYYY-MM-DD calendar date. The result is UTC midnight
// of that date, independent of the server timezone.
func parseDayParam(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("date is required")
	}
	return time.Parse("2006-01-02", raw)
}

func parseOptionalDayQuery(raw string, today time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return today, nil
	}
	return parseDayParam(raw)
}

func parseMonthQuery(raw string, today time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01", raw)
}

func parseDayRangeQuery(rawFrom string, rawTo string) (time.Time, time.Time, error) {
	from, err := parseDayParam(rawFrom)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDayParam(rawTo)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) || to.Sub(from) > maxDayRangeDays*24*time.Hour {
		return time.Time{}, time.Time{}, errInvalidDayRange
	}
	return from, to, nil
}
