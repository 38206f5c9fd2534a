package cycle

import (
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

func makeLog(date string, flow string) models.DailyLog {
	return models.DailyLog{
		Date: mustParseDay(date),
		Flow: flow,
	}
}

func mustParseDay(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return parsed
}

func defaultProfile() models.CycleProfile {
	return models.DefaultCycleProfile(1)
}
