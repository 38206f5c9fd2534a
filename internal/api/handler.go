package api

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/terraincognita07/selene/internal/cycle"
	"github.com/terraincognita07/selene/internal/services"
)

type Handler struct {
	secretKey []byte
	location  *time.Location
	now       func() time.Time

	days     *services.DayService
	profiles *services.ProfileService
	cycles   *services.CycleService
	insights *services.InsightsService
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, languages []string) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if secret == "" {
		return nil, errors.New("secret key is required")
	}
	if location == nil {
		location = time.UTC
	}

	handler := &Handler{
		secretKey: []byte(secret),
		location:  location,
		now:       time.Now,
	}
	return handler.withDependencies(database, languages), nil
}

// today is the current calendar date in the configured timezone.
func (handler *Handler) today() time.Time {
	return cycle.CalendarDay(cycle.DateAtLocation(handler.now(), handler.location))
}
