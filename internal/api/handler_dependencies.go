package api

import (
	"gorm.io/gorm"

	"github.com/terraincognita07/selene/internal/db"
	"github.com/terraincognita07/selene/internal/services"
)

func (handler *Handler) withDependencies(database *gorm.DB, languages []string) *Handler {
	repositories := db.NewRepositories(database)
	handler.days = services.NewDayService(repositories.DailyLogs)
	handler.profiles = services.NewProfileService(repositories.Profiles, languages)
	handler.cycles = services.NewCycleService(handler.days, handler.profiles)
	handler.insights = services.NewInsightsService(handler.days)
	return handler
}
