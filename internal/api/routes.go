package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api", handler.AuthRequired)

	days := api.Group("/days")
	days.Get("", handler.ListDays)
	days.Delete("", handler.ClearDays)
	days.Get("/:date", handler.GetDay)
	days.Put("/:date", handler.UpsertDay)
	days.Delete("/:date", handler.DeleteDay)

	api.Get("/profile", handler.GetProfile)
	api.Put("/profile", handler.UpdateProfile)

	cycle := api.Group("/cycle")
	cycle.Get("/status", handler.CycleStatus)
	cycle.Get("/calendar", handler.CycleCalendar)

	api.Get("/insights", handler.Insights)
}
