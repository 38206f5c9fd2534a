package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/selene/internal/cycle"
	"github.com/terraincognita07/selene/internal/models"
	"github.com/terraincognita07/selene/internal/services"
)

type dayPayload struct {
	Flow     string   `json:"flow"`
	Symptoms []string `json:"symptoms"`
	Mood     string   `json:"mood"`
	Notes    string   `json:"notes"`
}

type dayResponse struct {
	Date      string     `json:"date"`
	Flow      string     `json:"flow"`
	Symptoms  []string   `json:"symptoms"`
	Mood      string     `json:"mood"`
	Notes     string     `json:"notes"`
	Logged    bool       `json:"logged"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func newDayResponse(entry models.DailyLog, logged bool) dayResponse {
	symptoms := entry.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	response := dayResponse{
		Date:     cycle.DayKey(entry.Date),
		Flow:     entry.Flow,
		Symptoms: symptoms,
		Mood:     entry.Mood,
		Notes:    entry.Notes,
		Logged:   logged,
	}
	if response.Flow == "" {
		response.Flow = models.FlowNone
	}
	if logged && !entry.UpdatedAt.IsZero() {
		updatedAt := entry.UpdatedAt
		response.UpdatedAt = &updatedAt
	}
	return response
}

func (handler *Handler) ListDays(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var (
		logs []models.DailyLog
		err  error
	)
	if c.Query("from") != "" || c.Query("to") != "" {
		from, to, parseErr := parseDayRangeQuery(c.Query("from"), c.Query("to"))
		if parseErr != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid range")
		}
		logs, err = handler.days.FetchLogsForRange(userID, from, to)
	} else {
		month, parseErr := parseMonthQuery(c.Query("month"), handler.today())
		if parseErr != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid month")
		}
		logs, err = handler.days.FetchLogsForMonth(userID, month.Year(), month.Month())
	}
	if err != nil {
		return internalError(c, err, "failed to fetch logs")
	}

	response := make([]dayResponse, 0, len(logs))
	for _, entry := range logs {
		response = append(response, newDayResponse(entry, true))
	}
	return c.JSON(response)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, found, err := handler.days.FetchLogByDate(userID, day)
	if err != nil {
		return internalError(c, err, "failed to load day")
	}
	return c.JSON(newDayResponse(entry, found))
}

func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := dayPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.days.UpsertDay(userID, day, services.DayEntryInput{
		Flow:     payload.Flow,
		Symptoms: payload.Symptoms,
		Mood:     payload.Mood,
		Notes:    payload.Notes,
	})
	switch {
	case errors.Is(err, services.ErrInvalidDayFlow):
		return apiError(c, fiber.StatusBadRequest, "invalid flow value")
	case errors.Is(err, services.ErrInvalidMood):
		return apiError(c, fiber.StatusBadRequest, "invalid mood")
	case errors.Is(err, services.ErrInvalidDaySymptom):
		return apiError(c, fiber.StatusBadRequest, "invalid symptoms")
	case err != nil:
		return internalError(c, err, "failed to save day")
	}
	return c.JSON(newDayResponse(entry, true))
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if _, err := handler.days.DeleteDay(userID, day); err != nil {
		return internalError(c, err, "failed to delete day")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ClearDays(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	deleted, err := handler.days.ClearAllLogs(userID)
	if err != nil {
		return internalError(c, err, "failed to clear logs")
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
