package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/selene/internal/cycle"
	"github.com/terraincognita07/selene/internal/logger"
)

type cycleStatusResponse struct {
	Date            string              `json:"date"`
	CurrentDay      *int                `json:"current_day"`
	Phase           cycle.Phase         `json:"phase"`
	DaysUntilNext   *int                `json:"days_until_next"`
	NextPeriodDate  *string             `json:"next_period_date"`
	LastPeriodStart *string             `json:"last_period_start"`
	Reminder        *cycle.ReminderKind `json:"reminder"`
	Degraded        bool                `json:"degraded,omitempty"`
}

type calendarResponse struct {
	Month    string                   `json:"month"`
	Days     []cycle.CalendarDayState `json:"days"`
	Degraded bool                     `json:"degraded,omitempty"`
}

func newCycleStatusResponse(asOf time.Time, status cycle.Status) cycleStatusResponse {
	response := cycleStatusResponse{
		Date:            cycle.DayKey(asOf),
		CurrentDay:      status.CurrentDay,
		Phase:           status.Phase,
		DaysUntilNext:   status.DaysUntilNext,
		NextPeriodDate:  optionalDayKey(status.NextPeriodDate),
		LastPeriodStart: optionalDayKey(status.LastPeriodStart),
	}
	if kind, ok := cycle.ReminderFor(status); ok {
		response.Reminder = &kind
	}
	return response
}

func optionalDayKey(value *time.Time) *string {
	if value == nil {
		return nil
	}
	key := cycle.DayKey(*value)
	return &key
}

// CycleStatus answers with a status even when stored data could not be read;
// the response is then flagged as degraded.
func (handler *Handler) CycleStatus(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	asOf, err := parseOptionalDayQuery(c.Query("date"), handler.today())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	status, err := handler.cycles.Status(userID, asOf)
	response := newCycleStatusResponse(asOf, status)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("cycle status computed from fallback data")
		response.Degraded = true
	}
	return c.JSON(response)
}

func (handler *Handler) CycleCalendar(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	today := handler.today()
	month, err := parseMonthQuery(c.Query("month"), today)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}

	days, err := handler.cycles.CalendarMonth(userID, month, today)
	response := calendarResponse{
		Month: month.Format("2006-01"),
		Days:  days,
	}
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("calendar built from fallback data")
		response.Degraded = true
	}
	return c.JSON(response)
}
