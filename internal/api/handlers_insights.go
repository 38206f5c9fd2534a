package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/selene/internal/cycle"
	"github.com/terraincognita07/selene/internal/services"
)

type cycleLengthResponse struct {
	PeriodStart string `json:"period_start"`
	Days        int    `json:"days"`
}

type moodPointResponse struct {
	Date  string `json:"date"`
	Mood  string `json:"mood"`
	Score int    `json:"score"`
}

type insightsResponse struct {
	CycleHistory       []cycleLengthResponse       `json:"cycle_history"`
	LoggedCycles       int                         `json:"logged_cycles"`
	AverageCycleLength float64                     `json:"average_cycle_length"`
	TopSymptoms        []services.SymptomFrequency `json:"top_symptoms"`
	MoodSeries         []moodPointResponse         `json:"mood_series"`
	AverageMood        float64                     `json:"average_mood"`
}

func newInsightsResponse(insights services.Insights) insightsResponse {
	response := insightsResponse{
		CycleHistory:       make([]cycleLengthResponse, 0, len(insights.CycleHistory)),
		LoggedCycles:       insights.LoggedCycles,
		AverageCycleLength: insights.AverageCycleLength,
		TopSymptoms:        insights.TopSymptoms,
		MoodSeries:         make([]moodPointResponse, 0, len(insights.MoodSeries)),
		AverageMood:        insights.AverageMood,
	}
	for _, length := range insights.CycleHistory {
		response.CycleHistory = append(response.CycleHistory, cycleLengthResponse{
			PeriodStart: cycle.DayKey(length.PeriodStart),
			Days:        length.Days,
		})
	}
	for _, point := range insights.MoodSeries {
		response.MoodSeries = append(response.MoodSeries, moodPointResponse{
			Date:  cycle.DayKey(point.Date),
			Mood:  point.Mood,
			Score: point.Score,
		})
	}
	return response
}

func (handler *Handler) Insights(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	insights, err := handler.insights.Build(userID)
	if err != nil {
		return internalError(c, err, "failed to build insights")
	}
	return c.JSON(newInsightsResponse(insights))
}
