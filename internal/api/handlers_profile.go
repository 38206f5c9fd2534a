package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/selene/internal/models"
	"github.com/terraincognita07/selene/internal/services"
)

type profilePayload struct {
	CycleLength          *int    `json:"cycle_length"`
	PeriodLength         *int    `json:"period_length"`
	Language             *string `json:"language"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	TelegramChatID       *int64  `json:"telegram_chat_id"`
}

type profileResponse struct {
	CycleLength          int    `json:"cycle_length"`
	PeriodLength         int    `json:"period_length"`
	Language             string `json:"language"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	TelegramChatID       int64  `json:"telegram_chat_id"`
}

func newProfileResponse(profile models.CycleProfile) profileResponse {
	return profileResponse{
		CycleLength:          profile.CycleLength,
		PeriodLength:         profile.PeriodLength,
		Language:             profile.Language,
		NotificationsEnabled: profile.NotificationsEnabled,
		TelegramChatID:       profile.TelegramChatID,
	}
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := handler.profiles.Load(userID)
	if err != nil {
		return internalError(c, err, "failed to load profile")
	}
	return c.JSON(newProfileResponse(profile))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := profilePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	profile, err := handler.profiles.Update(userID, services.ProfileInput{
		CycleLength:          payload.CycleLength,
		PeriodLength:         payload.PeriodLength,
		Language:             payload.Language,
		NotificationsEnabled: payload.NotificationsEnabled,
		TelegramChatID:       payload.TelegramChatID,
	})
	switch {
	case errors.Is(err, services.ErrProfileCycleLengthOutOfRange):
		return apiError(c, fiber.StatusBadRequest, "cycle length must be between 21 and 35")
	case errors.Is(err, services.ErrProfilePeriodLengthOutOfRange):
		return apiError(c, fiber.StatusBadRequest, "period length must be between 3 and 7")
	case errors.Is(err, services.ErrProfileLanguageUnsupported):
		return apiError(c, fiber.StatusBadRequest, "unsupported language")
	case errors.Is(err, services.ErrProfileTelegramChatInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid telegram chat id")
	case err != nil:
		return internalError(c, err, "failed to save profile")
	}
	return c.JSON(newProfileResponse(profile))
}
