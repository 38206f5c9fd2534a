package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/terraincognita07/selene/internal/cycle"
	"github.com/terraincognita07/selene/internal/logger"
	"github.com/terraincognita07/selene/internal/models"
)

var ErrReminderProfilesLoadFailed = errors.New("load reminder profiles failed")

type ReminderProfileRepository interface {
	ListNotifiable() ([]models.CycleProfile, error)
	MarkNotified(userID uint, day time.Time) error
}

type ReminderLogReader interface {
	FetchRecentLogs(userID uint, today time.Time) ([]models.DailyLog, error)
}

type Notifier interface {
	Notify(chatID int64, message string) error
}

type Translator interface {
	Translate(language string, key string) string
	Translatef(language string, key string, args ...any) string
}

type ReminderService struct {
	profiles   ReminderProfileRepository
	logs       ReminderLogReader
	notifier   Notifier
	translator Translator
	location   *time.Location
	now        func() time.Time
}

func NewReminderService(profiles ReminderProfileRepository, logs ReminderLogReader, notifier Notifier, translator Translator, location *time.Location) *ReminderService {
	if location == nil {
		location = time.UTC
	}
	return &ReminderService{
		profiles:   profiles,
		logs:       logs,
		notifier:   notifier,
		translator: translator,
		location:   location,
		now:        time.Now,
	}
}

// Run sends at most one reminder per profile per day and returns how many
// were delivered. Failures for a single profile are logged and skipped.
func (service *ReminderService) Run(ctx context.Context) (int, error) {
	profiles, err := service.profiles.ListNotifiable()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReminderProfilesLoadFailed, err)
	}

	today := cycle.CalendarDay(cycle.DateAtLocation(service.now(), service.location))
	sent := 0
	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		entry := logger.Log.WithFields(logrus.Fields{"user_id": profile.UserID})
		if profile.LastNotifiedOn != nil && cycle.SameDay(*profile.LastNotifiedOn, today) {
			continue
		}

		logs, err := service.logs.FetchRecentLogs(profile.UserID, today)
		if err != nil {
			entry.WithError(err).Warn("reminders: fetch logs failed")
			continue
		}

		resolved := ResolveProfile(profile)
		anchor, _ := cycle.FindLastPeriodStart(logs, today)
		status := cycle.ComputeCycleStatus(anchor, len(logs) > 0, resolved, today)
		kind, ok := cycle.ReminderFor(status)
		if !ok {
			continue
		}

		message := ReminderMessage(service.translator, resolved.Language, kind, status)
		if err := service.notifier.Notify(profile.TelegramChatID, message); err != nil {
			entry.WithError(err).Warn("reminders: send failed")
			continue
		}
		if err := service.profiles.MarkNotified(profile.UserID, today); err != nil {
			entry.WithError(err).Warn("reminders: mark notified failed")
		}

		entry.WithField("kind", kind).Info("reminders: sent")
		sent++
	}
	return sent, nil
}

func ReminderMessage(translator Translator, language string, kind cycle.ReminderKind, status cycle.Status) string {
	if kind == cycle.ReminderOverdue {
		return translator.Translatef(language, "reminder.overdue", -*status.DaysUntilNext)
	}

	date := status.NextPeriodDate.Format(translator.Translate(language, "date.format"))
	if *status.DaysUntilNext == 0 {
		return translator.Translatef(language, "reminder.today", date)
	}
	return translator.Translatef(language, "reminder.upcoming", *status.DaysUntilNext, date)
}
