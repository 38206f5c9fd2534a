package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/terraincognita07/selene/internal/logger"
)

const reminderJobTimeout = 5 * time.Minute

type ReminderRunner interface {
	Run(ctx context.Context) (int, error)
}

type Scheduler struct {
	engine       *cron.Cron
	reminders    ReminderRunner
	reminderSpec string
}

func New(reminders ReminderRunner, reminderSpec string, location *time.Location) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	return &Scheduler{
		engine:       cron.New(cron.WithLocation(location)),
		reminders:    reminders,
		reminderSpec: reminderSpec,
	}
}

func (scheduler *Scheduler) Start() error {
	if _, err := scheduler.engine.AddFunc(scheduler.reminderSpec, scheduler.runReminders); err != nil {
		return fmt.Errorf("add reminder job %q: %w", scheduler.reminderSpec, err)
	}
	scheduler.engine.Start()
	logger.Log.WithField("spec", scheduler.reminderSpec).Info("scheduler: started")
	return nil
}

// Stop waits for a running job to finish.
func (scheduler *Scheduler) Stop() {
	<-scheduler.engine.Stop().Done()
	logger.Log.Info("scheduler: stopped")
}

func (scheduler *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), reminderJobTimeout)
	defer cancel()

	sent, err := scheduler.reminders.Run(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("scheduler: reminder run failed")
		return
	}
	logger.Log.WithField("sent", sent).Info("scheduler: reminder run finished")
}
