package cron

import (
	"context"
	"time"

	"consultorio/config"
	"consultorio/models"
	"consultorio/services/tasks"
	"consultorio/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// reminderLeadTime is how far before the appointment the email fires.
const reminderLeadTime = 24 * time.Hour

// AsynqReminderScheduler enqueues delayed reminder tasks on the Redis queue.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Now    func() time.Time
}

func NewReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})
	return &AsynqReminderScheduler{Client: client, Now: time.Now}
}

func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, email, patientName, professionalName string, start time.Time) error {
	fireAt := start.Add(-reminderLeadTime)
	if !fireAt.After(s.Now()) {
		// Appointment is less than a day away; a reminder would arrive late.
		return nil
	}

	payload := models.ReminderPayload{
		Email:            email,
		PatientName:      patientName,
		ProfessionalName: professionalName,
		Start:            start.UTC().Format(time.RFC3339),
	}

	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}

	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		utils.GetLogger().Error("Failed to enqueue reminder task",
			zap.Error(err), zap.String("email", email), zap.Time("start", start))
		return err
	}
	return nil
}
