package cron

import (
	"context"
	"encoding/json"
	"time"

	"lavellh/config"
	"lavellh/models"
	"lavellh/services/booking"
	"lavellh/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Task types handled by the reservation worker.
const (
	TypeAutoStart   = "reservation:autostart"
	TypeDueReminder = "reservation:due_reminder"
)

type reservationTaskPayload struct {
	ReservationID string `json:"reservation_id"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// AsynqScheduler enqueues deferred reservation work onto the task queue.
type AsynqScheduler struct {
	client *asynq.Client
}

// NewAsynqScheduler creates a scheduler backed by the configured redis queue.
func NewAsynqScheduler() *AsynqScheduler {
	return &AsynqScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleAutoStart enqueues the implicit confirmed→in_progress transition at
// the reserved instant.
func (s *AsynqScheduler) ScheduleAutoStart(reservationID string, at time.Time) error {
	return s.enqueue(TypeAutoStart, reservationID, at)
}

// ScheduleDueReminder enqueues a reminder for an outstanding due payment.
func (s *AsynqScheduler) ScheduleDueReminder(reservationID string, at time.Time) error {
	return s.enqueue(TypeDueReminder, reservationID, at)
}

func (s *AsynqScheduler) enqueue(taskType, reservationID string, at time.Time) error {
	payload, err := json.Marshal(reservationTaskPayload{ReservationID: reservationID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(taskType, payload)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(at), asynq.MaxRetry(3))
	return err
}

// InitReservationWorker runs the async worker in background.
func InitReservationWorker(svc booking.ReservationService) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAutoStart, handleAutoStartTask(svc))
	mux.HandleFunc(TypeDueReminder, handleDueReminderTask(svc))

	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Fatal("reservation worker failed", zap.Error(err))
		}
	}()
}

// handleAutoStartTask moves a confirmed reservation into in_progress at its
// reserved instant. Already-advanced records are a no-op.
func handleAutoStartTask(svc booking.ReservationService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload reservationTaskPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return err
		}
		return svc.AutoStart(ctx, payload.ReservationID)
	}
}

// handleDueReminderTask surfaces an outstanding due payment. Delivery beyond
// the log is the notification system's concern.
func handleDueReminderTask(svc booking.ReservationService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload reservationTaskPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return err
		}
		res, err := svc.GetReservation(ctx, "worker", models.ActorAdmin, payload.ReservationID)
		if err != nil {
			// The record may have been removed; drop the reminder.
			utils.GetLogger().Debug("due reminder skipped",
				zap.String("reservation", payload.ReservationID), zap.Error(err))
			return nil
		}
		if res.PaymentStatus != models.PaymentDueRequested {
			return nil
		}
		utils.GetLogger().Info("due payment outstanding",
			zap.String("reservation", payload.ReservationID),
			zap.String("dueAmount", res.Pricing.DueAmount.String()))
		return nil
	}
}
