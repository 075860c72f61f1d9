package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"petcare/config"
	"petcare/models"
	"petcare/services/slots"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeAppointmentReminder = "appointment:reminder"

// ReminderPayload is the task body queued when a booking completes.
type ReminderPayload struct {
	AppointmentID     string `json:"appointmentId"`
	OwnerName         string `json:"ownerName"`
	PetName           string `json:"petName"`
	Phone             string `json:"phone"`
	PreferredDateTime string `json:"preferredDateTime"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// AsynqReminderScheduler queues follow-up tasks for booked appointments.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewAsynqReminderScheduler creates a scheduler backed by the task queue.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleReminder queues a reminder an hour out so clinic staff follow up
// by phone.
func (s *AsynqReminderScheduler) ScheduleReminder(appt models.Appointment) error {
	payload, err := json.Marshal(ReminderPayload{
		AppointmentID:     appt.ID,
		OwnerName:         appt.OwnerName,
		PetName:           appt.PetName,
		Phone:             appt.Phone,
		PreferredDateTime: appt.PreferredDateTime,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeAppointmentReminder, payload)
	_, err = s.client.Enqueue(task, asynq.ProcessIn(time.Hour))
	return err
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker() {
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
	mux.HandleFunc(TypeAppointmentReminder, handleReminderTask)

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(ctx context.Context, task *asynq.Task) error {
	var p ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		zap.L().Error("invalid reminder payload", zap.Error(err))
		return err
	}

	zap.L().Info("appointment reminder due",
		zap.String("appointmentId", p.AppointmentID),
		zap.String("ownerName", p.OwnerName),
		zap.String("petName", p.PetName),
		zap.String("phone", p.Phone),
		zap.String("preferredDateTime", p.PreferredDateTime))
	return nil
}

// InitHoldSweeper periodically reclaims expired holds for managers that keep
// them in process memory. Redis-backed holds expire via key TTL on their
// own, and lazy expiry keeps either backend correct without this sweep.
func InitHoldSweeper(sweeper slots.Sweeper, interval time.Duration) {
	if sweeper == nil {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if n := sweeper.SweepExpired(); n > 0 {
				zap.L().Debug("reclaimed expired slot holds", zap.Int("count", n))
			}
		}
	}()
}
