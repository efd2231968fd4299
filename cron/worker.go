package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"bookwell/config"
	bookingRepo "bookwell/database/repository/booking"
	tenantRepo "bookwell/database/repository/tenant"
	"bookwell/models"
	"bookwell/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "reminder:send"

// NewReminderQueueClient returns the asynq client the scheduler
// enqueues through.
func NewReminderQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService, tenants tenantRepo.TenantRepository, bookings bookingRepo.BookingRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifSvc, tenants, bookings))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		zap.L().Info("reminder worker starting")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				zap.L().Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))

				if attempts == maxAttempts {
					log.Fatal("reminder worker: max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService, tenants tenantRepo.TenantRepository, bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			zap.L().Error("reminder task: invalid payload", zap.Error(err))
			return err
		}

		logger := zap.L().With(
			zap.String("tenantId", p.TenantID),
			zap.String("bookingId", p.BookingID),
		)

		tenant, err := tenants.GetByID(ctx, p.TenantID)
		if err != nil {
			logger.Error("reminder task: tenant lookup failed", zap.Error(err))
			return err
		}
		b, err := bookings.GetByID(ctx, p.TenantID, p.BookingID)
		if err != nil {
			// Deleted between dispatch and delivery; nothing to remind.
			logger.Warn("reminder task: booking no longer available", zap.Error(err))
			return nil
		}
		if b.IsTerminal() {
			logger.Info("reminder task: booking reached terminal status, skipping")
			return nil
		}

		if err := notifSvc.SendBookingReminder(ctx, tenant, b); err != nil {
			logger.Error("reminder task: push delivery failed", zap.Error(err))
			return err
		}

		if tenant.EnableSMSReminder {
			if err := notifSvc.SendBookingReminderSMS(ctx, tenant, b); err != nil {
				// The secondary channel never fails the task once the
				// primary reminder is out.
				logger.Error("reminder task: SMS delivery failed", zap.Error(err))
			}
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			zap.L().Warn("reminder worker: redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
