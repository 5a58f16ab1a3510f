package cron

import (
	"context"
	"log"
	"time"

	"solace/config"
	"solace/services/booking"
	"solace/services/tasks"

	"github.com/hibiken/asynq"
)

// InitSweepWorker runs the async worker and the periodic scheduler that
// enqueues the stale-pending sweep. The sweep is a housekeeping optimization:
// expired holds already stop counting against stock at read time.
func InitSweepWorker(engine booking.BookingEngine) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingSweep, func(ctx context.Context, _ *asynq.Task) error {
		swept, err := engine.SweepStalePending(ctx)
		if err != nil {
			log.Printf("[SweepWorker] sweep failed: %v", err)
			return err
		}
		if swept > 0 {
			log.Printf("[SweepWorker] cancelled %d stale pending booking(s)", swept)
		}
		return nil
	})

	// Start async worker with retry logic
	go func() {
		log.Println("[SweepWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SweepWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SweepWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	// Periodically enqueue the sweep task.
	go func() {
		scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
		if _, err := scheduler.Register(config.AppConfig.SweepInterval, tasks.NewSweepTask()); err != nil {
			log.Printf("[SweepWorker] failed to register sweep schedule: %v", err)
			return
		}
		if err := scheduler.Run(); err != nil {
			log.Printf("[SweepWorker] scheduler stopped: %v", err)
		}
	}()
}
