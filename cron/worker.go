package cron

import (
	"context"
	"encoding/json"
	"log"

	"festivo/config"
	syncrunRepo "festivo/database/repository/syncrun"
	"festivo/services/calendar"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// staleAfterHours is how old a sync run may get before the sweep re-queues
// it. Push-capable connections are normally refreshed by webhooks well
// before this.
const staleAfterHours = 6

// InitSyncWorker runs the async worker in background. It processes queued
// sync tasks one at a time per supplier+provider and periodically sweeps
// stale connections back through sync, which also renews expiring change
// subscriptions.
func InitSyncWorker(syncSvc calendar.SyncService, runRepo syncrunRepo.SyncRunRepository, queue *asynq.Client) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
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
	mux.HandleFunc(TypeCalendarSync, handleSyncTask(syncSvc))
	mux.HandleFunc(TypeCalendarSweep, handleSweepTask(runRepo, queue))

	go func() {
		log.Println("[SyncWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[SyncWorker] failed to start worker: %v", err)
		}
	}()

	go runScheduler(redisOpts)
}

// runScheduler enqueues the periodic sweep.
func runScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(TypeCalendarSweep, nil)); err != nil {
		log.Printf("[SyncWorker] failed to register sweep schedule: %v", err)
		return
	}
	if err := scheduler.Run(); err != nil {
		log.Printf("[SyncWorker] scheduler stopped: %v", err)
	}
}

func handleSyncTask(syncSvc calendar.SyncService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p SyncPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			zap.L().Error("invalid sync task payload", zap.Error(err))
			return err
		}

		result, err := syncSvc.Sync(ctx, p.SupplierID, p.Provider)
		if err != nil {
			// Credential and connection failures are not retryable by the
			// worker; the supplier has to reconnect. Everything else retries
			// per task policy.
			switch calendar.ErrorCode(err) {
			case calendar.CodeAuthExpired:
				zap.L().Warn("sync skipped, supplier must re-authorize",
					zap.String("supplierID", p.SupplierID),
					zap.String("provider", p.Provider))
				return nil
			case calendar.CodeNotConnected, calendar.CodeUnknownProvider:
				zap.L().Warn("sync skipped, calendar no longer connected",
					zap.String("supplierID", p.SupplierID),
					zap.String("provider", p.Provider))
				return nil
			}
			zap.L().Error("sync task failed",
				zap.String("supplierID", p.SupplierID),
				zap.String("provider", p.Provider),
				zap.Error(err))
			return err
		}

		zap.L().Info("sync task completed",
			zap.String("supplierID", p.SupplierID),
			zap.String("provider", p.Provider),
			zap.Int("eventsFound", result.EventsFound))
		return nil
	}
}

func handleSweepTask(runRepo syncrunRepo.SyncRunRepository, queue *asynq.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		stale, err := runRepo.ListStale(staleAfterHours)
		if err != nil {
			zap.L().Error("sweep: failed to list stale sync runs", zap.Error(err))
			return err
		}
		for _, run := range stale {
			if err := EnqueueSync(queue, run.SupplierID, run.Provider); err != nil {
				zap.L().Warn("sweep: failed to enqueue sync",
					zap.String("supplierID", run.SupplierID),
					zap.String("provider", run.Provider),
					zap.Error(err))
			}
		}
		zap.L().Info("sweep completed", zap.Int("staleRuns", len(stale)))
		return nil
	}
}
