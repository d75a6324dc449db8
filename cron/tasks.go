package cron

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"festivo/config"

	"github.com/hibiken/asynq"
)

const (
	TypeCalendarSync  = "calendar:sync"
	TypeCalendarSweep = "calendar:sweep"
)

// SyncPayload identifies the supplier+provider pair a sync task targets.
type SyncPayload struct {
	SupplierID string `json:"supplierId"`
	Provider   string `json:"provider"`
}

// NewSyncQueueClient creates the asynq client used to enqueue sync tasks.
func NewSyncQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	})
}

// EnqueueSync queues a sync run for one supplier+provider. The task ID pins
// the pair, so a burst of webhook notifications collapses into a single
// queued run instead of racing syncs for the same supplier.
func EnqueueSync(client *asynq.Client, supplierID, provider string) error {
	payload, err := json.Marshal(SyncPayload{SupplierID: supplierID, Provider: provider})
	if err != nil {
		return fmt.Errorf("failed to marshal sync payload: %w", err)
	}
	task := asynq.NewTask(TypeCalendarSync, payload)
	_, err = client.Enqueue(task,
		asynq.TaskID(fmt.Sprintf("sync:%s:%s", supplierID, provider)),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		// A run for this pair is already queued; the pending run will pick
		// up the change.
		return nil
	}
	return err
}
