package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"festivo/models"
	"festivo/services/calendar"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSyncService returns a canned result or error from Sync.
type stubSyncService struct {
	err   error
	calls int
}

func (s *stubSyncService) AuthCodeURL(string, string) (string, error) { return "", nil }

func (s *stubSyncService) Connect(context.Context, string, string, string) (*models.SyncResult, error) {
	return nil, nil
}

func (s *stubSyncService) Disconnect(context.Context, string, string) error { return nil }

func (s *stubSyncService) Sync(context.Context, string, string) (*models.SyncResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &models.SyncResult{SupplierID: "sup-1", Provider: models.ProviderGoogle, EventsFound: 1}, nil
}

func syncTask(t *testing.T, supplierID, provider string) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(SyncPayload{SupplierID: supplierID, Provider: provider})
	require.NoError(t, err)
	return asynq.NewTask(TypeCalendarSync, payload)
}

func TestHandleSyncTaskSuccess(t *testing.T) {
	svc := &stubSyncService{}
	handler := handleSyncTask(svc)

	err := handler(context.Background(), syncTask(t, "sup-1", models.ProviderGoogle))
	require.NoError(t, err)
	assert.Equal(t, 1, svc.calls)
}

func TestHandleSyncTaskRetryableFailure(t *testing.T) {
	svc := &stubSyncService{err: calendar.NewProviderUnavailableError(errors.New("api down"))}
	handler := handleSyncTask(svc)

	err := handler(context.Background(), syncTask(t, "sup-1", models.ProviderGoogle))
	assert.Error(t, err, "transient provider failures retry per task policy")
}

func TestHandleSyncTaskAuthExpiredIsNotRetried(t *testing.T) {
	svc := &stubSyncService{err: calendar.NewAuthExpiredError(errors.New("invalid_grant"))}
	handler := handleSyncTask(svc)

	err := handler(context.Background(), syncTask(t, "sup-1", models.ProviderGoogle))
	assert.NoError(t, err, "re-authorization cannot be retried by the worker")
}

func TestHandleSyncTaskNotConnectedIsNotRetried(t *testing.T) {
	// A pair disconnected between enqueue and processing must not cycle
	// through the retry policy.
	svc := &stubSyncService{err: calendar.NewNotConnectedError("sup-1", models.ProviderGoogle)}
	handler := handleSyncTask(svc)

	err := handler(context.Background(), syncTask(t, "sup-1", models.ProviderGoogle))
	assert.NoError(t, err)

	svc = &stubSyncService{err: calendar.NewUnknownProviderError("caldav")}
	err = handleSyncTask(svc)(context.Background(), syncTask(t, "sup-1", "caldav"))
	assert.NoError(t, err)
}

func TestHandleSyncTaskBadPayload(t *testing.T) {
	svc := &stubSyncService{}
	handler := handleSyncTask(svc)

	err := handler(context.Background(), asynq.NewTask(TypeCalendarSync, []byte("not json")))
	assert.Error(t, err)
	assert.Zero(t, svc.calls)
}
