package calendar

import (
	"context"
	"sync"
	"time"

	"festivo/models"
	"festivo/services/calendar/providers"

	"go.uber.org/zap"
)

// tokenLocks serializes refreshes per supplier+provider. Providers
// invalidate a refresh token once exchanged, so two concurrent refreshes
// with the same stale token would strand the connection.
var tokenLocks sync.Map

func lockFor(supplierID, provider string) *sync.Mutex {
	mu, _ := tokenLocks.LoadOrStore(supplierID+":"+provider, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// freshConnection returns the supplier's connection with a valid access
// token, refreshing and persisting it first when expired. The new tokens
// are stored before any use, so an expired access token is never left in
// the record.
func (s *DefaultSyncService) freshConnection(ctx context.Context, supplier *models.Supplier, client providers.Client) (*models.CalendarConnection, error) {
	mu := lockFor(supplier.ID, client.Provider())
	mu.Lock()
	defer mu.Unlock()

	// Re-read under the lock: a concurrent run may have refreshed already.
	current, err := s.Repo.GetByID(supplier.ID)
	if err != nil {
		return nil, NewProviderUnavailableError(err)
	}
	conn := current.CalendarConnection
	if conn == nil || conn.Provider != client.Provider() {
		return nil, NewNotConnectedError(supplier.ID, client.Provider())
	}

	if !conn.Expired(s.now()) {
		return conn, nil
	}

	tokens, err := client.RefreshToken(ctx, conn.RefreshToken)
	if err != nil {
		return nil, NewAuthExpiredError(err)
	}
	conn.AccessToken = tokens.AccessToken
	conn.RefreshToken = tokens.RefreshToken
	conn.ExpiresAt = tokens.ExpiresAt

	if err := s.Repo.UpdateCalendarConnection(supplier.ID, conn); err != nil {
		return nil, NewProviderUnavailableError(err)
	}
	zap.L().Debug("refreshed calendar access token",
		zap.String("supplierID", supplier.ID),
		zap.String("provider", client.Provider()),
		zap.Time("expiresAt", conn.ExpiresAt))
	return conn, nil
}

func (s *DefaultSyncService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
