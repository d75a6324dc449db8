package calendar

import (
	"context"
	"time"

	"festivo/models"
	"festivo/services/calendar/providers"

	"go.uber.org/zap"
)

// renewLeeway is how close to expiry a subscription gets re-registered.
const renewLeeway = 12 * time.Hour

// ensureSubscription registers or renews the change-notification channel for
// a push-capable provider. Failure is logged and swallowed: the supplier
// falls back to the periodic sweep.
func (s *DefaultSyncService) ensureSubscription(ctx context.Context, supplierID string, conn *models.CalendarConnection, client providers.Client) {
	if !client.SupportsPush() || s.WebhookURL == "" {
		return
	}
	if conn.SubscriptionID != "" && conn.SubscriptionExpiresAt != nil &&
		conn.SubscriptionExpiresAt.After(s.now().Add(renewLeeway)) {
		return
	}

	logger := zap.L()

	// Drop the old channel first when renewing; a dangling channel on the
	// provider side just times out.
	if conn.SubscriptionID != "" {
		if err := client.DeleteChangeSubscription(ctx, conn.AccessToken, conn.SubscriptionID); err != nil {
			logger.Debug("failed to stop expiring subscription",
				zap.String("supplierID", supplierID), zap.Error(err))
		}
	}

	ttl := s.SubscriptionTTL
	if ttl <= 0 {
		ttl = defaultSubscriptionTTL
	}

	subID, expiresAt, err := client.CreateChangeSubscription(
		ctx, conn.AccessToken, conn.CalendarID, s.WebhookURL, s.WebhookSecret, ttl)
	if err != nil {
		logger.Warn("change subscription registration failed, falling back to periodic sync",
			zap.String("supplierID", supplierID),
			zap.String("provider", client.Provider()),
			zap.Error(err))
		return
	}

	conn.SubscriptionID = subID
	conn.SubscriptionExpiresAt = &expiresAt
	if err := s.Repo.UpdateCalendarConnection(supplierID, conn); err != nil {
		logger.Warn("failed to persist subscription details",
			zap.String("supplierID", supplierID), zap.Error(err))
	}
}
