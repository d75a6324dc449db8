// Package calendar connects supplier accounts to external calendars and
// reconciles fetched events into the supplier's blocked-time record.
package calendar

import (
	"context"
	"fmt"
	"time"

	supplierRepo "festivo/database/repository/supplier"
	"festivo/models"
	"festivo/services/calendar/providers"
	"festivo/utils"

	"go.uber.org/zap"
)

// DefaultSyncService is the concrete SyncService.
type DefaultSyncService struct {
	Repo    supplierRepo.SupplierRepository
	Clients map[string]providers.Client

	// Webhook settings for push subscriptions.
	WebhookURL    string
	WebhookSecret string

	// Fetch windows in days. Zero means the defaults (60 routine, 365 for
	// the onboarding sync).
	WindowDays      int
	FirstWindowDays int

	// SubscriptionTTL bounds the lifetime of a change subscription.
	SubscriptionTTL time.Duration

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

const (
	defaultWindowDays      = 60
	defaultFirstWindowDays = 365
	defaultSubscriptionTTL = 7 * 24 * time.Hour
)

func (s *DefaultSyncService) client(provider string) (providers.Client, error) {
	c, ok := s.Clients[provider]
	if !ok {
		return nil, NewUnknownProviderError(provider)
	}
	return c, nil
}

func (s *DefaultSyncService) AuthCodeURL(provider, state string) (string, error) {
	client, err := s.client(provider)
	if err != nil {
		return "", err
	}
	return client.AuthCodeURL(state), nil
}

// Connect completes the OAuth flow, stores the connection on the account's
// primary listing and runs the onboarding sync. Secondary listings inherit
// the primary's connection and cannot hold credentials of their own.
func (s *DefaultSyncService) Connect(ctx context.Context, supplierID, provider, code string) (*models.SyncResult, error) {
	client, err := s.client(provider)
	if err != nil {
		return nil, err
	}

	supplier, err := s.Repo.GetByID(supplierID)
	if err != nil {
		return nil, fmt.Errorf("supplier lookup failed: %w", err)
	}
	if supplier.InheritsConnection {
		return nil, fmt.Errorf("secondary listing %s inherits the primary connection and cannot connect directly", supplierID)
	}

	tokens, err := client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, NewAuthExpiredError(err)
	}

	conn := &models.CalendarConnection{
		Provider:     provider,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
		CalendarID:   "primary",
	}
	if err := s.Repo.UpdateCalendarConnection(supplierID, conn); err != nil {
		return nil, fmt.Errorf("failed to store calendar connection: %w", err)
	}

	return s.Sync(ctx, supplierID, provider)
}

// Sync runs one full reconciliation: refresh credentials, fetch events in
// the forward window, convert them to half-day blocks and atomically replace
// the provider-sourced interval set. Any fetch failure aborts before the
// write, leaving the previous snapshot intact.
func (s *DefaultSyncService) Sync(ctx context.Context, supplierID, provider string) (*models.SyncResult, error) {
	logger := zap.L()

	client, err := s.client(provider)
	if err != nil {
		return nil, err
	}

	supplier, err := s.Repo.GetByID(supplierID)
	if err != nil {
		return nil, fmt.Errorf("supplier lookup failed: %w", err)
	}
	// A sync aimed at a secondary listing runs against its primary; the
	// propagation step below brings the secondary up to date.
	if supplier.InheritsConnection && supplier.PrimarySupplierID != "" {
		supplier, err = s.Repo.GetByID(supplier.PrimarySupplierID)
		if err != nil {
			return nil, fmt.Errorf("primary supplier lookup failed: %w", err)
		}
	}

	conn, err := s.freshConnection(ctx, supplier, client)
	if err != nil {
		return nil, err
	}

	from := s.dayStart()
	windowDays := s.windowDays(conn)
	to := from.AddDate(0, 0, windowDays)

	events, err := client.ListEvents(ctx, conn.AccessToken, conn.CalendarID, from, to)
	if err != nil {
		return nil, NewProviderUnavailableError(err)
	}

	source := models.CalendarSourceFor(provider)
	intervals := EventsToIntervals(events, supplier.SchedulePolicy.BoundaryHour(), source)

	syncedAt := s.now().UTC()
	run := &models.SyncRun{
		SupplierID:       supplier.ID,
		Provider:         provider,
		SyncedAt:         syncedAt,
		WindowFrom:       from.Format(utils.DateLayout),
		WindowTo:         to.Format(utils.DateLayout),
		EventsFound:      len(events),
		IntervalsWritten: len(intervals),
		Status:           "ok",
	}
	if err := s.Repo.ReplaceBlockedIntervals(supplier.ID, source, intervals, run); err != nil {
		return nil, fmt.Errorf("failed to write blocked intervals: %w", err)
	}

	conn.LastSyncedAt = &syncedAt
	if err := s.Repo.UpdateCalendarConnection(supplier.ID, conn); err != nil {
		logger.Warn("failed to update last-synced timestamp",
			zap.String("supplierID", supplier.ID), zap.Error(err))
	}

	// Subscription upkeep is best effort: a failure degrades the supplier
	// to periodic sync, it never fails the run.
	s.ensureSubscription(ctx, supplier.ID, conn, client)

	s.propagateToSecondaries(supplier.ID, source, intervals)

	logger.Info("calendar sync completed",
		zap.String("supplierID", supplier.ID),
		zap.String("provider", provider),
		zap.Int("eventsFound", len(events)),
		zap.Int("intervalsWritten", len(intervals)))

	return &models.SyncResult{
		SupplierID:       supplier.ID,
		Provider:         provider,
		EventsFound:      len(events),
		BlockedIntervals: intervals,
		SyncedAt:         syncedAt,
	}, nil
}

// Disconnect tears the connection down: subscription cancelled best effort,
// provider-sourced intervals dropped, tokens removed. The cleanup covers the
// primary and every listing that inherits from it.
func (s *DefaultSyncService) Disconnect(ctx context.Context, supplierID, provider string) error {
	logger := zap.L()

	client, err := s.client(provider)
	if err != nil {
		return err
	}
	supplier, err := s.Repo.GetByID(supplierID)
	if err != nil {
		return fmt.Errorf("supplier lookup failed: %w", err)
	}
	conn := supplier.CalendarConnection
	if conn == nil || conn.Provider != provider {
		return NewNotConnectedError(supplierID, provider)
	}

	if conn.SubscriptionID != "" {
		if err := client.DeleteChangeSubscription(ctx, conn.AccessToken, conn.SubscriptionID); err != nil {
			logger.Warn("failed to cancel change subscription",
				zap.String("supplierID", supplierID), zap.Error(err))
		}
	}

	source := models.CalendarSourceFor(provider)
	if err := s.Repo.ReplaceBlockedIntervals(supplierID, source, nil, nil); err != nil {
		return fmt.Errorf("failed to clear provider intervals: %w", err)
	}
	if err := s.Repo.UpdateCalendarConnection(supplierID, nil); err != nil {
		return fmt.Errorf("failed to remove calendar connection: %w", err)
	}
	// Without this the sweep keeps re-queueing the disconnected pair.
	if err := s.Repo.DeleteSyncRun(supplierID, provider); err != nil {
		logger.Warn("failed to delete sync run record",
			zap.String("supplierID", supplierID),
			zap.String("provider", provider),
			zap.Error(err))
	}

	s.propagateToSecondaries(supplierID, source, nil)
	return nil
}

// propagateToSecondaries rewrites the same provider-sourced interval set on
// every listing inheriting this primary's connection. Secondaries never
// store tokens, only the derived blocks. Failures are logged per listing;
// the next sync repairs them.
func (s *DefaultSyncService) propagateToSecondaries(primaryID, source string, intervals []models.BlockedInterval) {
	secondaries, err := s.Repo.GetSecondaryListings(primaryID)
	if err != nil {
		zap.L().Warn("failed to list secondary listings",
			zap.String("supplierID", primaryID), zap.Error(err))
		return
	}
	for _, sec := range secondaries {
		if err := s.Repo.ReplaceBlockedIntervals(sec.ID, source, intervals, nil); err != nil {
			zap.L().Warn("failed to propagate intervals to secondary listing",
				zap.String("primaryID", primaryID),
				zap.String("secondaryID", sec.ID),
				zap.Error(err))
		}
	}
}

func (s *DefaultSyncService) windowDays(conn *models.CalendarConnection) int {
	if conn.LastSyncedAt == nil {
		if s.FirstWindowDays > 0 {
			return s.FirstWindowDays
		}
		return defaultFirstWindowDays
	}
	if s.WindowDays > 0 {
		return s.WindowDays
	}
	return defaultWindowDays
}

func (s *DefaultSyncService) dayStart() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
