// Package providers contains the external calendar client implementations.
// The two providers speak different wire formats behind one interface, so
// the sync service stays provider-agnostic.
package providers

import (
	"context"
	"errors"
	"time"

	"festivo/models"
)

// ErrPushNotSupported is returned by CreateChangeSubscription on providers
// that only support polling.
var ErrPushNotSupported = errors.New("provider does not support change subscriptions")

// Client is the thin protocol adapter over one external calendar API.
type Client interface {
	// Provider returns the provider identifier ("google" | "outlook").
	Provider() string

	// AuthCodeURL builds the URL the supplier visits to authorize access.
	AuthCodeURL(state string) string
	// ExchangeCode trades an authorization code for tokens.
	ExchangeCode(ctx context.Context, code string) (*models.TokenSet, error)
	// RefreshToken trades a refresh token for a fresh access token.
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenSet, error)

	// ListEvents returns events in [from, to), expanded as far as the
	// upstream API expands them.
	ListEvents(ctx context.Context, accessToken, calendarID string, from, to time.Time) ([]models.CalendarEvent, error)

	// SupportsPush reports whether the provider can deliver change
	// notifications.
	SupportsPush() bool
	// CreateChangeSubscription registers a change-notification channel with
	// a bounded lifetime and returns its ID and expiry.
	CreateChangeSubscription(ctx context.Context, accessToken, calendarID, webhookURL, secret string, ttl time.Duration) (string, time.Time, error)
	// DeleteChangeSubscription tears a change channel down.
	DeleteChangeSubscription(ctx context.Context, accessToken, subscriptionID string) error
}
