package calendar

import (
	"context"

	"festivo/models"
)

// SyncService orchestrates the external calendar lifecycle for suppliers:
// authorization, event sync into blocked intervals, and teardown.
type SyncService interface {
	// AuthCodeURL returns the provider consent URL for the connect flow.
	AuthCodeURL(provider, state string) (string, error)
	// Connect completes the authorization flow with the callback code,
	// stores the connection and runs the onboarding sync.
	Connect(ctx context.Context, supplierID, provider, code string) (*models.SyncResult, error)
	// Disconnect cancels the change subscription, clears the stored tokens
	// and removes the provider-sourced blocked intervals.
	Disconnect(ctx context.Context, supplierID, provider string) error
	// Sync fetches events and replaces the supplier's provider-sourced
	// blocked intervals. Manual intervals are never touched.
	Sync(ctx context.Context, supplierID, provider string) (*models.SyncResult, error)
}
