package syncrunRepo

import "festivo/models"

// SyncRunRepository reads the per supplier+provider sync-run records that
// the supplier repository writes alongside each interval replace.
type SyncRunRepository interface {
	// GetLast returns the most recent sync run for a supplier+provider, or
	// nil when the pair has never synced.
	GetLast(supplierID, provider string) (*models.SyncRun, error)
	// ListStale returns runs whose syncedAt is older than the given cutoff.
	ListStale(cutoff int) ([]models.SyncRun, error)
}
