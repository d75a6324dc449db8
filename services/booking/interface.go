package booking

import (
	"context"

	"festivo/models"
)

// Directory is the supplier lookup surface the resolver consumes.
type Directory interface {
	// GetByID retrieves a supplier by its unique ID.
	GetByID(id string) (*models.Supplier, error)
	// FindByCategory returns same-category alternatives, excluding the
	// incumbent supplier.
	FindByCategory(category, excludeID string) ([]models.Supplier, error)
}

// ReplacementService re-validates a booking plan after a schedule change and
// substitutes suppliers that are no longer available.
type ReplacementService interface {
	ResolveReplacement(ctx context.Context, plan models.BookingPlan, changed models.BookingRequest) models.BookingPlan
}
