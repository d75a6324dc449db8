package supplierRepo

import (
	"festivo/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SupplierRepository defines methods for supplier data access.
type SupplierRepository interface {
	// GetByID retrieves a supplier by its unique ID.
	GetByID(id string) (*models.Supplier, error)
	// GetByEmail retrieves a supplier by its email address.
	GetByEmail(email string) (*models.Supplier, error)
	// GetByIDWithProjection retrieves a supplier by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.Supplier, error)
	// GetByCategory returns suppliers in a category, excluding the given ID.
	GetByCategory(category, excludeID string) ([]models.Supplier, error)
	// GetSecondaryListings returns listings that inherit the given primary
	// supplier's calendar connection.
	GetSecondaryListings(primaryID string) ([]models.Supplier, error)
	// GetBySubscriptionChannel resolves the supplier owning a change
	// notification channel.
	GetBySubscriptionChannel(channelID string) (*models.Supplier, error)

	// Create inserts a new supplier record.
	Create(supplier *models.Supplier) error
	// Update modifies an existing supplier record.
	Update(supplier *models.Supplier) error
	// Delete removes a supplier record by its ID.
	Delete(id string) error
	// UpdateSet patches specific fields of a supplier document.
	UpdateSet(id string, updateDoc bson.M) error

	// UpdateCalendarConnection stores (or clears, when nil) the supplier's
	// calendar connection.
	UpdateCalendarConnection(id string, conn *models.CalendarConnection) error

	// AddBlockedInterval appends one blocked interval to the supplier.
	AddBlockedInterval(id string, interval models.BlockedInterval) error
	// RemoveBlockedInterval deletes a blocked interval by block ID. Only
	// manual intervals may be removed this way.
	RemoveBlockedInterval(id, blockID string) error
	// ReplaceBlockedIntervals atomically replaces every interval of the
	// given source with the new set, leaving other sources untouched, and
	// records the sync run in the same transaction.
	ReplaceBlockedIntervals(id, source string, intervals []models.BlockedInterval, run *models.SyncRun) error
	// DeleteSyncRun removes the sync-run record for a supplier+provider
	// pair, taking the pair out of the periodic sweep.
	DeleteSyncRun(supplierID, provider string) error
}
