package supplier

import (
	"festivo/models"
)

// SupplierService manages supplier accounts, their scheduling policy and
// their manual blocked intervals.
type SupplierService interface {
	Register(supplier *models.Supplier) (*models.Supplier, error)
	Authenticate(email, password string) (*models.Supplier, error)
	RevokeAuthToken(id string) error
	GetByID(id string) (*models.Supplier, error)

	GetPolicy(id string) (*models.SchedulePolicy, error)
	UpdatePolicy(id string, policy models.SchedulePolicy) error

	AddManualBlock(id string, req ManualBlockRequest) (*models.BlockedInterval, error)
	ListBlocks(id, source string) ([]models.BlockedInterval, error)
	RemoveManualBlock(id, blockID string) error
}

// ManualBlockRequest is the payload for creating a manual blocked interval.
type ManualBlockRequest struct {
	Date      string            `json:"date" binding:"required"`
	TimeSlots []models.TimeSlot `json:"timeSlots" binding:"required"`
	Label     string            `json:"label"`
}
