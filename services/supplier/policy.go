package supplier

import (
	"fmt"
	"time"

	"festivo/models"
	"festivo/utils"
)

func (s *DefaultSupplierService) GetPolicy(id string) (*models.SchedulePolicy, error) {
	supplier, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	policy := supplier.SchedulePolicy
	return &policy, nil
}

// UpdatePolicy stores a supplier-edited scheduling policy. Calendar sync
// never writes here.
func (s *DefaultSupplierService) UpdatePolicy(id string, policy models.SchedulePolicy) error {
	if policy.MinAdvanceDays < 0 || policy.MaxAdvanceDays < 0 {
		return NewValidationError("advance day limits cannot be negative")
	}
	if policy.MinAdvanceDays > 0 && policy.MaxAdvanceDays > 0 && policy.MinAdvanceDays > policy.MaxAdvanceDays {
		return NewValidationError("minimum advance days cannot exceed maximum advance days")
	}
	if policy.TimeSlotBoundaryHour < 0 || policy.TimeSlotBoundaryHour > 23 {
		return NewValidationError("time slot boundary hour must be between 0 and 23")
	}
	for day, hours := range policy.WorkingHours {
		if !hours.Enabled {
			continue
		}
		if hours.Start == "" || hours.End == "" {
			continue
		}
		if _, _, err := utils.ParseClock(hours.Start); err != nil {
			return NewValidationError(fmt.Sprintf("invalid start time for %s", day))
		}
		if _, _, err := utils.ParseClock(hours.End); err != nil {
			return NewValidationError(fmt.Sprintf("invalid end time for %s", day))
		}
	}

	return s.Repo.UpdateSet(id, map[string]interface{}{
		"schedulePolicy": policy,
		"updatedAt":      time.Now().UTC(),
	})
}
