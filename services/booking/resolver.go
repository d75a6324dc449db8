// Package booking holds the replacement-resolution procedure invoked when a
// committed supplier becomes unavailable after a schedule change.
package booking

import (
	"context"
	"fmt"

	"festivo/models"
	"festivo/services/availability"

	"go.uber.org/zap"
)

// DefaultReplacementService implements ReplacementService.
type DefaultReplacementService struct {
	Directory Directory
	Engine    availability.Engine
}

// ResolveReplacement re-runs the availability check for every committed
// supplier against the changed request. Suppliers still available keep their
// slot untouched. For each failure the first same-category candidate that
// clears all checks takes over; when none does, the slot is cleared
// explicitly rather than left pointing at an invalid booking. Directory
// failures degrade to a cleared slot, never to an error.
func (s *DefaultReplacementService) ResolveReplacement(ctx context.Context, plan models.BookingPlan, changed models.BookingRequest) models.BookingPlan {
	logger := zap.L()

	for i := range plan.Slots {
		slot := &plan.Slots[i]
		if slot.Supplier == nil {
			continue
		}

		incumbent, err := s.Directory.GetByID(slot.Supplier.ID)
		if err != nil {
			logger.Warn("committed supplier lookup failed, attempting replacement",
				zap.String("supplierID", slot.Supplier.ID), zap.Error(err))
			s.replace(slot, slot.Supplier.ID, changed, "supplier record unavailable")
			continue
		}

		decision := s.Engine.CheckAvailability(incumbent.SchedulePolicy, incumbent.BlockedIntervals, changed)
		if decision.Available {
			continue
		}

		logger.Info("committed supplier no longer available",
			zap.String("supplierID", incumbent.ID),
			zap.String("category", slot.Category),
			zap.String("reason", decision.ReasonCode))
		s.replace(slot, incumbent.ID, changed, decision.Message)
	}
	return plan
}

// replace fills the slot with the first available same-category candidate,
// or clears it when the directory has none.
func (s *DefaultReplacementService) replace(slot *models.PlanSlot, excludeID string, changed models.BookingRequest, cause string) {
	candidates, err := s.Directory.FindByCategory(slot.Category, excludeID)
	if err != nil {
		zap.L().Warn("supplier directory lookup failed",
			zap.String("category", slot.Category), zap.Error(err))
		candidates = nil
	}

	for _, candidate := range candidates {
		decision := s.Engine.CheckAvailability(candidate.SchedulePolicy, candidate.BlockedIntervals, changed)
		if !decision.Available {
			continue
		}
		dto := candidate.ToDTO()
		slot.Supplier = &dto
		slot.Replaced = true
		slot.Note = fmt.Sprintf("replaced: %s", cause)
		return
	}

	slot.Supplier = nil
	slot.Replaced = true
	slot.Note = fmt.Sprintf("no replacement found: %s", cause)
}
