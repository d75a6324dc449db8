package supplier

import (
	"fmt"
	"time"

	"festivo/models"
	"festivo/utils"

	"github.com/google/uuid"
)

// AddManualBlock creates a manual blocked interval. Dates are normalised to
// the canonical layout, and a slot already blocked manually for that date is
// rejected so one source never duplicates a slot.
func (s *DefaultSupplierService) AddManualBlock(id string, req ManualBlockRequest) (*models.BlockedInterval, error) {
	date, err := utils.ParseFlexibleDate(req.Date)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("unrecognised date %q", req.Date))
	}
	if len(req.TimeSlots) == 0 {
		return nil, NewValidationError("at least one time slot is required")
	}
	for _, slot := range req.TimeSlots {
		if slot != models.SlotMorning && slot != models.SlotAfternoon {
			return nil, NewValidationError(fmt.Sprintf("unknown time slot %q", slot))
		}
	}

	supplier, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	dateKey := date.Format(utils.DateLayout)
	for _, existing := range supplier.BlockedIntervals {
		if existing.Source != models.SourceManual || existing.Date != dateKey {
			continue
		}
		for _, slot := range req.TimeSlots {
			if existing.HasSlot(slot) {
				return nil, NewValidationError(fmt.Sprintf("%s on %s is already blocked", slot, dateKey))
			}
		}
	}

	interval := models.BlockedInterval{
		BlockID:   uuid.NewString(),
		Date:      dateKey,
		TimeSlots: req.TimeSlots,
		Source:    models.SourceManual,
		Label:     req.Label,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.AddBlockedInterval(id, interval); err != nil {
		return nil, err
	}
	return &interval, nil
}

// ListBlocks returns the supplier's blocked intervals, optionally filtered
// by source.
func (s *DefaultSupplierService) ListBlocks(id, source string) ([]models.BlockedInterval, error) {
	supplier, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if source == "" {
		return supplier.BlockedIntervals, nil
	}
	var filtered []models.BlockedInterval
	for _, bi := range supplier.BlockedIntervals {
		if bi.Source == source {
			filtered = append(filtered, bi)
		}
	}
	return filtered, nil
}

// RemoveManualBlock deletes a manual interval. Calendar-sourced intervals
// are owned by sync and silently excluded by the repository filter.
func (s *DefaultSupplierService) RemoveManualBlock(id, blockID string) error {
	return s.Repo.RemoveBlockedInterval(id, blockID)
}
