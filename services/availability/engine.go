// Package availability implements the deterministic booking decision
// procedure: supplier policy + blocked intervals + candidate request in,
// available/unavailable verdict with a reason out. The engine is pure and
// performs no I/O.
package availability

import (
	"fmt"
	"time"

	"festivo/models"
	"festivo/utils"
)

// Engine evaluates booking requests against a supplier's schedule.
type Engine interface {
	CheckAvailability(policy models.SchedulePolicy, blocked []models.BlockedInterval, req models.BookingRequest) models.AvailabilityDecision
}

// DefaultEngine is the concrete implementation. Now is injectable so lead
// time checks are testable; nil means time.Now.
type DefaultEngine struct {
	Now func() time.Time
}

func (e *DefaultEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// CheckAvailability runs the checks in short-circuit order: explicit block,
// working day/hours, minimum lead time, maximum advance window. The first
// failing check decides, so the most specific reason is always the one
// reported. A request date that fails every parse attempt yields available
// rather than an error, so a parsing defect can never silently block a
// booking.
func (e *DefaultEngine) CheckAvailability(policy models.SchedulePolicy, blocked []models.BlockedInterval, req models.BookingRequest) models.AvailabilityDecision {
	date, err := utils.ParseFlexibleDate(req.Date)
	if err != nil {
		return models.AvailabilityDecision{Available: true}
	}

	// 1. Explicit block on the requested date and slot.
	slot := requestSlot(policy, req)
	dateKey := date.Format(utils.DateLayout)
	for _, bi := range blocked {
		if bi.Date != dateKey || !bi.HasSlot(slot) {
			continue
		}
		msg := fmt.Sprintf("date %s (%s) is blocked", dateKey, slot)
		if bi.Source != "" {
			msg = fmt.Sprintf("%s by %s", msg, bi.Source)
		}
		return models.AvailabilityDecision{
			Available:  false,
			ReasonCode: models.ReasonDateBlocked,
			Message:    msg,
		}
	}

	// A policy whose lead time exceeds its horizon can never be satisfied.
	if policy.MinAdvanceDays > 0 && policy.MaxAdvanceDays > 0 && policy.MinAdvanceDays > policy.MaxAdvanceDays {
		return models.AvailabilityDecision{
			Available:  false,
			ReasonCode: models.ReasonPolicyInvalid,
			Message:    "supplier scheduling policy does not permit any booking",
		}
	}

	// 2. Working day and hour range.
	if policy.WorkingHours != nil {
		hours, ok := policy.WorkingHours[date.Weekday()]
		if !ok || !hours.Enabled {
			return models.AvailabilityDecision{
				Available:  false,
				ReasonCode: models.ReasonNonWorkingDay,
				Message:    fmt.Sprintf("%s is not a working day", date.Weekday()),
			}
		}
		if dec, outside := outsideHours(hours, req); outside {
			return dec
		}
	}

	// 3. Minimum lead time.
	days := utils.DaysUntil(e.now(), date)
	if policy.MinAdvanceDays > 0 && days < policy.MinAdvanceDays {
		return models.AvailabilityDecision{
			Available:        false,
			ReasonCode:       models.ReasonInsufficientNotice,
			Message:          fmt.Sprintf("bookings require at least %d days notice", policy.MinAdvanceDays),
			RequiredLeadDays: policy.MinAdvanceDays,
		}
	}

	// 4. Maximum advance window.
	if policy.MaxAdvanceDays > 0 && days > policy.MaxAdvanceDays {
		return models.AvailabilityDecision{
			Available:  false,
			ReasonCode: models.ReasonTooFarInAdvance,
			Message:    fmt.Sprintf("bookings open %d days before the date", policy.MaxAdvanceDays),
		}
	}

	return models.AvailabilityDecision{Available: true}
}

// requestSlot derives the half-day slot from the request start time. A
// missing or unparsable start time defaults to morning.
func requestSlot(policy models.SchedulePolicy, req models.BookingRequest) models.TimeSlot {
	if req.StartTime == "" {
		return models.SlotMorning
	}
	hour, _, err := utils.ParseClock(req.StartTime)
	if err != nil {
		return models.SlotMorning
	}
	return models.SlotForHour(hour, policy.BoundaryHour())
}

// outsideHours checks the request window [start, start+duration) against the
// day's hour range. Requests without a start time skip the check.
func outsideHours(hours models.DayHours, req models.BookingRequest) (models.AvailabilityDecision, bool) {
	if req.StartTime == "" || hours.Start == "" || hours.End == "" {
		return models.AvailabilityDecision{}, false
	}
	startH, startM, err := utils.ParseClock(req.StartTime)
	if err != nil {
		return models.AvailabilityDecision{}, false
	}
	openH, openM, err1 := utils.ParseClock(hours.Start)
	closeH, closeM, err2 := utils.ParseClock(hours.End)
	if err1 != nil || err2 != nil {
		return models.AvailabilityDecision{}, false
	}

	reqStart := startH*60 + startM
	reqEnd := reqStart + req.DurationHours*60
	dayOpen := openH*60 + openM
	dayClose := closeH*60 + closeM

	if reqStart < dayOpen || reqEnd > dayClose {
		return models.AvailabilityDecision{
			Available:  false,
			ReasonCode: models.ReasonOutsideWorkingHours,
			Message:    fmt.Sprintf("request falls outside working hours %s-%s", hours.Start, hours.End),
		}, true
	}
	return models.AvailabilityDecision{}, false
}
