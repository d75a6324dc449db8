package calendar

import (
	"sort"
	"time"

	"festivo/models"
	"festivo/utils"

	"github.com/google/uuid"
)

// EventsToIntervals converts fetched calendar events into the blocked
// intervals that replace the provider-sourced set. Only busy, out-of-office
// or all-day events block. A timed event is bucketed by its start hour; it
// contributes both slots only when it starts before the boundary hour and
// ends after it.
func EventsToIntervals(events []models.CalendarEvent, boundaryHour int, source string) []models.BlockedInterval {
	type dayBlock struct {
		slots map[models.TimeSlot]bool
		label string
	}
	days := make(map[string]*dayBlock)

	block := func(date string, title string, slots ...models.TimeSlot) {
		d, ok := days[date]
		if !ok {
			d = &dayBlock{slots: make(map[models.TimeSlot]bool)}
			days[date] = d
		}
		for _, s := range slots {
			d.slots[s] = true
		}
		if d.label == "" && title != "" {
			d.label = title
		}
	}

	for _, ev := range events {
		if !ev.Blocks() {
			continue
		}

		if ev.IsAllDay {
			// All-day ranges use an exclusive end date; block every covered day.
			end := ev.End
			if !end.After(ev.Start) {
				end = ev.Start.AddDate(0, 0, 1)
			}
			for d := ev.Start; d.Before(end); d = d.AddDate(0, 0, 1) {
				block(d.Format(utils.DateLayout), ev.Title, models.SlotMorning, models.SlotAfternoon)
			}
			continue
		}

		date := ev.Start.Format(utils.DateLayout)
		slot := models.SlotForHour(ev.Start.Hour(), boundaryHour)
		if slot == models.SlotMorning && spansBoundary(ev, boundaryHour) {
			block(date, ev.Title, models.SlotMorning, models.SlotAfternoon)
		} else {
			block(date, ev.Title, slot)
		}
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	now := time.Now().UTC()
	intervals := make([]models.BlockedInterval, 0, len(dates))
	for _, date := range dates {
		d := days[date]
		var slots []models.TimeSlot
		if d.slots[models.SlotMorning] {
			slots = append(slots, models.SlotMorning)
		}
		if d.slots[models.SlotAfternoon] {
			slots = append(slots, models.SlotAfternoon)
		}
		label := d.label
		if label == "" {
			label = "Calendar event"
		}
		intervals = append(intervals, models.BlockedInterval{
			BlockID:   uuid.NewString(),
			Date:      date,
			TimeSlots: slots,
			Source:    source,
			Label:     label,
			CreatedAt: now,
		})
	}
	return intervals
}

// spansBoundary reports whether a timed event crosses the morning/afternoon
// boundary on its start date.
func spansBoundary(ev models.CalendarEvent, boundaryHour int) bool {
	if !ev.End.After(ev.Start) {
		return false
	}
	boundary := time.Date(ev.Start.Year(), ev.Start.Month(), ev.Start.Day(), boundaryHour, 0, 0, 0, ev.Start.Location())
	return ev.Start.Before(boundary) && ev.End.After(boundary)
}
