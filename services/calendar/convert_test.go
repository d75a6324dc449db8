package calendar

import (
	"testing"
	"time"

	"festivo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(title string, start, end time.Time) models.CalendarEvent {
	return models.CalendarEvent{ID: title, Title: title, Start: start, End: end, BusyState: "busy"}
}

func TestEventsToIntervalsTimedEvents(t *testing.T) {
	day := time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)
	events := []models.CalendarEvent{
		event("Morning tasting", day.Add(10*time.Hour), day.Add(11*time.Hour)),
		event("Late setup", day.Add(15*time.Hour), day.Add(17*time.Hour)),
	}

	intervals := EventsToIntervals(events, models.DefaultTimeSlotBoundaryHour, models.SourceGoogleCalendar)
	require.Len(t, intervals, 1)

	bi := intervals[0]
	assert.Equal(t, "2025-12-26", bi.Date)
	assert.Equal(t, []models.TimeSlot{models.SlotMorning, models.SlotAfternoon}, bi.TimeSlots)
	assert.Equal(t, models.SourceGoogleCalendar, bi.Source)
	assert.Equal(t, "Morning tasting", bi.Label)
	assert.NotEmpty(t, bi.BlockID)
}

func TestEventsToIntervalsStartAtBoundaryIsAfternoon(t *testing.T) {
	day := time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)
	events := []models.CalendarEvent{
		event("Boundary start", day.Add(13*time.Hour), day.Add(14*time.Hour)),
	}

	intervals := EventsToIntervals(events, 13, models.SourceGoogleCalendar)
	require.Len(t, intervals, 1)
	assert.Equal(t, []models.TimeSlot{models.SlotAfternoon}, intervals[0].TimeSlots)
}

func TestEventsToIntervalsBoundarySpanningEvent(t *testing.T) {
	day := time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)
	events := []models.CalendarEvent{
		event("Long rehearsal", day.Add(11*time.Hour), day.Add(15*time.Hour)),
	}

	intervals := EventsToIntervals(events, 13, models.SourceGoogleCalendar)
	require.Len(t, intervals, 1)
	assert.Equal(t, []models.TimeSlot{models.SlotMorning, models.SlotAfternoon}, intervals[0].TimeSlots)
}

func TestEventsToIntervalsAllDayRange(t *testing.T) {
	events := []models.CalendarEvent{{
		Title:    "Holiday",
		Start:    time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 12, 27, 0, 0, 0, 0, time.UTC), // exclusive
		IsAllDay: true,
	}}

	intervals := EventsToIntervals(events, 13, models.SourceOutlookCalendar)
	require.Len(t, intervals, 3)

	for i, want := range []string{"2025-12-24", "2025-12-25", "2025-12-26"} {
		assert.Equal(t, want, intervals[i].Date)
		assert.Equal(t, []models.TimeSlot{models.SlotMorning, models.SlotAfternoon}, intervals[i].TimeSlots)
	}
}

func TestEventsToIntervalsAllDayWithoutEnd(t *testing.T) {
	start := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	events := []models.CalendarEvent{{Title: "Holiday", Start: start, End: start, IsAllDay: true}}

	intervals := EventsToIntervals(events, 13, models.SourceGoogleCalendar)
	require.Len(t, intervals, 1)
	assert.Equal(t, "2025-12-24", intervals[0].Date)
}

func TestEventsToIntervalsSkipsNonBlocking(t *testing.T) {
	day := time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)
	events := []models.CalendarEvent{
		{Title: "Hold", Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour), BusyState: "tentative"},
		{Title: "Reminder", Start: day.Add(14 * time.Hour), End: day.Add(15 * time.Hour), BusyState: "free"},
	}

	intervals := EventsToIntervals(events, 13, models.SourceGoogleCalendar)
	assert.Empty(t, intervals)
}

func TestEventsToIntervalsCollapsesDuplicateSlots(t *testing.T) {
	day := time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)
	events := []models.CalendarEvent{
		event("First call", day.Add(9*time.Hour), day.Add(10*time.Hour)),
		event("Second call", day.Add(11*time.Hour), day.Add(12*time.Hour)),
	}

	intervals := EventsToIntervals(events, 13, models.SourceGoogleCalendar)
	require.Len(t, intervals, 1)
	assert.Equal(t, []models.TimeSlot{models.SlotMorning}, intervals[0].TimeSlots)
}

func TestEventsToIntervalsSortedByDate(t *testing.T) {
	events := []models.CalendarEvent{
		event("Later", time.Date(2025, 12, 28, 10, 0, 0, 0, time.UTC), time.Date(2025, 12, 28, 11, 0, 0, 0, time.UTC)),
		event("Earlier", time.Date(2025, 12, 20, 10, 0, 0, 0, time.UTC), time.Date(2025, 12, 20, 11, 0, 0, 0, time.UTC)),
	}

	intervals := EventsToIntervals(events, 13, models.SourceGoogleCalendar)
	require.Len(t, intervals, 2)
	assert.Equal(t, "2025-12-20", intervals[0].Date)
	assert.Equal(t, "2025-12-28", intervals[1].Date)
}

func TestEventsToIntervalsUntitledEventLabel(t *testing.T) {
	day := time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)
	events := []models.CalendarEvent{
		{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour), BusyState: "busy"},
	}

	intervals := EventsToIntervals(events, 13, models.SourceGoogleCalendar)
	require.Len(t, intervals, 1)
	assert.Equal(t, "Calendar event", intervals[0].Label)
}
