package models

import "time"

// TimeSlot is one of the two coarse half-day buckets used to approximate
// event timing.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
)

// Blocked-interval sources. Intervals of a calendar source are wholly owned
// by the sync service and rewritten on every run; manual intervals belong to
// the supplier and are never touched by sync.
const (
	SourceManual          = "manual"
	SourceGoogleCalendar  = "google-calendar"
	SourceOutlookCalendar = "outlook-calendar"
)

// BlockedInterval marks one or both half-day slots of a date as unbookable.
type BlockedInterval struct {
	BlockID   string     `bson:"blockId" json:"blockId"`
	Date      string     `bson:"date" json:"date"` // "2006-01-02"
	TimeSlots []TimeSlot `bson:"timeSlots" json:"timeSlots"`
	Source    string     `bson:"source" json:"source"`
	Label     string     `bson:"label,omitempty" json:"label,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt,omitzero"`
}

// HasSlot reports whether the interval covers the given time slot.
func (b BlockedInterval) HasSlot(slot TimeSlot) bool {
	for _, s := range b.TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// CalendarSourceFor returns the blocked-interval source string for a
// calendar provider name.
func CalendarSourceFor(provider string) string {
	return provider + "-calendar"
}

// SlotForHour buckets a local start hour into a half-day slot. An hour equal
// to the boundary falls in the afternoon.
func SlotForHour(hour, boundaryHour int) TimeSlot {
	if hour < boundaryHour {
		return SlotMorning
	}
	return SlotAfternoon
}
