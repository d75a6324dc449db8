package models

import (
	"time"
)

// Profile holds a supplier's public-facing details.
type Profile struct {
	SupplierName string  `bson:"supplierName" json:"supplierName,omitempty"`
	Category     string  `bson:"category" json:"category,omitempty"` // e.g., "venue", "caterer", "entertainer"
	Email        string  `bson:"email" json:"email,omitempty"`
	PhoneNumber  string  `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	Status       string  `bson:"status" json:"status,omitempty"`
	Rating       float64 `bson:"rating" json:"rating,omitempty"`
	Location     string  `bson:"location" json:"location,omitempty"`
}

type Security struct {
	Password     string `bson:"-" json:"password,omitempty"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	Token        string `bson:"-" json:"token,omitempty"`
	TokenHash    string `bson:"tokenHash" json:"-"`
}

// DayHours is a working window for one weekday. Enabled=false marks the day
// as non-working regardless of the hour range.
type DayHours struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Start   string `bson:"start" json:"start"` // "09:00"
	End     string `bson:"end" json:"end"`     // "17:00"
}

// SchedulePolicy is the supplier's self-service scheduling policy. It is
// edited only by the supplier; calendar sync never writes to it.
type SchedulePolicy struct {
	// WorkingHours maps weekday -> window. A nil map means every day is
	// bookable; a missing weekday entry means that day is non-working.
	WorkingHours map[time.Weekday]DayHours `bson:"workingHours,omitempty" json:"workingHours,omitempty"`

	MinAdvanceDays int `bson:"minAdvanceDays" json:"minAdvanceDays"` // minimum lead time before the event
	MaxAdvanceDays int `bson:"maxAdvanceDays" json:"maxAdvanceDays"` // furthest bookable horizon, 0 = unlimited

	// TimeSlotBoundaryHour divides morning from afternoon. Zero means the
	// default of 13:00.
	TimeSlotBoundaryHour int `bson:"timeSlotBoundaryHour,omitempty" json:"timeSlotBoundaryHour,omitempty"`
}

// DefaultTimeSlotBoundaryHour is used when a policy does not set its own.
const DefaultTimeSlotBoundaryHour = 13

// BoundaryHour returns the effective morning/afternoon boundary.
func (p SchedulePolicy) BoundaryHour() int {
	if p.TimeSlotBoundaryHour > 0 {
		return p.TimeSlotBoundaryHour
	}
	return DefaultTimeSlotBoundaryHour
}

type Supplier struct {
	ID       string   `bson:"id" json:"id,omitempty"`
	Profile  Profile  `bson:"profile" json:"profile"`
	Security Security `bson:"security" json:"security,omitzero"`

	SchedulePolicy   SchedulePolicy    `bson:"schedulePolicy" json:"schedulePolicy,omitzero"`
	BlockedIntervals []BlockedInterval `bson:"blockedIntervals,omitempty" json:"blockedIntervals,omitempty"`

	// CalendarConnection is nil until the supplier completes an external
	// account authorization flow.
	CalendarConnection *CalendarConnection `bson:"calendarConnection,omitempty" json:"calendarConnection,omitempty"`

	// Secondary ("themed") listings reference the account's primary listing
	// and inherit its calendar connection instead of holding tokens of
	// their own.
	PrimarySupplierID  string `bson:"primarySupplierId,omitempty" json:"primarySupplierId,omitempty"`
	InheritsConnection bool   `bson:"inheritsConnection,omitempty" json:"inheritsConnection,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// SupplierDTO is the trimmed supplier shape returned to booking callers.
type SupplierDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

// ToDTO converts a Supplier to its public DTO.
func (s Supplier) ToDTO() SupplierDTO {
	return SupplierDTO{
		ID:       s.ID,
		Name:     s.Profile.SupplierName,
		Category: s.Profile.Category,
		Rating:   s.Profile.Rating,
	}
}
