package models

// BookingRequest is the read-only input to an availability check: the
// candidate event date and time slot for a supplier.
type BookingRequest struct {
	Date          string `json:"date" binding:"required"` // "2006-01-02" or human formatted
	StartTime     string `json:"startTime"`               // "15:04"
	DurationHours int    `json:"durationHours"`
}

// PlanSlot is one category slot in a booking plan. A nil Supplier means the
// slot is explicitly empty.
type PlanSlot struct {
	Category string       `json:"category"`
	Supplier *SupplierDTO `json:"supplier,omitempty"`

	// Replaced is set when the resolver swapped the original supplier out.
	Replaced bool `json:"replaced,omitempty"`
	// Note carries the reason a slot was cleared or replaced.
	Note string `json:"note,omitempty"`
}

// BookingPlan is the set of suppliers currently committed against a
// customer's scheduled event.
type BookingPlan struct {
	PlanID  string     `json:"planId"`
	EventID string     `json:"eventId"`
	Slots   []PlanSlot `json:"slots"`
}
