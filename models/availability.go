package models

// Availability reason codes. The engine reports the first failing check, so
// a concrete date conflict always wins over a generic policy reason.
const (
	ReasonNone                = ""
	ReasonDateBlocked         = "date_blocked"
	ReasonNonWorkingDay       = "non_working_day"
	ReasonOutsideWorkingHours = "outside_working_hours"
	ReasonInsufficientNotice  = "insufficient_notice"
	ReasonTooFarInAdvance     = "too_far_in_advance"
	ReasonPolicyInvalid       = "policy_invalid"
)

// AvailabilityDecision is the deterministic verdict for one supplier and one
// booking request. It is a pure function of the policy, the blocked set and
// the request; it never carries an error.
type AvailabilityDecision struct {
	Available        bool   `json:"available"`
	ReasonCode       string `json:"reasonCode,omitempty"`
	Message          string `json:"message,omitempty"`
	RequiredLeadDays int    `json:"requiredLeadDays,omitempty"`
}
