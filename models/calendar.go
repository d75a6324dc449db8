package models

import "time"

// Calendar provider identifiers.
const (
	ProviderGoogle  = "google"
	ProviderOutlook = "outlook"
)

// CalendarConnection stores a supplier's external calendar credentials and
// subscription state. One primary connection per supplier account; secondary
// listings reference the primary instead of holding tokens themselves.
type CalendarConnection struct {
	Provider     string    `bson:"provider" json:"provider"` // "google" | "outlook"
	AccessToken  string    `bson:"accessToken" json:"-"`
	RefreshToken string    `bson:"refreshToken" json:"-"`
	ExpiresAt    time.Time `bson:"expiresAt" json:"expiresAt"`
	CalendarID   string    `bson:"calendarId" json:"calendarId"`

	SubscriptionID        string     `bson:"subscriptionId,omitempty" json:"subscriptionId,omitempty"`
	SubscriptionExpiresAt *time.Time `bson:"subscriptionExpiresAt,omitempty" json:"subscriptionExpiresAt,omitempty"`

	LastSyncedAt *time.Time `bson:"lastSyncedAt,omitempty" json:"lastSyncedAt,omitempty"`
}

// Expired reports whether the access token is past its expiry at the given
// instant. A small skew margin forces refresh shortly before real expiry.
func (c CalendarConnection) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now.Add(30 * time.Second))
}

// TokenSet is the result of an OAuth code exchange or token refresh.
type TokenSet struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// CalendarEvent is a provider-agnostic event returned by a calendar client.
type CalendarEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	IsAllDay  bool      `json:"isAllDay"`
	BusyState string    `json:"busyState"` // "busy", "oof", "tentative", "free"
}

// Blocks reports whether the event should block supplier time: only busy or
// out-of-office events, or all-day events, count.
func (e CalendarEvent) Blocks() bool {
	if e.IsAllDay {
		return true
	}
	switch e.BusyState {
	case "busy", "oof", "outOfOffice", "out-of-office":
		return true
	}
	return false
}

// SyncResult summarises one completed sync run for the caller.
type SyncResult struct {
	SupplierID       string            `json:"supplierId"`
	Provider         string            `json:"provider"`
	EventsFound      int               `json:"eventsFound"`
	BlockedIntervals []BlockedInterval `json:"blockedIntervals"`
	SyncedAt         time.Time         `json:"syncedAt"`
}

// SyncRun is the persisted record of a sync attempt, keyed by
// supplier+provider. It replaces ad hoc last-synced fields scattered across
// supplier documents and is written alongside the interval replace.
type SyncRun struct {
	SupplierID       string    `bson:"supplierId" json:"supplierId"`
	Provider         string    `bson:"provider" json:"provider"`
	SyncedAt         time.Time `bson:"syncedAt" json:"syncedAt"`
	WindowFrom       string    `bson:"windowFrom" json:"windowFrom"`
	WindowTo         string    `bson:"windowTo" json:"windowTo"`
	EventsFound      int       `bson:"eventsFound" json:"eventsFound"`
	IntervalsWritten int       `bson:"intervalsWritten" json:"intervalsWritten"`
	Status           string    `bson:"status" json:"status"` // "ok" | "failed"
	Error            string    `bson:"error,omitempty" json:"error,omitempty"`
}
