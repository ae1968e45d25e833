// Package domain contains the core fitness entities and the repository ports
// the rest of the application depends on.
package domain

import "time"

// DayLayout is the calendar-day format used for session dates and range queries.
const DayLayout = "2006-01-02"

// Meta carries the identity and audit timestamps the store assigns on write.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Base exposes the embedded Meta so generic collections can stamp records.
func (m *Meta) Base() *Meta { return m }

// LocalDay formats t as a calendar day in t's own location. Callers pass
// wall-clock times already in the user's zone.
func LocalDay(t time.Time) string {
	return t.Format(DayLayout)
}
