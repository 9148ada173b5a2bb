package domain

import "time"

// SessionStatus tracks a booked session's lifecycle.
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCancelled SessionStatus = "cancelled"
)

// Session is a recording/rehearsal booking against a room. The interval is
// half-open [StartsAt, EndsAt); two scheduled sessions in the same room may
// not overlap.
type Session struct {
	ID        string
	StudioID  string
	RoomID    string
	Title     string
	BookedBy  string // identity id
	Status    SessionStatus
	StartsAt  time.Time
	EndsAt    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether the [start, end) interval collides with the
// session's own interval.
func (s Session) Overlaps(start, end time.Time) bool {
	return s.StartsAt.Before(end) && start.Before(s.EndsAt)
}
