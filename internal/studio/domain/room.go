package domain

import "time"

// Room is a bookable space within a studio.
type Room struct {
	ID              string
	StudioID        string
	Name            string
	HourlyRateCents int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
