package domain

import "time"

// GearStatus tracks where a gear item is in its working life.
type GearStatus string

const (
	GearAvailable GearStatus = "available"
	GearInUse     GearStatus = "in-use"
	GearRetired   GearStatus = "retired"
)

// ParseGearStatus validates a gear status string.
func ParseGearStatus(s string) (GearStatus, bool) {
	switch GearStatus(s) {
	case GearAvailable, GearInUse, GearRetired:
		return GearStatus(s), true
	}
	return "", false
}

// GearItem is a piece of studio inventory.
type GearItem struct {
	ID           string
	StudioID     string
	Name         string
	Category     string
	SerialNumber string
	Status       GearStatus
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
