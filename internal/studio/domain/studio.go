package domain

import "time"

// Studio is a tenant. Every other studio-scoped row hangs off one of these.
type Studio struct {
	ID        string
	Name      string
	Slug      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
