package domain

import "time"

// Favorite links a seeker to a saved property.
type Favorite struct {
	SeekerID   string
	PropertyID string
	CreatedAt  time.Time
}
