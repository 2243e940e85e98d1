package domain

import "time"

// Seeker is the domain model for property seekers browsing listings.
type Seeker struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
