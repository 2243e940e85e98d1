package domain

import "time"

// AdminRole enumerates administrator privilege tiers.
type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "super_admin"
)

// Admin models a platform administrator.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         AdminRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
