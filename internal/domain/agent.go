package domain

import "time"

// AgentStatus represents lifecycle states for an agent account.
type AgentStatus string

const (
	AgentStatusActive    AgentStatus = "active"
	AgentStatusSuspended AgentStatus = "suspended"
)

// Agent models a listing agent. New agents start unapproved; only approved
// active agents may create or mutate listings.
type Agent struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Agency        string
	Phone         *string
	Approved      bool
	AccountStatus AgentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
