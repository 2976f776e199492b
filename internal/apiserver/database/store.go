package database

import (
	"context"
	"time"
)

// AgentFilter selects a single list mode by presence: a location
// substring, or an inclusive creation-date range. Empty filter lists
// all active agents.
type AgentFilter struct {
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
}

// LeadFilter selects a single list mode by precedence: search term,
// then date range, then agent, then claimed-only. Filters are not
// composable.
type LeadFilter struct {
	Search      string
	StartDate   *time.Time
	EndDate     *time.Time
	AgentID     uint
	ClaimedOnly bool
}

// Store is the single boundary between the endpoint layer and storage.
// It has two interchangeable implementations: a GORM-backed store for
// hosted deployments and a single-file local store for offline ones.
type Store interface {
	// Close closes the underlying store.
	Close() error

	// CreateAgent inserts a new field agent.
	CreateAgent(ctx context.Context, agent *FieldAgent) error

	// ListAgents returns active agents, newest first, optionally filtered.
	ListAgents(ctx context.Context, filter AgentFilter) ([]*FieldAgent, error)

	// GetAgentWithLeadCounts returns one active agent with its lead
	// counters. Returns ErrNotFound when the agent is absent or inactive.
	GetAgentWithLeadCounts(ctx context.Context, id uint) (*AgentWithLeadCounts, error)

	// ListAgentLocations returns active agents grouped by location,
	// most populated first.
	ListAgentLocations(ctx context.Context) ([]*LocationCount, error)

	// SoftDeleteAgent marks an agent inactive. Leads referencing the
	// agent are kept.
	SoftDeleteAgent(ctx context.Context, id uint) error

	// CreateLead inserts a new, unclaimed lead.
	CreateLead(ctx context.Context, lead *Lead) error

	// ListLeads returns leads joined to their agent's name, newest
	// first (claimed-only mode orders by claim time).
	ListLeads(ctx context.Context, filter LeadFilter) ([]*LeadWithAgent, error)

	// ClaimLead atomically claims an unclaimed lead for the named
	// claimant and returns the updated row. Returns ErrEmptyClaimant,
	// ErrNotFound, or ErrLeadClaimed when a claimant already holds it.
	ClaimLead(ctx context.Context, id uint, claimedBy string) (*Lead, error)

	// ReverseClaim clears the claim fields regardless of current claim
	// state and returns the updated row. Idempotent.
	ReverseClaim(ctx context.Context, id uint) (*Lead, error)

	// DeleteLead removes a lead permanently.
	DeleteLead(ctx context.Context, id uint) error

	// CreateUser inserts a new system user. The LoginPIN must already
	// be hashed by the caller.
	CreateUser(ctx context.Context, user *SystemUser) error

	// ListUsers returns active users, newest first.
	ListUsers(ctx context.Context) ([]*SystemUser, error)

	// GetUserByEmail returns the active user with the given email, or
	// ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*SystemUser, error)

	// GetUserByID returns the active user with the given ID, or
	// ErrNotFound.
	GetUserByID(ctx context.Context, id uint) (*SystemUser, error)

	// UpdateUser persists changes to an existing user.
	UpdateUser(ctx context.Context, user *SystemUser) error

	// SoftDeleteUser marks a user inactive.
	SoftDeleteUser(ctx context.Context, id uint) error

	// GetDashboardStats returns the six dashboard counters. The counts
	// are independent aggregates computed concurrently.
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)

	// GetSetting returns the setting with the given key, or ErrNotFound.
	GetSetting(ctx context.Context, key string) (*CompanySetting, error)

	// SetSetting inserts or updates a setting by key.
	SetSetting(ctx context.Context, key, value string) (*CompanySetting, error)

	// ListSettings returns all settings ordered by key.
	ListSettings(ctx context.Context) ([]*CompanySetting, error)
}
