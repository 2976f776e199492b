package database

import (
	"context"
	"testing"
	"time"

	"github.com/ubuntu-bounty/crm/internal/common/cnst"
	"github.com/ubuntu-bounty/crm/internal/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	cfg := &config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"}
	s, err := NewSQLite(cfg)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGormStore_Agents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a1 := &FieldAgent{FullName: "Thabo Nkosi", AgentLocation: "Johannesburg", Email: "thabo@example.com"}
	a2 := &FieldAgent{FullName: "Lindiwe Dube", AgentLocation: "Cape Town"}
	require.NoError(t, s.CreateAgent(ctx, a1))
	require.NoError(t, s.CreateAgent(ctx, a2))
	assert.NotZero(t, a1.ID)
	assert.True(t, a1.IsActive)

	// newest first
	agents, err := s.ListAgents(ctx, AgentFilter{})
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, a2.ID, agents[0].ID)

	// case-insensitive substring location filter
	agents, err = s.ListAgents(ctx, AgentFilter{Location: "cape"})
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "Lindiwe Dube", agents[0].FullName)

	// inclusive date range
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	agents, err = s.ListAgents(ctx, AgentFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, agents, 2)

	past := time.Now().Add(-2 * time.Hour)
	agents, err = s.ListAgents(ctx, AgentFilter{StartDate: &past, EndDate: &start})
	require.NoError(t, err)
	assert.Len(t, agents, 0)
}

func TestGormStore_AgentWithLeadCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	agent := &FieldAgent{FullName: "Thabo Nkosi", AgentLocation: "Durban"}
	require.NoError(t, s.CreateAgent(ctx, agent))

	require.NoError(t, s.CreateLead(ctx, &Lead{AgentID: agent.ID, ClientFullName: "Client A"}))
	require.NoError(t, s.CreateLead(ctx, &Lead{AgentID: agent.ID, ClientFullName: "Client B"}))
	lead3 := &Lead{AgentID: agent.ID, ClientFullName: "Client C"}
	require.NoError(t, s.CreateLead(ctx, lead3))
	_, err := s.ClaimLead(ctx, lead3.ID, "Mike")
	require.NoError(t, err)

	row, err := s.GetAgentWithLeadCounts(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), row.TotalLeads)
	assert.Equal(t, int64(1), row.ClaimedLeads)
	assert.Equal(t, int64(2), row.UnclaimedLeads)
	assert.Equal(t, "Thabo Nkosi", row.FullName)

	// absent agent
	_, err = s.GetAgentWithLeadCounts(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	// inactive agent behaves like an absent one
	require.NoError(t, s.SoftDeleteAgent(ctx, agent.ID))
	_, err = s.GetAgentWithLeadCounts(ctx, agent.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_SoftDeleteAgentKeepsLeads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	agent := &FieldAgent{FullName: "Sipho Zulu", AgentLocation: "Pretoria"}
	require.NoError(t, s.CreateAgent(ctx, agent))
	require.NoError(t, s.CreateLead(ctx, &Lead{AgentID: agent.ID, ClientFullName: "Client X"}))

	require.NoError(t, s.SoftDeleteAgent(ctx, agent.ID))

	agents, err := s.ListAgents(ctx, AgentFilter{})
	require.NoError(t, err)
	assert.Len(t, agents, 0)

	// the historical lead remains visible, the join still resolves the
	// deactivated agent's name
	leads, err := s.ListLeads(ctx, LeadFilter{})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.NotNil(t, leads[0].AgentName)
	assert.Equal(t, "Sipho Zulu", *leads[0].AgentName)
}

func TestGormStore_ListAgentLocations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateAgent(ctx, &FieldAgent{FullName: "A", AgentLocation: "Durban"}))
	require.NoError(t, s.CreateAgent(ctx, &FieldAgent{FullName: "B", AgentLocation: "Durban"}))
	require.NoError(t, s.CreateAgent(ctx, &FieldAgent{FullName: "C", AgentLocation: "Soweto"}))
	require.NoError(t, s.CreateAgent(ctx, &FieldAgent{FullName: "D"}))

	rows, err := s.ListAgentLocations(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Durban", rows[0].AgentLocation)
	assert.Equal(t, int64(2), rows[0].AgentCount)
	assert.Equal(t, "Soweto", rows[1].AgentLocation)
}

func TestGormStore_ListLeadsFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	agent := &FieldAgent{FullName: "Thabo Nkosi"}
	other := &FieldAgent{FullName: "Lindiwe Dube"}
	require.NoError(t, s.CreateAgent(ctx, agent))
	require.NoError(t, s.CreateAgent(ctx, other))

	l1 := &Lead{AgentID: agent.ID, ClientFullName: "Naledi Khumalo", ClientContact1: "0821112222"}
	l2 := &Lead{AgentID: other.ID, ClientFullName: "Peter Smith", ClientContact2: "0837654321"}
	l3 := &Lead{AgentID: agent.ID, ClientFullName: "Anna Naidoo"}
	require.NoError(t, s.CreateLead(ctx, l1))
	require.NoError(t, s.CreateLead(ctx, l2))
	require.NoError(t, s.CreateLead(ctx, l3))

	// unfiltered, newest first, joined to agent names
	rows, err := s.ListLeads(ctx, LeadFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, l3.ID, rows[0].ID)
	require.NotNil(t, rows[0].AgentName)
	assert.Equal(t, "Thabo Nkosi", *rows[0].AgentName)

	// case-insensitive search across name and both contacts
	rows, err = s.ListLeads(ctx, LeadFilter{Search: "naledi"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, l1.ID, rows[0].ID)

	rows, err = s.ListLeads(ctx, LeadFilter{Search: "0837654321"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, l2.ID, rows[0].ID)

	// by agent
	rows, err = s.ListLeads(ctx, LeadFilter{AgentID: agent.ID})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// claimed only, ordered by claim time
	_, err = s.ClaimLead(ctx, l1.ID, "Mike")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = s.ClaimLead(ctx, l2.ID, "Sarah")
	require.NoError(t, err)
	rows, err = s.ListLeads(ctx, LeadFilter{ClaimedOnly: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, l2.ID, rows[0].ID)

	// date range
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	rows, err = s.ListLeads(ctx, LeadFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestGormStore_ClaimLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	agent := &FieldAgent{FullName: "Agent"}
	require.NoError(t, s.CreateAgent(ctx, agent))
	lead := &Lead{AgentID: agent.ID, ClientFullName: "Client"}
	require.NoError(t, s.CreateLead(ctx, lead))
	assert.False(t, lead.IsClaimed)

	// claim requires a claimant name
	_, err := s.ClaimLead(ctx, lead.ID, "  ")
	assert.ErrorIs(t, err, ErrEmptyClaimant)

	// happy path sets the three claim fields together
	claimed, err := s.ClaimLead(ctx, lead.ID, "Mike")
	require.NoError(t, err)
	assert.True(t, claimed.IsClaimed)
	require.NotNil(t, claimed.ClaimedBy)
	assert.Equal(t, "Mike", *claimed.ClaimedBy)
	assert.NotNil(t, claimed.ClaimedAt)

	// the first claimant wins; a second claim is a conflict
	_, err = s.ClaimLead(ctx, lead.ID, "Sarah")
	assert.ErrorIs(t, err, ErrLeadClaimed)

	// absent leads are distinguishable from conflicts
	_, err = s.ClaimLead(ctx, 9999, "Mike")
	assert.ErrorIs(t, err, ErrNotFound)

	// reverse claim clears all three fields, in the returned value and
	// in the stored row alike
	released, err := s.ReverseClaim(ctx, lead.ID)
	require.NoError(t, err)
	assert.False(t, released.IsClaimed)
	assert.Nil(t, released.ClaimedBy)
	assert.Nil(t, released.ClaimedAt)

	rows, err := s.ListLeads(ctx, LeadFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsClaimed)
	assert.Nil(t, rows[0].ClaimedBy)
	assert.Nil(t, rows[0].ClaimedAt)

	// reverse claim on an unclaimed lead is an idempotent no-op
	released, err = s.ReverseClaim(ctx, lead.ID)
	require.NoError(t, err)
	assert.False(t, released.IsClaimed)

	_, err = s.ReverseClaim(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	// hard delete
	require.NoError(t, s.DeleteLead(ctx, lead.ID))
	rows, err = s.ListLeads(ctx, LeadFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 0)
}

func TestGormStore_Users(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &SystemUser{
		Name:     "Alice",
		Surname:  "Mokoena",
		Email:    "a@b.com",
		UserType: cnst.RoleViewEdit,
		LoginPIN: "hashed-pin",
	}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed-pin", got.LoginPIN)
	assert.Equal(t, cnst.RoleViewEdit, got.UserType)

	// duplicate email rejected
	err = s.CreateUser(ctx, &SystemUser{Email: "a@b.com", LoginPIN: "x"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// update
	got.Name = "Alicia"
	require.NoError(t, s.UpdateUser(ctx, got))
	got, err = s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)

	// soft delete removes the user from listings and lookups
	require.NoError(t, s.SoftDeleteUser(ctx, got.ID))
	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 0)
	_, err = s.GetUserByEmail(ctx, "a@b.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_DashboardStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// empty dataset yields all-zero counters
	stats, err := s.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &DashboardStats{}, stats)

	agent := &FieldAgent{FullName: "Agent"}
	require.NoError(t, s.CreateAgent(ctx, agent))
	l1 := &Lead{AgentID: agent.ID, ClientFullName: "A"}
	l2 := &Lead{AgentID: agent.ID, ClientFullName: "B"}
	require.NoError(t, s.CreateLead(ctx, l1))
	require.NoError(t, s.CreateLead(ctx, l2))
	_, err = s.ClaimLead(ctx, l1.ID, "Mike")
	require.NoError(t, err)

	stats, err = s.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalAgents)
	assert.Equal(t, int64(2), stats.TotalLeads)
	assert.Equal(t, int64(1), stats.ClaimedLeads)
	assert.Equal(t, int64(1), stats.UnclaimedLeads)
	assert.Equal(t, int64(2), stats.WeeklyLeads)
}

func TestGormStore_Settings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetSetting(ctx, "company_logo")
	assert.ErrorIs(t, err, ErrNotFound)

	set, err := s.SetSetting(ctx, "company_logo", "/x.png")
	require.NoError(t, err)
	assert.Equal(t, "/x.png", set.SettingValue)

	// upsert updates in place instead of duplicating
	set, err = s.SetSetting(ctx, "company_logo", "/y.png")
	require.NoError(t, err)
	assert.Equal(t, "/y.png", set.SettingValue)

	settings, err := s.ListSettings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "company_logo", settings[0].SettingKey)
	assert.Equal(t, "/y.png", settings[0].SettingValue)

	// list is ordered by key
	_, err = s.SetSetting(ctx, "address", "1 Main Rd")
	require.NoError(t, err)
	settings, err = s.ListSettings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.Equal(t, "address", settings[0].SettingKey)
}

func TestGormStore_DeleteMissingRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.SoftDeleteAgent(ctx, 999), ErrNotFound)
	assert.ErrorIs(t, s.DeleteLead(ctx, 999), ErrNotFound)
	assert.ErrorIs(t, s.SoftDeleteUser(ctx, 999), ErrNotFound)

	// deleting an already-deactivated agent reads as absent
	agent := &FieldAgent{FullName: "Gone Soon"}
	require.NoError(t, s.CreateAgent(ctx, agent))
	require.NoError(t, s.SoftDeleteAgent(ctx, agent.ID))
	assert.ErrorIs(t, s.SoftDeleteAgent(ctx, agent.ID), ErrNotFound)
}

func TestGormStore_GetUserByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetUserByID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	u := &SystemUser{Email: "byid@b.com", UserType: "view_only", LoginPIN: "hash"}
	require.NoError(t, s.CreateUser(ctx, u))

	got, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "byid@b.com", got.Email)

	require.NoError(t, s.SoftDeleteUser(ctx, u.ID))
	_, err = s.GetUserByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
