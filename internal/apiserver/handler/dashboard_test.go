package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ubuntu-bounty/crm/internal/apiserver/cache"
	"github.com/ubuntu-bounty/crm/internal/apiserver/database"
	"github.com/ubuntu-bounty/crm/internal/common/config"
	"github.com/ubuntu-bounty/crm/internal/common/dto"
)

func TestGetDashboardStats(t *testing.T) {
	h, s := newTestHandler(t)
	r := newTestRouter(h)
	ctx := context.Background()

	agent := &database.FieldAgent{FullName: "A"}
	require.NoError(t, s.CreateAgent(ctx, agent))
	require.NoError(t, s.CreateLead(ctx, &database.Lead{AgentID: agent.ID, ClientFullName: "C1"}))
	require.NoError(t, s.CreateLead(ctx, &database.Lead{AgentID: agent.ID, ClientFullName: "C2"}))
	_, err := s.ClaimLead(ctx, 1, "Sipho")
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/api/dashboard/stats", nil)
	assertStatus(t, w, http.StatusOK)

	var stats database.DashboardStats
	decodeBody(t, w, &stats)
	assert.Equal(t, int64(1), stats.TotalAgents)
	assert.Equal(t, int64(2), stats.TotalLeads)
	assert.Equal(t, int64(1), stats.ClaimedLeads)
	assert.Equal(t, int64(1), stats.UnclaimedLeads)
}

func TestGetDashboardStats_CacheAside(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	statsCache, err := cache.NewStatsCache(&config.CacheConfig{Addr: mr.Addr(), Prefix: "crm:", TTL: time.Minute})
	require.NoError(t, err)

	s, err := database.NewSQLite(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	h := NewHandler(s, mustNewJWTService(), statsCache, zap.NewNop())
	r := newTestRouter(h)
	ctx := context.Background()

	agent := &database.FieldAgent{FullName: "A"}
	require.NoError(t, s.CreateAgent(ctx, agent))

	// first read populates the cache
	w := doJSON(r, http.MethodGet, "/api/dashboard/stats", nil)
	assertStatus(t, w, http.StatusOK)
	cached, err := statsCache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.TotalAgents)

	// a write through the API invalidates it
	w = doJSON(r, http.MethodPost, "/api/agents", dto.CreateAgentRequest{FullName: "B"})
	assertStatus(t, w, http.StatusCreated)
	_, err = statsCache.Get(ctx)
	assert.ErrorIs(t, err, cache.ErrMiss)

	// next read reflects the new counts
	w = doJSON(r, http.MethodGet, "/api/dashboard/stats", nil)
	assertStatus(t, w, http.StatusOK)
	var stats database.DashboardStats
	decodeBody(t, w, &stats)
	assert.Equal(t, int64(2), stats.TotalAgents)
}
