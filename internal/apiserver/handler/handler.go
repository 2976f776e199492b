package handler

import (
	"go.uber.org/zap"

	"github.com/ubuntu-bounty/crm/internal/apiserver/cache"
	"github.com/ubuntu-bounty/crm/internal/apiserver/database"
	"github.com/ubuntu-bounty/crm/internal/auth/jwt"
)

// Handler serves the CRM HTTP API on top of a Store
type Handler struct {
	store      database.Store
	jwtService *jwt.Service
	stats      *cache.StatsCache
	logger     *zap.Logger
}

// NewHandler creates a new API handler. stats may be nil when the
// dashboard cache is disabled.
func NewHandler(store database.Store, jwtService *jwt.Service, stats *cache.StatsCache, logger *zap.Logger) *Handler {
	return &Handler{
		store:      store,
		jwtService: jwtService,
		stats:      stats,
		logger:     logger,
	}
}
