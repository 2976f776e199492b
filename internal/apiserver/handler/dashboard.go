package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ubuntu-bounty/crm/internal/apiserver/cache"
)

// GetDashboardStats returns the dashboard counters, served from the
// Redis cache when one is configured
func (h *Handler) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	if h.stats != nil {
		cached, err := h.stats.Get(ctx)
		if err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
		if !errors.Is(err, cache.ErrMiss) {
			h.logger.Warn("dashboard stats cache read failed", zap.Error(err))
		}
	}

	stats, err := h.store.GetDashboardStats(ctx)
	if err != nil {
		h.logger.Error("failed to compute dashboard stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if h.stats != nil {
		if err := h.stats.Set(ctx, stats); err != nil {
			h.logger.Warn("dashboard stats cache write failed", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, stats)
}
