package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ubuntu-bounty/crm/internal/apiserver/database"
	"github.com/ubuntu-bounty/crm/internal/common/dto"
)

const dateLayout = "2006-01-02"

// parseDateRange parses optional startDate/endDate query parameters.
// The end date is pushed to the end of its day so the range is
// inclusive.
func parseDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if v := c.Query("startDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, nil, err
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}
	return start, end, nil
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// invalidateStats drops the cached dashboard counters after a write.
// Cache errors are logged and otherwise ignored.
func (h *Handler) invalidateStats(ctx context.Context) {
	if h.stats == nil {
		return
	}
	if err := h.stats.Invalidate(ctx); err != nil {
		h.logger.Warn("failed to invalidate dashboard stats cache", zap.Error(err))
	}
}

// ListAgents returns active agents, optionally filtered by location or
// registration date range
func (h *Handler) ListAgents(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	filter := database.AgentFilter{
		Location:  c.Query("location"),
		StartDate: start,
		EndDate:   end,
	}
	agents, err := h.store.ListAgents(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list agents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, agents)
}

// CreateAgent registers a new field agent
func (h *Handler) CreateAgent(c *gin.Context) {
	var req dto.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name is required"})
		return
	}

	agent := &database.FieldAgent{
		FullName:       req.FullName,
		ContactDetail1: req.ContactDetail1,
		ContactDetail2: req.ContactDetail2,
		Email:          req.Email,
		AgentLocation:  req.AgentLocation,
		IsActive:       true,
	}
	if err := h.store.CreateAgent(c.Request.Context(), agent); err != nil {
		h.logger.Error("failed to create agent", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.invalidateStats(c.Request.Context())
	c.JSON(http.StatusCreated, agent)
}

// GetAgent returns a single agent with its lead counters
func (h *Handler) GetAgent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	agent, err := h.store.GetAgentWithLeadCounts(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
			return
		}
		h.logger.Error("failed to get agent", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, agent)
}

// ListAgentLocations returns active agents grouped by location
func (h *Handler) ListAgentLocations(c *gin.Context) {
	locations, err := h.store.ListAgentLocations(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list agent locations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, locations)
}

// DeleteAgent deactivates an agent. Historical leads are kept.
func (h *Handler) DeleteAgent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.store.SoftDeleteAgent(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
			return
		}
		h.logger.Error("failed to delete agent", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.invalidateStats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}
