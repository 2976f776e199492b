package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ubuntu-bounty/crm/internal/apiserver/database"
	"github.com/ubuntu-bounty/crm/internal/common/cnst"
	"github.com/ubuntu-bounty/crm/internal/common/dto"
)

// ListLeads returns leads with their agent names. Exactly one filter
// mode applies per request: search, date range, agent, or claimed-only.
func (h *Handler) ListLeads(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	filter := database.LeadFilter{
		Search:    c.Query("search"),
		StartDate: start,
		EndDate:   end,
	}
	if v := c.Query("agentId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agentId"})
			return
		}
		filter.AgentID = uint(id)
	}
	if c.Query("claimed") == "true" {
		filter.ClaimedOnly = true
	}

	leads, err := h.store.ListLeads(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list leads", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, leads)
}

// CreateLead records a new, unclaimed lead
func (h *Handler) CreateLead(c *gin.Context) {
	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "agent_id and client_full_name are required"})
		return
	}

	interest := cnst.InterestLevel(req.ClientInterestLevel)
	if interest == "" {
		interest = cnst.InterestMedium
	}

	lead := &database.Lead{
		AgentID:             req.AgentID,
		ClientFullName:      req.ClientFullName,
		ClientContact1:      req.ClientContact1,
		ClientContact2:      req.ClientContact2,
		ClientEmail:         req.ClientEmail,
		ClientLocation:      req.ClientLocation,
		ClientInterestLevel: interest,
	}
	if err := h.store.CreateLead(c.Request.Context(), lead); err != nil {
		h.logger.Error("failed to create lead", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.invalidateStats(c.Request.Context())
	c.JSON(http.StatusCreated, lead)
}

// ClaimLead claims an unclaimed lead for the named claimant. A lead
// already held by someone else yields a conflict.
func (h *Handler) ClaimLead(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ClaimLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ClaimedBy == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "claimedBy is required"})
		return
	}

	lead, err := h.store.ClaimLead(c.Request.Context(), id, req.ClaimedBy)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrEmptyClaimant):
			c.JSON(http.StatusBadRequest, gin.H{"error": "claimedBy is required"})
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
		case errors.Is(err, database.ErrLeadClaimed):
			c.JSON(http.StatusConflict, gin.H{"error": "lead has already been claimed"})
		default:
			h.logger.Error("failed to claim lead", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	h.invalidateStats(c.Request.Context())
	c.JSON(http.StatusOK, lead)
}

// ReverseClaim releases a lead back to the unclaimed pool
func (h *Handler) ReverseClaim(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	lead, err := h.store.ReverseClaim(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
			return
		}
		h.logger.Error("failed to reverse claim", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.invalidateStats(c.Request.Context())
	c.JSON(http.StatusOK, lead)
}

// DeleteLead removes a lead permanently
func (h *Handler) DeleteLead(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.store.DeleteLead(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
			return
		}
		h.logger.Error("failed to delete lead", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.invalidateStats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}
