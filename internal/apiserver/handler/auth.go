package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ubuntu-bounty/crm/internal/common/dto"
)

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Email == "" || req.PIN == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and pin are required"})
		return
	}

	// Inactive users are filtered by the lookup itself
	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or PIN"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.LoginPIN), []byte(req.PIN)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or PIN"})
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Email, user.UserType)
	if err != nil {
		h.logger.Error("failed to generate token",
			zap.String("email", user.Email),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		Token:   token,
		User:    dto.FromUser(user),
	})
}
