package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ubuntu-bounty/crm/internal/apiserver/database"
	"github.com/ubuntu-bounty/crm/internal/common/cnst"
	"github.com/ubuntu-bounty/crm/internal/common/dto"
)

// ListUsers returns active system users without their credentials
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.FromUsers(users))
}

// CreateUser creates a system user. When no PIN is supplied the system
// default is assigned.
func (h *Handler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and a valid user_type are required"})
		return
	}

	pin := req.LoginPIN
	if pin == "" {
		pin = cnst.DefaultLoginPIN
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash PIN", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	user := &database.SystemUser{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		PhoneNumber1: req.PhoneNumber1,
		PhoneNumber2: req.PhoneNumber2,
		UserType:     cnst.UserType(req.UserType),
		LoginPIN:     string(hashed),
		IsActive:     true,
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a user with this email already exists"})
			return
		}
		h.logger.Error("failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// UpdateUser updates a system user. Empty fields keep their current
// value; a supplied PIN is re-hashed.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("failed to get user", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Surname != "" {
		user.Surname = req.Surname
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.PhoneNumber1 != "" {
		user.PhoneNumber1 = req.PhoneNumber1
	}
	if req.PhoneNumber2 != "" {
		user.PhoneNumber2 = req.PhoneNumber2
	}
	if req.UserType != "" {
		user.UserType = cnst.UserType(req.UserType)
	}
	if req.LoginPIN != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.LoginPIN), bcrypt.DefaultCost)
		if err != nil {
			h.logger.Error("failed to hash PIN", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		user.LoginPIN = string(hashed)
	}

	if err := h.store.UpdateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a user with this email already exists"})
			return
		}
		h.logger.Error("failed to update user", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(user))
}

// DeleteUser deactivates a system user so they can no longer log in
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.store.SoftDeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("failed to delete user", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
