package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ubuntu-bounty/crm/internal/common/cnst"
	"github.com/ubuntu-bounty/crm/internal/common/dto"
)

// ListSettings returns all company settings as a flat key-value object
func (h *Handler) ListSettings(c *gin.Context) {
	settings, err := h.store.ListSettings(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.SettingKey] = s.SettingValue
	}
	c.JSON(http.StatusOK, out)
}

// SetSetting creates or updates a single setting
func (h *Handler) SetSetting(c *gin.Context) {
	var req dto.SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}

	setting, err := h.store.SetSetting(c.Request.Context(), req.Key, req.Value)
	if err != nil {
		h.logger.Error("failed to set setting", zap.String("key", req.Key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, setting)
}

// UploadLogo accepts a multipart image upload and stores its public URL
// under the company logo setting
func (h *Handler) UploadLogo(c *gin.Context) {
	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	url := fmt.Sprintf("/uploads/logo-%s%s", uuid.New().String(), ext)
	if err := c.SaveUploadedFile(file, "."+url); err != nil {
		h.logger.Error("failed to save logo file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	setting, err := h.store.SetSetting(c.Request.Context(), cnst.SettingCompanyLogo, url)
	if err != nil {
		h.logger.Error("failed to store logo setting", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": setting.SettingValue})
}
