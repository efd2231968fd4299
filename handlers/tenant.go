package handlers

import (
	"errors"
	"net/http"

	tenantRepo "bookwell/database/repository/tenant"
	"bookwell/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TenantHandler exposes tenant reminder configuration.
type TenantHandler struct {
	Repo tenantRepo.TenantRepository
}

func NewTenantHandler(repo tenantRepo.TenantRepository) *TenantHandler {
	return &TenantHandler{Repo: repo}
}

// GetReminderSettings returns the caller tenant's reminder configuration.
func (h *TenantHandler) GetReminderSettings(c *gin.Context) {
	tenant, err := h.Repo.GetByID(c.Request.Context(), tenantFrom(c))
	if err != nil {
		if errors.Is(err, tenantRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
			return
		}
		zap.L().Error("tenant lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, models.ReminderSettings{
		EnableBookingReminder: tenant.EnableBookingReminder,
		ReminderHoursBefore:   tenant.ReminderHoursBefore,
		EnableSMSReminder:     tenant.EnableSMSReminder,
	})
}

// UpdateReminderSettings rewrites the caller tenant's reminder configuration.
func (h *TenantHandler) UpdateReminderSettings(c *gin.Context) {
	var input models.ReminderSettings
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Repo.UpdateReminderSettings(c.Request.Context(), tenantFrom(c), input); err != nil {
		if errors.Is(err, tenantRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
			return
		}
		zap.L().Error("failed to update reminder settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, input)
}
