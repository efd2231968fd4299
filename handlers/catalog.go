package handlers

import (
	"net/http"

	catalogRepo "bookwell/database/repository/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler exposes the tenant's services and staff read model.
type CatalogHandler struct {
	Repo catalogRepo.CatalogRepository
}

func NewCatalogHandler(repo catalogRepo.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{Repo: repo}
}

// ListServices returns the tenant's active services.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.Repo.ListServices(c.Request.Context(), tenantFrom(c))
	if err != nil {
		zap.L().Error("failed to list services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ListStaff returns the tenant's active staff members.
func (h *CatalogHandler) ListStaff(c *gin.Context) {
	members, err := h.Repo.ListStaff(c.Request.Context(), tenantFrom(c))
	if err != nil {
		zap.L().Error("failed to list staff", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": members})
}
