package handlers

import (
	"errors"
	"net/http"
	"time"

	catalogRepo "bookwell/database/repository/catalog"
	"bookwell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues console tokens for staff logins.
type AuthHandler struct {
	Catalog catalogRepo.CatalogRepository
}

func NewAuthHandler(catalog catalogRepo.CatalogRepository) *AuthHandler {
	return &AuthHandler{Catalog: catalog}
}

// Login verifies a staff member's credentials and returns a JWT scoped
// to their tenant.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		TenantID string `json:"tenantId" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	member, err := h.Catalog.GetStaffByEmail(c.Request.Context(), input.TenantID, input.Email)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		zap.L().Error("staff lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if member.PasswordHash == "" || !member.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(member.ID, member.TenantID, 24*time.Hour)
	if err != nil {
		zap.L().Error("failed to sign console token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "staffId": member.ID})
}
