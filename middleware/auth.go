package middleware

import (
	"net/http"
	"strings"

	"bookwell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by StaffAuthMiddleware.
const (
	CtxStaffID  = "staffID"
	CtxTenantID = "tenantID"
)

// StaffAuthMiddleware validates the console JWT and scopes the request
// to the tenant named in the token. Every downstream handler reads the
// tenant from the context, never from the request body.
func StaffAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		staffID, tenantID, err := utils.ClaimsFromToken(tokenString)
		if err != nil {
			zap.L().Warn("rejected console token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(CtxStaffID, staffID)
		c.Set(CtxTenantID, tenantID)
		c.Next()
	}
}
