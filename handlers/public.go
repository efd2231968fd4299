package handlers

import (
	"net/http"

	"bookwell/services/booking"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated customer surface. The
// cancel token is the sole capability.
type PublicHandler struct {
	Svc booking.BookingService
}

func NewPublicHandler(svc booking.BookingService) *PublicHandler {
	return &PublicHandler{Svc: svc}
}

// CancelByToken cancels the booking the token resolves to.
func (h *PublicHandler) CancelByToken(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	b, err := h.Svc.CancelByToken(c.Request.Context(), c.Param("token"), input.Reason)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "cancelled",
		"date":         b.Date,
		"cancelReason": b.CancelReason,
	})
}
