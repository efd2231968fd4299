package handlers

import (
	"errors"
	"net/http"

	"bookwell/middleware"
	"bookwell/models"
	"bookwell/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the staff console booking endpoints.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

func tenantFrom(c *gin.Context) string {
	return c.GetString(middleware.CtxTenantID)
}

func staffFrom(c *gin.Context) string {
	return c.GetString(middleware.CtxStaffID)
}

// writeBookingError maps the service error taxonomy onto HTTP statuses.
func writeBookingError(c *gin.Context, err error) {
	var (
		validation  *booking.ValidationError
		illegal     *booking.IllegalTransitionError
		conflict    *booking.ConflictError
		notFound    *booking.NotFoundError
		notCancella *booking.NotCancellableError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &illegal):
		c.JSON(http.StatusConflict, gin.H{"error": illegal.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &notCancella):
		c.JSON(http.StatusConflict, gin.H{"error": notCancella.Error()})
	default:
		zap.L().Error("booking operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// CreateBooking creates a booking from the staff console.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req.TenantID = tenantFrom(c)
	req.Source = models.SourceStaff
	req.ActorID = staffFrom(c)

	b, err := h.Svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBooking returns one booking of the caller's tenant.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Svc.GetBooking(c.Request.Context(), tenantFrom(c), c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookingsByDay returns the tenant's bookings for ?date=YYYY-MM-DD.
func (h *BookingHandler) ListBookingsByDay(c *gin.Context) {
	date := c.Query("date")
	bookings, err := h.Svc.ListBookingsByDay(c.Request.Context(), tenantFrom(c), date)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateBooking edits a non-terminal booking.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var req booking.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req.ActorID = staffFrom(c)

	b, err := h.Svc.UpdateBooking(c.Request.Context(), tenantFrom(c), c.Param("id"), req)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Confirm approves a pending booking.
func (h *BookingHandler) Confirm(c *gin.Context) {
	b, err := h.Svc.Confirm(c.Request.Context(), tenantFrom(c), c.Param("id"), staffFrom(c))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// StartService marks a confirmed booking as in progress.
func (h *BookingHandler) StartService(c *gin.Context) {
	b, err := h.Svc.StartService(c.Request.Context(), tenantFrom(c), c.Param("id"), staffFrom(c))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Complete finishes a booking.
func (h *BookingHandler) Complete(c *gin.Context) {
	b, err := h.Svc.Complete(c.Request.Context(), tenantFrom(c), c.Param("id"), staffFrom(c))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Cancel cancels a booking with an optional reason.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	b, err := h.Svc.Cancel(c.Request.Context(), tenantFrom(c), c.Param("id"), input.Reason, staffFrom(c))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// MarkNoShow flags a confirmed booking whose start time has passed.
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	b, err := h.Svc.MarkNoShow(c.Request.Context(), tenantFrom(c), c.Param("id"), staffFrom(c))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBooking soft-deletes a booking.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	if err := h.Svc.DeleteBooking(c.Request.Context(), tenantFrom(c), c.Param("id"), staffFrom(c)); err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
