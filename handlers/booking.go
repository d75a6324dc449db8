package handlers

import (
	"net/http"

	"festivo/models"
	"festivo/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes replacement resolution to the booking subsystem.
type BookingHandler struct {
	Resolver booking.ReplacementService
}

func NewBookingHandler(resolver booking.ReplacementService) *BookingHandler {
	return &BookingHandler{Resolver: resolver}
}

// ResolveReplacementHandler re-validates a booking plan against a changed
// request and swaps or clears suppliers that no longer fit.
func (h *BookingHandler) ResolveReplacementHandler(c *gin.Context) {
	var req struct {
		Plan           models.BookingPlan    `json:"plan" binding:"required"`
		ChangedRequest models.BookingRequest `json:"changedRequest" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	updated := h.Resolver.ResolveReplacement(c.Request.Context(), req.Plan, req.ChangedRequest)
	c.JSON(http.StatusOK, gin.H{"plan": updated})
}
