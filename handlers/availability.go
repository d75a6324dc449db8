package handlers

import (
	"net/http"

	supplierRepo "festivo/database/repository/supplier"
	"festivo/models"
	"festivo/services/availability"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes the availability decision to booking callers.
type AvailabilityHandler struct {
	Repo   supplierRepo.SupplierRepository
	Engine availability.Engine
}

func NewAvailabilityHandler(repo supplierRepo.SupplierRepository, engine availability.Engine) *AvailabilityHandler {
	return &AvailabilityHandler{Repo: repo, Engine: engine}
}

// CheckAvailabilityHandler evaluates one booking request against a
// supplier's current policy and blocked set.
func (h *AvailabilityHandler) CheckAvailabilityHandler(c *gin.Context) {
	supplierID := c.Param("supplierID")

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	sup, err := h.Repo.GetByID(supplierID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	decision := h.Engine.CheckAvailability(sup.SchedulePolicy, sup.BlockedIntervals, req)
	c.JSON(http.StatusOK, gin.H{"decision": decision})
}
