package handlers

import (
	"net/http"

	"festivo/models"
	"festivo/services/supplier"
	"festivo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SupplierHandler exposes supplier account, policy and manual-block endpoints.
type SupplierHandler struct {
	Service supplier.SupplierService
}

func NewSupplierHandler(svc supplier.SupplierService) *SupplierHandler {
	return &SupplierHandler{Service: svc}
}

// supplierIDFromContext retrieves the authenticated supplier ID set by the
// auth middleware.
func supplierIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get("supplierID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Supplier not authenticated"})
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid supplier ID in context"})
		return "", false
	}
	return id, true
}

func (h *SupplierHandler) RegisterSupplierHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.Supplier
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid supplier registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	created, err := h.Service.Register(&req)
	if err != nil {
		if supplier.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to register supplier", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register supplier", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"supplier": created})
}

func (h *SupplierHandler) AuthenticateSupplierHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	sup, err := h.Service.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"supplier": sup})
}

func (h *SupplierHandler) RevokeAuthTokenHandler(c *gin.Context) {
	supplierID, ok := supplierIDFromContext(c)
	if !ok {
		return
	}
	if err := h.Service.RevokeAuthToken(supplierID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke token", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func (h *SupplierHandler) GetPolicyHandler(c *gin.Context) {
	supplierID, ok := supplierIDFromContext(c)
	if !ok {
		return
	}
	policy, err := h.Service.GetPolicy(supplierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch policy", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedulePolicy": policy})
}

func (h *SupplierHandler) UpdatePolicyHandler(c *gin.Context) {
	supplierID, ok := supplierIDFromContext(c)
	if !ok {
		return
	}

	var policy models.SchedulePolicy
	if err := c.ShouldBindJSON(&policy); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	if err := h.Service.UpdatePolicy(supplierID, policy); err != nil {
		if supplier.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update policy", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Policy updated"})
}

func (h *SupplierHandler) AddManualBlockHandler(c *gin.Context) {
	supplierID, ok := supplierIDFromContext(c)
	if !ok {
		return
	}

	var req supplier.ManualBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	interval, err := h.Service.AddManualBlock(supplierID, req)
	if err != nil {
		if supplier.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add block", "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"block": interval})
}

func (h *SupplierHandler) ListBlocksHandler(c *gin.Context) {
	supplierID, ok := supplierIDFromContext(c)
	if !ok {
		return
	}
	blocks, err := h.Service.ListBlocks(supplierID, c.Query("source"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list blocks", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": blocks})
}

func (h *SupplierHandler) RemoveManualBlockHandler(c *gin.Context) {
	supplierID, ok := supplierIDFromContext(c)
	if !ok {
		return
	}
	blockID := c.Param("blockID")
	if blockID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing block ID"})
		return
	}
	if err := h.Service.RemoveManualBlock(supplierID, blockID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove block", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Block removed"})
}
