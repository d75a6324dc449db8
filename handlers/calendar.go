package handlers

import (
	"net/http"

	syncrunRepo "festivo/database/repository/syncrun"
	"festivo/models"
	"festivo/services/calendar"
	"festivo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler exposes the calendar connect/disconnect/sync endpoints.
type CalendarHandler struct {
	Sync    calendar.SyncService
	RunRepo syncrunRepo.SyncRunRepository
}

func NewCalendarHandler(sync calendar.SyncService, runRepo syncrunRepo.SyncRunRepository) *CalendarHandler {
	return &CalendarHandler{Sync: sync, RunRepo: runRepo}
}

// ConnectURLHandler returns the provider consent URL. The authenticated
// supplier ID rides along as the OAuth state so the callback can attribute
// the code.
func (h *CalendarHandler) ConnectURLHandler(c *gin.Context) {
	supplierID, ok := supplierIDFromContext(c)
	if !ok {
		return
	}
	provider := c.Param("provider")

	url, err := h.Sync.AuthCodeURL(provider, supplierID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Unknown calendar provider", provider)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authUrl": url})
}

// CallbackHandler completes the OAuth flow. The provider redirects here with
// the authorization code and the state issued by ConnectURLHandler.
func (h *CalendarHandler) CallbackHandler(c *gin.Context) {
	logger := utils.GetLogger()
	provider := c.Param("provider")
	code := c.Query("code")
	supplierID := c.Query("state")

	if code == "" || supplierID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code or state"})
		return
	}

	result, err := h.Sync.Connect(c.Request.Context(), supplierID, provider, code)
	if err != nil {
		logger.Error("Calendar connect failed",
			zap.String("supplierID", supplierID),
			zap.String("provider", provider),
			zap.Error(err))
		status := http.StatusBadGateway
		if calendar.ErrorCode(err) == calendar.CodeAuthExpired {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"error": "Failed to connect calendar", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Calendar connected",
		"sync":    result,
	})
}

func (h *CalendarHandler) DisconnectHandler(c *gin.Context) {
	supplierID, ok := supplierIDFromContext(c)
	if !ok {
		return
	}
	provider := c.Param("provider")

	if err := h.Sync.Disconnect(c.Request.Context(), supplierID, provider); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disconnect calendar", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Calendar disconnected"})
}

// TriggerSyncHandler runs a sync immediately for the authenticated supplier.
// The previous snapshot stays in place if the run fails.
func (h *CalendarHandler) TriggerSyncHandler(c *gin.Context) {
	supplierID, ok := supplierIDFromContext(c)
	if !ok {
		return
	}
	provider := c.Param("provider")

	result, err := h.Sync.Sync(c.Request.Context(), supplierID, provider)
	if err != nil {
		status := http.StatusBadGateway
		switch calendar.ErrorCode(err) {
		case calendar.CodeAuthExpired:
			status = http.StatusUnauthorized
		case calendar.CodeNotConnected, calendar.CodeUnknownProvider:
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": "Sync failed", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sync": result})
}

// GetSyncStatusHandler reports the last recorded sync run for the pair.
func (h *CalendarHandler) GetSyncStatusHandler(c *gin.Context) {
	supplierID, ok := supplierIDFromContext(c)
	if !ok {
		return
	}
	provider := c.Param("provider")

	run, err := h.RunRepo.GetLast(supplierID, provider)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sync status", "message": err.Error()})
		return
	}
	if run == nil {
		c.JSON(http.StatusOK, gin.H{"sync": (*models.SyncRun)(nil), "message": "Never synced"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sync": run})
}
