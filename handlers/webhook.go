package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	supplierRepo "festivo/database/repository/supplier"
	"festivo/cron"
	"festivo/models"
	"festivo/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	channelCachePrefix = "webhookchannel:"
	channelCacheTTL    = time.Hour
)

// WebhookHandler receives calendar change notifications and queues sync runs.
type WebhookHandler struct {
	Repo   supplierRepo.SupplierRepository
	Queue  *asynq.Client
	Cache  *redis.Client
	Secret string
}

func NewWebhookHandler(repo supplierRepo.SupplierRepository, queue *asynq.Client, cache *redis.Client, secret string) *WebhookHandler {
	return &WebhookHandler{Repo: repo, Queue: queue, Cache: cache, Secret: secret}
}

// GoogleNotificationHandler handles Google watch-channel callbacks. The
// shared channel token is validated before any work is triggered; the
// response is always fast so Google does not retry into a backlog.
func (h *WebhookHandler) GoogleNotificationHandler(c *gin.Context) {
	logger := utils.GetLogger()

	token := c.GetHeader("X-Goog-Channel-Token")
	if h.Secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.Secret)) != 1 {
		logger.Warn("Rejected webhook with invalid channel token")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid channel token"})
		return
	}

	channelID := c.GetHeader("X-Goog-Channel-ID")
	state := c.GetHeader("X-Goog-Resource-State")
	if channelID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing channel ID"})
		return
	}
	// The initial handshake carries no change to act on.
	if state == "sync" {
		c.Status(http.StatusOK)
		return
	}

	supplierID, err := h.resolveSupplierID(c.Request.Context(), channelID)
	if err != nil {
		logger.Warn("Webhook for unknown channel", zap.String("channelID", channelID), zap.Error(err))
		// 200 so the provider stops retrying a channel we no longer track.
		c.Status(http.StatusOK)
		return
	}

	if err := cron.EnqueueSync(h.Queue, supplierID, models.ProviderGoogle); err != nil {
		logger.Error("Failed to enqueue webhook sync",
			zap.String("supplierID", supplierID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue sync"})
		return
	}

	c.Status(http.StatusOK)
}

// resolveSupplierID maps a notification channel to its supplier, through the
// cache when one is configured. Notifications for an active channel arrive in
// bursts, so the mapping is cached after the first lookup.
func (h *WebhookHandler) resolveSupplierID(ctx context.Context, channelID string) (string, error) {
	cacheKey := channelCachePrefix + channelID
	if h.Cache != nil {
		if id, err := h.Cache.Get(ctx, cacheKey).Result(); err == nil && id != "" {
			return id, nil
		}
	}

	sup, err := h.Repo.GetBySubscriptionChannel(channelID)
	if err != nil {
		return "", err
	}

	if h.Cache != nil {
		if err := h.Cache.Set(ctx, cacheKey, sup.ID, channelCacheTTL).Err(); err != nil {
			zap.L().Warn("Failed to cache webhook channel mapping",
				zap.String("channelID", channelID), zap.Error(err))
		}
	}
	return sup.ID, nil
}
