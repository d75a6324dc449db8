package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	supplierRepo "festivo/database/repository/supplier"
	"festivo/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// channelRepoStub serves the channel lookup; no other repository method is
// reached by the webhook path.
type channelRepoStub struct {
	supplierRepo.SupplierRepository
	supplier *models.Supplier
	lookups  int
}

func (s *channelRepoStub) GetBySubscriptionChannel(string) (*models.Supplier, error) {
	s.lookups++
	if s.supplier == nil {
		return nil, errors.New("no supplier for channel")
	}
	return s.supplier, nil
}

func performWebhook(h *WebhookHandler, headers map[string]string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/calendar/webhook/google", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	h.GoogleNotificationHandler(c)
	return w
}

func TestWebhookRejectsInvalidChannelToken(t *testing.T) {
	repo := &channelRepoStub{}
	h := NewWebhookHandler(repo, nil, nil, "shared-secret")

	w := performWebhook(h, map[string]string{
		"X-Goog-Channel-Token": "wrong",
		"X-Goog-Channel-ID":    "chan-1",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, repo.lookups, "no work before the token is validated")
}

func TestWebhookRejectsWhenNoSecretConfigured(t *testing.T) {
	h := NewWebhookHandler(&channelRepoStub{}, nil, nil, "")

	w := performWebhook(h, map[string]string{
		"X-Goog-Channel-Token": "",
		"X-Goog-Channel-ID":    "chan-1",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookHandshakeAcknowledgedWithoutWork(t *testing.T) {
	repo := &channelRepoStub{}
	h := NewWebhookHandler(repo, nil, nil, "shared-secret")

	w := performWebhook(h, map[string]string{
		"X-Goog-Channel-Token":  "shared-secret",
		"X-Goog-Channel-ID":     "chan-1",
		"X-Goog-Resource-State": "sync",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, repo.lookups)
}

func TestWebhookMissingChannelID(t *testing.T) {
	h := NewWebhookHandler(&channelRepoStub{}, nil, nil, "shared-secret")

	w := performWebhook(h, map[string]string{
		"X-Goog-Channel-Token": "shared-secret",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookUnknownChannelStopsRetries(t *testing.T) {
	repo := &channelRepoStub{}
	h := NewWebhookHandler(repo, nil, nil, "shared-secret")

	w := performWebhook(h, map[string]string{
		"X-Goog-Channel-Token":  "shared-secret",
		"X-Goog-Channel-ID":     "chan-gone",
		"X-Goog-Resource-State": "exists",
	})

	assert.Equal(t, http.StatusOK, w.Code, "200 stops the provider retrying a dropped channel")
	assert.Equal(t, 1, repo.lookups)
}

func TestResolveSupplierIDWithoutCache(t *testing.T) {
	repo := &channelRepoStub{supplier: &models.Supplier{ID: "sup-1"}}
	h := NewWebhookHandler(repo, nil, nil, "shared-secret")

	id, err := h.resolveSupplierID(context.Background(), "chan-1")
	require.NoError(t, err)
	assert.Equal(t, "sup-1", id)

	// No cache configured means every call consults the repository.
	_, err = h.resolveSupplierID(context.Background(), "chan-1")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lookups)
}
