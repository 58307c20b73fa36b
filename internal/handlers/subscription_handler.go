package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
)

// SubscriptionRegistry is implemented by repository.SubscriptionRepository.
type SubscriptionRegistry interface {
	Upsert(ctx context.Context, sub *models.PushSubscription) error
	DeleteByEndpoint(ctx context.Context, userID int64, endpoint string) error
}

type SubscriptionHandler struct {
	subs SubscriptionRegistry
}

func NewSubscriptionHandler(subs SubscriptionRegistry) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs}
}

// POST /api/push/subscriptions
func (h *SubscriptionHandler) Register(c *gin.Context) {
	var req struct {
		UserID   int64  `json:"user_id" binding:"required"`
		Endpoint string `json:"endpoint" binding:"required"`
		P256dh   string `json:"p256dh" binding:"required"`
		Auth     string `json:"auth" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub := &models.PushSubscription{
		UserID:   req.UserID,
		Endpoint: req.Endpoint,
		P256dh:   req.P256dh,
		Auth:     req.Auth,
	}
	if err := h.subs.Upsert(c.Request.Context(), sub); err != nil {
		log.Printf("[subscription][register][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register subscription"})
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// DELETE /api/push/subscriptions
// The browser only knows its endpoint URL on unsubscribe, so deletion
// is keyed by (user, endpoint) rather than row id.
func (h *SubscriptionHandler) Unregister(c *gin.Context) {
	var req struct {
		UserID   int64  `json:"user_id" binding:"required"`
		Endpoint string `json:"endpoint" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.subs.DeleteByEndpoint(c.Request.Context(), req.UserID, req.Endpoint); err != nil {
		log.Printf("[subscription][unregister][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove subscription"})
		return
	}
	c.Status(http.StatusNoContent)
}
