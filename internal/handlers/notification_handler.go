package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
)

// NotificationHistory is implemented by repository.NotificationRepository.
type NotificationHistory interface {
	GetByUserID(ctx context.Context, userID int64, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
}

type NotificationHandler struct {
	notifications NotificationHistory
}

func NewNotificationHandler(notifications NotificationHistory) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// GET /api/notifications?user_id=&limit=
func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.notifications.GetByUserID(c.Request.Context(), userID, limit)
	if err != nil {
		log.Printf("[notification][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}
	var req struct {
		UserID int64 `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), notificationID, req.UserID); err != nil {
		log.Printf("[notification][read][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification read"})
		return
	}
	c.Status(http.StatusNoContent)
}
