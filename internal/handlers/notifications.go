package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quantos/internal/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GetNotifications handles GET /api/v1/notifications requests.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notifications": h.notificationService.List(),
	})
}

// ClearNotifications handles DELETE /api/v1/notifications requests.
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	h.notificationService.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}

// RegisterNotificationRoutes registers all notification routes
func RegisterNotificationRoutes(router *gin.RouterGroup, handler *NotificationHandler) {
	group := router.Group("/notifications")
	{
		group.GET("", handler.GetNotifications)
		group.DELETE("", handler.ClearNotifications)
	}
}
