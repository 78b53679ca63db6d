package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"operationaltracker/internal/services"
)

// NotificationHandler handles in-app notification requests.
type NotificationHandler struct {
	notificationService services.NotificationServicer
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService services.NotificationServicer) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns the caller's notifications, newest first.
// @Summary     List notifications
// @Description Get the caller's notifications, newest first
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       unread_only query bool false "Only unread notifications"
// @Success     200 {object} map[string]interface{} "Notifications"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	unreadOnly := c.Query("unread_only") == "true"

	notifications, err := h.notificationService.ListNotifications(identity.ID, unreadOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead marks one of the caller's notifications as read.
// @Summary     Mark notification read
// @Description Mark one of the caller's notifications as read
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Notification ID"
// @Success     200 {object} map[string]interface{} "Updated notification"
// @Failure     400 {object} ErrorResponse "Invalid notification ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Router      /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	notification, err := h.notificationService.MarkRead(identity.ID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification": notification})
}

// MarkAllRead marks all of the caller's notifications as read.
// @Summary     Mark all notifications read
// @Description Mark all of the caller's notifications as read
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Result"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.notificationService.MarkAllRead(identity.ID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
