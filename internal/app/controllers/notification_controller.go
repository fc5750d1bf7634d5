package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/app/services"
	"github.com/kaanyildiz/assignflow/internal/middleware"
	"github.com/kaanyildiz/assignflow/internal/pkg/helpers"
)

// NotificationController handles the notification endpoints
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

// ListNotifications lists the caller's notifications
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param unread query bool false "Only unread notifications"
// @Success 200 {object} dto.APIResponse{data=[]dto.NotificationResponse} "Notifications"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	page, size := helpers.ParsePaginationParams(ctx)
	unreadOnly := ctx.Query("unread") == "true"

	notifications, pagination, err := c.notificationService.List(ctx, userID, unreadOnly, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:    true,
		Message:    "Notifications",
		Data:       notifications,
		Pagination: pagination,
		Timestamp:  time.Now(),
	})
}

// MarkRead marks one notification as read
// @Summary Mark a notification read
// @Description Marking a notification that belongs to another user is not an error; nothing changes
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse "Notification marked read"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Notification marked read"))
}

// MarkAllRead marks all of the caller's notifications as read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Notifications marked read"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	if err := c.notificationService.MarkAllRead(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Notifications marked read"))
}

// GetUnreadCount returns the caller's unread notification count
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse} "Unread count"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	count, err := c.notificationService.UnreadCount(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(count, "Unread count"))
}
