package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/incampus/backend/internal/app/models/dto"
	"github.com/incampus/backend/internal/app/services"
	"github.com/incampus/backend/internal/middleware"
	"github.com/incampus/backend/internal/pkg/helpers"
)

// NotificationController handles notification endpoints
type NotificationController struct {
	notificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List handles listing the caller's notifications
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse} "Notifications"
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	page, limit := helpers.ParsePagination(ctx)
	unreadOnly := ctx.Query("unread") == "true"

	result, err := c.notificationService.List(ctx, userID, unreadOnly, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// UnreadCount handles the unread badge counter
// @Summary Get unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse} "Count"
// @Router /notifications/unread-count [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	count, err := c.notificationService.UnreadCount(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UnreadCountResponse{UnreadCount: count}))
}

// MarkRead handles marking selected notifications as read
// @Summary Mark notifications as read
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkReadRequest true "Notification ids"
// @Success 200 {object} dto.APIResponse "Updated"
// @Router /notifications/mark-as-read [patch]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.MarkReadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("notificationIds must be a list of ids"))
		return
	}

	updated, err := c.notificationService.MarkRead(ctx, userID, req.NotificationIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"updated": updated}))
}

// MarkAllRead handles marking every notification as read
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Updated"
// @Router /notifications/mark-all-as-read [patch]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	updated, err := c.notificationService.MarkRead(ctx, userID, nil)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"updated": updated}))
}

// Delete handles removing one notification
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param notificationId path int true "Notification id"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 403 {object} dto.APIResponse "Not the recipient"
// @Failure 404 {object} dto.APIResponse "Notification not found"
// @Router /notifications/{notificationId} [delete]
func (c *NotificationController) Delete(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	notificationID, ok := pathID(ctx, "notificationId")
	if !ok {
		return
	}

	if err := c.notificationService.Delete(ctx, userID, notificationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Notification deleted"))
}
