package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poketrade/marketplace-api/internal/api/handler/v1/response"
	"github.com/poketrade/marketplace-api/internal/domain"
)

type NotificationService interface {
	ListForUser(ctx context.Context, userID uint) ([]domain.Notification, int64, error)
	MarkAllRead(ctx context.Context, userID uint) error
}

type NotificationHandler struct {
	svc NotificationService
}

func NewNotificationHandler(svc NotificationService) *NotificationHandler {
	return &NotificationHandler{
		svc: svc,
	}
}

// HandleGetNotifications godoc
// @Summary      List the caller's notifications, newest first
// @Tags         notifications
// @Produce      json
// @Success      200      {object}   response.NotificationsResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /notifications [get]
// @Security     BearerAuth
func (h *NotificationHandler) HandleGetNotifications(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	notifications, unread, err := h.svc.ListForUser(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetNotifications -> h.svc.ListForUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NotificationsResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	})
}

// HandleMarkAllRead godoc
// @Summary      Mark all of the caller's notifications as read
// @Tags         notifications
// @Produce      json
// @Success      200      {object}   response.MessageResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /notifications/read [post]
// @Security     BearerAuth
func (h *NotificationHandler) HandleMarkAllRead(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	if err := h.svc.MarkAllRead(ctx.Request.Context(), userID); err != nil {
		err = fmt.Errorf("v1.HandleMarkAllRead -> h.svc.MarkAllRead -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "all notifications marked as read"})
}
