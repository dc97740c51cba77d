package dto

import (
	"time"

	"github.com/incampus/backend/internal/app/models"
)

// NotificationResponse is the wire representation of a notification
type NotificationResponse struct {
	ID        int64        `json:"id"`
	Type      string       `json:"type" example:"friend_request"`
	Sender    *UserSummary `json:"sender,omitempty"`
	PostID    *int64       `json:"postId,omitempty"`
	CommentID *int64       `json:"commentId,omitempty"`
	IsRead    bool         `json:"isRead"`
	CreatedAt time.Time    `json:"createdAt"`
}

// NotificationListResponse carries a page of notifications with counts
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
	Pagination    PaginationInfo         `json:"pagination"`
}

// MarkReadRequest is the payload for marking specific notifications as read
type MarkReadRequest struct {
	NotificationIDs []int64 `json:"notificationIds" binding:"required"`
}

// UnreadCountResponse carries the remaining unread count after a mark-read
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}

// NotificationEvent is the payload pushed over the realtime channel when a
// notification is created
type NotificationEvent struct {
	NotificationID int64        `json:"notificationId"`
	FromUser       *UserSummary `json:"fromUser,omitempty"`
	PostID         *int64       `json:"postId,omitempty"`
	CommentID      *int64       `json:"commentId,omitempty"`
}

// NewNotificationEvent builds the realtime push payload for a notification.
// The sender relation should be loaded so clients can render fromUser.
func NewNotificationEvent(n *models.Notification) NotificationEvent {
	ev := NotificationEvent{
		NotificationID: n.ID,
		PostID:         n.PostID,
		CommentID:      n.CommentID,
	}
	if n.Sender != nil {
		s := NewUserSummary(n.Sender)
		ev.FromUser = &s
	}
	return ev
}

// NewNotificationResponse builds the wire representation of a notification
func NewNotificationResponse(n *models.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		PostID:    n.PostID,
		CommentID: n.CommentID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.Sender != nil {
		s := NewUserSummary(n.Sender)
		resp.Sender = &s
	}
	return resp
}
