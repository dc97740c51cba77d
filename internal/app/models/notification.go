package models

import "time"

// NotificationType defines the kind of notification
type NotificationType string

const (
	NotificationLike           NotificationType = "like"
	NotificationComment        NotificationType = "comment"
	NotificationFriendRequest  NotificationType = "friend_request"
	NotificationFriendAccepted NotificationType = "friend_accepted"
)

// Notification defines the notification model based on the 'notifications'
// table. Notifications are best-effort records; failures creating them never
// surface to the operation that triggered them.
type Notification struct {
	ID          int64            `json:"id" db:"id"`
	RecipientID int64            `json:"recipientId" db:"recipient_id"`
	SenderID    int64            `json:"senderId" db:"sender_id"`
	Type        NotificationType `json:"type" db:"notification_type"`
	PostID      *int64           `json:"postId,omitempty" db:"post_id"`
	CommentID   *int64           `json:"commentId,omitempty" db:"comment_id"`
	IsRead      bool             `json:"isRead" db:"is_read"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`

	Sender *User `json:"sender,omitempty"` // Relation, no db tag
}
