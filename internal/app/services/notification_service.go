package services

import (
	"context"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/app/models/dto"
	"github.com/incampus/backend/internal/pkg/apperrors"
	"github.com/incampus/backend/internal/pkg/logger"
	"github.com/incampus/backend/internal/pkg/realtime"
)

// EventPublisher pushes events to a user's live connections
type EventPublisher interface {
	Publish(userID int64, event realtime.Event)
}

// Realtime event name per notification type. Clients subscribe to these names.
var eventNames = map[models.NotificationType]string{
	models.NotificationFriendRequest:  "friend:request",
	models.NotificationFriendAccepted: "friend:accept",
	models.NotificationLike:           "post:like",
	models.NotificationComment:        "post:comment",
}

// NotificationService records notifications and pushes them over the realtime
// channel. Recording and pushing are both best effort when driven by another
// operation: a failure is logged and never surfaced to the originating call.
type NotificationService struct {
	notifications NotificationStore
	users         UserDirectory
	publisher     EventPublisher
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications NotificationStore, users UserDirectory, publisher EventPublisher) *NotificationService {
	return &NotificationService{notifications: notifications, users: users, publisher: publisher}
}

// FriendRequestSent notifies the recipient of a new friend request
func (s *NotificationService) FriendRequestSent(ctx context.Context, friendship *models.Friendship) {
	s.emit(ctx, &models.Notification{
		RecipientID: friendship.RecipientID,
		SenderID:    friendship.RequesterID,
		Type:        models.NotificationFriendRequest,
	})
}

// FriendRequestAccepted notifies the original requester that the request was
// accepted
func (s *NotificationService) FriendRequestAccepted(ctx context.Context, friendship *models.Friendship) {
	s.emit(ctx, &models.Notification{
		RecipientID: friendship.RequesterID,
		SenderID:    friendship.RecipientID,
		Type:        models.NotificationFriendAccepted,
	})
}

// PostLiked notifies the post author of a new like. Liking your own post is
// not notified.
func (s *NotificationService) PostLiked(ctx context.Context, post *models.Post, likerID int64) {
	if post.AuthorID == likerID {
		return
	}
	postID := post.ID
	s.emit(ctx, &models.Notification{
		RecipientID: post.AuthorID,
		SenderID:    likerID,
		Type:        models.NotificationLike,
		PostID:      &postID,
	})
}

// PostCommented notifies the post author of a new comment
func (s *NotificationService) PostCommented(ctx context.Context, post *models.Post, comment *models.PostComment) {
	if post.AuthorID == comment.UserID {
		return
	}
	postID := post.ID
	commentID := comment.ID
	s.emit(ctx, &models.Notification{
		RecipientID: post.AuthorID,
		SenderID:    comment.UserID,
		Type:        models.NotificationComment,
		PostID:      &postID,
		CommentID:   &commentID,
	})
}

func (s *NotificationService) emit(ctx context.Context, n *models.Notification) {
	if err := s.notifications.Create(ctx, n); err != nil {
		logger.Error().Err(err).Str("type", string(n.Type)).Int64("recipientId", n.RecipientID).
			Msg("Failed to record notification")
		return
	}

	if s.publisher == nil {
		return
	}

	if sender, err := s.users.GetByID(ctx, n.SenderID); err == nil {
		n.Sender = sender
	}
	name, ok := eventNames[n.Type]
	if !ok {
		name = "notification"
	}
	s.publisher.Publish(n.RecipientID, realtime.Event{
		Name: name,
		Data: dto.NewNotificationEvent(n),
	})
}

// List returns a page of the user's notifications with the unread counter
func (s *NotificationService) List(ctx context.Context, userID int64, unreadOnly bool, page, limit int) (*dto.NotificationListResponse, error) {
	offset := (page - 1) * limit

	notifications, err := s.notifications.List(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.notifications.Count(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.Count(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NewNotificationResponse(n))
	}

	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unread,
		Pagination: dto.PaginationInfo{
			CurrentPage: page,
			PageSize:    limit,
			TotalItems:  total,
			TotalPages:  pages,
		},
	}, nil
}

// UnreadCount returns the user's unread notification count
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.Count(ctx, userID, true)
}

// MarkRead flags the given notifications, or all of them when ids is empty,
// as read. Rows belonging to other users are ignored.
func (s *NotificationService) MarkRead(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return s.notifications.MarkAllRead(ctx, userID)
	}
	return s.notifications.MarkRead(ctx, userID, ids)
}

// Delete removes one of the user's notifications
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID int64) error {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.RecipientID != userID {
		return apperrors.ErrNotNotificationRecipient
	}
	return s.notifications.Delete(ctx, notificationID)
}
