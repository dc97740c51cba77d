package services

import (
	"context"
	"time"

	"github.com/incampus/backend/internal/app/models"
)

// FriendshipStore is the slice of the friendship repository the services
// need. Declared here so tests can substitute an in-memory implementation.
type FriendshipStore interface {
	Create(ctx context.Context, requesterID, recipientID int64) (*models.Friendship, error)
	GetByID(ctx context.Context, id int64) (*models.Friendship, error)
	FindBetween(ctx context.Context, userA, userB int64) (*models.Friendship, error)
	UpdateStatus(ctx context.Context, id int64, status models.FriendshipStatus) (*models.Friendship, error)
	Delete(ctx context.Context, id int64) error
	ListAcceptedPeerIDs(ctx context.Context, userID int64) ([]int64, error)
	ListPendingPeerIDs(ctx context.Context, userID int64) ([]int64, error)
	ListPending(ctx context.Context, userID int64, asRecipient bool) ([]*models.Friendship, error)
	ListAccepted(ctx context.Context, userID int64) ([]*models.Friendship, error)
}

// UserDirectory is the read side of the user repository
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ListExcluding(ctx context.Context, exclude []int64) ([]*models.User, error)
	Search(ctx context.Context, q string, limit int) ([]*models.User, error)
}

// UserStore extends the directory with the mutations the account services use
type UserStore interface {
	UserDirectory
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	SetOTP(ctx context.Context, userID int64, code string, expiresAt time.Time) error
	ClearOTP(ctx context.Context, userID int64) error
	MarkVerified(ctx context.Context, userID int64) error
	UpdateProfile(ctx context.Context, userID int64, name, bio, role *string) (*models.User, error)
	UpdateAvatarURL(ctx context.Context, userID int64, url string) error
	UpdateCoverPhotoURL(ctx context.Context, userID int64, url string) error
	UpdateEmail(ctx context.Context, userID int64, email string) error
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
	Delete(ctx context.Context, userID int64) error
}

// NotificationStore is the slice of the notification repository the
// notification service needs
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	List(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*models.Notification, error)
	Count(ctx context.Context, recipientID int64, unreadOnly bool) (int64, error)
	MarkRead(ctx context.Context, recipientID int64, ids []int64) (int64, error)
	MarkAllRead(ctx context.Context, recipientID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// FriendEventNotifier receives friendship side effects. Implementations must
// never fail the originating operation.
type FriendEventNotifier interface {
	FriendRequestSent(ctx context.Context, friendship *models.Friendship)
	FriendRequestAccepted(ctx context.Context, friendship *models.Friendship)
}

// PostEventNotifier receives post side effects
type PostEventNotifier interface {
	PostLiked(ctx context.Context, post *models.Post, likerID int64)
	PostCommented(ctx context.Context, post *models.Post, comment *models.PostComment)
}
