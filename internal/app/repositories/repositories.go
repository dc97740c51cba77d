package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository behind a single dependency
type Repositories struct {
	User         *UserRepository
	Friendship   *FriendshipRepository
	Post         *PostRepository
	Notification *NotificationRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Friendship:   NewFriendshipRepository(db),
		Post:         NewPostRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
