package models

import "time"

// MediaType defines the kind of media attached to a post
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Post defines the post model based on the 'posts' table
type Post struct {
	ID        int64     `json:"id" db:"id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Author       *User       `json:"author,omitempty"` // Relation, no db tag
	Media        []PostMedia `json:"media,omitempty"`
	LikeCount    int         `json:"likeCount"`
	CommentCount int         `json:"commentCount"`
}

// PostMedia defines a media attachment based on the 'post_media' table
type PostMedia struct {
	ID     int64     `json:"id" db:"id"`
	PostID int64     `json:"postId" db:"post_id"`
	Type   MediaType `json:"type" db:"media_type"`
	URL    string    `json:"url" db:"url"`
}

// PostComment defines a comment based on the 'post_comments' table
type PostComment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Text      string    `json:"text" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}
