package dto

import (
	"time"

	"github.com/incampus/backend/internal/app/models"
)

// PostMediaResponse is the wire representation of a media attachment
type PostMediaResponse struct {
	Type string `json:"type" example:"image"`
	URL  string `json:"url"`
}

// PostResponse is the wire representation of a post
type PostResponse struct {
	ID            int64               `json:"id"`
	Author        UserSummary         `json:"author"`
	Content       string              `json:"content"`
	Media         []PostMediaResponse `json:"media,omitempty"`
	LikeCount     int                 `json:"likes"`
	Liked         bool                `json:"isLiked"`
	CommentCount  int                 `json:"comments"`
	LikedByFriend *string             `json:"likedByFriend,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// LikeResponse carries the result of a like toggle
type LikeResponse struct {
	Likes   int  `json:"likes"`
	IsLiked bool `json:"isLiked"`
}

// AddCommentRequest is the payload for adding a comment to a post
type AddCommentRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

// CommentResponse is the wire representation of a comment
type CommentResponse struct {
	ID        int64       `json:"id"`
	Text      string      `json:"text"`
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewPostResponse builds the wire representation of a post. The author
// relation must be loaded.
func NewPostResponse(post *models.Post, liked bool) PostResponse {
	resp := PostResponse{
		ID:           post.ID,
		Content:      post.Content,
		LikeCount:    post.LikeCount,
		Liked:        liked,
		CommentCount: post.CommentCount,
		CreatedAt:    post.CreatedAt,
	}
	if post.Author != nil {
		resp.Author = NewUserSummary(post.Author)
	}
	for _, m := range post.Media {
		resp.Media = append(resp.Media, PostMediaResponse{Type: string(m.Type), URL: m.URL})
	}
	return resp
}

// NewCommentResponse builds the wire representation of a comment. The user
// relation must be loaded.
func NewCommentResponse(comment *models.PostComment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		resp.User = NewUserSummary(comment.User)
	}
	return resp
}
