package services

import (
	"context"
	"sort"
	"strings"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/app/models/dto"
	"github.com/incampus/backend/internal/app/repositories"
	"github.com/incampus/backend/internal/pkg/apperrors"
)

const (
	feedLimit      = 50
	likedFeedLimit = 20
)

// PostService manages posts, the feed, likes and comments
type PostService struct {
	posts       *repositories.PostRepository
	friendships FriendshipStore
	notifier    PostEventNotifier
}

// NewPostService creates a new PostService
func NewPostService(posts *repositories.PostRepository, friendships FriendshipStore, notifier PostEventNotifier) *PostService {
	return &PostService{posts: posts, friendships: friendships, notifier: notifier}
}

// Create publishes a post with optional media. A post must carry text or at
// least one media item.
func (s *PostService) Create(ctx context.Context, authorID int64, content string, media []models.PostMedia) (*dto.PostResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" && len(media) == 0 {
		return nil, apperrors.ErrEmptyPost
	}

	post := &models.Post{
		AuthorID: authorID,
		Content:  content,
		Media:    media,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.posts.GetByID(ctx, post.ID, authorID)
	if err != nil {
		return nil, err
	}
	response := dto.NewPostResponse(created.Post, created.Liked)
	return &response, nil
}

// Feed assembles the viewer's timeline: posts written by the viewer and
// their friends, enriched with posts their friends liked, newest first.
func (s *PostService) Feed(ctx context.Context, viewerID int64) ([]dto.PostResponse, error) {
	friendIDs, err := s.friendships.ListAcceptedPeerIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	authors := append([]int64{viewerID}, friendIDs...)
	own, err := s.posts.ListByAuthors(ctx, viewerID, authors, feedLimit)
	if err != nil {
		return nil, err
	}

	var liked []*repositories.PostWithViewer
	if len(friendIDs) > 0 {
		liked, err = s.posts.ListLikedBy(ctx, viewerID, friendIDs, authors, likedFeedLimit)
		if err != nil {
			return nil, err
		}
	}

	// Merge and de-duplicate, the authored copy wins over the liked copy
	seen := make(map[int64]bool, len(own)+len(liked))
	merged := make([]*repositories.PostWithViewer, 0, len(own)+len(liked))
	for _, p := range append(own, liked...) {
		if seen[p.Post.ID] {
			continue
		}
		seen[p.Post.ID] = true
		merged = append(merged, p)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Post.CreatedAt.After(merged[j].Post.CreatedAt)
	})
	if len(merged) > feedLimit {
		merged = merged[:feedLimit]
	}

	responses := make([]dto.PostResponse, 0, len(merged))
	for _, p := range merged {
		response := dto.NewPostResponse(p.Post, p.Liked)
		response.LikedByFriend = p.LikedByFriend
		responses = append(responses, response)
	}
	return responses, nil
}

// ListByAuthor returns a user's own posts, newest first
func (s *PostService) ListByAuthor(ctx context.Context, viewerID, authorID int64) ([]dto.PostResponse, error) {
	posts, err := s.posts.ListByAuthors(ctx, viewerID, []int64{authorID}, feedLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, dto.NewPostResponse(p.Post, p.Liked))
	}
	return responses, nil
}

// Get returns a single post for the viewer
func (s *PostService) Get(ctx context.Context, viewerID, postID int64) (*dto.PostResponse, error) {
	post, err := s.posts.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	response := dto.NewPostResponse(post.Post, post.Liked)
	return &response, nil
}

// ToggleLike likes the post if the user has not liked it, or removes the
// like otherwise. Returns the resulting state and like count.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID int64) (*dto.LikeResponse, error) {
	post, err := s.posts.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	var liked bool
	if post.Liked {
		if _, err := s.posts.RemoveLike(ctx, postID, userID); err != nil {
			return nil, err
		}
		liked = false
	} else {
		added, err := s.posts.AddLike(ctx, postID, userID)
		if err != nil {
			return nil, err
		}
		liked = true
		if added && s.notifier != nil {
			s.notifier.PostLiked(ctx, post.Post, userID)
		}
	}

	count, err := s.posts.CountLikes(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResponse{Likes: count, IsLiked: liked}, nil
}

// AddComment appends a comment to a post
func (s *PostService) AddComment(ctx context.Context, userID, postID int64, text string) (*dto.CommentResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("Comment text is required")
	}

	post, err := s.posts.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.PostComment{
		PostID: postID,
		UserID: userID,
		Text:   text,
	}
	if err := s.posts.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.PostCommented(ctx, post.Post, comment)
	}

	// Reload with the author joined for the response
	comments, err := s.posts.ListComments(ctx, postID)
	if err == nil {
		for _, c := range comments {
			if c.ID == comment.ID {
				comment = c
				break
			}
		}
	}

	response := dto.NewCommentResponse(comment)
	return &response, nil
}

// ListComments returns a post's comments oldest first
func (s *PostService) ListComments(ctx context.Context, viewerID, postID int64) ([]dto.CommentResponse, error) {
	if _, err := s.posts.GetByID(ctx, postID, viewerID); err != nil {
		return nil, err
	}

	comments, err := s.posts.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, dto.NewCommentResponse(c))
	}
	return responses, nil
}

// Delete removes a post. Only its author may delete it.
func (s *PostService) Delete(ctx context.Context, userID, postID int64) error {
	authorID, err := s.posts.AuthorID(ctx, postID)
	if err != nil {
		return err
	}
	if authorID != userID {
		return apperrors.ErrNotPostOwner
	}
	return s.posts.Delete(ctx, postID)
}
