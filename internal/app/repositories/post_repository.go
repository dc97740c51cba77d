package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/pkg/apperrors"
	"github.com/incampus/backend/internal/pkg/dberrors"
)

// PostRepository handles database operations for posts, their media,
// likes and comments
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a post and its media rows in a single transaction
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO posts (author_id, content) VALUES ($1, $2) RETURNING id, created_at`,
		post.AuthorID, post.Content,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating post: %w", err)
	}

	for i := range post.Media {
		m := &post.Media[i]
		m.PostID = post.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO post_media (post_id, url, media_type) VALUES ($1, $2, $3) RETURNING id`,
			m.PostID, m.URL, m.Type,
		).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("error creating post media: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// postSelect joins the author and computes the counters and the viewer's
// like flag. $1 is always the viewer id.
const postSelect = `
	SELECT p.id, p.author_id, p.content, p.created_at,
		u.id, u.name, u.email, u.university_id, u.role, u.avatar_url,
		(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id),
		(SELECT COUNT(*) FROM post_comments c WHERE c.post_id = p.id),
		EXISTS(SELECT 1 FROM post_likes l WHERE l.post_id = p.id AND l.user_id = $1)
	FROM posts p
	JOIN users u ON u.id = p.author_id`

type postRow struct {
	post  *models.Post
	liked bool
}

func scanPostRow(rows pgx.Rows) (*postRow, error) {
	var p models.Post
	var author models.User
	var liked bool
	err := rows.Scan(
		&p.ID, &p.AuthorID, &p.Content, &p.CreatedAt,
		&author.ID, &author.Name, &author.Email, &author.UniversityID, &author.Role, &author.AvatarURL,
		&p.LikeCount, &p.CommentCount, &liked,
	)
	if err != nil {
		return nil, err
	}
	p.Author = &author
	return &postRow{post: &p, liked: liked}, nil
}

// PostWithViewer pairs a post with the viewer-specific flags computed for it
type PostWithViewer struct {
	Post          *models.Post
	Liked         bool
	LikedByFriend *string
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...interface{}) ([]*PostWithViewer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	defer rows.Close()

	var result []*PostWithViewer
	for rows.Next() {
		row, err := scanPostRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		result = append(result, &PostWithViewer{Post: row.post, Liked: row.liked})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	if err = r.attachMedia(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostRepository) attachMedia(ctx context.Context, posts []*PostWithViewer) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(posts))
	byID := make(map[int64]*PostWithViewer, len(posts))
	for _, p := range posts {
		ids = append(ids, p.Post.ID)
		byID[p.Post.ID] = p
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, post_id, url, media_type FROM post_media WHERE post_id = ANY($1) ORDER BY id`,
		ids)
	if err != nil {
		return fmt.Errorf("error listing post media: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.PostMedia
		if err := rows.Scan(&m.ID, &m.PostID, &m.URL, &m.Type); err != nil {
			return fmt.Errorf("error scanning media row: %w", err)
		}
		if p, ok := byID[m.PostID]; ok {
			p.Post.Media = append(p.Post.Media, m)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating media rows: %w", err)
	}
	return nil
}

// GetByID retrieves a post with its author, media and viewer flags
func (r *PostRepository) GetByID(ctx context.Context, postID, viewerID int64) (*PostWithViewer, error) {
	posts, err := r.queryPosts(ctx, postSelect+` WHERE p.id = $2`, viewerID, postID)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, apperrors.ErrPostNotFound
	}
	return posts[0], nil
}

// ListByAuthors returns the newest posts written by any of the given authors
func (r *PostRepository) ListByAuthors(ctx context.Context, viewerID int64, authorIDs []int64, limit int) ([]*PostWithViewer, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	query := postSelect + `
		WHERE p.author_id = ANY($2)
		ORDER BY p.created_at DESC
		LIMIT $3`
	return r.queryPosts(ctx, query, viewerID, authorIDs, limit)
}

// ListLikedBy returns the newest posts liked by any of the given users,
// excluding posts written by the excluded authors. Each row carries the name
// of one liker so the feed can attribute it.
func (r *PostRepository) ListLikedBy(ctx context.Context, viewerID int64, likerIDs, excludeAuthors []int64, limit int) ([]*PostWithViewer, error) {
	if len(likerIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT p.id, p.author_id, p.content, p.created_at,
			u.id, u.name, u.email, u.university_id, u.role, u.avatar_url,
			(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id),
			(SELECT COUNT(*) FROM post_comments c WHERE c.post_id = p.id),
			EXISTS(SELECT 1 FROM post_likes l WHERE l.post_id = p.id AND l.user_id = $1),
			(SELECT lu.name FROM post_likes fl JOIN users lu ON lu.id = fl.user_id
			 WHERE fl.post_id = p.id AND fl.user_id = ANY($2)
			 ORDER BY fl.created_at LIMIT 1)
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE NOT (p.author_id = ANY($3))
		  AND EXISTS(SELECT 1 FROM post_likes fl WHERE fl.post_id = p.id AND fl.user_id = ANY($2))
		ORDER BY p.created_at DESC
		LIMIT $4`

	rows, err := r.db.Query(ctx, query, viewerID, likerIDs, excludeAuthors, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing liked posts: %w", err)
	}
	defer rows.Close()

	var result []*PostWithViewer
	for rows.Next() {
		var p models.Post
		var author models.User
		var liked bool
		var likedByFriend *string
		err := rows.Scan(
			&p.ID, &p.AuthorID, &p.Content, &p.CreatedAt,
			&author.ID, &author.Name, &author.Email, &author.UniversityID, &author.Role, &author.AvatarURL,
			&p.LikeCount, &p.CommentCount, &liked, &likedByFriend,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning liked post row: %w", err)
		}
		p.Author = &author
		result = append(result, &PostWithViewer{Post: &p, Liked: liked, LikedByFriend: likedByFriend})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating liked post rows: %w", err)
	}

	if err = r.attachMedia(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AuthorID returns the author of a post
func (r *PostRepository) AuthorID(ctx context.Context, postID int64) (int64, error) {
	var authorID int64
	err := r.db.QueryRow(ctx, `SELECT author_id FROM posts WHERE id = $1`, postID).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error retrieving post author: %w", err)
	}
	return authorID, nil
}

// Delete removes a post; media, likes and comments go with it via cascade
func (r *PostRepository) Delete(ctx context.Context, postID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// AddLike records a like. Returns false if the user had already liked the post.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID int64) (bool, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`,
		postID, userID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("error adding like: %w", err)
	}
	return true, nil
}

// RemoveLike removes a like. Returns false if no like existed.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`,
		postID, userID)
	if err != nil {
		return false, fmt.Errorf("error removing like: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountLikes returns the number of likes on a post
func (r *PostRepository) CountLikes(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting likes: %w", err)
	}
	return count, nil
}

// AddComment inserts a comment and fills in its generated fields
func (r *PostRepository) AddComment(ctx context.Context, comment *models.PostComment) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO post_comments (post_id, user_id, body) VALUES ($1, $2, $3) RETURNING id, created_at`,
		comment.PostID, comment.UserID, comment.Text,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("error adding comment: %w", err)
	}
	return nil
}

// ListComments returns a post's comments oldest first, with their authors
func (r *PostRepository) ListComments(ctx context.Context, postID int64) ([]*models.PostComment, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, c.body, c.created_at,
			u.id, u.name, u.email, u.university_id, u.role, u.avatar_url
		FROM post_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.PostComment
	for rows.Next() {
		var c models.PostComment
		var u models.User
		err := rows.Scan(
			&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt,
			&u.ID, &u.Name, &u.Email, &u.UniversityID, &u.Role, &u.AvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		c.User = &u
		comments = append(comments, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}
