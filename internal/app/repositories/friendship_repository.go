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

const friendshipColumns = `id, requester_id, recipient_id, status, created_at, updated_at`

// FriendshipRepository handles database operations for the friendship graph.
// A pair of users has at most one row regardless of direction, enforced by
// the friendships_pair_key unique index.
type FriendshipRepository struct {
	db *pgxpool.Pool
}

// NewFriendshipRepository creates a new FriendshipRepository
func NewFriendshipRepository(db *pgxpool.Pool) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func scanFriendship(row pgx.Row) (*models.Friendship, error) {
	var f models.Friendship
	err := row.Scan(&f.ID, &f.RequesterID, &f.RecipientID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a pending friend request. If any row already links the two
// users, in either direction, the unique pair index rejects the insert and
// ErrFriendshipExists is returned.
func (r *FriendshipRepository) Create(ctx context.Context, requesterID, recipientID int64) (*models.Friendship, error) {
	query := `
		INSERT INTO friendships (requester_id, recipient_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING ` + friendshipColumns

	friendship, err := scanFriendship(r.db.QueryRow(ctx, query, requesterID, recipientID))
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrFriendshipExists
		}
		return nil, fmt.Errorf("error creating friendship: %w", err)
	}
	return friendship, nil
}

// GetByID retrieves a friendship row by id
func (r *FriendshipRepository) GetByID(ctx context.Context, id int64) (*models.Friendship, error) {
	query := `SELECT ` + friendshipColumns + ` FROM friendships WHERE id = $1`

	friendship, err := scanFriendship(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFriendRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving friendship: %w", err)
	}
	return friendship, nil
}

// FindBetween retrieves the friendship linking two users, in either direction
func (r *FriendshipRepository) FindBetween(ctx context.Context, userA, userB int64) (*models.Friendship, error) {
	query := `
		SELECT ` + friendshipColumns + `
		FROM friendships
		WHERE (requester_id = $1 AND recipient_id = $2)
		   OR (requester_id = $2 AND recipient_id = $1)`

	friendship, err := scanFriendship(r.db.QueryRow(ctx, query, userA, userB))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFriendshipNotFound
		}
		return nil, fmt.Errorf("error retrieving friendship between users: %w", err)
	}
	return friendship, nil
}

// UpdateStatus sets a friendship's status and returns the updated row
func (r *FriendshipRepository) UpdateStatus(ctx context.Context, id int64, status models.FriendshipStatus) (*models.Friendship, error) {
	query := `
		UPDATE friendships SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + friendshipColumns

	friendship, err := scanFriendship(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFriendRequestNotFound
		}
		return nil, fmt.Errorf("error updating friendship status: %w", err)
	}
	return friendship, nil
}

// Delete removes a friendship row
func (r *FriendshipRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM friendships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting friendship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFriendshipNotFound
	}
	return nil
}

// ListAcceptedPeerIDs returns the ids of every accepted friend of the user
func (r *FriendshipRepository) ListAcceptedPeerIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.listPeerIDs(ctx, userID, models.FriendshipAccepted)
}

// ListPendingPeerIDs returns the ids of every user linked to this one by a
// pending request, whichever side sent it.
func (r *FriendshipRepository) ListPendingPeerIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.listPeerIDs(ctx, userID, models.FriendshipPending)
}

func (r *FriendshipRepository) listPeerIDs(ctx context.Context, userID int64, status models.FriendshipStatus) ([]int64, error) {
	query := `
		SELECT CASE WHEN requester_id = $1 THEN recipient_id ELSE requester_id END
		FROM friendships
		WHERE (requester_id = $1 OR recipient_id = $1) AND status = $2`

	rows, err := r.db.Query(ctx, query, userID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing friendship peers: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning peer id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating peer rows: %w", err)
	}

	return ids, nil
}

// ListPending returns the user's pending requests. With asRecipient true the
// user is the recipient (incoming requests), otherwise the sender (outgoing).
// Both counterpart users are loaded onto each row.
func (r *FriendshipRepository) ListPending(ctx context.Context, userID int64, asRecipient bool) ([]*models.Friendship, error) {
	column := "requester_id"
	if asRecipient {
		column = "recipient_id"
	}

	query := `
		SELECT ` + joinedFriendshipColumns + `
		FROM friendships f
		JOIN users req ON req.id = f.requester_id
		JOIN users rec ON rec.id = f.recipient_id
		WHERE f.` + column + ` = $1 AND f.status = 'pending'
		ORDER BY f.created_at DESC`

	return r.queryJoined(ctx, query, userID)
}

// ListAccepted returns the user's accepted friendships with both users loaded
func (r *FriendshipRepository) ListAccepted(ctx context.Context, userID int64) ([]*models.Friendship, error) {
	query := `
		SELECT ` + joinedFriendshipColumns + `
		FROM friendships f
		JOIN users req ON req.id = f.requester_id
		JOIN users rec ON rec.id = f.recipient_id
		WHERE (f.requester_id = $1 OR f.recipient_id = $1) AND f.status = 'accepted'
		ORDER BY f.updated_at DESC`

	return r.queryJoined(ctx, query, userID)
}

const joinedFriendshipColumns = `
	f.id, f.requester_id, f.recipient_id, f.status, f.created_at, f.updated_at,
	req.id, req.name, req.email, req.university_id, req.role, req.avatar_url,
	rec.id, rec.name, rec.email, rec.university_id, rec.role, rec.avatar_url`

func (r *FriendshipRepository) queryJoined(ctx context.Context, query string, args ...interface{}) ([]*models.Friendship, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing friendships: %w", err)
	}
	defer rows.Close()

	var friendships []*models.Friendship
	for rows.Next() {
		var f models.Friendship
		var req, rec models.User
		err := rows.Scan(
			&f.ID, &f.RequesterID, &f.RecipientID, &f.Status, &f.CreatedAt, &f.UpdatedAt,
			&req.ID, &req.Name, &req.Email, &req.UniversityID, &req.Role, &req.AvatarURL,
			&rec.ID, &rec.Name, &rec.Email, &rec.UniversityID, &rec.Role, &rec.AvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning friendship row: %w", err)
		}
		f.Requester = &req
		f.Recipient = &rec
		friendships = append(friendships, &f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friendship rows: %w", err)
	}

	return friendships, nil
}
